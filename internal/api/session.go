package api

// Session supplies the bearer token for outbound calls. The gateway asks
// for it on every call and never writes to it.
type Session interface {
	Token() (string, bool)
}

// SessionFunc adapts a function to Session.
type SessionFunc func() (string, bool)

// Token implements Session.
func (f SessionFunc) Token() (string, bool) { return f() }

// StaticToken is a fixed token. The empty token means no session.
type StaticToken string

// Token implements Session.
func (t StaticToken) Token() (string, bool) { return string(t), t != "" }

// NoSession never yields a token.
var NoSession Session = StaticToken("")
