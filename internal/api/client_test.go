package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/magnus-site/internal/content"
)

type recorded struct {
	method      string
	uri         string
	contentType string
	auth        string
	hasAuth     bool
	body        []byte
}

type recorder struct {
	mu    sync.Mutex
	calls []recorded
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.calls...)
}

// newServer answers every request with status and body and records what
// it received.
func newServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_, hasAuth := r.Header["Authorization"]
		rec.mu.Lock()
		defer rec.mu.Unlock()
		rec.calls = append(rec.calls, recorded{
			method:      r.Method,
			uri:         r.URL.RequestURI(),
			contentType: r.Header.Get("Content-Type"),
			auth:        r.Header.Get("Authorization"),
			hasAuth:     hasAuth,
			body:        data,
		})
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestDoDecodesSuccess(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"data":{"ok":true}}`)
	c := New(srv.URL)

	var out struct {
		Data struct {
			OK bool `json:"ok"`
		} `json:"data"`
	}
	require.NoError(t, c.Get(context.Background(), "/ping", &out))
	assert.True(t, out.Data.OK)

	require.Len(t, got.all(), 1)
	assert.Equal(t, http.MethodGet, got.all()[0].method)
	assert.Equal(t, "/ping", got.all()[0].uri)
	assert.Equal(t, "application/json", got.all()[0].contentType)
	assert.False(t, got.all()[0].hasAuth)
}

func TestDoRemoteErrorMessage(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotFound, `{"message":"not found"}`)
	err := New(srv.URL).Get(context.Background(), "/blogs/missing", nil)
	require.Error(t, err)
	assert.Equal(t, "not found", err.Error())

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindRemote, apiErr.Kind)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestDoRemoteErrorFallback(t *testing.T) {
	for _, body := range []string{"<html>oops</html>", "", `{"error":"x"}`} {
		srv, _ := newServer(t, http.StatusInternalServerError, body)
		err := New(srv.URL).Get(context.Background(), "/blogs", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
		assert.Equal(t, "HTTP error, status 500", err.Error())
		assert.True(t, IsKind(err, KindRemote))
	}
}

func TestDoDecodeFailure(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "not json")
	var out map[string]any
	err := New(srv.URL).Get(context.Background(), "/blogs", &out)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDecode))
	assert.Equal(t, MsgDecode, err.Error())
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := New(url).Get(context.Background(), "/blogs", nil)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransport))
	assert.Equal(t, MsgNetwork, err.Error())
}

func TestDoBodyPolicy(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{}`)
	c := New(srv.URL)
	ctx := context.Background()

	assert.ErrorIs(t, c.Do(ctx, http.MethodGet, "/x", JSON(1), nil), ErrBodyNotAllowed)
	assert.ErrorIs(t, c.Do(ctx, http.MethodDelete, "/x", JSON(1), nil), ErrBodyNotAllowed)
	assert.ErrorIs(t, c.Do(ctx, http.MethodPost, "/x", nil, nil), ErrBodyRequired)
	assert.ErrorIs(t, c.Do(ctx, http.MethodPatch, "/x", nil, nil), ErrBodyRequired)
	assert.ErrorIs(t, c.Do(ctx, http.MethodPut, "/x", JSON(1), nil), ErrUnsupportedMethod)
	assert.Empty(t, got.all())

	require.NoError(t, c.Patch(ctx, "/x", JSON(map[string]int{"a": 1}), nil))
	require.NoError(t, c.Delete(ctx, "/x", nil))
	require.Len(t, got.all(), 2)
	assert.Equal(t, http.MethodPatch, got.all()[0].method)
	assert.JSONEq(t, `{"a":1}`, string(got.all()[0].body))
	assert.Equal(t, http.MethodDelete, got.all()[1].method)
}

func TestDoMultipartPassThrough(t *testing.T) {
	srv, got := newServer(t, http.StatusCreated, `{"data":{}}`)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", "Levitation"))
	require.NoError(t, w.Close())
	raw := append([]byte(nil), buf.Bytes()...)

	err := New(srv.URL).Post(context.Background(), "/uploads", Multipart(&buf, w.FormDataContentType()), nil)
	require.NoError(t, err)

	require.Len(t, got.all(), 1)
	assert.Equal(t, w.FormDataContentType(), got.all()[0].contentType)
	assert.NotContains(t, got.all()[0].contentType, "application/json")
	assert.Equal(t, raw, got.all()[0].body)
}

func TestDoBearerReadEveryCall(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{}`)

	token := ""
	c := New(srv.URL, WithSession(SessionFunc(func() (string, bool) {
		return token, token != ""
	})))
	ctx := context.Background()

	require.NoError(t, c.Get(ctx, "/a", nil))
	token = "abc"
	require.NoError(t, c.Get(ctx, "/b", nil))
	token = "xyz"
	require.NoError(t, c.Get(ctx, "/c", nil))

	require.Len(t, got.all(), 3)
	assert.False(t, got.all()[0].hasAuth)
	assert.Equal(t, "Bearer abc", got.all()[1].auth)
	assert.Equal(t, "Bearer xyz", got.all()[2].auth)
}

func TestResourcePaths(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, `{"data":{}}`)
	c := New(srv.URL + "/api/v1/")
	ctx := context.Background()

	_, err := c.Blogs.List(ctx, "?limit=3")
	require.NoError(t, err)
	_, err = c.Blogs.Get(ctx, "my-post")
	require.NoError(t, err)
	_, err = c.Blogs.Featured(ctx)
	require.NoError(t, err)
	_, err = c.Blogs.Categories(ctx)
	require.NoError(t, err)
	_, err = c.Services.List(ctx, "")
	require.NoError(t, err)
	_, err = c.Services.Get(ctx, "mentalism")
	require.NoError(t, err)
	banner, err := c.Banners.Active(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, banner)
	_, err = c.Banners.Active(ctx, "services")
	require.NoError(t, err)

	var uris []string
	for _, r := range got.all() {
		assert.Equal(t, http.MethodGet, r.method)
		uris = append(uris, r.uri)
	}
	assert.Equal(t, []string{
		"/api/v1/blogs?limit=3",
		"/api/v1/blogs/my-post",
		"/api/v1/blogs/featured",
		"/api/v1/blogs/categories",
		"/api/v1/services",
		"/api/v1/services/mentalism",
		"/api/v1/banners/active?page=home",
		"/api/v1/banners/active?page=services",
	}, uris)
}

func TestContactSubmit(t *testing.T) {
	srv, got := newServer(t, http.StatusCreated, `{"success":true}`)
	c := New(srv.URL, WithSession(StaticToken("tok")))

	req := content.ContactRequest{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Wedding",
		Message: "Can you perform in June?",
	}
	require.NoError(t, c.Contact.Submit(context.Background(), req))

	require.Len(t, got.all(), 1)
	r := got.all()[0]
	assert.Equal(t, http.MethodPost, r.method)
	assert.Equal(t, "/contact", r.uri)
	assert.Equal(t, "application/json", r.contentType)
	assert.Equal(t, "Bearer tok", r.auth)

	var sent content.ContactRequest
	require.NoError(t, json.Unmarshal(r.body, &sent))
	assert.Equal(t, req, sent)
}

func TestServicesListDecodes(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK,
		`{"data":{"services":[{"id":"9","name":"Escape Acts","slug":"escape-acts","isPopular":true}]}}`)

	list, err := New(srv.URL).Services.List(context.Background(), "?limit=6")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "escape-acts", list[0].Slug)
	assert.True(t, list[0].IsPopular)
}

func TestResourceLabel(t *testing.T) {
	assert.Equal(t, "blogs", resource("/blogs/featured"))
	assert.Equal(t, "banners", resource("/banners/active?page=home"))
	assert.Equal(t, "services", resource("/services?limit=6"))
	assert.Equal(t, "root", resource("/"))
}
