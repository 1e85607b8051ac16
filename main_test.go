package main

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Zachkp/magnus-site/internal/api"
	"github.com/Zachkp/magnus-site/internal/config"
	"github.com/Zachkp/magnus-site/internal/content"
	"github.com/Zachkp/magnus-site/internal/site"
	"github.com/Zachkp/magnus-site/internal/store"
)

// newTestSite serves the site against a fake content API.
func newTestSite(t *testing.T, remote http.Handler) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := httptest.NewServer(remote)
	t.Cleanup(backend.Close)

	loader := site.NewLoader(site.SourcesFromClient(api.New(backend.URL)), site.WithFetchTimeout(2*time.Second))
	st, err := store.Open(filepath.Join(t.TempDir(), "site.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	srv, err := newServer(config.Default(), loader, st, zap.NewNop())
	require.NoError(t, err)
	return newRouter(srv), st
}

func apiDown() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func postForm(r http.Handler, target string, form url.Values, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPagesFallBackWhenAPIDown(t *testing.T) {
	r, _ := newTestSite(t, apiDown())

	rec := get(r, "/services")
	require.Equal(t, http.StatusOK, rec.Code)
	for _, s := range content.DefaultServices() {
		assert.Contains(t, rec.Body.String(), s.Name)
	}
	for _, st := range content.BookingProcess {
		assert.Contains(t, rec.Body.String(), st.Title)
	}

	rec = get(r, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), content.HeroTitle)
	assert.Contains(t, rec.Body.String(), "Shows Performed")
	assert.Contains(t, rec.Body.String(), content.Showreel.Title)
	assert.Contains(t, rec.Body.String(), "Sarah Chen")
	assert.Contains(t, rec.Body.String(), "★★★★★")
	assert.Contains(t, rec.Body.String(), content.BookingCTA.Label)
	assert.Contains(t, rec.Body.String(), `class="splash"`)

	rec = get(r, "/about")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "First Professional Performance")
}

func TestServiceDetail(t *testing.T) {
	r, _ := newTestSite(t, apiDown())

	rec := get(r, "/services/mentalism")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mentalism")

	rec = get(r, "/services/juggling")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlogSearchAndPost(t *testing.T) {
	r, _ := newTestSite(t, apiDown())

	rec := get(r, "/blog?q=curtain")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Behind the Curtain: A Season on Tour")
	assert.NotContains(t, rec.Body.String(), "Celebrating the Colors of Joy")

	rec = get(r, "/blog/behind-the-curtain-touring")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Behind the Curtain: A Season on Tour")

	rec = get(r, "/blog/no-such-post")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotFoundPage(t *testing.T) {
	r, _ := newTestSite(t, apiDown())
	rec := get(r, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), template.HTMLEscapeString(NotFoundLead))
}

// contactAPI answers services with nothing and counts contact posts.
type contactAPI struct {
	submits atomic.Int32
	status  int
	body    string
}

func (a *contactAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost && r.URL.Path == "/contact" {
		a.submits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(a.status)
		_, _ = w.Write([]byte(a.body))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
}

func validContact() url.Values {
	return url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"subject": {"Gala booking"},
		"message": {"We would love a close-up set at our gala in May."},
	}
}

func TestContactRejectedLocally(t *testing.T) {
	remote := &contactAPI{status: http.StatusCreated, body: `{"success":true}`}
	r, st := newTestSite(t, remote)

	form := validContact()
	form.Set("message", "too short")
	rec := postForm(r, "/contact", form, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Message must be at least 10 characters")
	assert.Contains(t, rec.Body.String(), `value="Ada Lovelace"`)
	assert.Zero(t, remote.submits.Load())

	stats, err := st.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ContactsInvalid)
}

func TestContactSent(t *testing.T) {
	remote := &contactAPI{status: http.StatusCreated, body: `{"success":true}`}
	r, st := newTestSite(t, remote)

	rec := postForm(r, "/contact", validContact(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your message has been sent")
	assert.NotContains(t, rec.Body.String(), `value="Ada Lovelace"`)
	assert.EqualValues(t, 1, remote.submits.Load())

	stats, err := st.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ContactsSent)
}

func TestContactGatewayFailureKeepsValues(t *testing.T) {
	remote := &contactAPI{status: http.StatusInternalServerError, body: `{"message":"mailbox full"}`}
	r, st := newTestSite(t, remote)

	rec := postForm(r, "/contact", validContact(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "mailbox full")
	assert.Contains(t, rec.Body.String(), `value="Ada Lovelace"`)
	assert.Contains(t, rec.Body.String(), "Dismiss")

	stats, err := st.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ContactsFailed)
}

func TestContactFragmentForHTMX(t *testing.T) {
	r, _ := newTestSite(t, &contactAPI{status: http.StatusCreated})

	form := validContact()
	form.Set("email", "not-an-email")
	rec := postForm(r, "/contact", form, map[string]string{"HX-Request": "true"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Valid email is required")
	assert.NotContains(t, rec.Body.String(), "<html")
}

func TestAdminLogin(t *testing.T) {
	r, _ := newTestSite(t, apiDown())

	rec := get(r, "/admin/dashboard")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))

	rec = postForm(r, "/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postForm(r, "/admin/login", url.Values{"username": {"admin"}, "password": {"admin123"}}, nil)
	require.Equal(t, http.StatusFound, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Dashboard")
	assert.Contains(t, rec.Body.String(), "built-in defaults")
}

func TestVisitorTracking(t *testing.T) {
	r, st := newTestSite(t, apiDown())

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Header.Set("DNT", "1")
	r.ServeHTTP(httptest.NewRecorder(), req)
	get(r, "/static/site.css")
	get(r, "/services")

	require.Eventually(t, func() bool {
		stats, err := st.Stats(context.Background())
		return err == nil && stats.TotalVisitors == 1
	}, 2*time.Second, 10*time.Millisecond)

	recent, err := st.RecentVisitors(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "/services", recent[0].Path)
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := newTestSite(t, apiDown())

	rec := get(r, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = get(r, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "site_http_requests_total")
}

func TestTrackable(t *testing.T) {
	assert.True(t, trackable("/"))
	assert.True(t, trackable("/blog/some-post"))
	assert.False(t, trackable("/static/site.css"))
	assert.False(t, trackable("/admin/dashboard"))
	assert.False(t, trackable("/metrics"))
}
