package api

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/martijn/todolist/internal/adapter/quote"
	"github.com/martijn/todolist/internal/api/handler"
	"github.com/martijn/todolist/internal/core/service"
	"github.com/martijn/todolist/internal/infrastructure/sqlite"
	"github.com/martijn/todolist/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedQuote string

func (q fixedQuote) Quote(ctx context.Context) string {
	return string(q)
}

type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func newTestServer(t *testing.T, cfg *config.Config, quotes handler.QuoteSource) *httptest.Server {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	server, err := NewServer(
		cfg,
		service.NewAuthService(userRepo),
		service.NewSessionService(sqlite.NewSessionRepository(db), userRepo, "test-secret", "HS256", time.Hour),
		service.NewTaskService(sqlite.NewTaskRepository(db)),
		quotes,
	)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func testConfig() *config.Config {
	return &config.Config{
		APIHost: "127.0.0.1",
		APIPort: 5000,
	}
}

func newBrowser(t *testing.T, ts *httptest.Server) *browser {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &browser{
		t:      t,
		base:   ts.URL,
		client: &http.Client{Jar: jar, Timeout: 10 * time.Second},
	}
}

// get follows redirects and returns the final path, status and body
func (b *browser) get(path string) (string, int, string) {
	b.t.Helper()

	resp, err := b.client.Get(b.base + path)
	require.NoError(b.t, err)
	return b.read(resp)
}

func (b *browser) post(path string, form url.Values) (string, int, string) {
	b.t.Helper()

	resp, err := b.client.PostForm(b.base+path, form)
	require.NoError(b.t, err)
	return b.read(resp)
}

func (b *browser) read(resp *http.Response) (string, int, string) {
	b.t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return resp.Request.URL.Path, resp.StatusCode, string(body)
}

var taskLink = regexp.MustCompile(`/complete_task/(\d+)`)

func TestServer_AliceLifecycle(t *testing.T) {
	ts := newTestServer(t, testConfig(), fixedQuote("Keep going - Anonymous"))
	alice := newBrowser(t, ts)

	path, status, body := alice.post("/register", url.Values{"username": {"alice"}, "password": {"secret1"}})
	assert.Equal(t, "/login", path)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Usuario registrado correctamente. Ahora puedes iniciar sesión.")

	path, status, body = alice.post("/login", url.Values{"username": {"alice"}, "password": {"secret1"}})
	assert.Equal(t, "/tasks", path)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Mis Tareas")
	assert.Contains(t, body, "Keep going")

	path, _, body = alice.post("/add_task", url.Values{"title": {"Buy milk"}})
	assert.Equal(t, "/tasks", path)
	assert.Contains(t, body, "Buy milk")
	assert.NotContains(t, body, `class="completed"`)

	match := taskLink.FindStringSubmatch(body)
	require.Len(t, match, 2)
	id := match[1]

	_, _, body = alice.get("/complete_task/" + id)
	assert.Contains(t, body, `class="completed"`)

	_, _, body = alice.get("/complete_task/" + id)
	assert.NotContains(t, body, `class="completed"`)

	_, _, body = alice.get("/delete_task/" + id)
	assert.NotContains(t, body, "Buy milk")

	path, _, _ = alice.get("/logout")
	assert.Equal(t, "/login", path)

	path, _, _ = alice.get("/tasks")
	assert.Equal(t, "/login", path)
}

func TestServer_WrongPassword(t *testing.T) {
	ts := newTestServer(t, testConfig(), fixedQuote("q"))
	b := newBrowser(t, ts)

	b.post("/register", url.Values{"username": {"alice"}, "password": {"secret1"}})

	path, status, body := b.post("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	assert.Equal(t, "/login", path)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Usuario o contraseña incorrectos")

	// still anonymous
	path, _, _ = b.get("/tasks")
	assert.Equal(t, "/login", path)
}

func TestServer_TasksAreIsolatedBetweenUsers(t *testing.T) {
	ts := newTestServer(t, testConfig(), fixedQuote("q"))
	alice := newBrowser(t, ts)
	bob := newBrowser(t, ts)

	alice.post("/register", url.Values{"username": {"alice"}, "password": {"secret1"}})
	alice.post("/login", url.Values{"username": {"alice"}, "password": {"secret1"}})
	_, _, body := alice.post("/add_task", url.Values{"title": {"Alice only"}})
	match := taskLink.FindStringSubmatch(body)
	require.Len(t, match, 2)

	bob.post("/register", url.Values{"username": {"bob"}, "password": {"secret2"}})
	_, _, body = bob.post("/login", url.Values{"username": {"bob"}, "password": {"secret2"}})
	assert.NotContains(t, body, "Alice only")

	path, status, _ := bob.get("/complete_task/" + match[1])
	assert.Equal(t, "/tasks", path)
	assert.Equal(t, http.StatusOK, status)
	bob.get("/delete_task/" + match[1])

	_, _, body = alice.get("/tasks")
	assert.Contains(t, body, "Alice only")
	assert.NotContains(t, body, `class="completed"`)
}

func TestServer_QuoteOutageKeepsTaskPage(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	ts := newTestServer(t, testConfig(), quote.NewClient(upstream.URL, time.Second))
	b := newBrowser(t, ts)

	b.post("/register", url.Values{"username": {"alice"}, "password": {"secret1"}})
	path, status, body := b.post("/login", url.Values{"username": {"alice"}, "password": {"secret1"}})
	assert.Equal(t, "/tasks", path)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, quote.Fallback)
}

func TestServer_UnknownRoutesAndIDs(t *testing.T) {
	ts := newTestServer(t, testConfig(), fixedQuote("q"))
	b := newBrowser(t, ts)

	_, status, _ := b.get("/nope")
	assert.Equal(t, http.StatusNotFound, status)

	b.post("/register", url.Values{"username": {"alice"}, "password": {"secret1"}})
	b.post("/login", url.Values{"username": {"alice"}, "password": {"secret1"}})

	_, status, _ = b.get("/complete_task/424242")
	assert.Equal(t, http.StatusNotFound, status)
	_, status, _ = b.get("/delete_task/abc")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestServer_HealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, testConfig(), fixedQuote("q"))
	b := newBrowser(t, ts)

	_, status, body := b.get("/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"status":"ok"`)

	b.get("/login")

	_, status, body = b.get("/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.Contains(body, "todolist_http_requests_total"))
}

func TestServer_SwaggerOnlyInDevMode(t *testing.T) {
	ts := newTestServer(t, testConfig(), fixedQuote("q"))
	_, status, _ := newBrowser(t, ts).get("/swagger/doc.json")
	assert.Equal(t, http.StatusNotFound, status)

	dev := testConfig()
	dev.DevMode = true
	ts = newTestServer(t, dev, fixedQuote("q"))
	_, status, body := newBrowser(t, ts).get("/swagger/doc.json")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "/complete_task/{id}")
}
