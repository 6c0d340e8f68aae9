package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/martijn/todolist/internal/api/middleware"
	"github.com/martijn/todolist/internal/api/templates"
	"github.com/martijn/todolist/internal/core/domain"
	"github.com/martijn/todolist/internal/core/service"
	"github.com/martijn/todolist/internal/infrastructure/sqlite"
	"github.com/stretchr/testify/require"
)

const testQuote = "Stay hungry - Steve Jobs"

type staticQuote string

func (q staticQuote) Quote(ctx context.Context) string {
	return string(q)
}

// testEnv holds all test dependencies
type testEnv struct {
	db       *sqlite.DB
	router   *gin.Engine
	auth     *service.AuthService
	sessions *service.SessionService
	tasks    *service.TaskService
}

// setupTestEnv creates a test environment with in-memory SQLite database
func setupTestEnv(t *testing.T, quotes QuoteSource) *testEnv {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	userRepo := sqlite.NewUserRepository(db)
	authService := service.NewAuthService(userRepo)
	sessionService := service.NewSessionService(sqlite.NewSessionRepository(db), userRepo, "test-secret", "HS256", time.Hour)
	taskService := service.NewTaskService(sqlite.NewTaskRepository(db))

	tmpl, err := templates.Load()
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(middleware.SessionMiddleware(sessionService, false))

	authHandler := NewAuthHandler(authService, sessionService, false)
	taskHandler := NewTaskHandler(taskService, quotes)

	router.GET("/", authHandler.LoginPage)
	router.GET("/login", authHandler.LoginPage)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", authHandler.Logout)
	router.GET("/register", authHandler.RegisterPage)
	router.POST("/register", authHandler.Register)

	protected := router.Group("/", middleware.RequireAuth())
	protected.GET("/tasks", taskHandler.ListTasks)
	protected.POST("/add_task", taskHandler.AddTask)
	protected.GET("/complete_task/:id", taskHandler.CompleteTask)
	protected.GET("/delete_task/:id", taskHandler.DeleteTask)

	return &testEnv{
		db:       db,
		router:   router,
		auth:     authService,
		sessions: sessionService,
		tasks:    taskService,
	}
}

// makeRequest performs a request carrying the given cookies. A non-nil form
// is sent url-encoded.
func (env *testEnv) makeRequest(t *testing.T, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// createUser registers a user directly through the service
func (env *testEnv) createUser(t *testing.T, username, password string) *domain.User {
	t.Helper()

	user, err := env.auth.Register(context.Background(), username, password)
	require.NoError(t, err)
	return user
}

// login posts credentials and returns the session cookie
func (env *testEnv) login(t *testing.T, username, password string) *http.Cookie {
	t.Helper()

	w := env.makeRequest(t, http.MethodPost, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/tasks", w.Header().Get("Location"))

	cookie := findCookie(w, middleware.SessionCookieName)
	require.NotNil(t, cookie, "login did not set a session cookie")
	return cookie
}

// findCookie returns the named cookie set by the response, if any
func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
