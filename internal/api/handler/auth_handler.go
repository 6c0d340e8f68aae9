package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/todolist/internal/api/dto"
	"github.com/martijn/todolist/internal/api/middleware"
	"github.com/martijn/todolist/internal/core/service"
)

const (
	MsgInvalidCredentials = "Usuario o contraseña incorrectos"
	MsgUsernameTaken      = "El nombre de usuario ya está registrado."
	MsgMissingCredentials = "Debes indicar un usuario y una contraseña."
	MsgRegistered         = "Usuario registrado correctamente. Ahora puedes iniciar sesión."
)

type AuthHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
	cookieSecure   bool
}

func NewAuthHandler(authService *service.AuthService, sessionService *service.SessionService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
		cookieSecure:   cookieSecure,
	}
}

// LoginPage handles GET / and GET /login
//
// @Summary  Login form
// @Tags     auth
// @Produce  html
// @Success  200
// @Success  302 "already authenticated, redirect to /tasks"
// @Router   /login [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title": "Iniciar sesión",
		"Flash": middleware.PopFlash(c),
	})
}

// Login handles POST /login
//
// @Summary  Start a session
// @Tags     auth
// @Accept   x-www-form-urlencoded
// @Param    username formData string true "Username"
// @Param    password formData string true "Password"
// @Success  302 "redirect to /tasks, or back to /login with a flash message"
// @Router   /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	var form dto.CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.SetFlash(c, MsgInvalidCredentials)
		c.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := h.authService.Authenticate(c.Request.Context(), form.Username, form.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		middleware.SetFlash(c, MsgInvalidCredentials)
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	token, _, err := h.sessionService.Login(c.Request.Context(), user)
	if err != nil {
		_ = c.Error(err)
		return
	}

	middleware.SetSessionCookie(c, token, h.sessionService.Lifetime(), h.cookieSecure)
	c.Redirect(http.StatusFound, "/tasks")
}

// Logout handles GET /logout
//
// @Summary  End the session
// @Tags     auth
// @Success  302 "redirect to /login"
// @Router   /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookieName)
	if err := h.sessionService.Logout(c.Request.Context(), token); err != nil {
		_ = c.Error(err)
		return
	}

	middleware.ClearSessionCookie(c, h.cookieSecure)
	c.Redirect(http.StatusFound, "/login")
}

// RegisterPage handles GET /register
//
// @Summary  Registration form
// @Tags     auth
// @Produce  html
// @Success  200
// @Router   /register [get]
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	c.HTML(http.StatusOK, "register.html", gin.H{
		"Title": "Registro",
		"Flash": middleware.PopFlash(c),
	})
}

// Register handles POST /register
//
// @Summary  Create an account
// @Tags     auth
// @Accept   x-www-form-urlencoded
// @Param    username formData string true "Username"
// @Param    password formData string true "Password"
// @Success  302 "redirect to /login on success, back to /register otherwise"
// @Router   /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	if _, ok := middleware.CurrentUser(c); ok {
		c.Redirect(http.StatusFound, "/tasks")
		return
	}

	var form dto.CredentialsForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.SetFlash(c, MsgMissingCredentials)
		c.Redirect(http.StatusFound, "/register")
		return
	}

	_, err := h.authService.Register(c.Request.Context(), form.Username, form.Password)
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		middleware.SetFlash(c, MsgMissingCredentials)
		c.Redirect(http.StatusFound, "/register")
	case errors.Is(err, service.ErrUsernameTaken):
		middleware.SetFlash(c, MsgUsernameTaken)
		c.Redirect(http.StatusFound, "/register")
	case err != nil:
		_ = c.Error(err)
	default:
		middleware.SetFlash(c, MsgRegistered)
		c.Redirect(http.StatusFound, "/login")
	}
}
