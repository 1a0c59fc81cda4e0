// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"logsearch_backend/internal/feature/auth/domain/entity"
	"logsearch_backend/internal/platform/session"
)

// AuthUsecase defines the authentication operations used by the handlers.
// Following Go convention the interface is defined by the consumer.
type AuthUsecase interface {
	// Register creates a new user after validating the form fields.
	Register(ctx context.Context, username, email, password string) (*entity.User, error)
	// Authenticate verifies a username/password pair.
	Authenticate(ctx context.Context, username, password string) (*entity.User, error)
	// GetByID loads the user record behind a session.
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// AuthHandler serves the register/login/logout pages and manages the session
// lifecycle around them.
type AuthHandler struct {
	auth     AuthUsecase
	sessions *session.Store
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase, sessions *session.Store) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

// RegisterPage renders the registration form, or redirects home when a valid
// session already exists.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if h.loggedIn(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register handles the registration form submission. Validation failures
// re-render the form with a message; success logs the user in directly.
func (h *AuthHandler) Register(c *gin.Context) {
	if h.loggedIn(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	if password != confirm {
		c.HTML(http.StatusOK, "register.html", gin.H{"error": "Passwords do not match."})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), username, email, password)
	if err != nil {
		slog.Warn("registration failed", "username", username, "error", err, "remote_addr", c.ClientIP())
		c.HTML(http.StatusOK, "register.html", gin.H{"error": err.Error()})
		return
	}

	slog.Info("user registered", "username", username, "remote_addr", c.ClientIP())
	h.startSession(c, user, "/")
}

// LoginPage renders the login form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if h.loggedIn(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"next": c.Query("next")})
}

// Login handles the login form submission, honoring the ?next= destination
// preserved by the access-control middleware.
func (h *AuthHandler) Login(c *gin.Context) {
	if h.loggedIn(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	next := c.PostForm("next")

	if username == "" || password == "" {
		c.HTML(http.StatusOK, "login.html", gin.H{"error": "Username and password are required.", "next": next})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		slog.Warn("login failed", "username", username, "remote_addr", c.ClientIP())
		c.HTML(http.StatusOK, "login.html", gin.H{"error": "Invalid username or password.", "next": next})
		return
	}

	slog.Info("user login successful", "username", username, "remote_addr", c.ClientIP())
	if next == "" || !strings.HasPrefix(next, "/") {
		// Only same-site relative destinations are honored.
		next = "/"
	}
	h.startSession(c, user, next)
}

// Logout destroys the session wholesale and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if id, err := c.Cookie(session.CookieName); err == nil && id != "" {
		if err := h.sessions.Delete(c.Request.Context(), id); err != nil {
			slog.Warn("session delete failed", "error", err)
		}
	}
	session.ClearCookie(c)
	c.Redirect(http.StatusFound, "/login")
}

// Profile handles GET /api/profile for the logged-in user.
func (h *AuthHandler) Profile(c *gin.Context) {
	sess := session.Current(c)
	if sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.auth.GetByID(c.Request.Context(), sess.UserID)
	if err != nil {
		slog.Warn("profile lookup failed", "user_id", sess.UserID, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":   user.Username,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}

// startSession creates the server-side session and redirects to dest. When
// the session store is down, login degrades to an error message instead of a
// crash.
func (h *AuthHandler) startSession(c *gin.Context, user *entity.User, dest string) {
	sess, err := h.sessions.Create(c.Request.Context(), user.ID, user.Username)
	if err != nil {
		slog.Error("session create failed", "error", err)
		c.HTML(http.StatusServiceUnavailable, "login.html", gin.H{"error": "Login is temporarily unavailable."})
		return
	}
	sess.AddFlash("success", "Welcome, "+user.Username+"!")
	if err := h.sessions.Save(c.Request.Context(), sess); err != nil {
		slog.Warn("session flash not saved", "error", err)
	}
	session.SetCookie(c, sess, 0)
	c.Redirect(http.StatusFound, dest)
}

// loggedIn reports whether the request carries a valid session cookie.
func (h *AuthHandler) loggedIn(c *gin.Context) bool {
	id, err := c.Cookie(session.CookieName)
	if err != nil || id == "" {
		return false
	}
	_, err = h.sessions.Get(c.Request.Context(), id)
	return err == nil
}
