package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/kondzio-p/ftbd-blt/internal/kvstore"
	"github.com/kondzio-p/ftbd-blt/internal/service"
	"go.uber.org/zap"
)

const sessionUsernameKey = "username"

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Login checks the admin credentials and marks the session authenticated.
func (a *API) Login(c *gin.Context) {
	var payload loginRequest
	if !bindJSON(c, &payload, msgInvalidBody) {
		return
	}

	user, err := a.auth.Authenticate(payload.Login, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			a.log.Warn("admin login rejected", zap.String("login", payload.Login), zap.String("ip", c.ClientIP()))
			respondError(c, http.StatusUnauthorized, "Invalid login or password")
			return
		}
		a.respondInternal(c, "Login failed", err)
		return
	}

	session := sessions.Default(c)
	session.Set(kvstore.KeyAdminSession, true)
	session.Set(sessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		a.respondInternal(c, "Failed to save session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "username": user.Username})
}

// Logout clears the admin session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		a.respondInternal(c, "Failed to save session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Session reports whether the caller is logged in.
func (a *API) Session(c *gin.Context) {
	session := sessions.Default(c)
	payload := gin.H{"authenticated": isAuthenticated(session)}
	if username, ok := session.Get(sessionUsernameKey).(string); ok && isAuthenticated(session) {
		payload["username"] = username
	}
	c.JSON(http.StatusOK, payload)
}

func isAuthenticated(session sessions.Session) bool {
	flag, ok := session.Get(kvstore.KeyAdminSession).(bool)
	return ok && flag
}

// AuthRequired rejects requests without an authenticated admin session.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAuthenticated(sessions.Default(c)) {
			respondError(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}
