package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authgate "github.com/MrEthical07/authgate"
)

type handlers struct {
	gateway *authgate.Gateway
	logger  *zap.Logger
}

type registerRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

type userResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

func (h *handlers) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := authgate.WithClientIP(c.Request.Context(), c.ClientIP())
	user, err := h.gateway.Register(ctx, req.Name, req.Password, req.IsAdmin)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "user created",
		"user":    userResponse{ID: user.ID, Name: user.Username},
	})
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := authgate.WithClientIP(c.Request.Context(), c.ClientIP())
	result, err := h.gateway.Login(ctx, req.Name, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"userId":       result.UserID,
		"name":         result.Username,
		"isAdmin":      result.Admin,
	})
}

func (h *handlers) token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.gateway.Refresh(c.Request.Context(), req.Token)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": result.AccessToken})
}

func (h *handlers) logout(c *gin.Context) {
	var req tokenRequest
	// A missing or malformed body revokes nothing and still succeeds:
	// logout is idempotent.
	_ = c.ShouldBindJSON(&req)

	if err := h.gateway.Logout(c.Request.Context(), req.Token); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handlers) healthz(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				h.logger.Warn("health check failed", zap.Error(err))
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// seed provisions fixed development accounts. The route only exists outside
// production; re-seeding is a no-op for accounts that already exist.
func (h *handlers) seed(c *gin.Context) {
	seeds := []struct {
		name     string
		password string
		admin    bool
	}{
		{"dev_admin", "DevAdm1nPass", true},
		{"dev_user", "DevUser1Pass", false},
	}

	ctx := authgate.WithClientIP(c.Request.Context(), "")
	created := make([]userResponse, 0, len(seeds))
	for _, s := range seeds {
		user, err := h.gateway.Register(ctx, s.name, s.password, s.admin)
		if err != nil {
			if errors.Is(err, authgate.ErrDuplicateUsername) {
				continue
			}
			h.writeError(c, err)
			return
		}
		created = append(created, userResponse{ID: user.ID, Name: user.Username})
	}

	c.JSON(http.StatusOK, gin.H{"created": created})
}

func (h *handlers) writeError(c *gin.Context, err error) {
	status, message := statusFromError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("internal error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"error": message})
}

func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, authgate.ErrValidation):
		return http.StatusBadRequest, "invalid username or password format"
	case errors.Is(err, authgate.ErrDuplicateUsername):
		return http.StatusConflict, "username already exists"
	case errors.Is(err, authgate.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, authgate.ErrMissingToken):
		return http.StatusUnauthorized, "missing token"
	case errors.Is(err, authgate.ErrRefreshRevoked),
		errors.Is(err, authgate.ErrRefreshInvalid),
		errors.Is(err, authgate.ErrRefreshExpired):
		return http.StatusForbidden, "invalid or revoked refresh token"
	case errors.Is(err, authgate.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, authgate.ErrRateLimited):
		return http.StatusTooManyRequests, "too many attempts"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
