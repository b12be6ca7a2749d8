package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/the-chronicles/Creditflow/internal/adapter/api"
	mw "github.com/the-chronicles/Creditflow/internal/adapter/middleware"
	"github.com/the-chronicles/Creditflow/internal/domain/session"
	"github.com/the-chronicles/Creditflow/pkg/id"
)

// AuthAPI is the slice of the remote client the auth flow consumes.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.AuthResult, error)
	Signup(ctx context.Context, name, email, password string) (*api.AuthResult, error)
}

// PushControl ties push-channel lifetime to the session lifetime.
type PushControl interface {
	Start(sid, token string)
	Stop(sid string)
}

type AuthHandler struct {
	remote AuthAPI
	store  session.Store
	push   PushControl
	secret string
	ttl    time.Duration
	log    *zap.Logger
}

func NewAuthHandler(remote AuthAPI, store session.Store, push PushControl, secret string, ttl time.Duration, log *zap.Logger) *AuthHandler {
	return &AuthHandler{remote: remote, store: store, push: push, secret: secret, ttl: ttl, log: log}
}

type credentialsReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// genericAuthFailure deliberately hides whether the email exists.
const genericAuthFailure = "Invalid email or password."

func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password are required"})
	}

	res, err := h.remote.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.authFailure(c, err, "login")
	}
	return h.openSession(c, res)
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name, email and password are required"})
	}

	res, err := h.remote.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return h.authFailure(c, err, "signup")
	}
	return h.openSession(c, res)
}

func (h *AuthHandler) authFailure(c echo.Context, err error, op string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
		// credential or conflict problem: generic message either way
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: genericAuthFailure})
	}
	h.log.Error("auth upstream unavailable", zap.String("op", op), zap.Error(err))
	return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "sign-in is unavailable right now"})
}

func (h *AuthHandler) openSession(c echo.Context, res *api.AuthResult) error {
	ctx := c.Request().Context()
	sid := id.NewID32()
	sess := session.Session{Token: res.Token, User: res.User, CreatedAt: time.Now().UTC()}
	if err := h.store.Set(ctx, sid, sess); err != nil {
		h.log.Error("session store unavailable", zap.Error(err))
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "could not open a session"})
	}

	value, err := mw.SignSession(h.secret, sid, h.ttl)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not open a session"})
	}
	c.SetCookie(mw.NewCookie(value, h.ttl))

	if h.push != nil {
		h.push.Start(sid, res.Token)
	}
	return c.JSON(http.StatusOK, map[string]any{"user": res.User})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	if sid := session.IDFromContext(ctx); sid != "" {
		if h.push != nil {
			h.push.Stop(sid)
		}
		if err := h.store.Clear(ctx, sid); err != nil {
			h.log.Warn("session clear failed", zap.Error(err))
		}
	}
	c.SetCookie(mw.NewCookie("", 0))
	return c.NoContent(http.StatusNoContent)
}

// Me returns the logged-in user, or 401 for anonymous callers.
func (h *AuthHandler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	sid := session.IDFromContext(ctx)
	if sid == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not signed in"})
	}
	user, err := h.store.User(ctx, sid)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "not signed in"})
	}
	return c.JSON(http.StatusOK, map[string]any{"user": user})
}
