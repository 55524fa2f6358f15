package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/pawnsgambit/club-api/internal/auth"
	"github.com/pawnsgambit/club-api/internal/notify"
	"github.com/pawnsgambit/club-api/internal/queue"
	queue_publisher "github.com/pawnsgambit/club-api/internal/service"
)

// AuthHandler proxies account operations to the CMS auth endpoints. The
// handler itself is stateless; each request carries its own bearer token.
type AuthHandler struct {
	API *auth.API
	Bus *notify.Bus
	Log *zap.Logger
}

func NewAuthHandler(api *auth.API, bus *notify.Bus, log *zap.Logger) *AuthHandler {
	return &AuthHandler{API: api, Bus: bus, Log: log}
}

type registerReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginReq struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type changePasswordReq struct {
	CurrentPassword      string `json:"currentPassword"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

type forgotPasswordReq struct {
	Email string `json:"email"`
}

type resetPasswordReq struct {
	Code                 string `json:"code"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// Register creates an account and returns the signed-in session. A
// member.registered activity message is published best-effort.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email/password required"})
	}

	ctx := c.Request().Context()
	sess, err := h.API.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	if err := queue_publisher.PublishMemberRegistered(ctx, queue.MemberRegisteredEvent{
		UserID:       sess.User.ID(),
		Username:     req.Username,
		Email:        req.Email,
		RegisteredAt: time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		h.Log.Warn("activity publish failed", zap.String("username", req.Username), zap.Error(err))
	}

	return c.JSON(http.StatusCreated, sess)
}

// Login exchanges credentials for a session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Identifier == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "identifier/password required"})
	}

	sess, err := h.API.Login(c.Request().Context(), req.Identifier, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// Logout broadcasts the end of the session. Tokens are not server-side
// state, so there is nothing to revoke; clients drop their copy.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Bus.Publish(notify.TopicSessionEnded)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the profile of the caller identified by the bearer token.
func (h *AuthHandler) Me(c echo.Context) error {
	token := requestToken(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}
	user, err := h.API.CurrentUser(c.Request().Context(), token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// ChangePassword updates the caller's password via the CMS.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	token := requestToken(c)
	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.CurrentPassword == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "current and new password required"})
	}

	if err := h.API.ChangePassword(c.Request().Context(), token, req.CurrentPassword, req.Password, req.PasswordConfirmation); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ForgotPassword asks the CMS to mail a reset code.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email required"})
	}

	if err := h.API.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// ResetPassword completes a password reset and returns the fresh session.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Code == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code and password required"})
	}

	sess, err := h.API.ResetPassword(c.Request().Context(), req.Code, req.Password, req.PasswordConfirmation)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sess)
}

// requestToken pulls the raw bearer token off the request.
func requestToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
