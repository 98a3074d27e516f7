package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mboard/webclient/internal/api"
	"github.com/mboard/webclient/internal/app"
)

type AuthHandler struct {
	app *app.App
}

func NewAuthHandler(app *app.App) *AuthHandler {
	return &AuthHandler{
		app: app,
	}
}

type authView struct {
	Error  string
	Notice string
	Email  string
	Name   string
}

func (h *AuthHandler) HandleLoginPage(ctx *gin.Context) {
	view := authView{}
	if ctx.Query("notice") == "signin" {
		view.Notice = "Sign in to continue."
	}
	ctx.HTML(http.StatusOK, "login.html", view)
}

// HandleLogin exchanges credentials for a session. On failure the server's
// own message is shown when it sent one; the form stays editable and every
// retry is a fresh attempt.
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	email := ctx.PostForm("email")
	password := ctx.PostForm("password")

	sid, _, err := h.app.SessionService.Login(ctx.Request.Context(), email, password)
	if err != nil {
		ctx.HTML(http.StatusOK, "login.html", authView{
			Error: authErrorMessage(err, "Invalid email or password. Please try again."),
			Email: email,
		})
		return
	}

	setSessionCookie(ctx, sid, h.app.Config.SessionTTL)
	ctx.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) HandleSignupPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "signup.html", authView{})
}

func (h *AuthHandler) HandleSignup(ctx *gin.Context) {
	name := ctx.PostForm("name")
	email := ctx.PostForm("email")
	password := ctx.PostForm("password")

	sid, _, err := h.app.SessionService.Signup(ctx.Request.Context(), name, email, password)
	if err != nil {
		ctx.HTML(http.StatusOK, "signup.html", authView{
			Error: authErrorMessage(err, "Could not create your account. Please try again."),
			Email: email,
			Name:  name,
		})
		return
	}

	setSessionCookie(ctx, sid, h.app.Config.SessionTTL)
	ctx.Redirect(http.StatusSeeOther, "/")
}

func (h *AuthHandler) HandleLogout(ctx *gin.Context) {
	if err := h.app.SessionService.Destroy(CurrentSessionID(ctx)); err != nil {
		h.app.Logger.Warn("failed to destroy session", zap.Error(err))
	}
	clearSessionCookie(ctx)
	ctx.Redirect(http.StatusSeeOther, "/")
}

// authErrorMessage prefers the API's message over the generic fallback.
func authErrorMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
