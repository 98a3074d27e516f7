package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mboard/webclient/internal/app"
	"github.com/mboard/webclient/internal/model"
)

const (
	// SessionCookie carries the session id, the analog of the SPA's
	// browser-local token storage.
	SessionCookie = "mb_session"

	ctxSessionKey   = "session"
	ctxSessionIDKey = "session_id"
)

// SessionLoader resolves the cookie into a session record once per request.
// A failed lookup degrades to anonymous, it never blocks the view.
func SessionLoader(app *app.App) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		sid, err := ctx.Cookie(SessionCookie)
		if err != nil {
			sid = ""
		}

		session, err := app.SessionService.Resolve(sid)
		if err != nil {
			app.Logger.Warn("session lookup failed", zap.Error(err))
			session = nil
		}

		ctx.Set(ctxSessionIDKey, sid)
		ctx.Set(ctxSessionKey, session)
		ctx.Next()
	}
}

// AdminRequired redirects anonymous visitors and non-admins to the home
// view. Evaluated from the cached session record at request time.
func AdminRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !CurrentSession(ctx).IsAdmin() {
			ctx.Redirect(http.StatusFound, "/")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

func CurrentSession(ctx *gin.Context) *model.Session {
	v, ok := ctx.Get(ctxSessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*model.Session)
	return session
}

func CurrentSessionID(ctx *gin.Context) string {
	v, ok := ctx.Get(ctxSessionIDKey)
	if !ok {
		return ""
	}
	sid, _ := v.(string)
	return sid
}

func dropSession(ctx *gin.Context) {
	ctx.Set(ctxSessionKey, (*model.Session)(nil))
	clearSessionCookie(ctx)
}

func setSessionCookie(ctx *gin.Context, sid string, ttl time.Duration) {
	ctx.SetCookie(SessionCookie, sid, int(ttl.Seconds()), "/", "", false, true)
}

func clearSessionCookie(ctx *gin.Context) {
	ctx.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}
