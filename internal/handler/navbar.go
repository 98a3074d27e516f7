package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mboard/webclient/internal/app"
	"github.com/mboard/webclient/internal/model"
)

// Navbar is the chrome state shared by every view: signed-out or signed-in
// with a resolved display name. The admin flag comes from the cached role,
// the name from a live profile fetch.
type Navbar struct {
	SignedIn bool
	Username string
	Initial  string
	IsAdmin  bool
}

// resolveNavbar resolves the navbar for the current request. When a token is
// present the profile endpoint supplies the display name; if that call
// fails the session is cleared and the signed-out chrome renders. This is
// the client's only detector for stale tokens.
func resolveNavbar(ctx *gin.Context, a *app.App) Navbar {
	session := CurrentSession(ctx)
	if session == nil {
		return Navbar{}
	}

	profile, err := a.SessionService.ResolveProfile(ctx.Request.Context(), CurrentSessionID(ctx), session)
	if err != nil {
		a.Logger.Warn("profile fetch failed, dropping session", zap.Error(err))
		dropSession(ctx)
		return Navbar{}
	}

	name := profile.Name
	if name == "" {
		name = session.User.Username
	}
	return navbarFor(name, session)
}

func navbarFor(name string, session *model.Session) Navbar {
	initial := "U"
	if name != "" {
		initial = strings.ToUpper(name[:1])
	}
	return Navbar{
		SignedIn: true,
		Username: name,
		Initial:  initial,
		IsAdmin:  session.IsAdmin(),
	}
}
