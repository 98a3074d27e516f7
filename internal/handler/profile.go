package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mboard/webclient/internal/app"
	"github.com/mboard/webclient/internal/model"
)

type ProfileHandler struct {
	app *app.App
}

func NewProfileHandler(app *app.App) *ProfileHandler {
	return &ProfileHandler{
		app: app,
	}
}

type profileView struct {
	Navbar  Navbar
	Profile model.Profile
	Movies  []model.Movie
	Error   string
}

// HandleProfile renders the identity panel and the user's own movies. The
// profile record and the movie list are fetched concurrently; a failed
// profile fetch clears the session and bounces to login.
func (h *ProfileHandler) HandleProfile(ctx *gin.Context) {
	session := CurrentSession(ctx)
	if session == nil || session.Token == "" {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	reqCtx := ctx.Request.Context()

	var (
		wg         sync.WaitGroup
		profile    model.Profile
		profileErr error
		movies     []model.Movie
		moviesErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		profile, profileErr = h.app.SessionService.ResolveProfile(reqCtx, CurrentSessionID(ctx), session)
	}()
	go func() {
		defer wg.Done()
		movies, moviesErr = h.app.BoardService.UserMovies(reqCtx, session)
	}()
	wg.Wait()

	if profileErr != nil {
		// invalid-token recovery: ResolveProfile already destroyed the record
		h.app.Logger.Warn("profile fetch failed, dropping session", zap.Error(profileErr))
		dropSession(ctx)
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	view := profileView{
		Navbar:  navbarFor(profile.Name, session),
		Profile: profile,
		Movies:  movies,
		Error:   flashMessage(ctx.Query("error")),
	}
	if moviesErr != nil {
		h.app.Logger.Error("failed to load user movies", zap.Error(moviesErr))
		view.Error = flashMessage(FlashLoadFailed)
	}

	ctx.HTML(http.StatusOK, "profile.html", view)
}
