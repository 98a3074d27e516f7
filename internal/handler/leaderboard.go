package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mboard/webclient/internal/app"
	"github.com/mboard/webclient/internal/model"
)

type LeaderboardHandler struct {
	app *app.App
}

func NewLeaderboardHandler(app *app.App) *LeaderboardHandler {
	return &LeaderboardHandler{
		app: app,
	}
}

type leaderboardView struct {
	Navbar Navbar
	Movies []model.Movie
	Error  string
}

// HandleLeaderboard renders all movies ranked by like count. Admin gating
// happens in the route middleware.
func (h *LeaderboardHandler) HandleLeaderboard(ctx *gin.Context) {
	view := leaderboardView{
		Navbar: resolveNavbar(ctx, h.app),
	}

	movies, err := h.app.BoardService.Leaderboard(ctx.Request.Context())
	if err != nil {
		h.app.Logger.Error("failed to load leaderboard", zap.Error(err))
		view.Error = flashMessage(FlashLoadFailed)
	}
	view.Movies = movies

	ctx.HTML(http.StatusOK, "leaderboard.html", view)
}
