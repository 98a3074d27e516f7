package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mboard/webclient/internal/app"
	"github.com/mboard/webclient/internal/model"
	"github.com/mboard/webclient/internal/service"
)

type HomeHandler struct {
	app *app.App
}

func NewHomeHandler(app *app.App) *HomeHandler {
	return &HomeHandler{
		app: app,
	}
}

type feedView struct {
	Navbar       Navbar
	Movies       []model.Movie
	OpenComments string
	Error        string
}

// HandleFeed renders the movie feed newest-first with the suggestion form.
func (h *HomeHandler) HandleFeed(ctx *gin.Context) {
	view := feedView{
		Navbar:       resolveNavbar(ctx, h.app),
		OpenComments: ctx.Query("comments"),
		Error:        flashMessage(ctx.Query("error")),
	}

	movies, err := h.app.BoardService.Feed(ctx.Request.Context())
	if err != nil {
		h.app.Logger.Error("failed to load feed", zap.Error(err))
		view.Error = flashMessage(FlashLoadFailed)
	}
	view.Movies = movies

	ctx.HTML(http.StatusOK, "home.html", view)
}

// HandleSuggest relays a suggestion and sends the browser back to the feed,
// which re-fetches the full list.
func (h *HomeHandler) HandleSuggest(ctx *gin.Context) {
	session := CurrentSession(ctx)
	title := ctx.PostForm("title")
	desc := ctx.PostForm("desc")

	err := h.app.BoardService.Suggest(ctx.Request.Context(), session, title, desc)
	switch {
	case err == nil:
		ctx.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, service.ErrSignInRequired):
		ctx.Redirect(http.StatusSeeOther, "/login?notice=signin")
	case errors.Is(err, service.ErrMissingFields):
		ctx.Redirect(http.StatusSeeOther, "/?error="+FlashMissingFields)
	default:
		h.app.Logger.Error("failed to suggest movie", zap.Error(err))
		ctx.Redirect(http.StatusSeeOther, "/?error="+FlashSuggestFailed)
	}
}
