package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mboard/webclient/internal/app"
	"github.com/mboard/webclient/internal/model"
	"github.com/mboard/webclient/internal/service"
)

// MovieHandler backs the per-card actions: vote, comment, delete.
type MovieHandler struct {
	app *app.App
}

func NewMovieHandler(app *app.App) *MovieHandler {
	return &MovieHandler{
		app: app,
	}
}

// HandleVote applies the toggle rule to the pressed button and relays the
// result. The card carries its current vote in a hidden field, the server's
// counters become visible on the redirected re-fetch.
func (h *MovieHandler) HandleVote(ctx *gin.Context) {
	session := CurrentSession(ctx)
	movieID := ctx.Param("id")

	pressed, err := strconv.Atoi(ctx.PostForm("vote"))
	if err != nil {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	current, err := strconv.Atoi(ctx.PostForm("current"))
	if err != nil {
		current = 0
	}

	_, err = h.app.BoardService.Vote(ctx.Request.Context(), session, movieID,
		model.Vote(current), model.Vote(pressed))
	switch {
	case err == nil:
		ctx.Redirect(http.StatusSeeOther, "/")
	case errors.Is(err, service.ErrSignInRequired):
		ctx.Redirect(http.StatusSeeOther, "/login?notice=signin")
	default:
		h.app.Logger.Error("failed to send vote", zap.String("movie", movieID), zap.Error(err))
		ctx.Redirect(http.StatusSeeOther, "/?error="+FlashVoteFailed)
	}
}

// HandleComment posts a comment and returns to the feed with the card's
// thread open, so the freshly fetched list shows the server's record.
func (h *MovieHandler) HandleComment(ctx *gin.Context) {
	session := CurrentSession(ctx)
	movieID := ctx.Param("id")
	back := "/?comments=" + movieID

	_, err := h.app.BoardService.Comment(ctx.Request.Context(), session, movieID, ctx.PostForm("comment"))
	switch {
	case err == nil:
		ctx.Redirect(http.StatusSeeOther, back)
	case errors.Is(err, service.ErrEmptyComment):
		ctx.Redirect(http.StatusSeeOther, back)
	case errors.Is(err, service.ErrSignInRequired):
		ctx.Redirect(http.StatusSeeOther, "/login?notice=signin")
	default:
		h.app.Logger.Error("failed to post comment", zap.String("movie", movieID), zap.Error(err))
		ctx.Redirect(http.StatusSeeOther, back+"&error="+FlashCommentFailed)
	}
}

// HandleDelete removes a movie. Card deletes ("from" = home) are admin-only;
// profile deletes rely on the API's owner check.
func (h *MovieHandler) HandleDelete(ctx *gin.Context) {
	session := CurrentSession(ctx)
	movieID := ctx.Param("id")

	back := "/"
	fromProfile := ctx.PostForm("from") == "profile"
	if fromProfile {
		back = "/profile"
	}

	if session == nil {
		ctx.Redirect(http.StatusSeeOther, "/login?notice=signin")
		return
	}
	if !fromProfile && !session.IsAdmin() {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}

	if err := h.app.BoardService.Delete(ctx.Request.Context(), session, movieID); err != nil {
		h.app.Logger.Error("failed to delete movie", zap.String("movie", movieID), zap.Error(err))
		ctx.Redirect(http.StatusSeeOther, back+"?error="+FlashDeleteFailed)
		return
	}
	ctx.Redirect(http.StatusSeeOther, back)
}
