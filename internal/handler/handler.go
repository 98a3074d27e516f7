package handler

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"github.com/mboard/webclient/internal/app"
)

// NewRouter builds the gin engine with every route of the client.
// templateGlob points at the view templates, e.g. "web/templates/*.html".
func NewRouter(app *app.App, templateGlob string) *gin.Engine {
	engine := gin.Default()
	engine.SetFuncMap(template.FuncMap{
		"add1": func(i int) int { return i + 1 },
	})
	engine.LoadHTMLGlob(templateGlob)
	engine.Use(SessionLoader(app))

	home := NewHomeHandler(app)
	movie := NewMovieHandler(app)
	auth := NewAuthHandler(app)
	profile := NewProfileHandler(app)
	leaderboard := NewLeaderboardHandler(app)

	engine.GET("/", home.HandleFeed)
	engine.POST("/movies/suggest", home.HandleSuggest)

	engine.POST("/movies/:id/vote", movie.HandleVote)
	engine.POST("/movies/:id/comments", movie.HandleComment)
	engine.POST("/movies/:id/delete", movie.HandleDelete)

	engine.GET("/login", auth.HandleLoginPage)
	engine.POST("/login", auth.HandleLogin)
	engine.GET("/signup", auth.HandleSignupPage)
	engine.POST("/signup", auth.HandleSignup)
	engine.POST("/logout", auth.HandleLogout)

	engine.GET("/profile", profile.HandleProfile)

	// role-gated: anyone without the admin role is bounced home
	engine.GET("/leaderboard", AdminRequired(), leaderboard.HandleLeaderboard)

	return engine
}

// flash codes carried through redirect query strings
const (
	FlashMissingFields = "missing"
	FlashSuggestFailed = "suggest"
	FlashCommentFailed = "comment"
	FlashVoteFailed    = "vote"
	FlashDeleteFailed  = "delete"
	FlashLoadFailed    = "load"
)

var flashMessages = map[string]string{
	FlashMissingFields: "Title and description are required.",
	FlashSuggestFailed: "Error suggesting movie. Please try again.",
	FlashCommentFailed: "Could not post your comment. Please try again.",
	FlashVoteFailed:    "Could not register your vote. Please try again.",
	FlashDeleteFailed:  "Failed to delete the movie. Please try again.",
	FlashLoadFailed:    "Could not load movies right now.",
}

func flashMessage(code string) string {
	return flashMessages[code]
}
