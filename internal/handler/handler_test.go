package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mboard/webclient/config"
	"github.com/mboard/webclient/internal/api"
	"github.com/mboard/webclient/internal/app"
	"github.com/mboard/webclient/internal/model"
	"github.com/mboard/webclient/internal/service/domain"
)

const templatesGlob = "../../web/templates/*.html"

type fakeBoard struct {
	movies     []model.Movie
	userMovies []model.Movie
	profile    model.Profile
	profileErr error
	session    model.Session
	authErr    error
	voteResult api.VoteResult

	calls     []string
	lastToken string
	lastVote  model.Vote
	deletedID string
}

var _ api.MovieBoard = (*fakeBoard)(nil)

func (f *fakeBoard) GetAllMovies(ctx context.Context) ([]model.Movie, error) {
	f.calls = append(f.calls, "GetAllMovies")
	return f.movies, nil
}

func (f *fakeBoard) GetUserMovies(ctx context.Context, token string) ([]model.Movie, error) {
	f.calls = append(f.calls, "GetUserMovies")
	f.lastToken = token
	return f.userMovies, nil
}

func (f *fakeBoard) SuggestMovie(ctx context.Context, token, title, desc string) error {
	f.calls = append(f.calls, "SuggestMovie")
	f.lastToken = token
	return nil
}

func (f *fakeBoard) DeleteMovie(ctx context.Context, token, movieID string) error {
	f.calls = append(f.calls, "DeleteMovie")
	f.lastToken = token
	f.deletedID = movieID
	return nil
}

func (f *fakeBoard) AddComment(ctx context.Context, token, movieID, text string) (model.Comment, error) {
	f.calls = append(f.calls, "AddComment")
	f.lastToken = token
	return model.Comment{ID: "c1", Text: text, Author: "You"}, nil
}

func (f *fakeBoard) Vote(ctx context.Context, token, movieID string, vote model.Vote) (api.VoteResult, error) {
	f.calls = append(f.calls, "Vote")
	f.lastToken = token
	f.lastVote = vote
	return f.voteResult, nil
}

func (f *fakeBoard) Login(ctx context.Context, email, password string) (model.Session, error) {
	f.calls = append(f.calls, "Login")
	return f.session, f.authErr
}

func (f *fakeBoard) Signup(ctx context.Context, name, email, password string) (model.Session, error) {
	f.calls = append(f.calls, "Signup")
	return f.session, f.authErr
}

func (f *fakeBoard) Profile(ctx context.Context, token string) (model.Profile, error) {
	f.calls = append(f.calls, "Profile")
	f.lastToken = token
	return f.profile, f.profileErr
}

type fakeStore struct {
	sessions map[string]*model.Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]*model.Session)}
}

func (f *fakeStore) SetSession(sid string, session *model.Session, ttl time.Duration) error {
	copied := *session
	f.sessions[sid] = &copied
	return nil
}

func (f *fakeStore) GetSession(sid string) (*model.Session, error) {
	return f.sessions[sid], nil
}

func (f *fakeStore) DeleteSession(sid string) error {
	delete(f.sessions, sid)
	return nil
}

func newTestRouter(board *fakeBoard, store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{SessionTTL: time.Hour}
	a := &app.App{
		Config:         cfg,
		Logger:         zap.NewNop(),
		API:            board,
		SessionService: domain.NewSessionService(store, board, cfg.SessionTTL),
		BoardService:   domain.NewBoardService(board),
	}
	return NewRouter(a, templatesGlob)
}

func get(router *gin.Engine, path, sid string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sid})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postForm(router *gin.Engine, path, sid string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sid})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func adminSession() *model.Session {
	return &model.Session{
		Token: "tok-admin",
		User:  model.User{ID: "u9", Username: "root", Role: model.RoleAdmin},
	}
}

func TestLeaderboard_AnonymousRedirectedHome(t *testing.T) {
	router := newTestRouter(&fakeBoard{}, newFakeStore())

	w := get(router, "/leaderboard", "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLeaderboard_NonAdminRedirectedHome(t *testing.T) {
	store := newFakeStore()
	store.sessions["sid-user"] = &model.Session{
		Token: "tok-user",
		User:  model.User{ID: "u1", Username: "alice", Role: model.RoleUser},
	}
	router := newTestRouter(&fakeBoard{}, store)

	w := get(router, "/leaderboard", "sid-user")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLeaderboard_AdminSeesRankedTable(t *testing.T) {
	store := newFakeStore()
	store.sessions["sid-admin"] = adminSession()
	board := &fakeBoard{
		profile: model.Profile{Name: "root"},
		movies: []model.Movie{
			{ID: "a", Title: "Solaris", Likes: 1},
			{ID: "b", Title: "Stalker", Likes: 8},
		},
	}
	router := newTestRouter(board, store)

	w := get(router, "/leaderboard", "sid-admin")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Stalker")
	// highest likes ranked first
	assert.Less(t, strings.Index(body, "Stalker"), strings.Index(body, "Solaris"))
}

func TestLogin_WrongPasswordShowsServerMessage(t *testing.T) {
	board := &fakeBoard{authErr: &api.APIError{Status: 401, Message: "Invalid credentials"}}
	router := newTestRouter(board, newFakeStore())

	w := postForm(router, "/login", "", url.Values{
		"email":    {"alice@example.com"},
		"password": {"nope"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Invalid credentials")
	// still the login view, form kept editable
	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, "alice@example.com")
}

func TestLogin_SuccessSetsCookieAndRoutesAdmin(t *testing.T) {
	store := newFakeStore()
	board := &fakeBoard{
		session: model.Session{Token: "tok-admin", User: model.User{ID: "u9", Username: "root", Role: model.RoleAdmin}},
		profile: model.Profile{Name: "root"},
	}
	router := newTestRouter(board, store)

	w := postForm(router, "/login", "", url.Values{
		"email":    {"root@example.com"},
		"password": {"secret"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var sid string
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie {
			sid = c.Value
		}
	}
	require.NotEmpty(t, sid)

	// the stored session reproduces the admin routing outcome on a fresh load
	w = get(router, "/leaderboard", sid)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSuggest_NoTokenIssuesNoCall(t *testing.T) {
	board := &fakeBoard{}
	router := newTestRouter(board, newFakeStore())

	w := postForm(router, "/movies/suggest", "", url.Values{
		"title": {"Dune"},
		"desc":  {"Sand."},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?notice=signin", w.Header().Get("Location"))
	assert.NotContains(t, board.calls, "SuggestMovie")
}

func TestVote_NoTokenIssuesNoCall(t *testing.T) {
	board := &fakeBoard{}
	router := newTestRouter(board, newFakeStore())

	w := postForm(router, "/movies/m1/vote", "", url.Values{
		"vote":    {"1"},
		"current": {"0"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?notice=signin", w.Header().Get("Location"))
	assert.NotContains(t, board.calls, "Vote")
}

func TestComment_NoTokenIssuesNoCall(t *testing.T) {
	board := &fakeBoard{}
	router := newTestRouter(board, newFakeStore())

	w := postForm(router, "/movies/m1/comments", "", url.Values{
		"comment": {"great"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotContains(t, board.calls, "AddComment")
}

func TestVote_TogglePressSendsZero(t *testing.T) {
	store := newFakeStore()
	store.sessions["sid-1"] = &model.Session{
		Token: "tok-1",
		User:  model.User{ID: "u1", Username: "alice", Role: model.RoleUser},
	}
	board := &fakeBoard{}
	router := newTestRouter(board, store)

	w := postForm(router, "/movies/m1/vote", "sid-1", url.Values{
		"vote":    {"1"},
		"current": {"1"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, board.calls, "Vote")
	assert.Equal(t, model.VoteNone, board.lastVote)
	assert.Equal(t, "tok-1", board.lastToken)
}

func TestDelete_AdminCardFlow(t *testing.T) {
	store := newFakeStore()
	store.sessions["sid-admin"] = adminSession()
	board := &fakeBoard{
		profile: model.Profile{Name: "root"},
		movies:  []model.Movie{{ID: "m42", Title: "Doomed Movie"}},
	}
	router := newTestRouter(board, store)

	w := postForm(router, "/movies/m42/delete", "sid-admin", url.Values{
		"from": {"home"},
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Equal(t, "m42", board.deletedID)
	assert.Equal(t, "tok-admin", board.lastToken)

	// the refreshed feed no longer shows the movie
	board.movies = nil
	w = get(router, "/", "sid-admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Doomed Movie")
}

func TestDelete_NonAdminCardBlocked(t *testing.T) {
	store := newFakeStore()
	store.sessions["sid-user"] = &model.Session{
		Token: "tok-user",
		User:  model.User{ID: "u1", Username: "alice", Role: model.RoleUser},
	}
	board := &fakeBoard{}
	router := newTestRouter(board, store)

	w := postForm(router, "/movies/m42/delete", "sid-user", url.Values{
		"from": {"home"},
	})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotContains(t, board.calls, "DeleteMovie")
}

func TestNavbar_ProfileFailureShowsSignedOut(t *testing.T) {
	store := newFakeStore()
	store.sessions["sid-1"] = adminSession()
	board := &fakeBoard{profileErr: &api.APIError{Status: 401, Message: "invalid token"}}
	router := newTestRouter(board, store)

	w := get(router, "/", "sid-1")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sign In")
	// implicit logout: session record is gone
	assert.NotContains(t, store.sessions, "sid-1")
}

func TestProfile_AnonymousRedirectedToLogin(t *testing.T) {
	router := newTestRouter(&fakeBoard{}, newFakeStore())

	w := get(router, "/profile", "")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestProfile_FetchFailureClearsSessionAndRedirects(t *testing.T) {
	store := newFakeStore()
	store.sessions["sid-1"] = adminSession()
	board := &fakeBoard{profileErr: &api.APIError{Status: 401}}
	router := newTestRouter(board, store)

	w := get(router, "/profile", "sid-1")

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.NotContains(t, store.sessions, "sid-1")
}

func TestProfile_RendersOwnMovies(t *testing.T) {
	store := newFakeStore()
	store.sessions["sid-1"] = adminSession()
	board := &fakeBoard{
		profile:    model.Profile{Name: "root", Email: "root@example.com", CreatedAt: time.Now()},
		userMovies: []model.Movie{{ID: "m1", Title: "My Pick"}},
	}
	router := newTestRouter(board, store)

	w := get(router, "/profile", "sid-1")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "root@example.com")
	assert.Contains(t, body, "My Pick")
}

func TestFeed_RendersMoviesAndForm(t *testing.T) {
	board := &fakeBoard{movies: []model.Movie{
		{ID: "m1", Title: "First Pick", Author: "alice"},
	}}
	router := newTestRouter(board, newFakeStore())

	w := get(router, "/", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "First Pick")
	assert.Contains(t, body, "Suggested by alice")
	assert.Contains(t, body, `action="/movies/suggest"`)
}

func TestLogout_ClearsSession(t *testing.T) {
	store := newFakeStore()
	store.sessions["sid-1"] = adminSession()
	router := newTestRouter(&fakeBoard{}, store)

	w := postForm(router, "/logout", "sid-1", url.Values{})

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotContains(t, store.sessions, "sid-1")
}
