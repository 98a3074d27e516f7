package domain

import (
	"context"
	"sort"
	"strings"

	"github.com/mboard/webclient/internal/api"
	"github.com/mboard/webclient/internal/model"
	"github.com/mboard/webclient/internal/service"
)

// BoardService backs the movie views. Every write requires a session with a
// token; without one the remote call is never issued.
type BoardService interface {
	Feed(ctx context.Context) ([]model.Movie, error)
	Leaderboard(ctx context.Context) ([]model.Movie, error)
	UserMovies(ctx context.Context, session *model.Session) ([]model.Movie, error)
	Suggest(ctx context.Context, session *model.Session, title, desc string) error
	Comment(ctx context.Context, session *model.Session, movieID, text string) (model.Comment, error)
	Vote(ctx context.Context, session *model.Session, movieID string, current, pressed model.Vote) (api.VoteResult, error)
	Delete(ctx context.Context, session *model.Session, movieID string) error
}

type boardService struct {
	board api.MovieBoard
}

var _ BoardService = (*boardService)(nil)

func NewBoardService(board api.MovieBoard) *boardService {
	return &boardService{
		board: board,
	}
}

// Feed returns all movies newest-first. The API answers oldest-first.
func (s *boardService) Feed(ctx context.Context) ([]model.Movie, error) {
	movies, err := s.board.GetAllMovies(ctx)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(movies)-1; i < j; i, j = i+1, j-1 {
		movies[i], movies[j] = movies[j], movies[i]
	}
	return movies, nil
}

// Leaderboard returns all movies ordered by descending like count. The sort
// is stable, ties keep the fetch order.
func (s *boardService) Leaderboard(ctx context.Context) ([]model.Movie, error) {
	movies, err := s.board.GetAllMovies(ctx)
	if err != nil {
		return nil, err
	}
	ranked := make([]model.Movie, len(movies))
	copy(ranked, movies)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Likes > ranked[j].Likes
	})
	return ranked, nil
}

func (s *boardService) UserMovies(ctx context.Context, session *model.Session) ([]model.Movie, error) {
	if !hasToken(session) {
		return nil, service.ErrSignInRequired
	}
	return s.board.GetUserMovies(ctx, session.Token)
}

func (s *boardService) Suggest(ctx context.Context, session *model.Session, title, desc string) error {
	if !hasToken(session) {
		return service.ErrSignInRequired
	}
	title = strings.TrimSpace(title)
	desc = strings.TrimSpace(desc)
	if title == "" || desc == "" {
		return service.ErrMissingFields
	}
	return s.board.SuggestMovie(ctx, session.Token, title, desc)
}

func (s *boardService) Comment(ctx context.Context, session *model.Session, movieID, text string) (model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Comment{}, service.ErrEmptyComment
	}
	if !hasToken(session) {
		return model.Comment{}, service.ErrSignInRequired
	}
	return s.board.AddComment(ctx, session.Token, movieID, text)
}

func (s *boardService) Vote(ctx context.Context, session *model.Session, movieID string, current, pressed model.Vote) (api.VoteResult, error) {
	if !hasToken(session) {
		return api.VoteResult{}, service.ErrSignInRequired
	}
	if pressed != model.VoteUp && pressed != model.VoteDown {
		return api.VoteResult{}, service.ErrInvalidVote
	}
	return s.board.Vote(ctx, session.Token, movieID, NextVote(current, pressed))
}

func (s *boardService) Delete(ctx context.Context, session *model.Session, movieID string) error {
	if !hasToken(session) {
		return service.ErrSignInRequired
	}
	return s.board.DeleteMovie(ctx, session.Token, movieID)
}

// NextVote applies the toggle rule: pressing the already-active vote clears
// it, anything else overwrites.
func NextVote(current, pressed model.Vote) model.Vote {
	if current == pressed {
		return model.VoteNone
	}
	return pressed
}

func hasToken(session *model.Session) bool {
	return session != nil && session.Token != ""
}
