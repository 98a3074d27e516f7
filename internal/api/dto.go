package api

import (
	"time"

	"github.com/mboard/webclient/internal/model"
)

// Wire shapes of the MovieBoard API. The backend is Mongo-flavored: ids are
// `_id` strings and authors come as embedded `userId` objects.

type userRefDTO struct {
	Username string `json:"username"`
}

type movieDTO struct {
	ID       string       `json:"_id"`
	Title    string       `json:"title"`
	Desc     string       `json:"desc"`
	Likes    int          `json:"likes"`
	Dislikes int          `json:"dislikes"`
	UserVote int          `json:"userVote"`
	Comments []commentDTO `json:"comments"`
	UserID   *userRefDTO  `json:"userId"`
}

type commentDTO struct {
	ID      string      `json:"_id"`
	Comment string      `json:"comment"`
	UserID  *userRefDTO `json:"userId"`
}

type suggestMovieRequest struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

type addCommentRequest struct {
	Comment string `json:"comment"`
}

type addCommentResponse struct {
	ID     string `json:"_id"`
	UserID string `json:"userId"`
}

type voteRequest struct {
	Vote int `json:"vote"`
}

type voteResponse struct {
	Likes    int `json:"likes"`
	Dislikes int `json:"dislikes"`
	UserVote int `json:"userVote"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type profileDTO struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// VoteResult is the server's authoritative counters after a vote; the view
// never computes counts locally.
type VoteResult struct {
	Likes    int
	Dislikes int
	UserVote model.Vote
}

func (d movieDTO) convert() model.Movie {
	comments := make([]model.Comment, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = c.convert()
	}
	return model.Movie{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Desc,
		Likes:       d.Likes,
		Dislikes:    d.Dislikes,
		Author:      authorName(d.UserID),
		UserVote:    model.Vote(d.UserVote),
		Comments:    comments,
	}
}

func (d commentDTO) convert() model.Comment {
	return model.Comment{
		ID:     d.ID,
		Text:   d.Comment,
		Author: authorName(d.UserID),
	}
}

func (r addCommentResponse) convert(text string) model.Comment {
	author := r.UserID
	if author == "" {
		author = "You"
	}
	return model.Comment{
		ID:     r.ID,
		Text:   text,
		Author: author,
	}
}

func (r authResponse) convert() model.Session {
	return model.Session{
		Token: r.Token,
		User:  r.User,
	}
}

func (d profileDTO) convert() model.Profile {
	return model.Profile{
		Name:      d.Name,
		Email:     d.Email,
		CreatedAt: d.CreatedAt,
	}
}

func convertMovies(dtos []movieDTO) []model.Movie {
	movies := make([]model.Movie, len(dtos))
	for i, d := range dtos {
		movies[i] = d.convert()
	}
	return movies
}

func authorName(ref *userRefDTO) string {
	if ref == nil || ref.Username == "" {
		return "Anonymous"
	}
	return ref.Username
}
