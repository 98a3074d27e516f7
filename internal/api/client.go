package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mboard/webclient/internal/model"
)

// ErrNoProfile is returned when the profile endpoint answers with an empty
// array. The upstream treats that the same as an invalid token.
var ErrNoProfile = errors.New("profile response contains no record")

// APIError carries a non-2xx answer from the MovieBoard API, keeping the
// server's own message when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// MovieBoard is what the views need from the remote API. Handlers and
// services depend on this interface so tests can swap in a fake.
type MovieBoard interface {
	GetAllMovies(ctx context.Context) ([]model.Movie, error)
	GetUserMovies(ctx context.Context, token string) ([]model.Movie, error)
	SuggestMovie(ctx context.Context, token, title, desc string) error
	DeleteMovie(ctx context.Context, token, movieID string) error
	AddComment(ctx context.Context, token, movieID, text string) (model.Comment, error)
	Vote(ctx context.Context, token, movieID string, vote model.Vote) (VoteResult, error)
	Login(ctx context.Context, email, password string) (model.Session, error)
	Signup(ctx context.Context, name, email, password string) (model.Session, error)
	Profile(ctx context.Context, token string) (model.Profile, error)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ MovieBoard = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do issues one request and decodes the JSON answer into out (if non-nil).
// A non-2xx status comes back as *APIError.
func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
			if apiErr.Message == "" {
				apiErr.Message = payload.Error
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) GetAllMovies(ctx context.Context) ([]model.Movie, error) {
	var dtos []movieDTO
	if err := c.do(ctx, http.MethodGet, "/api/movies/getAllMovies", "", nil, &dtos); err != nil {
		return nil, err
	}
	return convertMovies(dtos), nil
}

func (c *Client) GetUserMovies(ctx context.Context, token string) ([]model.Movie, error) {
	var dtos []movieDTO
	if err := c.do(ctx, http.MethodGet, "/api/movies/getUserMovies", token, nil, &dtos); err != nil {
		return nil, err
	}
	return convertMovies(dtos), nil
}

func (c *Client) SuggestMovie(ctx context.Context, token, title, desc string) error {
	req := suggestMovieRequest{Title: title, Desc: desc}
	return c.do(ctx, http.MethodPost, "/api/movies/suggestMovie", token, req, nil)
}

func (c *Client) DeleteMovie(ctx context.Context, token, movieID string) error {
	return c.do(ctx, http.MethodDelete, "/api/movies/suggestedMovie/"+movieID, token, nil, nil)
}

func (c *Client) AddComment(ctx context.Context, token, movieID, text string) (model.Comment, error) {
	req := addCommentRequest{Comment: text}
	var resp addCommentResponse
	if err := c.do(ctx, http.MethodPost, "/api/movies/suggestedMovie/"+movieID+"/comments", token, req, &resp); err != nil {
		return model.Comment{}, err
	}
	return resp.convert(text), nil
}

func (c *Client) Vote(ctx context.Context, token, movieID string, vote model.Vote) (VoteResult, error) {
	req := voteRequest{Vote: int(vote)}
	var resp voteResponse
	if err := c.do(ctx, http.MethodPost, "/api/movies/suggestedMovie/"+movieID+"/vote", token, req, &resp); err != nil {
		return VoteResult{}, err
	}
	return VoteResult{
		Likes:    resp.Likes,
		Dislikes: resp.Dislikes,
		UserVote: model.Vote(resp.UserVote),
	}, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (model.Session, error) {
	req := loginRequest{Email: email, Password: password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/user/login", "", req, &resp); err != nil {
		return model.Session{}, err
	}
	return resp.convert(), nil
}

func (c *Client) Signup(ctx context.Context, name, email, password string) (model.Session, error) {
	req := signupRequest{Name: name, Email: email, Password: password}
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/api/user/signup", "", req, &resp); err != nil {
		return model.Session{}, err
	}
	return resp.convert(), nil
}

// Profile answers with an array; the first element is the profile record.
func (c *Client) Profile(ctx context.Context, token string) (model.Profile, error) {
	var dtos []profileDTO
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", token, nil, &dtos); err != nil {
		return model.Profile{}, err
	}
	if len(dtos) == 0 {
		return model.Profile{}, ErrNoProfile
	}
	return dtos[0].convert(), nil
}
