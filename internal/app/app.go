package app

import (
	"go.uber.org/zap"

	"github.com/mboard/webclient/config"
	"github.com/mboard/webclient/internal/api"
	"github.com/mboard/webclient/internal/cache"
	"github.com/mboard/webclient/internal/service/domain"
)

type App struct {
	Config *config.Config

	Cache  *cache.RedisCache
	Logger *zap.Logger
	API    api.MovieBoard

	SessionService domain.SessionService
	BoardService   domain.BoardService
}

func New(config *config.Config, logger *zap.Logger, cache *cache.RedisCache, board api.MovieBoard) *App {
	sessionService := domain.NewSessionService(cache, board, config.SessionTTL)
	boardService := domain.NewBoardService(board)

	return &App{
		Config:         config,
		Cache:          cache,
		Logger:         logger,
		API:            board,
		SessionService: sessionService,
		BoardService:   boardService,
	}
}
