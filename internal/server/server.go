package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"phonenix/internal/api"
	"phonenix/internal/config"
	"phonenix/internal/logger"
	"phonenix/internal/store"
	"phonenix/internal/voice"
)

type Server struct {
	httpServer *http.Server
	store      store.Store
}

// New wires logging, the config store and the voice providers into an HTTP
// server. Configs are kept in memory unless DATABASE_URL is set.
func New(cfg *config.Config) (*Server, error) {
	if _, err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		return nil, err
	}

	var s store.Store = store.NewMemory()
	if cfg.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pg, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open config store: %w", err)
		}
		s = pg
	} else {
		zap.L().Warn("DATABASE_URL not set, agent configs are kept in memory")
	}

	router := api.NewRouter(cfg, api.Deps{
		Store:     s,
		Runtime:   voice.NewElevenLabs(cfg.ElevenLabsAPIKey, cfg.ElevenLabsAgentID, cfg.ElevenLabsBaseURL),
		Telephony: voice.NewTwilio(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber),
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		store: s,
	}, nil
}

func (s *Server) Start() error {
	zap.L().Info("Starting HTTP server", zap.String("addr", s.httpServer.Addr))

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	zap.L().Info("Stopping HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	if c, ok := s.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("failed to close config store: %w", err)
		}
	}

	_ = zap.L().Sync()
	return nil
}
