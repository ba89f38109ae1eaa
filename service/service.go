package service

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"githubsearch/api"
	"githubsearch/config"
	"githubsearch/db"
	"githubsearch/github"
	"githubsearch/logger"
)

// dbConnectTimeout bounds the startup connection attempt
var dbConnectTimeout = 5 * time.Second

// Service errors
var (
	ErrServiceInit     = fmt.Errorf("service initialization error")
	ErrServiceShutdown = fmt.Errorf("service shutdown error")
)

// Service represents the main application service
type Service struct {
	config   *config.Config
	database *db.DB
	client   *github.Client
	profiles *ProfileService
	server   *api.Server
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewService creates a new service instance
func NewService() (*Service, error) {
	cfg := config.NewConfig()
	if err := cfg.Load(); err != nil {
		return nil, fmt.Errorf("%w: failed to load configuration: %v", ErrServiceInit, err)
	}

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("%w: failed to initialize logger: %v", ErrServiceInit, err)
	}

	cfg.OnChange(func(c *config.Config) {
		if err := logger.SetLevel(c.LogLevel); err != nil {
			logger.Warn("Ignoring invalid log level", zap.String("level", c.LogLevel), zap.Error(err))
			return
		}
		logger.Info("Log level updated", zap.String("level", c.LogLevel))
	})
	cfg.Watch()

	return newService(cfg), nil
}

func newService(cfg *config.Config) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	// A failed connection is logged and reported by /api/health
	bootCtx, bootCancel := context.WithTimeout(ctx, dbConnectTimeout)
	database := db.Bootstrap(bootCtx, cfg.DatabaseURL)
	bootCancel()

	client := github.NewClient(cfg.GitHubToken, github.WithBaseURL(cfg.GitHubAPIURL))
	profiles := NewProfileService(client)
	server := api.NewServer(cfg.Addr(), api.NewHandler(profiles, database))

	logger.Info("Service initialized successfully",
		zap.String("addr", cfg.Addr()),
		zap.String("github_api_url", cfg.GitHubAPIURL),
		zap.Bool("github_token", cfg.GitHubToken != ""),
		zap.Bool("database", database.Configured()))

	return &Service{
		config:   cfg,
		database: database,
		client:   client,
		profiles: profiles,
		server:   server,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start serves HTTP until a shutdown signal arrives or the server fails
func (s *Service) Start() error {
	ln, err := net.Listen("tcp", s.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Addr(), err)
	}
	return s.serve(ln)
}

func (s *Service) serve(ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(ln)
	}()

	go s.waitForSignal()

	select {
	case err := <-errCh:
		s.cancel()
		return err
	case <-s.ctx.Done():
	}

	return s.shutdown()
}

// waitForSignal cancels the service context on SIGINT or SIGTERM
func (s *Service) waitForSignal() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		s.cancel()
	case <-s.ctx.Done():
	}
}

// Stop requests a graceful shutdown of a running service
func (s *Service) Stop() {
	s.cancel()
}

func (s *Service) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrServiceShutdown, err)
	}
	return nil
}

// Close performs cleanup operations
func (s *Service) Close() error {
	logger.Info("Closing service")
	s.cancel()
	if err := s.database.Close(); err != nil {
		return fmt.Errorf("%w: failed to close database: %v", ErrServiceShutdown, err)
	}
	logger.Sync()
	return nil
}
