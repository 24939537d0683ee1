package worker

import (
	"context"
	"errors"
	"time"

	"github.com/khoborpatra/khoborpatra/internal/config"
	"github.com/khoborpatra/khoborpatra/internal/logger"
	"github.com/khoborpatra/khoborpatra/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	moderationReminderInterval = 10 * time.Minute
)

// Service asynq queue service
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService creates the queue service
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name service name
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the queue server
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.CommentService != nil {
		go s.runModerationReminderLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop shuts the queue server down
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runModerationReminderLoop surfaces the moderation backlog in the logs
// so an unstaffed queue does not go unnoticed.
func (s *Service) runModerationReminderLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.CommentService == nil {
		return
	}
	runOnce := func() {
		pending, err := s.consumer.CommentService.CountPending()
		if err != nil {
			logger.Warnw("worker_moderation_backlog_check_failed", "error", err)
			return
		}
		if pending > 0 {
			logger.Infow("worker_moderation_backlog", "pending_comments", pending)
		}
	}
	runOnce()

	ticker := time.NewTicker(moderationReminderInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
