package worker

import (
	"context"
	"encoding/json"

	"github.com/khoborpatra/khoborpatra/internal/logger"
	"github.com/khoborpatra/khoborpatra/internal/provider"
	"github.com/khoborpatra/khoborpatra/internal/queue"
	"github.com/khoborpatra/khoborpatra/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles queued background tasks
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the consumer
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers onto the mux
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskArticleView, c.handleArticleView)
	mux.HandleFunc(queue.TaskCommentRecount, c.handleCommentRecount)
}

func (c *Consumer) handleArticleView(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_article_view_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ArticleViewPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_article_view_unmarshal_failed", "error", err)
		return err
	}
	if payload.ArticleID == 0 {
		logger.Debugw("worker_article_view_skip_invalid_payload", "article_id", payload.ArticleID)
		return nil
	}
	err := c.ArticleService.RecordView(payload.ArticleID, service.ViewMeta{
		IPAddress: payload.IPAddress,
		UserAgent: payload.UserAgent,
		Referrer:  payload.Referrer,
		SessionID: payload.SessionID,
	})
	if err != nil {
		logger.Warnw("worker_article_view_failed", "article_id", payload.ArticleID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleCommentRecount(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_comment_recount_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CommentRecountPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_comment_recount_unmarshal_failed", "error", err)
		return err
	}
	if payload.ArticleID == 0 {
		logger.Debugw("worker_comment_recount_skip_invalid_payload", "article_id", payload.ArticleID)
		return nil
	}
	approved, err := c.CommentService.Recount(payload.ArticleID)
	if err != nil {
		logger.Warnw("worker_comment_recount_failed", "article_id", payload.ArticleID, "error", err)
		return err
	}
	logger.Debugw("worker_comment_recount_done", "article_id", payload.ArticleID, "approved_comments", approved)
	return nil
}
