package queue

import (
	"encoding/json"

	"github.com/khoborpatra/khoborpatra/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskArticleView view-counter increment plus analytics row
	TaskArticleView = constants.TaskArticleView
	// TaskCommentRecount reconciles an article's denormalized comment counter
	TaskCommentRecount = constants.TaskCommentCounters
)

// ArticleViewPayload article view task payload
type ArticleViewPayload struct {
	ArticleID uint   `json:"article_id"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	Referrer  string `json:"referrer,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// NewArticleViewTask creates the article view task
func NewArticleViewTask(payload ArticleViewPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskArticleView, body), nil
}

// CommentRecountPayload comment recount task payload
type CommentRecountPayload struct {
	ArticleID uint `json:"article_id"`
}

// NewCommentRecountTask creates the comment recount task
func NewCommentRecountTask(payload CommentRecountPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCommentRecount, body), nil
}
