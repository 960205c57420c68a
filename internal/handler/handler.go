package handler

import (
	"context"

	"github.com/abhishek622/mockmate/internal/fetcher"
	"github.com/abhishek622/mockmate/internal/generator"
	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Builder runs one interview build end to end.
type Builder interface {
	Build(ctx context.Context, in generator.BuildInput) (*model.Interview, error)
}

// InterviewStore covers the read/delete side of persisted interviews.
type InterviewStore interface {
	GetInterviewByID(ctx context.Context, interviewID uuid.UUID) (*model.Interview, error)
	ListInterviewByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.InterviewListItem, int, error)
	DeleteInterview(ctx context.Context, interviewID, userID uuid.UUID) error
}

// JobPostingFetcher resolves a job_url into posting text.
type JobPostingFetcher interface {
	FetchJobPosting(ctx context.Context, rawURL string) (*fetcher.JobPosting, error)
}

type Handler struct {
	Logger   *zap.Logger
	Pipeline Builder
	Repo     InterviewStore
	Fetcher  JobPostingFetcher
}

// GetUserFromContext retrieves the authenticated user ID set by the auth
// middleware, or uuid.Nil when the request carried no valid token.
func (h *Handler) GetUserFromContext(c *gin.Context) uuid.UUID {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
