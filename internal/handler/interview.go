package handler

import (
	"errors"

	"github.com/abhishek622/mockmate/internal/generator"
	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/abhishek622/mockmate/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// retryMessage is the only thing a user sees for build failures; the real
// cause is logged server-side.
const retryMessage = "interview could not be generated, please try again"

func (h *Handler) GenerateInterview(c *gin.Context) {
	var req model.GenerateInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	userID := h.GetUserFromContext(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "")
		return
	}

	jobPosition := req.JobPosition
	jobDescription := req.JobDescription
	if req.JobURL != nil && *req.JobURL != "" && (jobDescription == nil || *jobDescription == "") {
		posting, err := h.Fetcher.FetchJobPosting(c.Request.Context(), *req.JobURL)
		if err != nil {
			h.Logger.Sugar().Warnw("job posting fetch failed", "url", *req.JobURL, "err", err)
			response.BadRequest(c, "could not fetch the job posting")
			return
		}
		jobDescription = &posting.Description
		if jobPosition == nil || *jobPosition == "" {
			jobPosition = &posting.Title
		}
	}

	rec, err := h.Pipeline.Build(c.Request.Context(), generator.BuildInput{
		UserID:         userID,
		Topics:         req.Topics,
		Difficulty:     req.Difficulty,
		BaseCount:      req.BaseCount,
		JobPosition:    jobPosition,
		JobDescription: jobDescription,
		JobExperience:  req.JobExperience,
	})
	if err != nil {
		var validationErr *generator.ValidationError
		var parseErr *generator.ParseError
		var persistErr *generator.PersistenceError
		switch {
		case errors.As(err, &validationErr):
			h.Logger.Sugar().Infow("build rejected", "user_id", userID, "err", err)
			response.ValidationError(c, retryMessage)
		case errors.As(err, &parseErr):
			h.Logger.Sugar().Errorw("build aborted on generator output", "user_id", userID, "err", err)
			response.BadGateway(c, retryMessage)
		case errors.As(err, &persistErr):
			h.Logger.Sugar().Errorw("build failed to persist", "user_id", userID, "err", err)
			response.InternalError(c, "")
		default:
			h.Logger.Sugar().Errorw("build failed", "user_id", userID, "err", err)
			response.InternalError(c, "")
		}
		return
	}

	response.Created(c, model.GenerateInterviewRes{
		InterviewID:      rec.InterviewID,
		QuestionCount:    len(rec.Questions),
		CodingTaskCount:  len(rec.CodingTasks),
		TotalTimeSeconds: rec.TotalTimeSeconds,
	})
}

func (h *Handler) GetInterview(c *gin.Context) {
	userID := h.GetUserFromContext(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "")
		return
	}

	interviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return
	}

	rec, err := h.Repo.GetInterviewByID(c.Request.Context(), interviewID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to get interview", "id", interviewID, "err", err)
		response.InternalError(c, "")
		return
	}
	if rec.UserID != userID {
		response.NotFound(c, "interview not found")
		return
	}

	response.OK(c, rec)
}

func (h *Handler) ListInterviews(c *gin.Context) {
	userID := h.GetUserFromContext(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "")
		return
	}

	var q model.ListInterviewQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	limit := q.PageSize
	if limit <= 0 {
		limit = 20
	}
	offset := max((q.Page-1)*limit, 0)

	items, total, err := h.Repo.ListInterviewByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.Logger.Sugar().Errorw("failed to list interviews", "user_id", userID, "err", err)
		response.InternalError(c, "")
		return
	}

	response.OKWithMeta(c, items, &response.Meta{
		Page:     q.Page,
		PageSize: limit,
		Total:    total,
	})
}

func (h *Handler) DeleteInterview(c *gin.Context) {
	userID := h.GetUserFromContext(c)
	if userID == uuid.Nil {
		response.Unauthorized(c, "")
		return
	}

	interviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return
	}

	if err := h.Repo.DeleteInterview(c.Request.Context(), interviewID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Sugar().Errorw("failed to delete interview", "id", interviewID, "err", err)
		response.InternalError(c, "")
		return
	}

	response.Message(c, "interview deleted successfully")
}
