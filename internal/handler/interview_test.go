package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhishek622/mockmate/internal/generator"
	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBuilder struct {
	rec *model.Interview
	err error
	got generator.BuildInput
}

func (f *fakeBuilder) Build(_ context.Context, in generator.BuildInput) (*model.Interview, error) {
	f.got = in
	if f.err != nil {
		return nil, f.err
	}
	return f.rec, nil
}

func newRouter(h *Handler, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/interviews/generate", func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set("user_id", userID)
		}
		h.GenerateInterview(c)
	})
	return r
}

func postGenerate(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/interviews/generate", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateInterviewCreated(t *testing.T) {
	userID := uuid.New()
	builder := &fakeBuilder{rec: &model.Interview{
		InterviewID:      uuid.New(),
		UserID:           userID,
		Questions:        make([]model.InterviewQuestion, 5),
		CodingTasks:      make([]model.CodingTask, 5),
		TotalTimeSeconds: 3200,
	}}
	h := &Handler{Logger: zap.NewNop(), Pipeline: builder}

	w := postGenerate(t, newRouter(h, userID), model.GenerateInterviewReq{
		Topics:     []string{"Python", "Django"},
		Difficulty: model.DifficultyMedium,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, userID, builder.got.UserID)
	assert.Equal(t, []string{"Python", "Django"}, builder.got.Topics)

	var env struct {
		Success bool                       `json:"success"`
		Data    model.GenerateInterviewRes `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, 5, env.Data.QuestionCount)
	assert.Equal(t, 3200, env.Data.TotalTimeSeconds)
}

func TestGenerateInterviewErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &generator.ValidationError{Reason: "too many topics"}, http.StatusUnprocessableEntity},
		{"parse", &generator.ParseError{Err: errors.New("no json")}, http.StatusBadGateway},
		{"persistence", &generator.PersistenceError{Err: errors.New("db down")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{Logger: zap.NewNop(), Pipeline: &fakeBuilder{err: tt.err}}
			w := postGenerate(t, newRouter(h, uuid.New()), model.GenerateInterviewReq{
				Topics:     []string{"Go"},
				Difficulty: model.DifficultyEasy,
			})
			assert.Equal(t, tt.wantStatus, w.Code)
			// internal detail never leaks to the client
			assert.NotContains(t, w.Body.String(), "db down")
			assert.NotContains(t, w.Body.String(), "no json")
		})
	}
}

func TestGenerateInterviewUnauthorized(t *testing.T) {
	h := &Handler{Logger: zap.NewNop(), Pipeline: &fakeBuilder{}}
	w := postGenerate(t, newRouter(h, uuid.Nil), model.GenerateInterviewReq{
		Topics:     []string{"Go"},
		Difficulty: model.DifficultyEasy,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateInterviewBadBody(t *testing.T) {
	h := &Handler{Logger: zap.NewNop(), Pipeline: &fakeBuilder{}}
	w := postGenerate(t, newRouter(h, uuid.New()), gin.H{"topics": "not-a-list"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
