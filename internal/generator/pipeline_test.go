package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// scriptedService replays canned replies in call order. When the script runs
// out, the last reply repeats, which keeps concurrent top-up calls stable.
type scriptedService struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	prompts []string
}

func (s *scriptedService) Send(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := len(s.prompts)
	s.prompts = append(s.prompts, prompt)
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.replies) {
		return s.replies[i], nil
	}
	if len(s.replies) == 0 {
		return "", nil
	}
	return s.replies[len(s.replies)-1], nil
}

func (s *scriptedService) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func (s *scriptedService) prompt(i int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompts[i]
}

type captureStore struct {
	mu    sync.Mutex
	saved []*model.Interview
	err   error
}

func (s *captureStore) SaveInterview(_ context.Context, in *model.Interview) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return uuid.Nil, s.err
	}
	s.saved = append(s.saved, in)
	return in.InterviewID, nil
}

func reply(t *testing.T, qs []model.InterviewQuestion, tasks []model.CodingTask, total *int) string {
	t.Helper()
	b, err := json.Marshal(Payload{InterviewQuestions: qs, CodingTasks: tasks, TotalTimeInSeconds: total})
	require.NoError(t, err)
	return string(b)
}

func makeQuestions(prefix string, n int) []model.InterviewQuestion {
	out := make([]model.InterviewQuestion, n)
	for i := range out {
		out[i] = model.InterviewQuestion{
			Question:            fmt.Sprintf("%s question %d?", prefix, i+1),
			Answer:              "because",
			TimeToAskSeconds:    30,
			TimeToAnswerSeconds: 120,
		}
	}
	return out
}

func makeTasks(prefix string, n int) []model.CodingTask {
	out := make([]model.CodingTask, n)
	for i := range out {
		out[i] = model.CodingTask{
			Task:               fmt.Sprintf("%s task %d", prefix, i+1),
			Code:               "print('x')",
			SampleInput:        "1",
			ExpectedOutput:     "x",
			TimeToSolveSeconds: 300,
		}
	}
	return out
}

func newPipeline(svc ContentService, bank Bank, store Store) *Pipeline {
	return &Pipeline{
		Service:        svc,
		Bank:           bank,
		Store:          store,
		Logger:         zap.NewNop(),
		BaseCount:      5,
		ExclusionLimit: 50,
	}
}

func TestBuildRegeneratesQuestionDeficit(t *testing.T) {
	ctx := context.Background()
	bank := NewMemoryBank()
	topics := []string{"Python", "Django"}

	// three of the five generated questions already live in the bank
	initial := makeQuestions("seen", 3)
	fresh := makeQuestions("fresh", 2)
	banked := make([]string, 0, 3)
	for _, q := range initial {
		banked = append(banked, q.Question)
	}
	require.NoError(t, bank.Add(ctx, topics, banked))

	svc := &scriptedService{replies: []string{
		reply(t, append(initial, fresh...), makeTasks("task", 5), intPtr(3200)),
		reply(t, makeQuestions("regen", 3), nil, nil),
	}}
	store := &captureStore{}
	p := newPipeline(svc, bank, store)

	rec, err := p.Build(ctx, BuildInput{
		UserID:     uuid.New(),
		Topics:     topics,
		Difficulty: model.DifficultyMedium,
	})
	require.NoError(t, err)

	assert.Len(t, rec.Questions, 5)
	assert.Len(t, rec.CodingTasks, 5)
	assert.Equal(t, 3200, rec.TotalTimeSeconds)
	assert.Equal(t, 2, svc.calls())
	require.Len(t, store.saved, 1)

	// the top-up prompt asks only for the shortfall and excludes bank texts
	regenPrompt := svc.prompt(1)
	assert.Contains(t, regenPrompt, "3 interview questions")
	assert.Contains(t, regenPrompt, "0 coding tasks")
	assert.Contains(t, regenPrompt, "Avoid repeating")
	assert.Contains(t, regenPrompt, "seen question 1?")

	// no duplicates in the finalized record, and none matching the bank at
	// build start
	seenNorm := map[string]bool{}
	for _, b := range banked {
		seenNorm[NormalizeText(b)] = true
	}
	for _, q := range rec.Questions {
		n := NormalizeText(q.Question)
		assert.False(t, seenNorm[n], "duplicate question %q", q.Question)
		seenNorm[n] = true
	}
}

func TestBuildNonTechnicalClampsBudgetAndDropsTasks(t *testing.T) {
	ctx := context.Background()
	svc := &scriptedService{replies: []string{
		// generator miscounts and volunteers coding tasks anyway
		reply(t, makeQuestions("speak", 10), makeTasks("stray", 2), nil),
	}}
	store := &captureStore{}
	p := newPipeline(svc, NewMemoryBank(), store)

	rec, err := p.Build(ctx, BuildInput{
		UserID:     uuid.New(),
		Topics:     []string{"Public Speaking"},
		Difficulty: model.DifficultyEasy,
	})
	require.NoError(t, err)

	assert.Len(t, rec.Questions, 10)
	assert.Empty(t, rec.CodingTasks)
	// per-item sum is 10*(30+120)+120 = 1620s, clamped up to the window
	assert.Equal(t, MinTotalTimeSeconds, rec.TotalTimeSeconds)
	assert.Equal(t, 1, svc.calls())
}

func TestBuildSwallowsRegenerationFailure(t *testing.T) {
	ctx := context.Background()
	svc := &scriptedService{
		replies: []string{reply(t, makeQuestions("few", 2), makeTasks("task", 5), nil), ""},
		errs:    []error{nil, errors.New("connection reset")},
	}
	store := &captureStore{}
	p := newPipeline(svc, NewMemoryBank(), store)

	rec, err := p.Build(ctx, BuildInput{
		UserID:     uuid.New(),
		Topics:     []string{"Golang"},
		Difficulty: model.DifficultyHard,
	})
	require.NoError(t, err)

	// under-filled but finalized
	assert.Len(t, rec.Questions, 2)
	assert.Len(t, rec.CodingTasks, 5)
	assert.GreaterOrEqual(t, rec.TotalTimeSeconds, MinTotalTimeSeconds)
	assert.LessOrEqual(t, rec.TotalTimeSeconds, MaxTotalTimeSeconds)
	require.Len(t, store.saved, 1)
}

func TestBuildAtMostOneRegenRoundPerCategory(t *testing.T) {
	ctx := context.Background()
	// every call returns the same two questions and two tasks, so the
	// shortfall can never be filled
	svc := &scriptedService{replies: []string{
		reply(t, makeQuestions("dup", 2), makeTasks("dup", 2), nil),
	}}
	store := &captureStore{}
	p := newPipeline(svc, NewMemoryBank(), store)

	rec, err := p.Build(ctx, BuildInput{
		UserID:     uuid.New(),
		Topics:     []string{"Java"},
		Difficulty: model.DifficultyMedium,
	})
	require.NoError(t, err)

	// one initial call plus exactly one top-up per category
	assert.Equal(t, 3, svc.calls())
	assert.Len(t, rec.Questions, 2)
	assert.Len(t, rec.CodingTasks, 2)
	require.Len(t, store.saved, 1)
}

func TestBuildValidation(t *testing.T) {
	ctx := context.Background()
	svc := &scriptedService{}
	p := newPipeline(svc, NewMemoryBank(), &captureStore{})

	tests := []struct {
		name  string
		input BuildInput
	}{
		{"no topics", BuildInput{Difficulty: model.DifficultyEasy}},
		{"too many topics", BuildInput{Topics: []string{"a", "b", "c", "d"}, Difficulty: model.DifficultyEasy}},
		{"blank topics", BuildInput{Topics: []string{"  ", ""}, Difficulty: model.DifficultyEasy}},
		{"bad difficulty", BuildInput{Topics: []string{"Go"}, Difficulty: "extreme"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Build(ctx, tt.input)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
		})
	}
	assert.Zero(t, svc.calls(), "validation must fail before any external call")
}

func TestBuildInitialParseFailureLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	bank := NewMemoryBank()
	store := &captureStore{}
	svc := &scriptedService{replies: []string{"I have no JSON for you today."}}
	p := newPipeline(svc, bank, store)

	_, err := p.Build(ctx, BuildInput{
		UserID:     uuid.New(),
		Topics:     []string{"Go"},
		Difficulty: model.DifficultyEasy,
	})
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))

	assert.Empty(t, store.saved)
	recent, bankErr := bank.RecentTexts(ctx, []string{"Go"}, 10)
	require.NoError(t, bankErr)
	assert.Empty(t, recent, "a fully failed build must not touch the bank")
}

func TestBuildPersistenceFailureKeepsBankAppends(t *testing.T) {
	ctx := context.Background()
	bank := NewMemoryBank()
	store := &captureStore{err: errors.New("db down")}
	svc := &scriptedService{replies: []string{
		reply(t, makeQuestions("q", 10), nil, nil),
	}}
	p := newPipeline(svc, bank, store)

	_, err := p.Build(ctx, BuildInput{
		UserID:     uuid.New(),
		Topics:     []string{"Public Speaking"},
		Difficulty: model.DifficultyMedium,
	})
	var pErr *PersistenceError
	require.True(t, errors.As(err, &pErr))

	// accepted texts stay banked even when the final save fails
	seen, bankErr := bank.Seen(ctx, []string{"Public Speaking"}, []string{NormalizeText("q question 1?")})
	require.NoError(t, bankErr)
	assert.True(t, seen[NormalizeText("q question 1?")])
}

func TestBuildDesiredCountsInInitialPrompt(t *testing.T) {
	ctx := context.Background()
	svc := &scriptedService{replies: []string{
		reply(t, makeQuestions("q", 5), makeTasks("t", 5), intPtr(3000)),
	}}
	p := newPipeline(svc, NewMemoryBank(), &captureStore{})

	_, err := p.Build(ctx, BuildInput{
		UserID:     uuid.New(),
		Topics:     []string{"Kubernetes"},
		Difficulty: model.DifficultyMedium,
		BaseCount:  5,
	})
	require.NoError(t, err)

	first := svc.prompt(0)
	assert.Contains(t, first, "5 interview questions")
	assert.Contains(t, first, "5 coding tasks")
}
