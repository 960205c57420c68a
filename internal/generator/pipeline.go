package generator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContentService is the external text generator. It gives no schema
// guarantee; the reply is raw text presumed to contain one JSON object.
type ContentService interface {
	Send(ctx context.Context, prompt string) (string, error)
}

// Store commits a finalized interview record.
type Store interface {
	SaveInterview(ctx context.Context, in *model.Interview) (uuid.UUID, error)
}

const (
	// maxRegenRounds caps top-up attempts per item category per build. The
	// pipeline accepts an under-filled result rather than retrying further.
	maxRegenRounds = 1

	// maxGeneratorCalls is the hard ceiling of external generator calls per
	// build: the initial call plus one top-up per category. Enforced by a
	// counter, not left to control flow.
	maxGeneratorCalls = 4

	DefaultBaseCount      = 5
	DefaultExclusionLimit = 50
)

// Pipeline runs one interview build end to end: classify, generate, parse,
// dedup, top up deficits, reconcile the time budget, persist.
type Pipeline struct {
	Service ContentService
	Bank    Bank
	Store   Store
	Logger  *zap.Logger

	// BaseCount is the per-category item target when the caller does not
	// specify one. ExclusionLimit caps how many recent bank texts a top-up
	// prompt carries.
	BaseCount      int
	ExclusionLimit int
}

// BuildInput is the caller contract for one interview build.
type BuildInput struct {
	UserID         uuid.UUID
	Topics         []string
	Difficulty     model.Difficulty
	BaseCount      int
	JobPosition    *string
	JobDescription *string
	JobExperience  *string
}

// Build produces and persists one interview. A failed initial generation or
// parse aborts with nothing persisted and nothing banked; a failed top-up
// round degrades to an under-filled record.
func (p *Pipeline) Build(ctx context.Context, in BuildInput) (*model.Interview, error) {
	topics := make([]string, 0, len(in.Topics))
	for _, t := range in.Topics {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) < 1 || len(topics) > 3 {
		return nil, &ValidationError{Reason: fmt.Sprintf("need 1 to 3 topics, got %d", len(topics))}
	}
	if !in.Difficulty.Valid() {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown difficulty %q", in.Difficulty)}
	}

	base := in.BaseCount
	if base <= 0 {
		base = p.BaseCount
	}
	if base <= 0 {
		base = DefaultBaseCount
	}

	technical := Technical(topics)
	wantQuestions, wantTasks := DesiredCounts(technical, base)
	calls := &callCounter{remaining: maxGeneratorCalls}

	payload, err := p.generate(ctx, GenerationRequest{
		Topics:          topics,
		Difficulty:      in.Difficulty,
		QuestionCount:   wantQuestions,
		CodingTaskCount: wantTasks,
		Nonce:           MakeNonce(),
	}, calls)
	if err != nil {
		return nil, err
	}

	questions, err := FilterDuplicates(ctx, p.Bank, topics, payload.InterviewQuestions, questionText)
	if err != nil {
		return nil, fmt.Errorf("dedup questions: %w", err)
	}
	if len(questions) > wantQuestions {
		questions = questions[:wantQuestions]
	}

	// Coding tasks the generator volunteers for a non-technical topic set
	// are discarded outright.
	var tasks []model.CodingTask
	if technical {
		tasks, err = FilterDuplicates(ctx, p.Bank, topics, payload.CodingTasks, taskText)
		if err != nil {
			return nil, fmt.Errorf("dedup coding tasks: %w", err)
		}
		if len(tasks) > wantTasks {
			tasks = tasks[:wantTasks]
		}
	}

	// The two top-up rounds only read the bank, so they can run in
	// parallel. Appends wait until both have settled.
	var wg sync.WaitGroup
	if len(questions) < wantQuestions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for round := 0; round < maxRegenRounds && len(questions) < wantQuestions; round++ {
				questions = topUp(ctx, p, topics, GenerationRequest{
					Topics:        topics,
					Difficulty:    in.Difficulty,
					QuestionCount: wantQuestions - len(questions),
				}, questions, wantQuestions, questionText, pickQuestions, "questions", calls)
			}
		}()
	}
	if technical && len(tasks) < wantTasks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for round := 0; round < maxRegenRounds && len(tasks) < wantTasks; round++ {
				tasks = topUp(ctx, p, topics, GenerationRequest{
					Topics:          topics,
					Difficulty:      in.Difficulty,
					CodingTaskCount: wantTasks - len(tasks),
				}, tasks, wantTasks, taskText, pickTasks, "coding tasks", calls)
			}
		}()
	}
	wg.Wait()

	texts := make([]string, 0, len(questions)+len(tasks))
	for _, q := range questions {
		texts = append(texts, q.Question)
	}
	for _, t := range tasks {
		texts = append(texts, t.Task)
	}
	if err := p.Bank.Add(ctx, topics, texts); err != nil {
		p.Logger.Sugar().Errorw("question bank append failed",
			"topic_key", p.Bank.Key(topics), "err", err)
	}

	if len(questions) < wantQuestions || len(tasks) < wantTasks {
		p.Logger.Sugar().Warnw("interview finalized under-filled",
			"topic_key", p.Bank.Key(topics),
			"questions", len(questions), "questions_wanted", wantQuestions,
			"coding_tasks", len(tasks), "coding_tasks_wanted", wantTasks)
	}

	rec := &model.Interview{
		InterviewID:      uuid.New(),
		UserID:           in.UserID,
		Topics:           topics,
		Difficulty:       in.Difficulty,
		Questions:        questions,
		CodingTasks:      tasks,
		TotalTimeSeconds: ReconcileTotalTime(payload.TotalTimeInSeconds, questions, tasks),
		JobPosition:      in.JobPosition,
		JobDescription:   in.JobDescription,
		JobExperience:    in.JobExperience,
		CreatedAt:        time.Now().UTC(),
	}
	if rec.Questions == nil {
		rec.Questions = []model.InterviewQuestion{}
	}
	if rec.CodingTasks == nil {
		rec.CodingTasks = []model.CodingTask{}
	}

	id, err := p.Store.SaveInterview(ctx, rec)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}
	rec.InterviewID = id
	return rec, nil
}

func (p *Pipeline) generate(ctx context.Context, req GenerationRequest, calls *callCounter) (*Payload, error) {
	if !calls.take() {
		return nil, fmt.Errorf("generator call budget exhausted (max %d per build)", maxGeneratorCalls)
	}
	raw, err := p.Service.Send(ctx, BuildPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("generator call: %w", err)
	}
	return ExtractPayload(raw)
}

// topUp runs the single bounded regeneration round for one category. Any
// failure is logged and swallowed: the caller keeps what it already has.
func topUp[T any](ctx context.Context, p *Pipeline, topics []string, req GenerationRequest,
	have []T, want int, textOf func(T) string, pick func(*Payload) []T, category string, calls *callCounter) []T {

	limit := p.ExclusionLimit
	if limit <= 0 {
		limit = DefaultExclusionLimit
	}
	excluded, err := p.Bank.RecentTexts(ctx, topics, limit)
	if err != nil {
		p.Logger.Sugar().Warnw("bank exclusion lookup failed", "category", category, "err", err)
		excluded = nil
	}
	req.ExcludedTexts = excluded
	req.Nonce = MakeNonce()

	payload, err := p.generate(ctx, req, calls)
	if err != nil {
		p.logRegenFailure(category, err)
		return have
	}

	merged := append(append(make([]T, 0, len(have)), have...), pick(payload)...)
	unique, err := FilterDuplicates(ctx, p.Bank, topics, merged, textOf)
	if err != nil {
		p.logRegenFailure(category, err)
		return have
	}
	if len(unique) <= len(have) {
		p.logRegenFailure(category, fmt.Errorf("returned no new unique items"))
		return have
	}
	if len(unique) > want {
		unique = unique[:want]
	}
	return unique
}

func (p *Pipeline) logRegenFailure(category string, err error) {
	regenErr := &RegenerationError{Category: category, Err: err}
	p.Logger.Sugar().Warnw("proceeding with under-filled category", "err", regenErr)
}

type callCounter struct {
	mu        sync.Mutex
	remaining int
}

func (c *callCounter) take() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining == 0 {
		return false
	}
	c.remaining--
	return true
}

func questionText(q model.InterviewQuestion) string { return q.Question }

func taskText(t model.CodingTask) string { return t.Task }

func pickQuestions(p *Payload) []model.InterviewQuestion { return p.InterviewQuestions }

func pickTasks(p *Payload) []model.CodingTask { return p.CodingTasks }
