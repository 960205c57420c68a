package repository

import (
	"context"
	"fmt"

	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveInterview writes the finalized record and all its items in one
// transaction; a failed save leaves no partial record behind.
func (r *Repository) SaveInterview(ctx context.Context, in *model.Interview) (uuid.UUID, error) {
	if in.InterviewID == uuid.Nil {
		in.InterviewID = uuid.New()
	}

	err := r.execTx(ctx, func(tx pgx.Tx) error {
		const q = `
INSERT INTO interviews (
	interview_id, user_id, topics, difficulty, total_time_seconds,
	job_position, job_description, job_experience
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
		_, err := tx.Exec(ctx, q,
			in.InterviewID, in.UserID, in.Topics, in.Difficulty, in.TotalTimeSeconds,
			in.JobPosition, in.JobDescription, in.JobExperience,
		)
		if err != nil {
			return fmt.Errorf("insert interview: %w", err)
		}

		batch := &pgx.Batch{}
		const qq = `
INSERT INTO interview_questions (
	interview_id, position, question, answer, time_to_ask_seconds, time_to_answer_seconds
) VALUES ($1, $2, $3, $4, $5, $6)
`
		for i, item := range in.Questions {
			batch.Queue(qq, in.InterviewID, i, item.Question, item.Answer, item.TimeToAskSeconds, item.TimeToAnswerSeconds)
		}

		const qt = `
INSERT INTO coding_tasks (
	interview_id, position, task, code, sample_input, expected_output, time_to_solve_seconds
) VALUES ($1, $2, $3, $4, $5, $6, $7)
`
		for i, item := range in.CodingTasks {
			batch.Queue(qt, in.InterviewID, i, item.Task, item.Code, item.SampleInput, item.ExpectedOutput, item.TimeToSolveSeconds)
		}

		br := tx.SendBatch(ctx, batch)
		defer br.Close()
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("batch insert item %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return in.InterviewID, nil
}

func (r *Repository) GetInterviewByID(ctx context.Context, interviewID uuid.UUID) (*model.Interview, error) {
	const q = `
SELECT interview_id, user_id, topics, difficulty, total_time_seconds,
	job_position, job_description, job_experience, created_at
FROM interviews WHERE interview_id = $1
`
	var in model.Interview
	row := r.db.QueryRow(ctx, q, interviewID)
	err := row.Scan(
		&in.InterviewID, &in.UserID, &in.Topics, &in.Difficulty, &in.TotalTimeSeconds,
		&in.JobPosition, &in.JobDescription, &in.JobExperience, &in.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	const qq = `
SELECT question, answer, time_to_ask_seconds, time_to_answer_seconds
FROM interview_questions WHERE interview_id = $1 ORDER BY position ASC
`
	rows, err := r.db.Query(ctx, qq, interviewID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()
	in.Questions = []model.InterviewQuestion{}
	for rows.Next() {
		var item model.InterviewQuestion
		if err := rows.Scan(&item.Question, &item.Answer, &item.TimeToAskSeconds, &item.TimeToAnswerSeconds); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		in.Questions = append(in.Questions, item)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	const qt = `
SELECT task, code, sample_input, expected_output, time_to_solve_seconds
FROM coding_tasks WHERE interview_id = $1 ORDER BY position ASC
`
	taskRows, err := r.db.Query(ctx, qt, interviewID)
	if err != nil {
		return nil, fmt.Errorf("query coding tasks: %w", err)
	}
	defer taskRows.Close()
	in.CodingTasks = []model.CodingTask{}
	for taskRows.Next() {
		var item model.CodingTask
		if err := taskRows.Scan(&item.Task, &item.Code, &item.SampleInput, &item.ExpectedOutput, &item.TimeToSolveSeconds); err != nil {
			return nil, fmt.Errorf("scan coding task: %w", err)
		}
		in.CodingTasks = append(in.CodingTasks, item)
	}
	if taskRows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", taskRows.Err())
	}

	return &in, nil
}

func (r *Repository) ListInterviewByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.InterviewListItem, int, error) {
	var total int
	const countQ = `SELECT COUNT(1) FROM interviews WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, countQ, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count interviews: %w", err)
	}

	const q = `
SELECT i.interview_id, i.topics, i.difficulty, i.total_time_seconds, i.job_position, i.created_at,
	(SELECT COUNT(1) FROM interview_questions q WHERE q.interview_id = i.interview_id),
	(SELECT COUNT(1) FROM coding_tasks t WHERE t.interview_id = i.interview_id)
FROM interviews i
WHERE i.user_id = $1
ORDER BY i.created_at DESC
LIMIT $2 OFFSET $3
`
	rows, err := r.db.Query(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query interviews: %w", err)
	}
	defer rows.Close()

	out := make([]model.InterviewListItem, 0, limit)
	for rows.Next() {
		var item model.InterviewListItem
		if err := rows.Scan(
			&item.InterviewID, &item.Topics, &item.Difficulty, &item.TotalTimeSeconds,
			&item.JobPosition, &item.CreatedAt, &item.QuestionCount, &item.CodingTaskCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan interview row: %w", err)
		}
		out = append(out, item)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("rows error: %w", rows.Err())
	}
	return out, total, nil
}

func (r *Repository) DeleteInterview(ctx context.Context, interviewID, userID uuid.UUID) error {
	return r.execTx(ctx, func(tx pgx.Tx) error {
		const qq = `DELETE FROM interview_questions WHERE interview_id = $1`
		if _, err := tx.Exec(ctx, qq, interviewID); err != nil {
			return fmt.Errorf("delete questions: %w", err)
		}

		const qt = `DELETE FROM coding_tasks WHERE interview_id = $1`
		if _, err := tx.Exec(ctx, qt, interviewID); err != nil {
			return fmt.Errorf("delete coding tasks: %w", err)
		}

		const q = `DELETE FROM interviews WHERE interview_id = $1 AND user_id = $2`
		tag, err := tx.Exec(ctx, q, interviewID, userID)
		if err != nil {
			return fmt.Errorf("delete interview: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
}
