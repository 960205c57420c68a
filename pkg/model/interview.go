package model

import (
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

type InterviewQuestion struct {
	Question            string `json:"question"`
	Answer              string `json:"answer"`
	TimeToAskSeconds    int    `json:"timeToAskSeconds"`
	TimeToAnswerSeconds int    `json:"timeToAnswerSeconds"`
}

type CodingTask struct {
	Task               string `json:"task"`
	Code               string `json:"code"`
	SampleInput        string `json:"sampleInput"`
	ExpectedOutput     string `json:"expectedOutput"`
	TimeToSolveSeconds int    `json:"timeToSolveSeconds"`
}

// Interview is the finalized record written once at the end of a build.
// It is never mutated afterwards.
type Interview struct {
	InterviewID      uuid.UUID           `json:"interview_id" db:"interview_id"`
	UserID           uuid.UUID           `json:"user_id" db:"user_id"`
	Topics           []string            `json:"topics" db:"topics"`
	Difficulty       Difficulty          `json:"difficulty" db:"difficulty"`
	Questions        []InterviewQuestion `json:"questions"`
	CodingTasks      []CodingTask        `json:"coding_tasks"`
	TotalTimeSeconds int                 `json:"total_time_seconds" db:"total_time_seconds"`
	JobPosition      *string             `json:"job_position" db:"job_position"`
	JobDescription   *string             `json:"job_description" db:"job_description"`
	JobExperience    *string             `json:"job_experience" db:"job_experience"`
	CreatedAt        time.Time           `json:"created_at" db:"created_at"`
}

type GenerateInterviewReq struct {
	Topics         []string   `json:"topics" binding:"required"`
	Difficulty     Difficulty `json:"difficulty" binding:"required"`
	BaseCount      int        `json:"base_count"`
	JobPosition    *string    `json:"job_position"`
	JobDescription *string    `json:"job_description"`
	JobURL         *string    `json:"job_url"`
	JobExperience  *string    `json:"job_experience"`
}

type GenerateInterviewRes struct {
	InterviewID      uuid.UUID `json:"interview_id"`
	QuestionCount    int       `json:"question_count"`
	CodingTaskCount  int       `json:"coding_task_count"`
	TotalTimeSeconds int       `json:"total_time_seconds"`
}

type ListInterviewQuery struct {
	Page     int `json:"page" form:"page,default=1"`
	PageSize int `json:"page_size" form:"page_size,default=20"`
}

type InterviewListItem struct {
	InterviewID      uuid.UUID  `json:"interview_id"`
	Topics           []string   `json:"topics"`
	Difficulty       Difficulty `json:"difficulty"`
	QuestionCount    int        `json:"question_count"`
	CodingTaskCount  int        `json:"coding_task_count"`
	TotalTimeSeconds int        `json:"total_time_seconds"`
	JobPosition      *string    `json:"job_position"`
	CreatedAt        time.Time  `json:"created_at"`
}
