package generator

import (
	"fmt"
	"strings"

	"github.com/abhishek622/mockmate/pkg/model"
)

// GenerationRequest carries everything needed to compose one prompt. The
// nonce is supplied by the caller, so given the same request the builder
// always produces the same string.
type GenerationRequest struct {
	Topics          []string
	Difficulty      model.Difficulty
	QuestionCount   int
	CodingTaskCount int
	ExcludedTexts   []string
	Nonce           string
}

const promptHeader = `You are a mock interview content generator.

Generate interview content for the following request and output ONLY a valid JSON object, with no additional text, markdown, or explanation.

Request token: %s (random, ignore its value; it only makes this request unique)
Topics: %s
Difficulty: %s

Produce exactly:
- %d interview questions
- %d coding tasks
`

const promptSchema = `
The combined duration of the full interview MUST be between %d and %d seconds. Report it as "totalTimeInSeconds".

Return a JSON object with this exact structure:
{
  "interviewQuestions": [
    {
      "question": "string",
      "answer": "string",
      "timeToAskSeconds": 0,
      "timeToAnswerSeconds": 0
    }
  ],
  "codingTasks": [
    {
      "task": "string",
      "code": "string",
      "sampleInput": "string",
      "expectedOutput": "string",
      "timeToSolveSeconds": 0
    }
  ],
  "totalTimeInSeconds": 0
}

Rules:
- Output must be valid JSON. No prefix, suffix, or backticks.
- Every question must include a complete model answer.
- Coding tasks must include working code and a sample input with its expected output.
- If asked for 0 coding tasks, return "codingTasks": []
`

// BuildPrompt composes the generation prompt for one call. Enforcement of
// the output contract is the parser's job, not the builder's.
func BuildPrompt(req GenerationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, promptHeader,
		req.Nonce,
		strings.Join(req.Topics, ", "),
		req.Difficulty,
		req.QuestionCount,
		req.CodingTaskCount,
	)

	if len(req.ExcludedTexts) > 0 {
		b.WriteString("\nAvoid repeating any of the following, or close paraphrases of them:\n")
		for _, t := range req.ExcludedTexts {
			fmt.Fprintf(&b, "- %s\n", t)
		}
	}

	fmt.Fprintf(&b, promptSchema, MinTotalTimeSeconds, MaxTotalTimeSeconds)
	return b.String()
}

// DesiredCounts returns the per-category item targets for a build.
// Technical topic sets get the base count of each category; non-technical
// sets get double the questions and no coding tasks.
func DesiredCounts(technical bool, baseCount int) (questions, codingTasks int) {
	if technical {
		return baseCount, baseCount
	}
	return 2 * baseCount, 0
}
