package generator

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/abhishek622/mockmate/pkg/model"
)

// Payload is the shape the generator is asked to return. Missing keys are
// tolerated: absent arrays become empty, absent total time stays nil.
type Payload struct {
	InterviewQuestions []model.InterviewQuestion `json:"interviewQuestions"`
	CodingTasks        []model.CodingTask        `json:"codingTasks"`
	TotalTimeInSeconds *int                      `json:"totalTimeInSeconds"`
}

// ExtractPayload pulls the first balanced JSON object out of raw generator
// output and decodes it. The model often wraps its answer in prose or code
// fences, so everything outside the object is ignored.
func ExtractPayload(raw string) (*Payload, error) {
	obj, ok := extractObject(raw)
	if !ok {
		return nil, &ParseError{Err: errors.New("no balanced JSON object in response")}
	}

	var p Payload
	if err := json.Unmarshal([]byte(obj), &p); err != nil {
		return nil, &ParseError{Err: err}
	}
	if p.InterviewQuestions == nil {
		p.InterviewQuestions = []model.InterviewQuestion{}
	}
	if p.CodingTasks == nil {
		p.CodingTasks = []model.CodingTask{}
	}
	return &p, nil
}

// extractObject scans from the first '{' to its balanced closing '}'.
// Braces inside quoted strings do not count, and nested objects/arrays are
// tracked so embedded structures close correctly.
func extractObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				if c == '}' {
					return raw[start : i+1], true
				}
				return "", false
			}
		}
	}
	return "", false
}
