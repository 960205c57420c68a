package generator

import (
	"testing"

	"github.com/abhishek622/mockmate/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestBuildPromptDeterministicGivenNonce(t *testing.T) {
	req := GenerationRequest{
		Topics:          []string{"Python", "Django"},
		Difficulty:      model.DifficultyMedium,
		QuestionCount:   5,
		CodingTaskCount: 5,
		Nonce:           "abc123xy",
	}
	assert.Equal(t, BuildPrompt(req), BuildPrompt(req))
}

func TestBuildPromptContents(t *testing.T) {
	req := GenerationRequest{
		Topics:          []string{"Python", "Django"},
		Difficulty:      model.DifficultyMedium,
		QuestionCount:   3,
		CodingTaskCount: 2,
		ExcludedTexts:   []string{"What is the GIL?"},
		Nonce:           "abc123xy",
	}
	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, "abc123xy")
	assert.Contains(t, prompt, "Python, Django")
	assert.Contains(t, prompt, "medium")
	assert.Contains(t, prompt, "3 interview questions")
	assert.Contains(t, prompt, "2 coding tasks")
	assert.Contains(t, prompt, "What is the GIL?")
	assert.Contains(t, prompt, "2700")
	assert.Contains(t, prompt, "3600")
	assert.Contains(t, prompt, "totalTimeInSeconds")
}

func TestBuildPromptOmitsExclusionSectionWhenEmpty(t *testing.T) {
	req := GenerationRequest{
		Topics:        []string{"Public Speaking"},
		Difficulty:    model.DifficultyEasy,
		QuestionCount: 10,
		Nonce:         "n0n0n0n0",
	}
	assert.NotContains(t, BuildPrompt(req), "Avoid repeating")
}
