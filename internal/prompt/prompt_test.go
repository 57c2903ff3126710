package prompt_test

import (
	"testing"

	"github.com/raphaelgruber/realapps-go/internal/prompt"
	"github.com/stretchr/testify/assert"
)

func TestSystemMentionsSubjectAndGrade(t *testing.T) {
	p := prompt.System("Physics", "9")
	assert.Contains(t, p, "real-life applications of Physics concepts")
	assert.Contains(t, p, "The student is in grade 9.")
	assert.Contains(t, p, "Keep your response focused on Physics applications")
	assert.Contains(t, p, "SOURCES:")
}

func TestConversationID(t *testing.T) {
	assert.Equal(t, "Math_8_1756380000", prompt.ConversationID("Math", "8", 1756380000))
	// Fractional client timestamps are truncated.
	assert.Equal(t, "Math_8_17", prompt.ConversationID("Math", "8", 17.9))
}
