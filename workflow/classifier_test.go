package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_DetectsHedging(t *testing.T) {
	c, err := NewInsufficiencyClassifier()
	require.NoError(t, err)

	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{"no info", "I don't have enough information to answer that.", true},
		{"no info unabbreviated", "I do not... the context does not contain that information.", true},
		{"not mentioned", "This topic is not mentioned in the provided context.", true},
		{"context not enough", "The context does not provide enough detail.", true},
		{"unable", "I am unable to provide an answer.", true},
		{"cannot answer", "I cannot answer this question.", true},
		{"no info about", "There is no information about refunds here.", true},
		{"not included", "That detail is not included in the given context.", true},
		{"unfortunately", "Unfortunately, the context lacks this detail.", true},
		{"case insensitive", "UNABLE TO PROVIDE an answer.", true},
		{"direct answer", "Refunds are processed within 14 days (Page 3).", false},
		{"mentions context positively", "Based on the context, the answer is 42.", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Indicates(tt.answer))
		})
	}
}

func TestClassifier_CustomPatterns(t *testing.T) {
	c, err := NewInsufficiencyClassifier(`(?i)out of scope`)
	require.NoError(t, err)

	assert.True(t, c.Indicates("That is out of scope for this document."))
	// Default patterns are replaced, not extended
	assert.False(t, c.Indicates("I cannot answer this question."))
}

func TestClassifier_InvalidPattern(t *testing.T) {
	_, err := NewInsufficiencyClassifier(`([unclosed`)
	assert.ErrorIs(t, err, ErrInvalidPattern)
}
