package incident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeComment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", CommentPlaceholder},
		{"whitespace only", "   \t ", CommentPlaceholder},
		{"single dash", "-", CommentPlaceholder},
		{"em dash", "—", CommentPlaceholder},
		{"dash with whitespace", "  -  ", CommentPlaceholder},
		{"text kept", "fryer down", "fryer down"},
		{"text trimmed", "  fryer down  ", "fryer down"},
		{"dash inside text kept", "a-b", "a-b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeComment(tt.input))
		})
	}
}

func TestReasonIsValid(t *testing.T) {
	for _, r := range Reasons {
		assert.True(t, r.IsValid(), "catalogue reason %q", r)
	}
	assert.False(t, Reason("weather").IsValid())
	assert.False(t, Reason("").IsValid())
}

func TestReasonLabel(t *testing.T) {
	assert.Equal(t, "External losses", ReasonExternal.Label())
	assert.Equal(t, "Product unavailable", ReasonNoProduct.Label())
	// Unknown reasons fall back to their raw value.
	assert.Equal(t, "weather", Reason("weather").Label())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusOpen.IsValid())
	assert.True(t, StatusClosed.IsValid())
	assert.False(t, Status("archived").IsValid())
}
