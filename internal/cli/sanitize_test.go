package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		err   error
	}{
		{name: "plain", input: "open mailbox", want: "open mailbox"},
		{name: "tab kept", input: "say\thello", want: "say\thello"},
		{name: "escape stripped", input: "look\x1b[31m", want: "look[31m"},
		{name: "bell and null", input: "x\x07y\x00z", want: "xyz"},
		{name: "too large", input: strings.Repeat("a", 17), err: ErrInputTooLarge},
		{name: "invalid utf8", input: "\xff\xfe", err: ErrInvalidUTF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeLine(tt.input, 16)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeLine_NoLimit(t *testing.T) {
	got, err := SanitizeLine(strings.Repeat("a", DefaultMaxInput+1), 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultMaxInput+1)
}
