package cli

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxInput bounds a line sent to the game.
const DefaultMaxInput = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeLine checks a line of game input and strips control characters,
// so that escape sequences typed or pasted at the prompt never reach the
// interpreter's terminal.
func SanitizeLine(line string, limit int) (string, error) {
	if limit > 0 && len(line) > limit {
		// Rejected rather than truncated; half a command is worse than none.
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(line), limit)
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}

	// Fast path: if no control chars, return as is.
	if strings.IndexFunc(line, isUnsafeControl) < 0 {
		return line, nil
	}
	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		if !isUnsafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

func isUnsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\t'
}
