package tui

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"
)

// LineSource reads lines from an input stream on a single goroutine and hands
// them out one at a time. The command loop and the prompts that commands open
// share one LineSource, so whoever is waiting gets the next line.
type LineSource struct {
	reader    *bufio.Reader
	lines     chan string
	err       error
	startOnce sync.Once
	mu        sync.Mutex
}

// NewLineSource creates a source over r. Reading starts on first use.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{
		reader: bufio.NewReader(r),
		lines:  make(chan string),
	}
}

func (s *LineSource) initPump() {
	s.startOnce.Do(func() {
		go s.pump()
	})
}

func (s *LineSource) pump() {
	for {
		text, err := s.reader.ReadString('\n')

		// If we got text (even with EOF), send it
		if text != "" {
			s.lines <- strings.TrimRight(text, "\r\n")
		}

		if err != nil {
			s.mu.Lock()
			s.err = err
			s.mu.Unlock()
			close(s.lines)
			return
		}
	}
}

// ReadLine returns the next line without its line ending. At the end of the
// input it returns io.EOF, or the read error that ended it.
func (s *LineSource) ReadLine(ctx context.Context) (string, error) {
	s.initPump()

	select {
	case line, ok := <-s.lines:
		if !ok {
			s.mu.Lock()
			defer s.mu.Unlock()
			return "", s.err
		}
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
