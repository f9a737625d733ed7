package sse

import (
	"bytes"
	"errors"
	"sync"
)

// memorySink is a test double for the outbound stream: it records every
// framed write and counts flushes, and can be armed to fail writes.
type memorySink struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	flushes int
	failing bool
}

func (s *memorySink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return 0, errors.New("broken pipe")
	}
	return s.buf.Write(p)
}

func (s *memorySink) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushes++
}

func (s *memorySink) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = true
}

func (s *memorySink) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func (s *memorySink) Flushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flushes
}
