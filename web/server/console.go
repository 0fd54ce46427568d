package server

import (
	"regexp"
	"strings"
	"sync"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// Console keeps the most recent log lines for the web console. It is an
// io.Writer so it can be installed as a log sink.
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
	next     int
	full     bool
	partial  strings.Builder
}

// NewConsole creates a console holding up to capacity lines
func NewConsole(capacity int) *Console {
	return &Console{messages: make([]ConsoleMessage, max(capacity, 1))}
}

// Write records each complete line in p with terminal colors removed. A
// trailing partial line is held until its newline arrives.
func (c *Console) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.partial.Write(p)
	text := c.partial.String()
	lines := strings.Split(text, "\n")
	c.partial.Reset()
	c.partial.WriteString(lines[len(lines)-1])

	now := time.Now()
	for _, line := range lines[:len(lines)-1] {
		line = ansiEscape.ReplaceAllString(line, "")
		if line == "" {
			continue
		}
		c.messages[c.next] = ConsoleMessage{Message: line, Timestamp: now}
		c.next = (c.next + 1) % len(c.messages)
		if c.next == 0 {
			c.full = true
		}
	}
	return len(p), nil
}

// Messages returns the retained lines, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.full {
		return append([]ConsoleMessage{}, c.messages[:c.next]...)
	}
	out := make([]ConsoleMessage, 0, len(c.messages))
	out = append(out, c.messages[c.next:]...)
	return append(out, c.messages[:c.next]...)
}
