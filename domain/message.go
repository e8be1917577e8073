// Package domain contains core concepts of the chat log.
// This file defines Message records and their size rule.
// Messages are immutable and never leave the log as values.
package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MaxMessageLen is the largest content a single message keeps.
	MaxMessageLen = 255
	// MaxEntries is how many messages the log retains before evicting the oldest.
	MaxEntries = 255
)

// Message represents one appended record.
type Message struct {
	ID        uuid.UUID // diagnostics only
	Seq       uint64
	Content   []byte
	CreatedAt time.Time
}

// newMessage copies at most maxLen bytes of content. The second result
// reports whether anything was dropped.
func newMessage(content []byte, maxLen int) (Message, bool) {
	n := len(content)
	truncated := n > maxLen
	if truncated {
		n = maxLen
	}
	buf := make([]byte, n)
	copy(buf, content[:n])
	return Message{
		ID:        uuid.New(),
		Content:   buf,
		CreatedAt: time.Now().UTC(),
	}, truncated
}
