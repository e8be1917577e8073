package domain

import (
	"devchat/errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const nilIndex = -1

// State is the observable shape of the log.
type State int

const (
	StateEmpty State = iota
	StateNonEmpty
)

func (s State) String() string {
	if s == StateEmpty {
		return "empty"
	}
	return "non-empty"
}

// entry is one arena slot. prev points to the older neighbour, next to the newer one.
type entry struct {
	message Message
	prev    int
	next    int
}

// AppendResult describes what an Append did to the log.
type AppendResult struct {
	ID        uuid.UUID
	Seq       uint64
	Stored    int
	Truncated bool
	Evicted   bool
	Count     int
}

// Stats is a point-in-time view of the log counters.
type Stats struct {
	State         State
	Count         int
	Bytes         int
	Capacity      int
	MaxMessageLen int
	Appended      uint64
	Evicted       uint64
	Truncated     uint64
	Clears        uint64
}

// MessageLog is a bounded, append-ordered log of short messages.
// Entries live in an arena addressed by index and are chained from the
// tail (oldest) to the head (newest). A single mutex covers the arena,
// the links and the counters.
type MessageLog struct {
	mu      sync.Mutex
	entries []entry
	free    []int
	head    int
	tail    int
	count   int
	size    int

	maxEntries    int
	maxMessageLen int

	seq       uint64
	evicted   uint64
	truncated uint64
	clears    uint64
}

type Option func(*MessageLog)

// WithMaxEntries overrides MaxEntries. Values below 1 are ignored.
func WithMaxEntries(n int) Option {
	return func(l *MessageLog) {
		if n > 0 {
			l.maxEntries = n
		}
	}
}

// WithMaxMessageLen overrides MaxMessageLen. Values below 1 are ignored.
func WithMaxMessageLen(n int) Option {
	return func(l *MessageLog) {
		if n > 0 {
			l.maxMessageLen = n
		}
	}
}

func NewMessageLog(opts ...Option) *MessageLog {
	l := &MessageLog{
		head:          nilIndex,
		tail:          nilIndex,
		maxEntries:    MaxEntries,
		maxMessageLen: MaxMessageLen,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.entries = make([]entry, 0, l.maxEntries)
	return l
}

func (l *MessageLog) MaxEntries() int    { return l.maxEntries }
func (l *MessageLog) MaxMessageLen() int { return l.maxMessageLen }

// Append stores content as the newest message. Writes are only accepted at
// offset 0; anything past MaxMessageLen is dropped without error. When the
// log is full the oldest message is evicted first.
func (l *MessageLog) Append(offset int64, content []byte) (AppendResult, error) {
	if offset != 0 {
		return AppendResult{}, fmt.Errorf("%w: write at %d", errors.ErrInvalidOffset, offset)
	}
	msg, truncated := newMessage(content, l.maxMessageLen)

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := false
	if l.count >= l.maxEntries {
		l.evictTail()
		evicted = true
	}
	l.seq++
	msg.Seq = l.seq
	l.pushHead(msg)
	if truncated {
		l.truncated++
	}

	return AppendResult{
		ID:        msg.ID,
		Seq:       msg.Seq,
		Stored:    len(msg.Content),
		Truncated: truncated,
		Evicted:   evicted,
		Count:     l.count,
	}, nil
}

// ReadAll returns every message, oldest first, with no separator.
// An empty log yields ErrNoContent.
func (l *MessageLog) ReadAll() ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.count == 0 {
		return nil, errors.ErrNoContent
	}
	return l.consolidate(), nil
}

// ReadAt returns the window [offset, offset+limit) of the consolidated log.
// A negative limit means no limit. Reading at or past the end yields zero
// bytes and no error.
func (l *MessageLog) ReadAt(offset int64, limit int) ([]byte, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: read at %d", errors.ErrInvalidOffset, offset)
	}
	buf, err := l.ReadAll()
	if err != nil {
		return nil, err
	}
	if offset >= int64(len(buf)) || limit == 0 {
		return []byte{}, nil
	}
	length := uint(len(buf))
	if limit > 0 {
		length = uint(limit)
	}
	return lo.Subset(buf, int(offset), length), nil
}

// Clear drops every message and resets the count. It returns how many
// messages were removed.
func (l *MessageLog) Clear() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := l.count
	clear(l.entries)
	l.entries = l.entries[:0]
	l.free = l.free[:0]
	l.head = nilIndex
	l.tail = nilIndex
	l.count = 0
	l.size = 0
	l.clears++
	return removed
}

// Control executes an out-of-band command.
func (l *MessageLog) Control(cmd Command) error {
	switch cmd {
	case CommandClear:
		l.Clear()
		return nil
	default:
		return fmt.Errorf("%w: %s", errors.ErrUnsupportedCommand, cmd)
	}
}

func (l *MessageLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

func (l *MessageLog) State() State {
	if l.Len() == 0 {
		return StateEmpty
	}
	return StateNonEmpty
}

func (l *MessageLog) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	state := StateNonEmpty
	if l.count == 0 {
		state = StateEmpty
	}
	return Stats{
		State:         state,
		Count:         l.count,
		Bytes:         l.size,
		Capacity:      l.maxEntries,
		MaxMessageLen: l.maxMessageLen,
		Appended:      l.seq,
		Evicted:       l.evicted,
		Truncated:     l.truncated,
		Clears:        l.clears,
	}
}

// consolidate must be called with mu held.
func (l *MessageLog) consolidate() []byte {
	buf := make([]byte, 0, l.size)
	for i := l.tail; i != nilIndex; i = l.entries[i].next {
		buf = append(buf, l.entries[i].message.Content...)
	}
	return buf
}

// pushHead must be called with mu held.
func (l *MessageLog) pushHead(msg Message) {
	idx := l.alloc()
	l.entries[idx] = entry{message: msg, prev: l.head, next: nilIndex}
	if l.head != nilIndex {
		l.entries[l.head].next = idx
	} else {
		l.tail = idx
	}
	l.head = idx
	l.count++
	l.size += len(msg.Content)
}

// evictTail unlinks the oldest entry; its newer neighbour becomes the tail.
// Must be called with mu held.
func (l *MessageLog) evictTail() {
	idx := l.tail
	if idx == nilIndex {
		return
	}
	next := l.entries[idx].next
	if next == nilIndex {
		l.head = nilIndex
	} else {
		l.entries[next].prev = nilIndex
	}
	l.tail = next
	l.size -= len(l.entries[idx].message.Content)
	l.entries[idx] = entry{prev: nilIndex, next: nilIndex}
	l.free = append(l.free, idx)
	l.count--
	l.evicted++
}

func (l *MessageLog) alloc() int {
	if n := len(l.free); n > 0 {
		idx := l.free[n-1]
		l.free = l.free[:n-1]
		return idx
	}
	l.entries = append(l.entries, entry{prev: nilIndex, next: nilIndex})
	return len(l.entries) - 1
}
