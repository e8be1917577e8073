//go:generate go run go.uber.org/mock/mockgen -source=chat_log_service.go -destination=../mocks/mock_chat_log_service.go -package=mocks
package services

import (
	"context"
	"devchat/domain"
	"devchat/errors"
	"devchat/observability"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
)

type IChatLogService interface {
	Open(ctx context.Context) error
	Close(ctx context.Context) error
	Write(ctx context.Context, offset int64, r io.Reader) (domain.AppendResult, error)
	Read(ctx context.Context, offset int64, limit int) ([]byte, error)
	Clear(ctx context.Context) (int, error)
	Control(ctx context.Context, cmd domain.Command) error
	Stats() domain.Stats
}

// ChatLogService is the boundary between transports and the MessageLog.
// Bytes are copied in from the transport before the log is touched and
// copied out after the log has released its lock.
type ChatLogService struct {
	chatLog  *domain.MessageLog
	metrics  *observability.Metrics
	log      *slog.Logger
	sessions atomic.Int64
}

func NewChatLogService(chatLog *domain.MessageLog, metrics *observability.Metrics, log *slog.Logger) *ChatLogService {
	return &ChatLogService{chatLog: chatLog, metrics: metrics, log: log}
}

func (s *ChatLogService) Open(_ context.Context) error {
	n := s.sessions.Add(1)
	s.metrics.OpenSessions.Set(float64(n))
	s.log.Debug("Opened chat channel", "sessions", n)
	return nil
}

func (s *ChatLogService) Close(_ context.Context) error {
	n := s.sessions.Add(-1)
	s.metrics.OpenSessions.Set(float64(n))
	s.log.Debug("Closing chat channel", "sessions", n)
	return nil
}

// Write appends at most one message read from r. Input beyond the maximum
// message length is left unread and dropped.
func (s *ChatLogService) Write(_ context.Context, offset int64, r io.Reader) (domain.AppendResult, error) {
	if offset != 0 {
		err := fmt.Errorf("%w: write at %d", errors.ErrInvalidOffset, offset)
		s.fail("write", err)
		return domain.AppendResult{}, err
	}

	// One extra byte lets the log tell a full message from a truncated one
	content, err := io.ReadAll(io.LimitReader(r, int64(s.chatLog.MaxMessageLen())+1))
	if err != nil {
		err = fmt.Errorf("%w: %w", errors.ErrTransportFailure, err)
		s.fail("write", err)
		return domain.AppendResult{}, err
	}

	res, err := s.chatLog.Append(offset, content)
	if err != nil {
		s.fail("write", err)
		return domain.AppendResult{}, err
	}

	s.metrics.Appends.Inc()
	if res.Evicted {
		s.metrics.Evictions.Inc()
	}
	if res.Truncated {
		s.metrics.Truncations.Inc()
		s.log.Debug("Message truncated", "message_id", res.ID, "stored", res.Stored)
	}
	s.observe()
	s.log.Debug("Message appended",
		"message_id", res.ID,
		"seq", res.Seq,
		"bytes", res.Stored,
		"count", res.Count,
		"evicted", res.Evicted)
	return res, nil
}

func (s *ChatLogService) Read(_ context.Context, offset int64, limit int) ([]byte, error) {
	buf, err := s.chatLog.ReadAt(offset, limit)
	if err != nil {
		s.fail("read", err)
		return nil, err
	}
	s.metrics.Reads.Inc()
	s.log.Debug("Log read", "offset", offset, "limit", limit, "bytes", len(buf))
	return buf, nil
}

func (s *ChatLogService) Clear(_ context.Context) (int, error) {
	removed := s.chatLog.Clear()
	s.metrics.Clears.Inc()
	s.observe()
	s.log.Info("Chat log cleared", "removed", removed)
	return removed, nil
}

func (s *ChatLogService) Control(ctx context.Context, cmd domain.Command) error {
	if cmd == domain.CommandClear {
		_, err := s.Clear(ctx)
		return err
	}
	err := s.chatLog.Control(cmd)
	if err != nil {
		s.fail("control", err)
		s.log.Warn("Unsupported control command", "command", uint32(cmd))
	}
	return err
}

func (s *ChatLogService) Stats() domain.Stats {
	return s.chatLog.Stats()
}

// Shutdown tears the log down; every retained message is released.
func (s *ChatLogService) Shutdown() {
	removed := s.chatLog.Clear()
	s.observe()
	s.log.Info("Chat log torn down", "released", removed)
}

func (s *ChatLogService) observe() {
	st := s.chatLog.Stats()
	s.metrics.ObserveSize(st.Count, st.Bytes)
}

func (s *ChatLogService) fail(op string, err error) {
	s.metrics.IncrError(op, err)
	s.log.Debug("Operation failed", "op", op, "error", err)
}
