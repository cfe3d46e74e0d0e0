package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Completer is the session's outbound port: one user turn in, one assistant
// reply out. Implementations must be safe for use from a single session.
type Completer interface {
	Complete(ctx context.Context, text string, files []Attachment) (string, error)
}

// ErrPending is returned when an operation is rejected because a submission
// is still in flight.
var ErrPending = errors.New("chat: submission already in flight")

// GatewayFailure is the single user-visible error for any failed gateway
// round trip. The cause carries diagnostics; the message is what the
// presentation layer shows.
type GatewayFailure struct {
	Cause error
}

func (e *GatewayFailure) Error() string {
	return "Failed to get response"
}

func (e *GatewayFailure) Unwrap() error {
	return e.Cause
}

// Session owns one user's conversation state: the ordered message log, the
// pending flag and the accumulated history entries. At most one gateway call
// is in flight at a time; the pending flag is the sole serializing point.
type Session struct {
	id        string
	completer Completer
	now       func() time.Time

	mu      sync.Mutex
	nextID  int64
	log     []Message
	history []HistoryEntry
	pending bool
}

// NewSession builds a session around the given completer using the wall
// clock.
func NewSession(completer Completer) *Session {
	return NewSessionWithClock(completer, time.Now)
}

// NewSessionWithClock injects the clock used for message and history
// timestamps, which keeps time-bucket behavior testable.
func NewSessionWithClock(completer Completer, now func() time.Time) *Session {
	return &Session{
		id:        uuid.NewString(),
		completer: completer,
		now:       now,
	}
}

// ID returns the session's identifier.
func (s *Session) ID() string {
	return s.id
}

// Submit runs one user turn: it appends the user message and a history
// entry, calls the completer and, on success, appends the assistant reply.
//
// An empty submission (whitespace-only content, no attachments) is a no-op
// with no side effects. A submission while another is in flight returns
// ErrPending. On gateway failure the log keeps the user message, no
// assistant message is appended and the returned error is a *GatewayFailure.
func (s *Session) Submit(ctx context.Context, content string, files []Attachment) (*Message, error) {
	if strings.TrimSpace(content) == "" && len(files) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return nil, ErrPending
	}

	createdAt := s.now()
	s.nextID++
	userMsg := Message{
		ID:          s.nextID,
		Role:        RoleUser,
		Content:     content,
		Attachments: append([]Attachment(nil), files...),
		CreatedAt:   createdAt,
	}
	s.log = append(s.log, userMsg)

	s.nextID++
	s.history = append(s.history, HistoryEntry{
		ID:          s.nextID,
		SummaryText: content,
		CreatedAt:   createdAt,
	})

	s.pending = true
	s.mu.Unlock()

	// pending must clear on every exit path, including panics in the
	// completer.
	defer func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
	}()

	reply, err := s.completer.Complete(ctx, content, userMsg.Attachments)
	if err != nil {
		return nil, &GatewayFailure{Cause: err}
	}

	s.mu.Lock()
	s.nextID++
	assistantMsg := Message{
		ID:        s.nextID,
		Role:      RoleAssistant,
		Content:   reply,
		CreatedAt: s.now(),
	}
	s.log = append(s.log, assistantMsg)
	s.mu.Unlock()

	return &assistantMsg, nil
}

// Reset clears the message log and starts a new chat. History entries
// survive resets. Reset is rejected with ErrPending while a submission is in
// flight, so a stale gateway reply can never land in a fresh log.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return ErrPending
	}
	s.log = nil
	return nil
}

// Pending reports whether a gateway call is in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Log returns a copy of the message log, oldest first.
func (s *Session) Log() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.log))
	copy(out, s.log)
	return out
}

// History returns a copy of all history entries in insertion order.
func (s *Session) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)
	return out
}

// HistoryBuckets partitions the history entries relative to now. The caller
// supplies now so rendering and tests control the reference moment.
func (s *Session) HistoryBuckets(now time.Time) Buckets {
	return PartitionHistory(s.History(), now)
}
