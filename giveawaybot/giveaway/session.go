package giveaway

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/disgoorg/snowflake/v2"
)

// Session is one actor's live configuration state: the draft, the menu
// message it is rendered on, and the field currently awaiting a value.
type Session struct {
	Draft         *Draft
	MenuChannelID snowflake.ID
	MenuMessageID snowflake.ID

	pending    Field
	hasPending bool
	updatedAt  time.Time
}

// SessionStore owns the per-actor configuration sessions. Exactly one
// session may exist per actor at a time; sessions are evicted on commit,
// cancel or idle timeout. Pending-value state binds to the actor identity,
// never to a channel, so a reply anywhere satisfies the pending field.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[snowflake.ID]*Session
	timeout  time.Duration
}

// NewSessionStore builds a store evicting sessions idle longer than timeout.
func NewSessionStore(timeout time.Duration) *SessionStore {
	if timeout <= 0 {
		timeout = config.SessionTimeout
	}
	return &SessionStore{
		sessions: make(map[snowflake.ID]*Session),
		timeout:  timeout,
	}
}

// GetOrCreate returns the actor's session, creating one around a fresh draft
// when absent. The second return reports whether it was created.
func (s *SessionStore) GetOrCreate(actor snowflake.ID, create func() *Draft) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[actor]; ok {
		sess.updatedAt = time.Now()
		return sess, false
	}
	sess := &Session{Draft: create(), updatedAt: time.Now()}
	s.sessions[actor] = sess
	return sess, true
}

// Get returns the actor's session if one exists.
func (s *SessionStore) Get(actor snowflake.ID) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[actor]
	return sess, ok
}

// Evict removes the actor's session and reports whether one existed.
func (s *SessionStore) Evict(actor snowflake.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[actor]
	delete(s.sessions, actor)
	return ok
}

// Await marks the session as waiting for a value for the given field.
func (s *SessionStore) Await(actor snowflake.ID, f Field) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[actor]
	if !ok {
		return false
	}
	sess.pending = f
	sess.hasPending = true
	sess.updatedAt = time.Now()
	return true
}

// TakePending returns and clears the awaited field. The pending state is
// consumed whether or not the value turns out to be valid.
func (s *SessionStore) TakePending(actor snowflake.ID) (Field, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[actor]
	if !ok || !sess.hasPending {
		return 0, false
	}
	f := sess.pending
	sess.hasPending = false
	sess.updatedAt = time.Now()
	return f, true
}

// HasPending reports whether the actor's next message is a field value.
func (s *SessionStore) HasPending(actor snowflake.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[actor]
	return ok && sess.hasPending
}

// BindMenu records which message renders the session's configuration menu.
func (s *SessionStore) BindMenu(actor, channelID, messageID snowflake.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[actor]; ok {
		sess.MenuChannelID = channelID
		sess.MenuMessageID = messageID
		sess.updatedAt = time.Now()
	}
}

// OwnsMenu reports whether the given menu message belongs to the actor's
// session, mirroring message-ownership checks on interactive components.
func (s *SessionStore) OwnsMenu(actor, messageID snowflake.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[actor]
	return ok && sess.MenuMessageID == messageID
}

func (s *SessionStore) evictIdle() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for actor, sess := range s.sessions {
		if now.Sub(sess.updatedAt) > s.timeout {
			delete(s.sessions, actor)
			slog.Info("Evicted idle giveaway configuration",
				slog.String("user_id", actor.String()))
		}
	}
}

// StartCleanupRoutine evicts idle sessions on a ticker until ctx ends.
func (s *SessionStore) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(config.SessionCleanupInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.evictIdle()
			}
		}
	}()
}
