package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/loftfit-bot/internal/service"
)

// FlowFactory builds a fresh quiz flow for a chat.
type FlowFactory func(chatID int64) *service.QuizFlow

// Session is one chat's quiz plus the bookkeeping around it.
type Session struct {
	ChatID    int64
	MessageID int // message the quiz is rendered into, 0 when none
	Flow      *service.QuizFlow

	mu         sync.Mutex
	lastSeen   time.Time
	resetTimer *time.Timer
}

// SessionStorage keeps one quiz session per chat in memory.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	newFlow  FlowFactory
	now      func() time.Time
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage(newFlow FlowFactory) *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*Session),
		newFlow:  newFlow,
		now:      time.Now,
	}
}

// With runs fn with exclusive access to the chat's session, creating it
// on first use.
func (s *SessionStorage) With(chatID int64, fn func(*Session) error) error {
	sess := s.getOrCreate(chatID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.lastSeen = s.now()
	return fn(sess)
}

// Get returns the chat's session if one exists.
func (s *SessionStorage) Get(chatID int64) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Len returns the number of live sessions.
func (s *SessionStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Delete removes the chat's session.
func (s *SessionStorage) Delete(chatID int64) {
	s.mu.Lock()
	sess, ok := s.sessions[chatID]
	delete(s.sessions, chatID)
	s.mu.Unlock()

	if ok {
		sess.mu.Lock()
		sess.stopTimer()
		sess.mu.Unlock()
	}
}

// ScheduleReset resets the chat's flow once grace has elapsed, unless the
// quiz was reopened in the meantime. A second call replaces the first.
func (s *SessionStorage) ScheduleReset(chatID int64, grace time.Duration) {
	sess, ok := s.Get(chatID)
	if !ok {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.stopTimer()
	sess.resetTimer = time.AfterFunc(grace, func() {
		sess.mu.Lock()
		defer sess.mu.Unlock()

		sess.resetTimer = nil
		if !sess.Flow.IsOpen() {
			sess.Flow.Reset()
			sess.MessageID = 0
		}
	})
}

// Sweep closes and evicts sessions idle for longer than idle.
// It returns the number of evicted sessions.
func (s *SessionStorage) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for chatID, sess := range s.sessions {
		sess.mu.Lock()
		if sess.lastSeen.Before(cutoff) {
			sess.stopTimer()
			sess.Flow.Close()
			delete(s.sessions, chatID)
			evicted++
		}
		sess.mu.Unlock()
	}

	return evicted
}

func (s *SessionStorage) getOrCreate(chatID int64) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[chatID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok = s.sessions[chatID]; ok {
		return sess
	}
	sess = &Session{
		ChatID:   chatID,
		Flow:     s.newFlow(chatID),
		lastSeen: s.now(),
	}
	s.sessions[chatID] = sess
	return sess
}

func (sess *Session) stopTimer() {
	if sess.resetTimer != nil {
		sess.resetTimer.Stop()
		sess.resetTimer = nil
	}
}
