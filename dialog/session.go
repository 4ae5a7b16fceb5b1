// Package dialog implements the per-conversation state machine that
// collects multi-field records (new anime, new episode, search query)
// across several inbound messages.
package dialog

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Kind identifies which flow a session belongs to.
type Kind int

const (
	KindAddAnime Kind = iota
	KindAddEpisode
	KindSearch
)

func (k Kind) String() string {
	switch k {
	case KindAddAnime:
		return "add_anime"
	case KindAddEpisode:
		return "add_episode"
	case KindSearch:
		return "search"
	}
	return "unknown"
}

// Step is the current state within a flow.
type Step int

const (
	StepName Step = iota
	StepDescription
	StepCode
	StepImage
	StepVideo
	StepEpisodeNumber
	StepEpisodeVideo
	StepSearchQuery
)

// Session holds the partially-filled field bag for one conversation.
// A session exists only between its entry point and its terminal or
// cancel transition.
type Session struct {
	ID     string
	ChatID int64
	Kind   Kind
	Step   Step

	// AddAnime fields, filled one step at a time.
	Name        string
	Description string
	Code        string
	ImageID     string
	VideoID     string

	// AddEpisode fields. AnimeID is set at entry, via list selection.
	AnimeID       string
	EpisodeNumber int

	UpdatedAt time.Time
}

// Manager owns all active sessions, at most one per chat. Sessions
// idle longer than the timeout are swept lazily on access; the timeout
// is a deliberate addition over the observed always-alive behavior.
type Manager struct {
	mu          sync.Mutex
	sessions    map[int64]*Session
	idleTimeout time.Duration
	now         func() time.Time
}

// NewManager creates a session manager. A non-positive idleTimeout
// disables expiry.
func NewManager(idleTimeout time.Duration) *Manager {
	return &Manager{
		sessions:    make(map[int64]*Session),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Start opens a new session for the chat, replacing any active one.
func (m *Manager) Start(chatID int64, kind Kind, step Step) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:        uuid.New().String(),
		ChatID:    chatID,
		Kind:      kind,
		Step:      step,
		UpdatedAt: m.now(),
	}
	m.sessions[chatID] = s
	log.Info().Str("session_id", s.ID).Int64("chat_id", chatID).Str("kind", kind.String()).Msg("Dialog session started")
	return s
}

// StartAddEpisode opens an AddEpisode session targeting the selected
// anime. Selection happens via a button press, not a text step.
func (m *Manager) StartAddEpisode(chatID int64, animeID string) *Session {
	s := m.Start(chatID, KindAddEpisode, StepEpisodeNumber)
	s.AnimeID = animeID
	return s
}

// Get returns the chat's active session, expiring it first if idle too
// long.
func (m *Manager) Get(chatID int64) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return nil, false
	}
	if m.idleTimeout > 0 && m.now().Sub(s.UpdatedAt) > m.idleTimeout {
		delete(m.sessions, chatID)
		log.Info().Str("session_id", s.ID).Int64("chat_id", chatID).Msg("Dialog session expired")
		return nil, false
	}
	return s, true
}

// Touch refreshes the session's idle clock.
func (m *Manager) Touch(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = m.now()
}

// End destroys the chat's session, if any. The boolean reports whether
// one was active.
func (m *Manager) End(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		return false
	}
	delete(m.sessions, chatID)
	log.Info().Str("session_id", s.ID).Int64("chat_id", chatID).Msg("Dialog session ended")
	return true
}
