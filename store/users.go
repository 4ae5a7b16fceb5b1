package store

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/anikatalog/anime-catalog-bot/model"
)

// UserStore is the file-backed Users implementation.
type UserStore struct {
	doc *documentFile
	mu  sync.Mutex

	// now is swappable for tests.
	now func() time.Time
}

// NewUserStore creates a user registry over the given document path.
func NewUserStore(cfg Config) *UserStore {
	return &UserStore{
		doc: newDocumentFile(cfg.UsersFile),
		now: time.Now,
	}
}

func (s *UserStore) loadDocument() (model.UserDocument, error) {
	var doc model.UserDocument
	if err := s.doc.load(&doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// RegisterIfAbsent records a user on first contact. First write wins:
// the stored names are never overwritten on later calls.
func (s *UserStore) RegisterIfAbsent(id int64, username, firstName string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument()
	if err != nil {
		return false, err
	}
	for _, u := range doc.Users {
		if u.ID == id {
			return false, nil
		}
	}

	doc.Users = append(doc.Users, model.User{
		ID:         id,
		Username:   username,
		FirstName:  firstName,
		JoinedDate: s.now(),
		VIP:        false,
	})
	if err := s.doc.save(doc); err != nil {
		return false, err
	}
	log.Info().Int64("user_id", id).Str("first_name", firstName).Msg("New user registered")
	return true, nil
}

// ToggleVIP flips the user's VIP flag and returns the new value.
func (s *UserStore) ToggleVIP(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument()
	if err != nil {
		return false, err
	}
	for i := range doc.Users {
		if doc.Users[i].ID == id {
			doc.Users[i].VIP = !doc.Users[i].VIP
			if err := s.doc.save(doc); err != nil {
				return false, err
			}
			log.Info().Int64("user_id", id).Bool("vip", doc.Users[i].VIP).Msg("User VIP status toggled")
			return doc.Users[i].VIP, nil
		}
	}
	return false, nil
}

// IsVIP reports the VIP flag, false for unknown users.
func (s *UserStore) IsVIP(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument()
	if err != nil {
		return false, err
	}
	for _, u := range doc.Users {
		if u.ID == id {
			return u.VIP, nil
		}
	}
	return false, nil
}

// List returns all known users in registration order.
func (s *UserStore) List() ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument()
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}
