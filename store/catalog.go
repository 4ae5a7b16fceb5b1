// Package store persists the catalog and user registry as two flat
// JSON documents, read and rewritten wholesale on every operation.
package store

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/anikatalog/anime-catalog-bot/model"
)

// animeIDPrefix is the fixed 3-letter prefix of generated ids.
const animeIDPrefix = "ANM"

// CatalogStore is the file-backed Catalog implementation. The mutex
// serializes individual operations within this process; it does not
// make GenerateID+Insert atomic as a pair.
type CatalogStore struct {
	doc *documentFile
	mu  sync.Mutex
}

// NewCatalogStore creates a catalog store over the given document path.
func NewCatalogStore(cfg Config) *CatalogStore {
	return &CatalogStore{doc: newDocumentFile(cfg.CatalogFile)}
}

func (s *CatalogStore) loadDocument() (model.CatalogDocument, error) {
	var doc model.CatalogDocument
	if err := s.doc.load(&doc); err != nil {
		return doc, err
	}
	return doc, nil
}

// GenerateID returns prefix + zero-padded next sequence number, derived
// from the last entry in creation order, or sequence 1 for an empty
// catalog.
func (s *CatalogStore) GenerateID() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument()
	if err != nil {
		return "", err
	}
	if len(doc.Animes) == 0 {
		return fmt.Sprintf("%s%03d", animeIDPrefix, 1), nil
	}

	lastID := doc.Animes[len(doc.Animes)-1].ID
	num, err := strconv.Atoi(strings.TrimPrefix(lastID, animeIDPrefix))
	if err != nil {
		return "", fmt.Errorf("malformed anime id %q: %w", lastID, err)
	}
	return fmt.Sprintf("%s%03d", animeIDPrefix, num+1), nil
}

// Insert appends the entry, rejecting duplicate ids.
func (s *CatalogStore) Insert(anime model.Anime) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument()
	if err != nil {
		return err
	}
	for _, a := range doc.Animes {
		if a.ID == anime.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, anime.ID)
		}
	}

	doc.Animes = append(doc.Animes, anime)
	if err := s.doc.save(doc); err != nil {
		return err
	}
	log.Info().Str("anime_id", anime.ID).Str("name", anime.Name).Msg("Anime added to catalog")
	return nil
}

// DeleteByID removes the first entry with the given id.
func (s *CatalogStore) DeleteByID(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument()
	if err != nil {
		return false, err
	}
	for i, a := range doc.Animes {
		if a.ID == id {
			doc.Animes = append(doc.Animes[:i], doc.Animes[i+1:]...)
			if err := s.doc.save(doc); err != nil {
				return false, err
			}
			log.Info().Str("anime_id", id).Msg("Anime deleted from catalog")
			return true, nil
		}
	}
	return false, nil
}

// FindByID returns the first entry with the given id.
func (s *CatalogStore) FindByID(id string) (model.Anime, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument()
	if err != nil {
		return model.Anime{}, false, err
	}
	for _, a := range doc.Animes {
		if a.ID == id {
			return a, true, nil
		}
	}
	return model.Anime{}, false, nil
}

// FindByCode returns the first entry with the given lookup code.
func (s *CatalogStore) FindByCode(code string) (model.Anime, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument()
	if err != nil {
		return model.Anime{}, false, err
	}
	for _, a := range doc.Animes {
		if a.Code == code {
			return a, true, nil
		}
	}
	return model.Anime{}, false, nil
}

// UpsertEpisode replaces the episode with the same number or inserts a
// new one, keeping episodes sorted ascending by number.
func (s *CatalogStore) UpsertEpisode(animeID string, number int, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument()
	if err != nil {
		return err
	}
	for i := range doc.Animes {
		if doc.Animes[i].ID != animeID {
			continue
		}

		anime := &doc.Animes[i]
		replaced := false
		for j := range anime.Episodes {
			if anime.Episodes[j].Number == number {
				anime.Episodes[j].URL = url
				replaced = true
				break
			}
		}
		if !replaced {
			anime.Episodes = append(anime.Episodes, model.Episode{Number: number, URL: url})
			sort.Slice(anime.Episodes, func(a, b int) bool {
				return anime.Episodes[a].Number < anime.Episodes[b].Number
			})
		}

		if err := s.doc.save(doc); err != nil {
			return err
		}
		log.Info().Str("anime_id", animeID).Int("episode", number).Bool("replaced", replaced).Msg("Episode upserted")
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotFound, animeID)
}

// Search matches by exact id, exact code or name substring, all
// case-insensitive, preserving catalog order.
func (s *CatalogStore) Search(query string) ([]model.Anime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument()
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var results []model.Anime
	for _, a := range doc.Animes {
		if q == strings.ToLower(a.ID) ||
			q == strings.ToLower(a.Code) ||
			strings.Contains(strings.ToLower(a.Name), q) {
			results = append(results, a)
		}
	}
	return results, nil
}

// List returns all entries in catalog order.
func (s *CatalogStore) List() ([]model.Anime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.loadDocument()
	if err != nil {
		return nil, err
	}
	return doc.Animes, nil
}
