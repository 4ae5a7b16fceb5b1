package store

import "github.com/anikatalog/anime-catalog-bot/model"

// Catalog defines the catalog store operations regardless of the
// underlying storage implementation.
type Catalog interface {
	// GenerateID returns the next anime id in sequence. It reads the
	// current document and does not reserve the id: GenerateID followed
	// by Insert is a non-atomic read-modify-write, acceptable because
	// catalog mutations are rare admin actions serialized by the dialog.
	// Insert's duplicate check is the backstop if two ever race.
	GenerateID() (string, error)

	// Insert appends a new entry. Returns ErrDuplicateID if an entry
	// with the same id already exists.
	Insert(anime model.Anime) error

	// DeleteByID removes the entry with the given id. The boolean
	// reports whether anything was removed; not-found is not an error.
	DeleteByID(id string) (bool, error)

	// FindByID and FindByCode return the first match. Absence is a
	// valid outcome reported through the boolean, not an error.
	FindByID(id string) (model.Anime, bool, error)
	FindByCode(code string) (model.Anime, bool, error)

	// UpsertEpisode replaces the episode with the same number or
	// inserts a new one, keeping the list sorted ascending by number.
	// Returns ErrNotFound if the anime id is unknown.
	UpsertEpisode(animeID string, number int, url string) error

	// Search matches case-insensitively: id equal, code equal, or name
	// containing the query as a substring. Catalog order is preserved.
	Search(query string) ([]model.Anime, error)

	// List returns a snapshot of all entries in catalog order.
	List() ([]model.Anime, error)
}

// Users defines the user registry operations.
type Users interface {
	// RegisterIfAbsent records a user on first contact. Returns true if
	// a new record was created; re-registration is a no-op and never
	// overwrites the stored names.
	RegisterIfAbsent(id int64, username, firstName string) (bool, error)

	// ToggleVIP flips the user's VIP flag and returns the new value.
	// Unknown users are a no-op returning false.
	ToggleVIP(id int64) (bool, error)

	// IsVIP reports the VIP flag; false for unknown users.
	IsVIP(id int64) (bool, error)

	// List returns a snapshot of all known users.
	List() ([]model.User, error)
}

// Config holds the storage locations for the file-backed stores.
type Config struct {
	CatalogFile string
	UsersFile   string
}
