// Package model defines the catalog and user entities persisted by the bot.
package model

import "time"

// Anime is a single catalog entry. IDs follow the "ANM" + zero-padded
// sequence format (ANM001, ANM002, ...). Code is a free-form lowercase
// lookup key chosen by the admin and is not guaranteed unique.
type Anime struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Code        string    `json:"code"`
	ImageID     string    `json:"image_id"`
	VideoID     string    `json:"video_id"`
	VIP         bool      `json:"vip"`
	Episodes    []Episode `json:"episodes"`
}

// Episode is one entry in an anime's episode list. Number is unique
// within its anime and the list is kept sorted ascending by Number.
// URL holds the Telegram file_id of the episode video.
type Episode struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// EpisodeByNumber returns the episode with the given number, if present.
func (a *Anime) EpisodeByNumber(number int) (Episode, bool) {
	for _, ep := range a.Episodes {
		if ep.Number == number {
			return ep, true
		}
	}
	return Episode{}, false
}

// User is a bot user observed at least once. VIP defaults to false and
// is toggled by admins. Username and FirstName are captured on first
// contact and never overwritten.
type User struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	JoinedDate time.Time `json:"joined_date"`
	VIP        bool      `json:"vip"`
}

// DisplayName returns the best human-readable name for the user.
func (u User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return "Foydalanuvchi"
}

// CatalogDocument is the full persisted catalog: a single object with
// one named array, rewritten wholesale on every mutation.
type CatalogDocument struct {
	Animes []Anime `json:"animes"`
}

// UserDocument is the full persisted user registry.
type UserDocument struct {
	Users []User `json:"users"`
}
