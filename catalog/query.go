// Package catalog provides stateless query operations over loaded
// catalog entries: pagination, episode neighbor lookup and VIP-gated
// visibility.
package catalog

import "github.com/anikatalog/anime-catalog-bot/model"

// Page is one slice of a paginated listing. Start and End are 1-based
// positions of the slice within the full listing, for display.
type Page struct {
	Items      []model.Anime
	Number     int
	TotalPages int
	Total      int
	Start      int
	End        int
	HasPrev    bool
	HasNext    bool
}

// Empty reports whether the underlying listing had no entries at all.
func (p Page) Empty() bool {
	return p.Total == 0
}

// Paginate slices entries into pages of pageSize, clamping page into
// [1, totalPages]. An empty input yields an explicit empty page rather
// than an out-of-range slice.
func Paginate(entries []model.Anime, pageSize, page int) Page {
	if len(entries) == 0 {
		return Page{Number: 1, TotalPages: 1}
	}
	if pageSize < 1 {
		pageSize = 1
	}

	totalPages := (len(entries) + pageSize - 1) / pageSize
	if page < 1 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(entries) {
		end = len(entries)
	}

	return Page{
		Items:      entries[start:end],
		Number:     page,
		TotalPages: totalPages,
		Total:      len(entries),
		Start:      start + 1,
		End:        end,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// Neighbors returns the episodes adjacent to the given number: prev is
// the greatest number strictly below it, next the smallest strictly
// above. Either may be absent.
func Neighbors(anime model.Anime, number int) (prev, next *model.Episode) {
	for i := range anime.Episodes {
		ep := &anime.Episodes[i]
		if ep.Number < number && (prev == nil || ep.Number > prev.Number) {
			prev = ep
		}
		if ep.Number > number && (next == nil || ep.Number < next.Number) {
			next = ep
		}
	}
	return prev, next
}

// Visible reports whether the requester may watch the anime's
// episodes. Non-viewable episodes stay listed but their action routes
// to the VIP info surface instead of playback.
func Visible(anime model.Anime, requesterVIP bool) bool {
	return !anime.VIP || requesterVIP
}
