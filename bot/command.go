package bot

import (
	"strconv"
	"strings"
)

// Action is the closed set of operations a callback token can name.
// Tokens are parsed once here, at the transport boundary, instead of
// being re-split at each call site.
type Action int

const (
	ActionUnknown Action = iota
	ActionSearch
	ActionAnimeList
	ActionVIPInfo
	ActionAdminPanel
	ActionBackToMain
	ActionBackToAdmin
	ActionShowAnime
	ActionShowEpisode
	ActionPage
	ActionAddAnime
	ActionDeleteAnime
	ActionDeleteConfirm
	ActionAddEpisode
	ActionAddEpisodeTo
	ActionManageVIP
	ActionToggleVIP
)

// Command is a parsed callback token.
type Command struct {
	Action  Action
	AnimeID string
	Episode int
	Page    int
	UserID  int64
}

// Callback token vocabulary. The literal strings are part of the wire
// format baked into previously sent keyboards, so they stay stable.
const (
	cbSearch        = "search"
	cbAnimeList     = "anime_list"
	cbVIPInfo       = "vip_info"
	cbAdminPanel    = "admin_panel"
	cbBackToMain    = "back_to_main"
	cbBackToAdmin   = "back_to_admin"
	cbAddAnime      = "add_anime"
	cbDeleteAnime   = "delete_anime"
	cbAddEpisode    = "add_episode"
	cbManageVIP     = "manage_vip"
	cbAnimePrefix   = "anime_"
	cbEpisodePrefix = "episode_"
	cbPagePrefix    = "page_"
	cbDeletePrefix  = "delete_confirm_"
	cbAddEpToPrefix = "add_episode_to_"
	cbToggleVIPPre  = "toggle_vip_"
)

// ParseCallback classifies a raw callback token. Unknown or malformed
// tokens map to ActionUnknown; callers log and ignore those.
func ParseCallback(data string) Command {
	switch data {
	case cbSearch:
		return Command{Action: ActionSearch}
	case cbAnimeList:
		return Command{Action: ActionAnimeList}
	case cbVIPInfo:
		return Command{Action: ActionVIPInfo}
	case cbAdminPanel:
		return Command{Action: ActionAdminPanel}
	case cbBackToMain:
		return Command{Action: ActionBackToMain}
	case cbBackToAdmin:
		return Command{Action: ActionBackToAdmin}
	case cbAddAnime:
		return Command{Action: ActionAddAnime}
	case cbDeleteAnime:
		return Command{Action: ActionDeleteAnime}
	case cbAddEpisode:
		return Command{Action: ActionAddEpisode}
	case cbManageVIP:
		return Command{Action: ActionManageVIP}
	}

	switch {
	case strings.HasPrefix(data, cbAddEpToPrefix):
		id := strings.TrimPrefix(data, cbAddEpToPrefix)
		if id == "" {
			return Command{}
		}
		return Command{Action: ActionAddEpisodeTo, AnimeID: id}

	case strings.HasPrefix(data, cbDeletePrefix):
		id := strings.TrimPrefix(data, cbDeletePrefix)
		if id == "" {
			return Command{}
		}
		return Command{Action: ActionDeleteConfirm, AnimeID: id}

	case strings.HasPrefix(data, cbToggleVIPPre):
		userID, err := strconv.ParseInt(strings.TrimPrefix(data, cbToggleVIPPre), 10, 64)
		if err != nil {
			return Command{}
		}
		return Command{Action: ActionToggleVIP, UserID: userID}

	case strings.HasPrefix(data, cbEpisodePrefix):
		// episode_<animeID>_<number>
		rest := strings.TrimPrefix(data, cbEpisodePrefix)
		sep := strings.LastIndex(rest, "_")
		if sep <= 0 {
			return Command{}
		}
		number, err := strconv.Atoi(rest[sep+1:])
		if err != nil {
			return Command{}
		}
		return Command{Action: ActionShowEpisode, AnimeID: rest[:sep], Episode: number}

	case strings.HasPrefix(data, cbPagePrefix):
		page, err := strconv.Atoi(strings.TrimPrefix(data, cbPagePrefix))
		if err != nil {
			return Command{}
		}
		return Command{Action: ActionPage, Page: page}

	case strings.HasPrefix(data, cbAnimePrefix):
		id := strings.TrimPrefix(data, cbAnimePrefix)
		if id == "" {
			return Command{}
		}
		return Command{Action: ActionShowAnime, AnimeID: id}
	}

	return Command{}
}
