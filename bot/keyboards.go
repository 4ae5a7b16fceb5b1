package bot

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/anikatalog/anime-catalog-bot/catalog"
	"github.com/anikatalog/anime-catalog-bot/model"
)

func button(text, data string) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(text, data)
}

func backRow(target string) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(button("🔙 Orqaga", target))
}

func mainMenuKeyboard(isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(button("🔍 Anime qidirish", cbSearch)),
		tgbotapi.NewInlineKeyboardRow(button("📋 Animelar ro'yxati", cbAnimeList)),
		tgbotapi.NewInlineKeyboardRow(button("👑 VIP", cbVIPInfo)),
	}
	if isAdmin {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button("⚙️ Admin panel", cbAdminPanel)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func adminPanelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button("➕ Anime qo'shish", cbAddAnime)),
		tgbotapi.NewInlineKeyboardRow(button("🗑️ Anime o'chirish", cbDeleteAnime)),
		tgbotapi.NewInlineKeyboardRow(button("🎬 Epizod qo'shish", cbAddEpisode)),
		tgbotapi.NewInlineKeyboardRow(button("👑 VIP boshqarish", cbManageVIP)),
		backRow(cbBackToMain),
	)
}

func animeListKeyboard(page catalog.Page) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, anime := range page.Items {
		label := fmt.Sprintf("%s (%s)", anime.Name, anime.ID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(label, cbAnimePrefix+anime.ID)))
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page.HasPrev {
		nav = append(nav, button("⬅️ Oldingi", fmt.Sprintf("%s%d", cbPagePrefix, page.Number-1)))
	}
	if page.HasNext {
		nav = append(nav, button("Keyingi ➡️", fmt.Sprintf("%s%d", cbPagePrefix, page.Number+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, backRow(cbBackToMain))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// animeDetailsKeyboard lays episode buttons out in rows of five. On a
// VIP anime, a non-VIP requester sees locked buttons routed to the VIP
// info surface instead of playback.
func animeDetailsKeyboard(anime model.Anime, viewable bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, ep := range anime.Episodes {
		if viewable {
			data := fmt.Sprintf("%s%s_%d", cbEpisodePrefix, anime.ID, ep.Number)
			row = append(row, button(strconv.Itoa(ep.Number), data))
		} else {
			row = append(row, button("🔒 "+strconv.Itoa(ep.Number), cbVIPInfo))
		}
		if len(row) == 5 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, backRow(cbAnimeList))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func episodeNavKeyboard(animeID string, prev, next *model.Episode) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var nav []tgbotapi.InlineKeyboardButton
	if prev != nil {
		nav = append(nav, button("⬅️ Oldingi", fmt.Sprintf("%s%s_%d", cbEpisodePrefix, animeID, prev.Number)))
	}
	if next != nil {
		nav = append(nav, button("Keyingi ➡️", fmt.Sprintf("%s%s_%d", cbEpisodePrefix, animeID, next.Number)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, backRow(cbAnimePrefix+animeID))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func searchResultsKeyboard(results []model.Anime) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, anime := range results {
		label := fmt.Sprintf("%s (%s)", anime.Name, anime.ID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(label, cbAnimePrefix+anime.ID)))
	}
	rows = append(rows, backRow(cbBackToMain))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func deleteListKeyboard(animes []model.Anime) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, anime := range animes {
		label := fmt.Sprintf("🗑️ %s (%s)", anime.Name, anime.ID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(label, cbDeletePrefix+anime.ID)))
	}
	rows = append(rows, backRow(cbBackToAdmin))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func episodeTargetKeyboard(animes []model.Anime) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, anime := range animes {
		label := fmt.Sprintf("%s (%s)", anime.Name, anime.ID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(label, cbAddEpToPrefix+anime.ID)))
	}
	rows = append(rows, backRow(cbBackToAdmin))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func vipListKeyboard(users []model.User) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, u := range users {
		status := "❌ Oddiy"
		if u.VIP {
			status = "✅ VIP"
		}
		label := fmt.Sprintf("%s - %s", u.DisplayName(), status)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button(label, fmt.Sprintf("%s%d", cbToggleVIPPre, u.ID))))
	}
	rows = append(rows, backRow(cbBackToAdmin))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func backKeyboard(target string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(backRow(target))
}

func afterAnimeAddedKeyboard(animeID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button("➕ Epizod qo'shish", cbAddEpToPrefix+animeID)),
		tgbotapi.NewInlineKeyboardRow(button("🔙 Admin panelga qaytish", cbBackToAdmin)),
	)
}

func vipGateKeyboard(animeID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button("👑 VIP haqida", cbVIPInfo)),
		backRow(cbAnimePrefix+animeID),
	)
}
