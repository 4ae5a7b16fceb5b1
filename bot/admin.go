package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/anikatalog/anime-catalog-bot/dialog"
)

func (b *Bot) sendAdminEntry(chatID int64, userID int64) {
	if !b.cfg.IsAdmin(userID) {
		b.send(tgbotapi.NewMessage(chatID, "Sizda admin huquqlari yo'q!"))
		return
	}
	msg := tgbotapi.NewMessage(chatID, "Admin buyruqlari:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(button("⚙️ Admin panel", cbAdminPanel)),
	)
	b.send(msg)
}

func (b *Bot) editAdminPanel(chatID int64, messageID int) {
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, "Admin panel:", adminPanelKeyboard()))
}

func (b *Bot) startAddAnime(chatID int64, messageID int) {
	b.engine.Sessions().Start(chatID, dialog.KindAddAnime, dialog.StepName)
	b.send(tgbotapi.NewEditMessageText(chatID, messageID, "Yangi anime qo'shish.\n\nAnime nomini kiriting:"))
}

func (b *Bot) showDeleteList(chatID int64, messageID int) {
	entries, err := b.catalog.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load catalog for deletion list")
		return
	}
	if len(entries) == 0 {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, emptyCatalogText, backKeyboard(cbBackToAdmin)))
		return
	}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID,
		"O'chirish uchun animeni tanlang:", deleteListKeyboard(entries)))
}

func (b *Bot) deleteAnime(chatID int64, messageID int, animeID string) {
	found, err := b.catalog.DeleteByID(animeID)
	if err != nil {
		log.Error().Err(err).Str("anime_id", animeID).Msg("Failed to delete anime")
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID,
			"O'chirishda xatolik yuz berdi.", backKeyboard(cbBackToAdmin)))
		return
	}

	text := "Anime muvaffaqiyatli o'chirildi!"
	if !found {
		text = "Anime topilmadi."
	}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, backKeyboard(cbBackToAdmin)))
}

func (b *Bot) showEpisodeTargets(chatID int64, messageID int) {
	entries, err := b.catalog.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load catalog for episode targets")
		return
	}
	if len(entries) == 0 {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, emptyCatalogText, backKeyboard(cbBackToAdmin)))
		return
	}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID,
		"Epizod qo'shish uchun animeni tanlang:", episodeTargetKeyboard(entries)))
}

func (b *Bot) startAddEpisode(chatID int64, messageID int, animeID string) {
	_, found, err := b.catalog.FindByID(animeID)
	if err != nil {
		log.Error().Err(err).Str("anime_id", animeID).Msg("Failed to load anime for episode dialog")
		return
	}
	if !found {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, "Anime topilmadi.", backKeyboard(cbBackToAdmin)))
		return
	}
	b.engine.Sessions().StartAddEpisode(chatID, animeID)
	b.send(tgbotapi.NewEditMessageText(chatID, messageID, "Yangi epizod raqamini kiriting:"))
}

func (b *Bot) showVIPManagement(chatID int64, messageID int) {
	users, err := b.users.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load users for VIP management")
		return
	}
	if len(users) == 0 {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID,
			"Foydalanuvchilar ro'yxati bo'sh.", backKeyboard(cbBackToAdmin)))
		return
	}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID,
		"VIP statusini o'zgartirish uchun foydalanuvchini tanlang:", vipListKeyboard(users)))
}

func (b *Bot) toggleVIP(chatID int64, messageID int, userID int64) {
	if _, err := b.users.ToggleVIP(userID); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to toggle VIP status")
		return
	}
	// Re-render the list so the admin sees the new status in place.
	b.showVIPManagement(chatID, messageID)
}
