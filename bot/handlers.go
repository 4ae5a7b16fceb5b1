package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/anikatalog/anime-catalog-bot/catalog"
	"github.com/anikatalog/anime-catalog-bot/dialog"
	"github.com/anikatalog/anime-catalog-bot/model"
)

const emptyCatalogText = "Animelar ro'yxati bo'sh."

func greeting(firstName string) string {
	return fmt.Sprintf("Assalomu alaykum, %s! Anime ko'rish botiga xush kelibsiz!", firstName)
}

func (b *Bot) sendMainMenu(chatID int64, from *tgbotapi.User) {
	msg := tgbotapi.NewMessage(chatID, greeting(from.FirstName))
	msg.ReplyMarkup = mainMenuKeyboard(b.cfg.IsAdmin(from.ID))
	b.send(msg)
}

func (b *Bot) editMainMenu(chatID int64, messageID int, from *tgbotapi.User) {
	markup := mainMenuKeyboard(b.cfg.IsAdmin(from.ID))
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, greeting(from.FirstName), markup))
}

// listPage loads the catalog and renders the clamped page. The second
// return value is false when the catalog is empty.
func (b *Bot) listPage(page int) (string, catalog.Page, bool) {
	entries, err := b.catalog.List()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load catalog for listing")
		return "", catalog.Page{}, false
	}

	p := catalog.Paginate(entries, b.cfg.PageSize, page)
	if p.Empty() {
		return "", p, false
	}
	text := fmt.Sprintf("Animelar ro'yxati (%d-%d / %d):", p.Start, p.End, p.Total)
	return text, p, true
}

func (b *Bot) sendAnimeList(chatID int64, page int) {
	text, p, ok := b.listPage(page)
	if !ok {
		msg := tgbotapi.NewMessage(chatID, emptyCatalogText)
		msg.ReplyMarkup = backKeyboard(cbBackToMain)
		b.send(msg)
		return
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = animeListKeyboard(p)
	b.send(msg)
}

func (b *Bot) editAnimeList(chatID int64, messageID int, page int) {
	text, p, ok := b.listPage(page)
	if !ok {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, emptyCatalogText, backKeyboard(cbBackToMain)))
		return
	}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, animeListKeyboard(p)))
}

const searchPrompt = "Qidirish uchun anime nomini yoki kodini kiriting:"

func (b *Bot) startSearch(chatID int64) {
	b.engine.Sessions().Start(chatID, dialog.KindSearch, dialog.StepSearchQuery)
	b.send(tgbotapi.NewMessage(chatID, searchPrompt))
}

func (b *Bot) startSearchEdit(chatID int64, messageID int) {
	b.engine.Sessions().Start(chatID, dialog.KindSearch, dialog.StepSearchQuery)
	b.send(tgbotapi.NewEditMessageText(chatID, messageID, searchPrompt))
}

func (b *Bot) sendSearchResults(chatID int64, results []model.Anime) {
	if len(results) == 0 {
		msg := tgbotapi.NewMessage(chatID, "Hech narsa topilmadi. Boshqa so'rov bilan urinib ko'ring.")
		msg.ReplyMarkup = backKeyboard(cbBackToMain)
		b.send(msg)
		return
	}
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Qidiruv natijalari (%d):", len(results)))
	msg.ReplyMarkup = searchResultsKeyboard(results)
	b.send(msg)
}

func vipInfoText(isVIP bool) string {
	if isVIP {
		return "👑 <b>VIP STATUS</b> 👑\n\n" +
			"Sizda VIP status mavjud!\n" +
			"Barcha VIP kontentlardan foydalanishingiz mumkin."
	}
	return "👑 <b>VIP STATUS</b> 👑\n\n" +
		"VIP status orqali maxsus animelarga kirish imkoniyatiga ega bo'lasiz.\n\n" +
		"VIP olish uchun admin bilan bog'laning."
}

func (b *Bot) sendVIPInfo(chatID int64, userID int64) {
	isVIP, err := b.users.IsVIP(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to read VIP status")
	}
	msg := tgbotapi.NewMessage(chatID, vipInfoText(isVIP))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = backKeyboard(cbBackToMain)
	b.send(msg)
}

func (b *Bot) editVIPInfo(chatID int64, messageID int, userID int64) {
	isVIP, err := b.users.IsVIP(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to read VIP status")
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, vipInfoText(isVIP), backKeyboard(cbBackToMain))
	edit.ParseMode = tgbotapi.ModeHTML
	b.send(edit)
}

func animeCaption(anime model.Anime) string {
	vipStatus := "Yo'q"
	if anime.VIP {
		vipStatus = "Ha"
	}
	return fmt.Sprintf(
		"📺 <b>%s</b> (%s)\n\n"+
			"📝 <b>Tavsif:</b>\n%s\n\n"+
			"🔍 <b>Kod:</b> %s\n"+
			"👑 <b>VIP:</b> %s\n"+
			"🎬 <b>Epizodlar soni:</b> %d",
		anime.Name, anime.ID, anime.Description, anime.Code, vipStatus, len(anime.Episodes),
	)
}

func (b *Bot) showAnimeDetails(chatID int64, messageID int, userID int64, animeID string) {
	anime, found, err := b.catalog.FindByID(animeID)
	if err != nil {
		log.Error().Err(err).Str("anime_id", animeID).Msg("Failed to load anime")
		return
	}
	if !found {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, "Anime topilmadi.", backKeyboard(cbBackToMain)))
		return
	}

	isVIP, err := b.users.IsVIP(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to read VIP status")
	}
	markup := animeDetailsKeyboard(anime, catalog.Visible(anime, isVIP))

	if anime.ImageID != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(anime.ImageID))
		photo.Caption = animeCaption(anime)
		photo.ParseMode = tgbotapi.ModeHTML
		photo.ReplyMarkup = markup
		b.send(photo)
		b.send(tgbotapi.NewEditMessageText(chatID, messageID, "Anime ma'lumotlari yuborildi."))
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, animeCaption(anime), markup)
	edit.ParseMode = tgbotapi.ModeHTML
	b.send(edit)
}

func (b *Bot) showEpisode(chatID int64, messageID int, userID int64, animeID string, number int) {
	anime, found, err := b.catalog.FindByID(animeID)
	if err != nil {
		log.Error().Err(err).Str("anime_id", animeID).Msg("Failed to load anime")
		return
	}
	if !found {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, "Anime topilmadi.", backKeyboard(cbBackToMain)))
		return
	}

	episode, found := anime.EpisodeByNumber(number)
	if !found {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, "Epizod topilmadi.", backKeyboard(cbAnimePrefix+animeID)))
		return
	}

	// The gate is re-checked at playback, not only at listing time.
	isVIP, err := b.users.IsVIP(userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("Failed to read VIP status")
	}
	if !catalog.Visible(anime, isVIP) {
		b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID,
			"Bu anime faqat VIP foydalanuvchilar uchun.", vipGateKeyboard(animeID)))
		return
	}

	prev, next := catalog.Neighbors(anime, number)
	video := tgbotapi.NewVideo(chatID, tgbotapi.FileID(episode.URL))
	video.Caption = fmt.Sprintf("📺 <b>%s</b> - %d-qism", anime.Name, number)
	video.ParseMode = tgbotapi.ModeHTML
	video.ReplyMarkup = episodeNavKeyboard(animeID, prev, next)
	b.send(video)

	b.send(tgbotapi.NewEditMessageText(chatID, messageID, "Epizod yuborildi."))
}
