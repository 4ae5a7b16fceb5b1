package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/anikatalog/anime-catalog-bot/config"
	"github.com/anikatalog/anime-catalog-bot/dialog"
	"github.com/anikatalog/anime-catalog-bot/store"
)

// Bot wires the transport to the dialog engine and the stores.
type Bot struct {
	api     API
	cfg     config.Config
	catalog store.Catalog
	users   store.Users
	engine  *dialog.Engine
}

// New creates the bot around its collaborators.
func New(api API, cfg config.Config, cat store.Catalog, users store.Users, engine *dialog.Engine) *Bot {
	return &Bot{api: api, cfg: cfg, catalog: cat, users: users, engine: engine}
}

// Run polls for updates until ctx is cancelled. Updates are handled to
// completion one at a time, so there is no concurrent mutation within
// a conversation.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Info().Msg("Bot polling for updates")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(update)
		}
	}
}

// HandleUpdate classifies and routes one inbound update.
func (b *Bot) HandleUpdate(update tgbotapi.Update) {
	logger := log.With().Str("update_id", uuid.New().String()).Logger()

	switch {
	case update.Message != nil:
		b.handleMessage(logger, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(logger, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(logger zerolog.Logger, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	// Registration on first contact is idempotent.
	if _, err := b.users.RegisterIfAbsent(msg.From.ID, msg.From.UserName, msg.From.FirstName); err != nil {
		logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("Failed to register user")
	}

	if msg.IsCommand() {
		b.handleCommand(logger, msg)
		return
	}

	b.handleDialogInput(logger, msg)
}

func (b *Bot) handleCommand(logger zerolog.Logger, msg *tgbotapi.Message) {
	logger.Info().Str("command", msg.Command()).Int64("chat_id", msg.Chat.ID).Msg("Command received")

	switch msg.Command() {
	case "start":
		b.sendMainMenu(msg.Chat.ID, msg.From)
	case "help":
		b.send(tgbotapi.NewMessage(msg.Chat.ID,
			"Bot buyruqlari:\n"+
				"/start - Botni ishga tushirish\n"+
				"/search - Anime qidirish\n"+
				"/list - Animelar ro'yxati\n"+
				"/vip - VIP ma'lumotlari\n"+
				"/help - Yordam"))
	case "list":
		b.sendAnimeList(msg.Chat.ID, 1)
	case "search":
		b.startSearch(msg.Chat.ID)
	case "vip":
		b.sendVIPInfo(msg.Chat.ID, msg.From.ID)
	case "admin":
		b.sendAdminEntry(msg.Chat.ID, msg.From.ID)
	case "cancel":
		b.engine.Cancel(msg.Chat.ID)
		reply := tgbotapi.NewMessage(msg.Chat.ID, "Amal bekor qilindi.")
		reply.ReplyMarkup = backKeyboard(cbBackToMain)
		b.send(reply)
	default:
		// Unknown commands are ignored.
	}
}

// handleDialogInput feeds a non-command message to the dialog engine.
// Messages with no active session are a silent no-op.
func (b *Bot) handleDialogInput(logger zerolog.Logger, msg *tgbotapi.Message) {
	in := dialog.Input{Text: msg.Text}
	if len(msg.Photo) > 0 {
		// The last size is the largest.
		in.PhotoID = msg.Photo[len(msg.Photo)-1].FileID
	}
	if msg.Video != nil {
		in.VideoID = msg.Video.FileID
	}

	result, err := b.engine.HandleMessage(msg.Chat.ID, in)
	if err != nil {
		logger.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("Dialog commit failed")
		b.send(tgbotapi.NewMessage(msg.Chat.ID, "Saqlashda xatolik yuz berdi. Qaytadan urinib ko'ring."))
		return
	}

	switch result.Outcome {
	case dialog.OutcomeIgnored:
		// No active session for this chat.
	case dialog.OutcomePrompt:
		b.send(tgbotapi.NewMessage(msg.Chat.ID, result.Prompt))
	case dialog.OutcomeAnimeCommitted:
		reply := tgbotapi.NewMessage(msg.Chat.ID, "Anime muvaffaqiyatli qo'shildi!\nID: "+result.Anime.ID)
		reply.ReplyMarkup = afterAnimeAddedKeyboard(result.Anime.ID)
		b.send(reply)
	case dialog.OutcomeEpisodeCommitted:
		reply := tgbotapi.NewMessage(msg.Chat.ID, "Epizod muvaffaqiyatli qo'shildi!")
		reply.ReplyMarkup = backKeyboard(cbBackToAdmin)
		b.send(reply)
	case dialog.OutcomeSearchDone:
		b.sendSearchResults(msg.Chat.ID, result.Matches)
	}
}

func (b *Bot) handleCallback(logger zerolog.Logger, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil || cb.From == nil {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		logger.Warn().Err(err).Msg("Failed to answer callback query")
	}

	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID
	cmd := ParseCallback(cb.Data)
	logger.Info().Str("data", cb.Data).Int64("chat_id", chatID).Msg("Callback received")

	switch cmd.Action {
	case ActionSearch:
		b.startSearchEdit(chatID, messageID)
	case ActionAnimeList:
		b.editAnimeList(chatID, messageID, 1)
	case ActionPage:
		b.editAnimeList(chatID, messageID, cmd.Page)
	case ActionVIPInfo:
		b.editVIPInfo(chatID, messageID, cb.From.ID)
	case ActionBackToMain:
		b.editMainMenu(chatID, messageID, cb.From)
	case ActionShowAnime:
		b.showAnimeDetails(chatID, messageID, cb.From.ID, cmd.AnimeID)
	case ActionShowEpisode:
		b.showEpisode(chatID, messageID, cb.From.ID, cmd.AnimeID, cmd.Episode)

	case ActionAdminPanel, ActionBackToAdmin:
		b.requireAdmin(chatID, messageID, cb.From.ID, func() {
			b.editAdminPanel(chatID, messageID)
		})
	case ActionAddAnime:
		b.requireAdmin(chatID, messageID, cb.From.ID, func() {
			b.startAddAnime(chatID, messageID)
		})
	case ActionDeleteAnime:
		b.requireAdmin(chatID, messageID, cb.From.ID, func() {
			b.showDeleteList(chatID, messageID)
		})
	case ActionDeleteConfirm:
		b.requireAdmin(chatID, messageID, cb.From.ID, func() {
			b.deleteAnime(chatID, messageID, cmd.AnimeID)
		})
	case ActionAddEpisode:
		b.requireAdmin(chatID, messageID, cb.From.ID, func() {
			b.showEpisodeTargets(chatID, messageID)
		})
	case ActionAddEpisodeTo:
		b.requireAdmin(chatID, messageID, cb.From.ID, func() {
			b.startAddEpisode(chatID, messageID, cmd.AnimeID)
		})
	case ActionManageVIP:
		b.requireAdmin(chatID, messageID, cb.From.ID, func() {
			b.showVIPManagement(chatID, messageID)
		})
	case ActionToggleVIP:
		b.requireAdmin(chatID, messageID, cb.From.ID, func() {
			b.toggleVIP(chatID, messageID, cmd.UserID)
		})

	default:
		logger.Warn().Str("data", cb.Data).Msg("Unknown callback token ignored")
	}
}

// requireAdmin runs fn only for allow-listed admins; everyone else
// gets a refusal in place of the pressed keyboard.
func (b *Bot) requireAdmin(chatID int64, messageID int, userID int64, fn func()) {
	if !b.cfg.IsAdmin(userID) {
		b.send(tgbotapi.NewEditMessageText(chatID, messageID, "Sizda admin huquqlari yo'q!"))
		return
	}
	fn()
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		log.Error().Err(err).Msg("Failed to send message")
	}
}
