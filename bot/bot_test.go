package bot

import (
	"path/filepath"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anikatalog/anime-catalog-bot/config"
	"github.com/anikatalog/anime-catalog-bot/dialog"
	"github.com/anikatalog/anime-catalog-bot/model"
	"github.com/anikatalog/anime-catalog-bot/store"
)

const (
	adminID  = int64(1)
	userID   = int64(2)
	testChat = int64(500)
)

// fakeAPI records outgoing traffic instead of talking to Telegram.
type fakeAPI struct {
	sent      []tgbotapi.Chattable
	requested []tgbotapi.Chattable
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requested = append(f.requested, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	ch := make(chan tgbotapi.Update)
	close(ch)
	return ch
}

type nopAnnouncer struct{}

func (nopAnnouncer) AnimeAdded(model.Anime)                {}
func (nopAnnouncer) EpisodeAdded(model.Anime, int, string) {}

func newTestBot(t *testing.T) (*Bot, *fakeAPI, *store.CatalogStore, *store.UserStore) {
	t.Helper()
	dir := t.TempDir()
	cat := store.NewCatalogStore(store.Config{CatalogFile: filepath.Join(dir, "data.json")})
	users := store.NewUserStore(store.Config{UsersFile: filepath.Join(dir, "users.json")})

	cfg := config.Default()
	cfg.AdminIDs = []int64{adminID}

	engine := dialog.NewEngine(dialog.NewManager(0), cat, nopAnnouncer{})
	api := &fakeAPI{}
	return New(api, cfg, cat, users, engine), api, cat, users
}

func message(from int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: from, FirstName: "Aziz", UserName: "aziz"},
		Chat: &tgbotapi.Chat{ID: testChat},
		Text: text,
	}
}

func command(from int64, cmd string) *tgbotapi.Message {
	msg := message(from, "/"+cmd)
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd) + 1}}
	return msg
}

func callback(from int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb1",
		From:    &tgbotapi.User{ID: from, FirstName: "Aziz"},
		Message: &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: testChat}},
		Data:    data,
	}
}

func lastMessageText(t *testing.T, api *fakeAPI) string {
	t.Helper()
	require.NotEmpty(t, api.sent)
	switch m := api.sent[len(api.sent)-1].(type) {
	case tgbotapi.MessageConfig:
		return m.Text
	case tgbotapi.EditMessageTextConfig:
		return m.Text
	default:
		t.Fatalf("unexpected chattable type %T", m)
		return ""
	}
}

func TestStart_RegistersUserAndShowsMenu(t *testing.T) {
	b, api, _, users := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{Message: command(userID, "start")})

	all, err := users.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, userID, all[0].ID)

	require.Len(t, api.sent, 1)
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Contains(t, msg.Text, "Assalomu alaykum, Aziz!")

	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	assert.Len(t, markup.InlineKeyboard, 3, "non-admin menu has no admin row")
}

func TestStart_AdminSeesAdminRow(t *testing.T) {
	b, api, _, _ := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{Message: command(adminID, "start")})

	msg := api.sent[0].(tgbotapi.MessageConfig)
	markup := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	assert.Len(t, markup.InlineKeyboard, 4)
}

func TestAdminCallback_RefusedForNonAdmin(t *testing.T) {
	b, api, _, _ := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callback(userID, "admin_panel")})

	assert.Equal(t, "Sizda admin huquqlari yo'q!", lastMessageText(t, api))
}

func TestListCommand_EmptyCatalog(t *testing.T) {
	b, api, _, _ := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{Message: command(userID, "list")})

	assert.Equal(t, emptyCatalogText, lastMessageText(t, api))
}

func TestListCallback_RendersPage(t *testing.T) {
	b, api, cat, _ := newTestBot(t)
	for i := 1; i <= 7; i++ {
		id, err := cat.GenerateID()
		require.NoError(t, err)
		require.NoError(t, cat.Insert(model.Anime{ID: id, Name: "Anime"}))
	}

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callback(userID, "anime_list")})

	edit, ok := api.sent[len(api.sent)-1].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, "Animelar ro'yxati (1-5 / 7):", edit.Text)
	require.NotNil(t, edit.ReplyMarkup)
	// 5 entries + pagination row + back row.
	assert.Len(t, edit.ReplyMarkup.InlineKeyboard, 7)
}

func TestAddAnimeFlow_ThroughTransport(t *testing.T) {
	b, api, cat, _ := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callback(adminID, "add_anime")})

	b.HandleUpdate(tgbotapi.Update{Message: message(adminID, "Naruto")})
	b.HandleUpdate(tgbotapi.Update{Message: message(adminID, "Tavsif")})
	b.HandleUpdate(tgbotapi.Update{Message: message(adminID, "naruto")})

	photoMsg := message(adminID, "")
	photoMsg.Photo = []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}
	b.HandleUpdate(tgbotapi.Update{Message: photoMsg})

	b.HandleUpdate(tgbotapi.Update{Message: message(adminID, "-")})

	anime, found, err := cat.FindByID("ANM001")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Naruto", anime.Name)
	assert.Equal(t, "large", anime.ImageID, "largest photo size wins")
	assert.Empty(t, anime.VideoID)

	assert.Contains(t, lastMessageText(t, api), "Anime muvaffaqiyatli qo'shildi!")
}

func TestStrayText_IsIgnoredWithoutSession(t *testing.T) {
	b, api, _, _ := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{Message: message(userID, "just chatting")})

	// Registration happens, but nothing is sent back.
	assert.Empty(t, api.sent)
}

func TestUnknownCallback_Ignored(t *testing.T) {
	b, api, _, _ := newTestBot(t)

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callback(userID, "bogus_token")})

	assert.Empty(t, api.sent)
	assert.Len(t, api.requested, 1, "callback is still answered")
}

func TestToggleVIPCallback(t *testing.T) {
	b, api, _, users := newTestBot(t)
	_, err := users.RegisterIfAbsent(userID, "aziz", "Aziz")
	require.NoError(t, err)

	b.HandleUpdate(tgbotapi.Update{CallbackQuery: callback(adminID, "toggle_vip_2")})

	vip, err := users.IsVIP(userID)
	require.NoError(t, err)
	assert.True(t, vip)

	// The VIP list is re-rendered in place.
	edit, ok := api.sent[len(api.sent)-1].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Contains(t, edit.Text, "VIP statusini o'zgartirish")
}
