// Package bot is the transport surface: it polls Telegram for
// updates, classifies them and routes them to the dialog engine or the
// catalog query operations.
package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// API is the slice of the Telegram client the handlers use, so tests
// can substitute a fake.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}
