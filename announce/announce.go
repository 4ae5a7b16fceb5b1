// Package announce posts new catalog content to the public channel.
// Announcements are best-effort: they are queued behind the committing
// operation and a failed send is logged and swallowed, never surfaced
// to the admin who committed.
package announce

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/anikatalog/anime-catalog-bot/model"
)

// Sender is the slice of the Telegram client the worker needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type job struct {
	name string
	run  func(s Sender) error
}

// Worker drains the announcement queue on a single goroutine. Enqueue
// never blocks the committing caller; when the queue is full the
// announcement is dropped with a warning.
type Worker struct {
	sender      Sender
	channelID   int64
	botUsername string
	queue       chan job
	now         func() time.Time
}

// NewWorker creates an announcement worker posting to channelID.
func NewWorker(sender Sender, channelID int64, botUsername string, queueSize int) *Worker {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Worker{
		sender:      sender,
		channelID:   channelID,
		botUsername: botUsername,
		queue:       make(chan job, queueSize),
		now:         time.Now,
	}
}

// Run processes queued announcements until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case j := <-w.queue:
			if err := j.run(w.sender); err != nil {
				log.Error().Err(err).Str("announcement", j.name).Msg("Failed to post announcement to channel")
			}
		}
	}
}

func (w *Worker) enqueue(j job) {
	select {
	case w.queue <- j:
	default:
		log.Warn().Str("announcement", j.name).Msg("Announcement queue full, dropping")
	}
}

// AnimeAdded announces a freshly added anime: photo with caption when
// a cover image exists, plain text otherwise, plus the trailer video
// as a follow-up when one was provided.
func (w *Worker) AnimeAdded(anime model.Anime) {
	if w.channelID == 0 {
		return
	}
	caption := fmt.Sprintf(
		"🌟 <b>YANGI ANIME QO'SHILDI!</b> 🌟\n\n"+
			"📺 <b>%s</b> (%s)\n\n"+
			"📝 <b>Tavsif:</b>\n%s\n\n"+
			"🔍 <b>Kod:</b> %s\n"+
			"📅 <b>Qo'shilgan sana:</b> %s\n\n"+
			"🤖 @%s orqali ko'ring!",
		anime.Name, anime.ID, anime.Description, anime.Code,
		w.now().Format("2006-01-02"), w.botUsername,
	)

	w.enqueue(job{
		name: "anime:" + anime.ID,
		run: func(s Sender) error {
			if anime.ImageID == "" {
				msg := tgbotapi.NewMessage(w.channelID, caption)
				msg.ParseMode = tgbotapi.ModeHTML
				_, err := s.Send(msg)
				return err
			}

			photo := tgbotapi.NewPhoto(w.channelID, tgbotapi.FileID(anime.ImageID))
			photo.Caption = caption
			photo.ParseMode = tgbotapi.ModeHTML
			if _, err := s.Send(photo); err != nil {
				return err
			}

			if anime.VideoID != "" {
				video := tgbotapi.NewVideo(w.channelID, tgbotapi.FileID(anime.VideoID))
				video.Caption = fmt.Sprintf("🎬 <b>%s</b> - Treyler", anime.Name)
				video.ParseMode = tgbotapi.ModeHTML
				if _, err := s.Send(video); err != nil {
					return err
				}
			}
			return nil
		},
	})
}

// EpisodeAdded announces a new or replaced episode.
func (w *Worker) EpisodeAdded(anime model.Anime, number int, url string) {
	if w.channelID == 0 {
		return
	}
	caption := fmt.Sprintf(
		"🎬 <b>YANGI EPIZOD!</b> 🎬\n\n"+
			"📺 <b>%s</b> - %d-qism\n\n"+
			"📅 <b>Qo'shilgan sana:</b> %s\n\n"+
			"🤖 @%s orqali ko'ring!",
		anime.Name, number, w.now().Format("2006-01-02"), w.botUsername,
	)

	w.enqueue(job{
		name: fmt.Sprintf("episode:%s:%d", anime.ID, number),
		run: func(s Sender) error {
			video := tgbotapi.NewVideo(w.channelID, tgbotapi.FileID(url))
			video.Caption = caption
			video.ParseMode = tgbotapi.ModeHTML
			_, err := s.Send(video)
			return err
		},
	})
}
