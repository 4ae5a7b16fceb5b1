package announce

import (
	"context"
	"errors"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anikatalog/anime-catalog-bot/model"
)

// fakeSender records everything sent and can be made to fail.
type fakeSender struct {
	sent    []tgbotapi.Chattable
	sendErr error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func fixedNow() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestWorker(sender *fakeSender) *Worker {
	w := NewWorker(sender, -100200300, "anikatbot", 4)
	w.now = fixedNow
	return w
}

// drain runs every queued job against the worker's sender.
func drain(w *Worker) {
	for {
		select {
		case j := <-w.queue:
			if err := j.run(w.sender); err != nil {
				return
			}
		default:
			return
		}
	}
}

func TestAnimeAdded_PhotoWithTrailer(t *testing.T) {
	sender := &fakeSender{}
	w := newTestWorker(sender)

	w.AnimeAdded(model.Anime{
		ID: "ANM001", Name: "Naruto", Description: "d", Code: "naruto",
		ImageID: "img-1", VideoID: "vid-1",
	})
	drain(w)

	require.Len(t, sender.sent, 2, "photo plus trailer follow-up")

	photo, ok := sender.sent[0].(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Contains(t, photo.Caption, "YANGI ANIME QO'SHILDI!")
	assert.Contains(t, photo.Caption, "Naruto")
	assert.Contains(t, photo.Caption, "2024-06-01")
	assert.Contains(t, photo.Caption, "@anikatbot")

	video, ok := sender.sent[1].(tgbotapi.VideoConfig)
	require.True(t, ok)
	assert.Contains(t, video.Caption, "Treyler")
}

func TestAnimeAdded_NoImageFallsBackToText(t *testing.T) {
	sender := &fakeSender{}
	w := newTestWorker(sender)

	w.AnimeAdded(model.Anime{ID: "ANM001", Name: "Naruto"})
	drain(w)

	require.Len(t, sender.sent, 1)
	_, ok := sender.sent[0].(tgbotapi.MessageConfig)
	assert.True(t, ok)
}

func TestEpisodeAdded(t *testing.T) {
	sender := &fakeSender{}
	w := newTestWorker(sender)

	w.EpisodeAdded(model.Anime{ID: "ANM001", Name: "Naruto"}, 3, "ep-vid")
	drain(w)

	require.Len(t, sender.sent, 1)
	video, ok := sender.sent[0].(tgbotapi.VideoConfig)
	require.True(t, ok)
	assert.Contains(t, video.Caption, "YANGI EPIZOD!")
	assert.Contains(t, video.Caption, "3-qism")
}

// Enqueue must never block the committing caller: past the buffer the
// announcement is dropped.
func TestEnqueue_FullQueueDropsWithoutBlocking(t *testing.T) {
	w := NewWorker(&fakeSender{}, -1, "anikatbot", 2)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			w.EpisodeAdded(model.Anime{ID: "ANM001"}, i+1, "v")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}
	assert.Len(t, w.queue, 2)
}

func TestDisabledChannelSkipsAnnouncements(t *testing.T) {
	w := NewWorker(&fakeSender{}, 0, "anikatbot", 4)

	w.AnimeAdded(model.Anime{ID: "ANM001"})
	w.EpisodeAdded(model.Anime{ID: "ANM001"}, 1, "v")
	assert.Empty(t, w.queue)
}

// A failing send is logged and swallowed; the worker keeps running.
func TestRun_SwallowsSendFailures(t *testing.T) {
	sender := &fakeSender{sendErr: errors.New("telegram unavailable")}
	w := newTestWorker(sender)

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan error, 1)
	go func() { finished <- w.Run(ctx) }()

	w.EpisodeAdded(model.Anime{ID: "ANM001", Name: "Naruto"}, 1, "v")

	// Give the worker a moment to consume the failing job.
	assert.Eventually(t, func() bool { return len(w.queue) == 0 }, time.Second, 10*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-finished, context.Canceled)
}
