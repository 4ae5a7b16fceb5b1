package dialog

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/anikatalog/anime-catalog-bot/model"
	"github.com/anikatalog/anime-catalog-bot/store"
)

// skipToken skips the optional trailer video during AddAnime.
const skipToken = "-"

// Input is one inbound message classified at the transport boundary.
// At most one media field is set.
type Input struct {
	Text    string
	PhotoID string
	VideoID string
}

// Outcome tells the caller what the engine did with the message.
type Outcome int

const (
	// OutcomeIgnored means no session of the expected kind was active:
	// the message is routed through untouched, never an error.
	OutcomeIgnored Outcome = iota

	// OutcomePrompt advances a step or re-prompts after invalid input.
	OutcomePrompt

	// OutcomeAnimeCommitted and OutcomeEpisodeCommitted are terminal:
	// the record is persisted and the session destroyed.
	OutcomeAnimeCommitted
	OutcomeEpisodeCommitted

	// OutcomeSearchDone is terminal for the search flow; zero results
	// is a valid terminal state, not a retry.
	OutcomeSearchDone
)

// Result carries the engine's reply material back to the transport.
type Result struct {
	Outcome       Outcome
	Prompt        string
	Anime         model.Anime
	EpisodeNumber int
	Matches       []model.Anime
}

// Announcer is invoked after a successful commit. Failures are the
// announcer's to log and swallow; commits never wait on it.
type Announcer interface {
	AnimeAdded(anime model.Anime)
	EpisodeAdded(anime model.Anime, number int, url string)
}

type stepKey struct {
	kind Kind
	step Step
}

type stepFunc func(e *Engine, s *Session, in Input) (Result, error)

// steps is the dispatch table on (kind, step).
var steps = map[stepKey]stepFunc{
	{KindAddAnime, StepName}:            (*Engine).animeName,
	{KindAddAnime, StepDescription}:     (*Engine).animeDescription,
	{KindAddAnime, StepCode}:            (*Engine).animeCode,
	{KindAddAnime, StepImage}:           (*Engine).animeImage,
	{KindAddAnime, StepVideo}:           (*Engine).animeVideo,
	{KindAddEpisode, StepEpisodeNumber}: (*Engine).episodeNumber,
	{KindAddEpisode, StepEpisodeVideo}:  (*Engine).episodeVideo,
	{KindSearch, StepSearchQuery}:       (*Engine).searchQuery,
}

// Engine validates each step's input, advances sessions and commits
// assembled records to the catalog store.
type Engine struct {
	sessions  *Manager
	catalog   store.Catalog
	announcer Announcer
}

// NewEngine wires the engine to its collaborators.
func NewEngine(sessions *Manager, catalog store.Catalog, announcer Announcer) *Engine {
	return &Engine{sessions: sessions, catalog: catalog, announcer: announcer}
}

// Sessions exposes the session manager for flow entry points.
func (e *Engine) Sessions() *Manager {
	return e.sessions
}

// HandleMessage feeds one inbound message to the chat's active
// session. With no active session the message is ignored. A returned
// error means persistence failed on the commit path; the session is
// left intact so the admin can retry.
func (e *Engine) HandleMessage(chatID int64, in Input) (Result, error) {
	s, ok := e.sessions.Get(chatID)
	if !ok {
		return Result{Outcome: OutcomeIgnored}, nil
	}

	fn, ok := steps[stepKey{s.Kind, s.Step}]
	if !ok {
		log.Error().Str("session_id", s.ID).Str("kind", s.Kind.String()).Int("step", int(s.Step)).Msg("No handler for dialog step, ending session")
		e.sessions.End(chatID)
		return Result{Outcome: OutcomeIgnored}, nil
	}

	e.sessions.Touch(s)
	return fn(e, s, in)
}

// Cancel destroys the chat's session from any state.
func (e *Engine) Cancel(chatID int64) bool {
	return e.sessions.End(chatID)
}

func prompt(text string) (Result, error) {
	return Result{Outcome: OutcomePrompt, Prompt: text}, nil
}

func (e *Engine) animeName(s *Session, in Input) (Result, error) {
	if strings.TrimSpace(in.Text) == "" {
		return prompt("Anime nomini matn ko'rinishida kiriting:")
	}
	s.Name = strings.TrimSpace(in.Text)
	s.Step = StepDescription
	return prompt("Anime tavsifini kiriting:")
}

func (e *Engine) animeDescription(s *Session, in Input) (Result, error) {
	if strings.TrimSpace(in.Text) == "" {
		return prompt("Anime tavsifini matn ko'rinishida kiriting:")
	}
	s.Description = strings.TrimSpace(in.Text)
	s.Step = StepCode
	return prompt("Anime kodini kiriting (masalan: naruto, onepiece):")
}

func (e *Engine) animeCode(s *Session, in Input) (Result, error) {
	if strings.TrimSpace(in.Text) == "" {
		return prompt("Anime kodini matn ko'rinishida kiriting:")
	}
	s.Code = strings.ToLower(strings.TrimSpace(in.Text))
	s.Step = StepImage
	return prompt("Anime rasmini yuklang:")
}

func (e *Engine) animeImage(s *Session, in Input) (Result, error) {
	if in.PhotoID == "" {
		return prompt("Iltimos, rasm yuklang:")
	}
	s.ImageID = in.PhotoID
	s.Step = StepVideo
	return prompt("Anime videosini yuklang (yoki o'tkazib yuborish uchun '-' kiriting):")
}

func (e *Engine) animeVideo(s *Session, in Input) (Result, error) {
	switch {
	case in.VideoID != "":
		s.VideoID = in.VideoID
	case strings.TrimSpace(in.Text) == skipToken:
		s.VideoID = ""
	default:
		return prompt("Iltimos, video yuklang yoki o'tkazib yuborish uchun '-' kiriting:")
	}

	id, err := e.catalog.GenerateID()
	if err != nil {
		return Result{}, err
	}
	anime := model.Anime{
		ID:          id,
		Name:        s.Name,
		Description: s.Description,
		Code:        s.Code,
		ImageID:     s.ImageID,
		VideoID:     s.VideoID,
		VIP:         false,
		Episodes:    []model.Episode{},
	}
	if err := e.catalog.Insert(anime); err != nil {
		return Result{}, err
	}

	e.sessions.End(s.ChatID)
	e.announcer.AnimeAdded(anime)
	return Result{Outcome: OutcomeAnimeCommitted, Anime: anime}, nil
}

func (e *Engine) episodeNumber(s *Session, in Input) (Result, error) {
	number, err := strconv.Atoi(strings.TrimSpace(in.Text))
	if err != nil || number <= 0 {
		return prompt("Noto'g'ri raqam. Iltimos, musbat son kiriting:")
	}
	s.EpisodeNumber = number
	s.Step = StepEpisodeVideo
	return prompt("Epizod videosini yuklang:")
}

func (e *Engine) episodeVideo(s *Session, in Input) (Result, error) {
	if in.VideoID == "" {
		return prompt("Iltimos, video yuklang:")
	}

	if err := e.catalog.UpsertEpisode(s.AnimeID, s.EpisodeNumber, in.VideoID); err != nil {
		return Result{}, err
	}

	anime, found, err := e.catalog.FindByID(s.AnimeID)
	if err != nil {
		log.Error().Err(err).Str("anime_id", s.AnimeID).Msg("Failed to reload anime after episode upsert")
	}
	number := s.EpisodeNumber
	e.sessions.End(s.ChatID)
	if found {
		e.announcer.EpisodeAdded(anime, number, in.VideoID)
	}
	return Result{Outcome: OutcomeEpisodeCommitted, Anime: anime, EpisodeNumber: number}, nil
}

func (e *Engine) searchQuery(s *Session, in Input) (Result, error) {
	query := strings.TrimSpace(in.Text)
	matches, err := e.catalog.Search(query)
	if err != nil {
		return Result{}, err
	}
	e.sessions.End(s.ChatID)
	return Result{Outcome: OutcomeSearchDone, Matches: matches}, nil
}
