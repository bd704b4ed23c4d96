package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"guessword/internal/game"
	"guessword/internal/viewmodel"
	"guessword/views/pages"
)

const (
	minDurationSec = 10
	maxDurationSec = 300
)

type HomeHandler struct {
	store    *game.Store
	duration time.Duration
}

func NewHomeHandler(store *game.Store, defaultDuration time.Duration) *HomeHandler {
	if defaultDuration <= 0 {
		defaultDuration = game.DefaultDuration
	}
	return &HomeHandler{store: store, duration: clampDuration(defaultDuration)}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/games", h.createGame)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	render(w, r, pages.HomePage(viewmodel.HomePage{
		Title:       "Guess the word",
		DurationSec: int(h.duration.Seconds()),
		MinSec:      minDurationSec,
		MaxSec:      maxDurationSec,
	}))
}

func (h *HomeHandler) createGame(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	durationSec := parseInt(r.FormValue("duration"), int(h.duration.Seconds()))
	d := clampDuration(time.Duration(durationSec) * time.Second)
	durationSec = int(d.Seconds())

	sess := h.store.CreateSessionWithDuration(d)
	log.Info().Str("session", sess.ID).Int("seconds", durationSec).Msg("game started")
	http.Redirect(w, r, "/game/"+sess.ID, http.StatusSeeOther)
}

// clampDuration keeps d within the range the start form accepts.
func clampDuration(d time.Duration) time.Duration {
	if d < minDurationSec*time.Second {
		return minDurationSec * time.Second
	}
	if d > maxDurationSec*time.Second {
		return maxDurationSec * time.Second
	}
	return d
}

func parseInt(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
