package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"guessword/internal/game"
	"guessword/internal/viewmodel"
	"guessword/views/pages"
)

type ScoreHandler struct {
	store *game.Store
}

func NewScoreHandler(store *game.Store) *ScoreHandler {
	return &ScoreHandler{store: store}
}

func (h *ScoreHandler) RegisterRoutes(r chi.Router) {
	r.Route("/score/{id}", func(r chi.Router) {
		r.Get("/", h.scorePage)
		r.Post("/play-again", h.playAgain)
	})
}

func (h *ScoreHandler) scorePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sess, ok := h.store.GetSession(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	sc := sess.Score()
	if sc == nil {
		http.Redirect(w, r, gameURL(id), http.StatusSeeOther)
		return
	}
	render(w, r, pages.ScorePage(viewmodel.ScorePage{
		Title:     "Final score",
		SessionID: id,
		Score:     sc.Score(),
	}))
}

func (h *ScoreHandler) playAgain(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	next, err := h.store.PlayAgain(id)
	switch {
	case errors.Is(err, game.ErrSessionNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, game.ErrNotEnded):
		http.Redirect(w, r, gameURL(id), http.StatusSeeOther)
		return
	case err != nil:
		log.Error().Err(err).Str("session", id).Msg("play again")
		http.Error(w, "failed to start a new game", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, gameURL(next.ID), http.StatusSeeOther)
}
