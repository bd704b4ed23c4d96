package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"guessword/internal/game"
	"guessword/internal/viewmodel"
	"guessword/views/components"
	"guessword/views/pages"
)

const keepAliveInterval = 25 * time.Second

type GameHandler struct {
	store *game.Store
}

func NewGameHandler(store *game.Store) *GameHandler {
	return &GameHandler{store: store}
}

func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Route("/game/{id}", func(r chi.Router) {
		r.Get("/", h.gamePage)
		r.Post("/correct", h.correct)
		r.Post("/skip", h.skip)
		r.Post("/buzz/ack", h.buzzAck)
		r.Post("/finished/ack", h.finishedAck)
		r.Get("/stream", h.stream)
	})
}

func (h *GameHandler) session(w http.ResponseWriter, r *http.Request) (*game.Session, bool) {
	sess, ok := h.store.GetSession(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return nil, false
	}
	return sess, true
}

func (h *GameHandler) gamePage(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if sess.Ended() {
		http.Redirect(w, r, scoreURL(sess.ID), http.StatusSeeOther)
		return
	}
	snapshot := sess.Game().Snapshot()
	render(w, r, pages.GamePage(viewmodel.GamePage{
		Title:     "Guess the word",
		SessionID: sess.ID,
		Board:     buildBoard(sess.ID, snapshot),
	}))
}

func (h *GameHandler) correct(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	applied := sess.Game().CorrectGuess()
	log.Debug().Str("session", sess.ID).Bool("applied", applied).Msg("correct guess")
	respondCommand(w, r, gameURL(sess.ID))
}

func (h *GameHandler) skip(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	applied := sess.Game().Skip()
	log.Debug().Str("session", sess.ID).Bool("applied", applied).Msg("skip")
	respondCommand(w, r, gameURL(sess.ID))
}

func (h *GameHandler) buzzAck(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	sess.Game().AcknowledgeBuzz()
	respondCommand(w, r, gameURL(sess.ID))
}

func (h *GameHandler) finishedAck(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	_, err := h.store.EndGame(sess.ID)
	switch {
	case errors.Is(err, game.ErrGameInProgress):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, game.ErrSessionNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		log.Error().Err(err).Str("session", sess.ID).Msg("end game")
		http.Error(w, "failed to end game", http.StatusInternalServerError)
		return
	}
	respondCommand(w, r, scoreURL(sess.ID))
}

func (h *GameHandler) stream(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Subscribe before checking Ended so an EndGame in between is not missed.
	var ended chan string
	if hub, ok := h.store.Broadcaster(sess.ID); ok {
		ended = hub.Subscribe()
		defer hub.Unsubscribe(ended)
	}

	if sess.Ended() {
		writeSSE(w, "ended", scoreURL(sess.ID))
		flusher.Flush()
		return
	}

	controller := sess.Game()
	sub := controller.Subscribe()
	defer controller.Unsubscribe(sub)

	send := func(board, buzz, finished bool) {
		snapshot := controller.Snapshot()
		if board {
			writeSSE(w, "board", renderToString(r, components.Board(buildBoard(sess.ID, snapshot))))
		}
		if buzz && snapshot.Buzz != game.BuzzNone {
			writeSSEJSON(w, "buzz", viewmodel.Buzz{
				Type:    snapshot.Buzz.String(),
				Pattern: snapshot.Buzz.PatternMillis(),
			})
		}
		if finished && snapshot.GameFinished {
			writeSSE(w, "finished", sess.ID)
		}
		flusher.Flush()
	}

	send(true, true, true)

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub:
			if !open {
				// Controller torn down; wait for the ended event or disconnect.
				sub = nil
				continue
			}
			switch event {
			case game.EventWord, game.EventScore, game.EventTime:
				send(true, false, false)
			case game.EventBuzz:
				send(false, true, false)
			case game.EventFinished:
				send(false, false, true)
			}
		case event, open := <-ended:
			if !open {
				return
			}
			if event == game.EventEnded {
				writeSSE(w, "ended", scoreURL(sess.ID))
				flusher.Flush()
				return
			}
		case <-keepAlive.C:
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

func buildBoard(sessionID string, snapshot game.Snapshot) viewmodel.Board {
	return viewmodel.Board{
		SessionID:     sessionID,
		Word:          snapshot.Word,
		Score:         snapshot.Score,
		Clock:         snapshot.Clock,
		RemainingTime: snapshot.RemainingTime,
		Running:       snapshot.Running,
	}
}

func gameURL(id string) string {
	return "/game/" + id
}

func scoreURL(id string) string {
	return "/score/" + id
}
