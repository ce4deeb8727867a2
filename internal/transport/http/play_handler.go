package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"millionaire-quiz-service/internal/app"
)

// PlayHandler runs quiz sessions over a websocket: engine events flow out,
// player commands flow in. One session per connection; closing the
// connection disposes the session and all of its timers.
type PlayHandler struct {
	service  *app.ContestantService
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewPlayHandler(service *app.ContestantService, log zerolog.Logger) *PlayHandler {
	return &PlayHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log.With().Str("component", "play_handler").Logger(),
	}
}

type inboundCommand struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Index int `json:"index"`
}

type sessionInfo struct {
	Type           string `json:"type"`
	ContestantName string `json:"contestantName"`
	TotalQuestions int    `json:"totalQuestions"`
	TimerEnabled   bool   `json:"timerEnabled"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ServePlay upgrades the request and drives one play-through of the
// requested contestant.
func (h *PlayHandler) ServePlay(w http.ResponseWriter, r *http.Request) {
	contestantID := r.URL.Query().Get("contestantId")
	if contestantID == "" {
		http.Error(w, "missing contestantId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	engine, contestant, err := h.service.StartSession(r.Context(), contestantID)
	if err != nil {
		_ = conn.WriteJSON(errorMessage{Type: "error", Message: err.Error()})
		return
	}
	defer engine.Close()

	updates, cancel := engine.Subscribe()
	defer cancel()

	send := make(chan any, 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer goroutine; the reader and the event pump both feed send,
	// so the connection never sees concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug().Err(err).Msg("ws write error")
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			select {
			case event, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- event:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	send <- sessionInfo{
		Type:           "session",
		ContestantName: contestant.Name,
		TotalQuestions: len(contestant.Questions),
		TimerEnabled:   contestant.EnableTimer,
	}
	engine.Start()

	for {
		var cmd inboundCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			break
		}
		// Precondition violations (locked answers, spent lifelines, removed
		// options) are silent no-ops inside the engine; only unknown
		// commands produce an error message.
		switch cmd.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
				send <- errorMessage{Type: "error", Message: "invalid answer payload"}
				continue
			}
			engine.SelectAnswer(payload.Index)
		case "fiftyFifty":
			engine.UseFiftyFifty()
		case "phoneFriend":
			engine.UsePhoneFriend()
		case "advance":
			engine.Advance()
		default:
			send <- errorMessage{Type: "error", Message: "unsupported command type"}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
