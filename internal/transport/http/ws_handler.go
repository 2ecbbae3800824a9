package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"daily-trivia-service/internal/app"
	"daily-trivia-service/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler runs live play-throughs over a websocket: the server owns the
// session, ticks the countdown, and streams state changes; the client only
// sends answer selections and, after the game, a name for the score.
type WSHandler struct {
	service  *app.GameService
	timing   app.Timing
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService) *WSHandler {
	return NewWSHandlerWithTiming(service, app.DefaultTiming)
}

// NewWSHandlerWithTiming lets tests run sessions without real timers.
func NewWSHandlerWithTiming(service *app.GameService, timing app.Timing) *WSHandler {
	return &WSHandler{
		service: service,
		timing:  timing,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	OptionID int64 `json:"optionId"`
}

type submitScorePayload struct {
	Name string `json:"name"`
}

type joinedPayload struct {
	Date          domain.Day `json:"date"`
	QuestionCount int        `json:"questionCount"`
}

type leaderboardPayload struct {
	Date        domain.Day                `json:"date"`
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type tickPayload struct {
	TimeLeft int `json:"timeLeft"`
}

// ServeWS upgrades the request and plays one session to completion.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	session, err := h.service.StartSession(r.Context(), h.timing)
	if err != nil {
		message := "failed to start game"
		if errors.Is(err, domain.ErrNoQuestionsToday) {
			message = "no questions available today, try again later"
		} else {
			log.Printf("start session: %v", err)
		}
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: message}})
		return
	}

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	eventsDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	// Enqueue joined before draining session events so the client always
	// sees it ahead of the first question.
	send <- outboundMessage[any]{Type: "joined", Payload: joinedPayload{
		Date:          h.service.Today(),
		QuestionCount: session.QuestionCount(),
	}}

	go func() {
		defer close(eventsDone)
		for {
			select {
			case event, ok := <-session.Events():
				if !ok {
					return
				}
				select {
				case send <- eventMessage(event):
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}}
				continue
			}
			// Feedback reaches the client through the event stream; only
			// rejections are reported here.
			if _, err := session.SelectAnswer(payload.OptionID); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
			}
		case "submitScore":
			var payload submitScorePayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid submitScore payload"}}
				continue
			}
			if session.State() != app.StateFinished {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "game still in progress"}}
				continue
			}
			entries, err := h.service.SubmitScore(r.Context(), payload.Name, session.Score())
			if err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
				continue
			}
			send <- outboundMessage[any]{Type: "leaderboard", Payload: leaderboardPayload{
				Date:        h.service.Today(),
				Leaderboard: entries,
			}}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		}
	}

	session.Finish()
	close(closeSignals)
	<-eventsDone
	close(send)
	<-writerDone
}

func eventMessage(event domain.SessionEvent) outboundMessage[any] {
	switch event.Type {
	case domain.EventQuestion:
		return outboundMessage[any]{Type: string(event.Type), Payload: event.Question}
	case domain.EventFeedback:
		return outboundMessage[any]{Type: string(event.Type), Payload: event.Feedback}
	case domain.EventFinished:
		return outboundMessage[any]{Type: string(event.Type), Payload: event.Summary}
	default:
		return outboundMessage[any]{Type: string(event.Type), Payload: tickPayload{TimeLeft: event.TimeLeft}}
	}
}
