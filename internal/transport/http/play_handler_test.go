package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"millionaire-quiz-service/internal/domain"
	"millionaire-quiz-service/internal/session"
)

type wsMessage struct {
	Type           string                `json:"type"`
	Message        string                `json:"message"`
	ContestantName string                `json:"contestantName"`
	TotalQuestions int                   `json:"totalQuestions"`
	Question       *session.QuestionView `json:"question"`
	Answer         *session.AnswerEvent  `json:"answer"`
	Result         *domain.Result        `json:"result"`
}

func dialPlay(t *testing.T, server *httptest.Server, contestantID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/play?contestantId=" + contestantID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil skips intermediate messages (timer ticks mostly) until one of the
// wanted type arrives.
func readUntil(t *testing.T, conn *websocket.Conn, wanted string) wsMessage {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	conn.SetReadDeadline(deadline)
	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %q: %v", wanted, err)
		}
		if msg.Type == wanted {
			return msg
		}
		if time.Now().After(deadline) {
			t.Fatalf("no %q message before deadline", wanted)
		}
	}
}

func sendCommand(t *testing.T, conn *websocket.Conn, raw string) {
	t.Helper()
	if err := conn.WriteMessage(websocket.TextMessage, []byte(raw)); err != nil {
		t.Fatalf("send %s: %v", raw, err)
	}
}

func TestPlaySessionFlow(t *testing.T) {
	server := newTestServer(t)

	body := domain.NewContestant{
		Name: "WS Quiz",
		Questions: []domain.NewQuestion{
			{Text: "first", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1},
			{Text: "second", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 2},
		},
		TimerMinutes: 1,
	}
	created := decodeBody[domain.Contestant](t, postJSON(t, server.URL+"/api/contestants", body))

	conn := dialPlay(t, server, created.ID)

	info := readUntil(t, conn, "session")
	if info.ContestantName != "WS Quiz" || info.TotalQuestions != 2 {
		t.Fatalf("unexpected session info %+v", info)
	}

	question := readUntil(t, conn, "question")
	if question.Question == nil || question.Question.Text != "first" {
		t.Fatalf("unexpected first question %+v", question.Question)
	}

	sendCommand(t, conn, `{"type":"answer","payload":{"index":1}}`)
	answer := readUntil(t, conn, "answer")
	if answer.Answer == nil || !answer.Answer.Correct || answer.Answer.CorrectIndex != 1 {
		t.Fatalf("unexpected answer event %+v", answer.Answer)
	}

	// Auto-advance fires after the configured delay.
	question = readUntil(t, conn, "question")
	if question.Question == nil || question.Question.Text != "second" {
		t.Fatalf("unexpected second question %+v", question.Question)
	}

	sendCommand(t, conn, `{"type":"answer","payload":{"index":0}}`)
	answer = readUntil(t, conn, "answer")
	if answer.Answer.Correct {
		t.Fatalf("wrong answer reported as correct")
	}

	finished := readUntil(t, conn, "finished")
	if finished.Result == nil {
		t.Fatalf("finished event without result")
	}
	if finished.Result.CorrectCount != 1 || finished.Result.TotalQuestions != 2 || finished.Result.Percentage != 50 {
		t.Fatalf("unexpected result %+v", finished.Result)
	}
}

func TestPlayUnknownContestant(t *testing.T) {
	server := newTestServer(t)

	conn := dialPlay(t, server, "no-such-id")
	msg := readUntil(t, conn, "error")
	if msg.Message == "" {
		t.Fatalf("expected error message body")
	}
}

func TestPlayUnknownCommand(t *testing.T) {
	server := newTestServer(t)

	created := decodeBody[domain.Contestant](t, postJSON(t, server.URL+"/api/contestants", insertBody()))
	conn := dialPlay(t, server, created.ID)

	readUntil(t, conn, "question")
	sendCommand(t, conn, `{"type":"teleport"}`)
	msg := readUntil(t, conn, "error")
	if msg.Message == "" {
		t.Fatalf("expected error message for unknown command")
	}
}

func TestPlayMissingContestantID(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/ws/play")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
