package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"daily-trivia-service/internal/app"
	"daily-trivia-service/internal/domain"
	"daily-trivia-service/internal/infra/memory"
)

const testDay = "2024-01-02"

func testClock() func() time.Time {
	t, _ := time.Parse(time.RFC3339, testDay+"T12:00:00Z")
	return func() time.Time { return t }
}

func newTestServer(t *testing.T, questions []domain.Question) *httptest.Server {
	t.Helper()
	bank := memory.NewStaticQuestionBank(map[domain.Day][]domain.Question{
		domain.Day(testDay): questions,
	})
	service := app.NewGameServiceWithClock(bank, memory.NewLeaderboard(), testClock())

	mux := http.NewServeMux()
	NewHandler(service).Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:   1,
			Text: "What is 2 + 2?",
			Day:  testDay,
			Options: []domain.Option{
				{ID: 1, Text: "3"},
				{ID: 2, Text: "4", IsCorrect: true},
			},
		},
	}
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body, out any) int {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode
}

func TestGetQuestions(t *testing.T) {
	server := newTestServer(t, testQuestions())

	var questions []domain.Question
	if status := getJSON(t, server.URL+"/questions", &questions); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(questions) != 1 || questions[0].Text != "What is 2 + 2?" {
		t.Fatalf("unexpected questions: %+v", questions)
	}
	if len(questions[0].Options) != 2 || !questions[0].Options[1].IsCorrect {
		t.Fatalf("unexpected options: %+v", questions[0].Options)
	}
}

func TestGetQuestionsEmptyDayIsNotAnError(t *testing.T) {
	server := newTestServer(t, nil)

	var payload messageResponse
	if status := getJSON(t, server.URL+"/questions", &payload); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if payload.Message == "" {
		t.Fatalf("expected explicit empty-day message")
	}
}

func TestSubmitAndReadLeaderboard(t *testing.T) {
	server := newTestServer(t, testQuestions())

	var ok messageResponse
	if status := postJSON(t, server.URL+"/leaderboard", submitRequest{Name: "Ana", Score: 10}, &ok); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	var conflict errorResponse
	if status := postJSON(t, server.URL+"/leaderboard", submitRequest{Name: "Ana", Score: 7}, &conflict); status != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate, got %d", status)
	}
	if conflict.Error == "" {
		t.Fatalf("expected client-facing duplicate message")
	}

	var board leaderboardResponse
	if status := getJSON(t, server.URL+"/leaderboard/today", &board); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if board.Date != testDay {
		t.Fatalf("expected date %s, got %s", testDay, board.Date)
	}
	if len(board.Leaderboard) != 1 || board.Leaderboard[0].Score != 10 {
		t.Fatalf("expected only the first Ana entry, got %+v", board.Leaderboard)
	}
}

func TestSubmitEmptyName(t *testing.T) {
	server := newTestServer(t, testQuestions())

	var out errorResponse
	if status := postJSON(t, server.URL+"/leaderboard", submitRequest{Name: "  ", Score: 3}, &out); status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
}

func TestResetEndpoint(t *testing.T) {
	server := newTestServer(t, testQuestions())

	var ok messageResponse
	postJSON(t, server.URL+"/leaderboard", submitRequest{Name: "Ana", Score: 10}, &ok)

	if status := postJSON(t, server.URL+"/leaderboard/reset", struct{}{}, &ok); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	// Reset is idempotent: clearing an empty board succeeds too.
	if status := postJSON(t, server.URL+"/leaderboard/reset", struct{}{}, &ok); status != http.StatusOK {
		t.Fatalf("expected 200 on redundant reset, got %d", status)
	}

	var board leaderboardResponse
	getJSON(t, server.URL+"/leaderboard/today", &board)
	if len(board.Leaderboard) != 0 {
		t.Fatalf("expected empty leaderboard after reset, got %+v", board.Leaderboard)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	server := newTestServer(t, testQuestions())

	resp, err := http.Get(server.URL + "/leaderboard")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}
