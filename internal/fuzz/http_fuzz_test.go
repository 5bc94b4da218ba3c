package fuzz

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adityarawat/manch-ui/internal/dal"
	"github.com/adityarawat/manch-ui/internal/game"
	"github.com/adityarawat/manch-ui/internal/handlers"
	"github.com/adityarawat/manch-ui/internal/logger"
	"github.com/adityarawat/manch-ui/internal/pubsub"
)

func init() {
	// Initialize logger for tests
	logger.Init()
}

func newAPI() *handlers.APIHandlers {
	return handlers.NewAPIHandlers(dal.NewMemoryDAL(), game.NewRegistry(), pubsub.New())
}

// FuzzHTTPSelectCandidate fuzzes the candidate selection endpoint
func FuzzHTTPSelectCandidate(f *testing.F) {
	// Seed corpus with valid examples
	f.Add(`{"candidateId":"nitish-kumar"}`)
	f.Add(`{"candidateId":"tejashwi-yadav"}`)
	f.Add(`{"candidateId":"no-such-candidate"}`)
	f.Add(`{"candidateId":""}`)

	f.Fuzz(func(t *testing.T, data string) {
		api := newAPI()

		req := httptest.NewRequest(http.MethodPost, "/api/game/select", bytes.NewBufferString(data))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		// Should not panic - that's the main goal of fuzzing
		api.SelectCandidate(w, req)
	})
}

// FuzzHTTPAllocateMetrics fuzzes the allocation endpoint
func FuzzHTTPAllocateMetrics(f *testing.F) {
	f.Add(`{"allocation":{"voteBank":5,"youthAppeal":5,"womenVoters":5}}`)
	f.Add(`{"allocation":{"voteBank":99}}`)
	f.Add(`{"allocation":{"bogus":-1}}`)
	f.Add(`{"allocation":{}}`)

	f.Fuzz(func(t *testing.T, data string) {
		api := newAPI()

		req := httptest.NewRequest(http.MethodPost, "/api/game/allocate", bytes.NewBufferString(data))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		api.AllocateMetrics(w, req)
	})
}

// FuzzHTTPAnswerQuestion fuzzes the answer endpoint against a mid-game session
func FuzzHTTPAnswerQuestion(f *testing.F) {
	f.Add(`{"optionIndex":0}`)
	f.Add(`{"optionIndex":-1}`)
	f.Add(`{"optionIndex":999999}`)
	f.Add(`{"optionIndex":"zero"}`)

	f.Fuzz(func(t *testing.T, data string) {
		api := newAPI()

		// Drive a session into the answering stage first
		cookie := startGame(t, api)

		req := httptest.NewRequest(http.MethodPost, "/api/game/answer", bytes.NewBufferString(data))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(cookie)
		w := httptest.NewRecorder()

		api.AnswerQuestion(w, req)
	})
}

// FuzzHTTPAddInquiry fuzzes the inquiry endpoint
func FuzzHTTPAddInquiry(f *testing.F) {
	f.Add(`{"experienceId":"1","name":"A","email":"a@b.c","message":"hi"}`)
	f.Add(`{"experienceId":"","name":"","email":""}`)
	f.Add(`{"experienceId":"999","name":"X","email":"x@y.z"}`)
	f.Add(`{"experienceId":"1","message":"` + string(make([]byte, 10000)) + `"}`)

	f.Fuzz(func(t *testing.T, data string) {
		api := newAPI()

		req := httptest.NewRequest(http.MethodPost, "/api/inquiries/add", bytes.NewBufferString(data))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		api.AddInquiry(w, req)
	})
}

// startGame selects a candidate and allocates points for a fresh session,
// returning the session cookie
func startGame(t *testing.T, api *handlers.APIHandlers) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/game/select",
		bytes.NewBufferString(`{"candidateId":"nitish-kumar"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	api.SelectCandidate(w, req)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == handlers.GameSessionCookie {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no game session cookie set")
	}

	req = httptest.NewRequest(http.MethodPost, "/api/game/allocate",
		bytes.NewBufferString(`{"allocation":{"voteBank":5,"youthAppeal":5,"womenVoters":5}}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(cookie)
	api.AllocateMetrics(httptest.NewRecorder(), req)

	return cookie
}
