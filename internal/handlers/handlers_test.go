package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adityarawat/manch-ui/internal/dal"
	"github.com/adityarawat/manch-ui/internal/game"
	"github.com/adityarawat/manch-ui/internal/logger"
	"github.com/adityarawat/manch-ui/internal/models"
	"github.com/adityarawat/manch-ui/internal/pubsub"
)

func init() {
	logger.Init()
}

func newTestAPI() *APIHandlers {
	return NewAPIHandlers(dal.NewMemoryDAL(), game.NewRegistry(), pubsub.New())
}

func postJSON(t *testing.T, api http.HandlerFunc, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	api(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == GameSessionCookie {
			return c
		}
	}
	t.Fatal("no game session cookie set")
	return nil
}

func TestListExperiences(t *testing.T) {
	api := newTestAPI()

	req := httptest.NewRequest(http.MethodGet, "/api/experiences", nil)
	w := httptest.NewRecorder()
	api.ListExperiences(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var experiences []models.Experience
	if err := json.NewDecoder(w.Body).Decode(&experiences); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(experiences) == 0 {
		t.Fatal("expected seeded experiences")
	}

	// Default sort is popularity descending
	for i := 1; i < len(experiences); i++ {
		if experiences[i].Popularity > experiences[i-1].Popularity {
			t.Errorf("experiences not sorted by popularity at index %d", i)
			break
		}
	}
}

func TestListExperiencesCityFilter(t *testing.T) {
	api := newTestAPI()

	req := httptest.NewRequest(http.MethodGet, "/api/experiences?city=Jaipur", nil)
	w := httptest.NewRecorder()
	api.ListExperiences(w, req)

	var experiences []models.Experience
	if err := json.NewDecoder(w.Body).Decode(&experiences); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	for _, e := range experiences {
		if e.City != "Jaipur" {
			t.Errorf("filter leaked experience from %s", e.City)
		}
	}
	if len(experiences) == 0 {
		t.Error("expected at least one Jaipur experience")
	}
}

func TestGetExperienceNotFound(t *testing.T) {
	api := newTestAPI()

	req := httptest.NewRequest(http.MethodGet, "/api/experiences/get?id=nope", nil)
	w := httptest.NewRecorder()
	api.GetExperience(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestAddInquiryValidation(t *testing.T) {
	api := newTestAPI()

	// Missing required fields
	w := postJSON(t, api.AddInquiry, "/api/inquiries/add", `{"experienceId":"1"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing fields: status = %d, want 400", w.Code)
	}

	// Unknown experience
	w = postJSON(t, api.AddInquiry, "/api/inquiries/add",
		`{"experienceId":"999","name":"A","email":"a@b.c"}`, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown experience: status = %d, want 404", w.Code)
	}

	// Valid inquiry
	w = postJSON(t, api.AddInquiry, "/api/inquiries/add",
		`{"experienceId":"1","name":"Asha","email":"asha@example.com","message":"Timings?"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("valid inquiry: status = %d, want 200", w.Code)
	}

	var inquiry models.Inquiry
	if err := json.NewDecoder(w.Body).Decode(&inquiry); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if inquiry.ID == "" || inquiry.TS == 0 {
		t.Error("inquiry should get an id and timestamp")
	}
}

func TestGameFlowOverHTTP(t *testing.T) {
	api := newTestAPI()

	// Unknown candidate is a 404
	w := postJSON(t, api.SelectCandidate, "/api/game/select", `{"candidateId":"nobody"}`, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown candidate: status = %d, want 404", w.Code)
	}

	// Select a real candidate
	w = postJSON(t, api.SelectCandidate, "/api/game/select", `{"candidateId":"nitish-kumar"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("select: status = %d, want 200", w.Code)
	}
	cookie := sessionCookie(t, w)

	// Results before finishing is a conflict
	req := httptest.NewRequest(http.MethodGet, "/api/game/results", nil)
	req.AddCookie(cookie)
	rw := httptest.NewRecorder()
	api.GameResults(rw, req)
	if rw.Code != http.StatusConflict {
		t.Errorf("early results: status = %d, want 409", rw.Code)
	}

	// Over-budget allocation is rejected
	w = postJSON(t, api.AllocateMetrics, "/api/game/allocate",
		`{"allocation":{"voteBank":5,"youthAppeal":5,"womenVoters":5,"credibility":5}}`, cookie)
	if w.Code != http.StatusBadRequest {
		t.Errorf("over-budget allocation: status = %d, want 400", w.Code)
	}

	// Valid allocation starts the game
	w = postJSON(t, api.AllocateMetrics, "/api/game/allocate",
		`{"allocation":{"voteBank":5,"youthAppeal":5,"womenVoters":5}}`, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("allocate: status = %d, want 200", w.Code)
	}

	var state models.GameState
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !state.IsGameStarted {
		t.Fatal("game should be started after allocation")
	}

	// Answer all five questions
	for i := 0; i < 5; i++ {
		w = postJSON(t, api.AnswerQuestion, "/api/game/answer", `{"optionIndex":0}`, cookie)
		if w.Code != http.StatusOK {
			t.Fatalf("answer %d: status = %d, want 200", i+1, w.Code)
		}
	}

	// A sixth answer is a conflict
	w = postJSON(t, api.AnswerQuestion, "/api/game/answer", `{"optionIndex":0}`, cookie)
	if w.Code != http.StatusConflict {
		t.Errorf("answer after finish: status = %d, want 409", w.Code)
	}

	// Results are now available
	req = httptest.NewRequest(http.MethodGet, "/api/game/results", nil)
	req.AddCookie(cookie)
	rw = httptest.NewRecorder()
	api.GameResults(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("results: status = %d, want 200", rw.Code)
	}

	var result game.Result
	if err := json.NewDecoder(rw.Body).Decode(&result); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if result.Outcome != "Victory" && result.Outcome != "Defeat" {
		t.Errorf("unexpected outcome %q", result.Outcome)
	}

	// Reset returns the initial state
	w = postJSON(t, api.ResetGame, "/api/game/reset", ``, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("reset: status = %d, want 200", w.Code)
	}
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if state.SelectedCandidateID != "" || state.IsGameStarted || state.IsGameFinished {
		t.Errorf("reset state not initial: %+v", state)
	}
}

func TestGameSessionsAreIsolated(t *testing.T) {
	api := newTestAPI()

	w1 := postJSON(t, api.SelectCandidate, "/api/game/select", `{"candidateId":"nitish-kumar"}`, nil)
	c1 := sessionCookie(t, w1)

	w2 := postJSON(t, api.SelectCandidate, "/api/game/select", `{"candidateId":"tejashwi-yadav"}`, nil)
	c2 := sessionCookie(t, w2)

	if c1.Value == c2.Value {
		t.Fatal("two fresh requests shared a session")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/game/state", nil)
	req.AddCookie(c1)
	rw := httptest.NewRecorder()
	api.GetGameState(rw, req)

	var state models.GameState
	if err := json.NewDecoder(rw.Body).Decode(&state); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if state.SelectedCandidateID != "nitish-kumar" {
		t.Errorf("session 1 candidate = %q, want nitish-kumar", state.SelectedCandidateID)
	}
}

func TestAllocationDraftOverHTTP(t *testing.T) {
	api := newTestAPI()

	w := postJSON(t, api.SelectCandidate, "/api/game/select", `{"candidateId":"nitish-kumar"}`, nil)
	cookie := sessionCookie(t, w)

	var draft struct {
		Points    map[models.MetricID]int `json:"points"`
		Remaining int                     `json:"remaining"`
		Applied   bool                    `json:"applied"`
	}

	// Five increments fill one metric; the sixth is refused
	for i := 0; i < 6; i++ {
		w = postJSON(t, api.AdjustAllocationDraft, "/api/game/draft/adjust",
			`{"metricId":"voteBank","delta":1}`, cookie)
		if w.Code != http.StatusOK {
			t.Fatalf("adjust %d: status = %d, want 200", i+1, w.Code)
		}
		if err := json.NewDecoder(w.Body).Decode(&draft); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
	}
	if draft.Applied {
		t.Error("sixth increment on one metric should report applied=false")
	}
	if draft.Points[models.MetricVoteBank] != game.PerMetricCap {
		t.Errorf("voteBank = %d, want %d", draft.Points[models.MetricVoteBank], game.PerMetricCap)
	}

	// Auto-balance spreads the whole budget
	w = postJSON(t, api.AutoBalanceAllocationDraft, "/api/game/draft/auto", ``, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("auto-balance: status = %d, want 200", w.Code)
	}
	if err := json.NewDecoder(w.Body).Decode(&draft); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if draft.Remaining != 0 {
		t.Errorf("remaining = %d, want 0 after auto-balance", draft.Remaining)
	}
	for id, v := range draft.Points {
		if v != 3 {
			t.Errorf("metric %s = %d, want 3", id, v)
		}
	}

	// The draft survives a GET and is exactly what allocate accepts
	req := httptest.NewRequest(http.MethodGet, "/api/game/draft", nil)
	req.AddCookie(cookie)
	rw := httptest.NewRecorder()
	api.GetAllocationDraft(rw, req)
	if err := json.NewDecoder(rw.Body).Decode(&draft); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	body, _ := json.Marshal(map[string]interface{}{"allocation": draft.Points})
	w = postJSON(t, api.AllocateMetrics, "/api/game/allocate", string(body), cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("allocate from draft: status = %d, want 200", w.Code)
	}

	// Selecting again clears the draft
	postJSON(t, api.SelectCandidate, "/api/game/select", `{"candidateId":"tejashwi-yadav"}`, cookie)
	rw = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/game/draft", nil)
	req.AddCookie(cookie)
	api.GetAllocationDraft(rw, req)
	if err := json.NewDecoder(rw.Body).Decode(&draft); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if draft.Remaining != game.AllocationBudget {
		t.Errorf("remaining = %d, want full budget after reselect", draft.Remaining)
	}
}

func TestAllocateWithoutCandidate(t *testing.T) {
	api := newTestAPI()

	w := postJSON(t, api.AllocateMetrics, "/api/game/allocate",
		`{"allocation":{"voteBank":5}}`, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
}

func TestGameContent(t *testing.T) {
	api := newTestAPI()

	req := httptest.NewRequest(http.MethodGet, "/api/game/content?candidateId=nitish-kumar", nil)
	w := httptest.NewRecorder()
	api.GameContent(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Candidates []models.Candidate `json:"candidates"`
		Metrics    []models.Metric    `json:"metrics"`
		Questions  []models.Question  `json:"questions"`
		Budget     int                `json:"budget"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp.Candidates) != 3 || len(resp.Metrics) != 5 || len(resp.Questions) != 5 {
		t.Errorf("content shape: %d candidates, %d metrics, %d questions",
			len(resp.Candidates), len(resp.Metrics), len(resp.Questions))
	}
	if resp.Budget != game.AllocationBudget {
		t.Errorf("budget = %d, want %d", resp.Budget, game.AllocationBudget)
	}
}
