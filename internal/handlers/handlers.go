package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adityarawat/manch-ui/internal/auth"
	"github.com/adityarawat/manch-ui/internal/dal"
	"github.com/adityarawat/manch-ui/internal/game"
	"github.com/adityarawat/manch-ui/internal/logger"
	"github.com/adityarawat/manch-ui/internal/models"
	"github.com/adityarawat/manch-ui/internal/pubsub"
)

// GameSessionCookie names the cookie that keys a browser to its game session
const GameSessionCookie = "game_session"

// APIHandlers contains all API handler methods
type APIHandlers struct {
	dal    dal.MarketDAL
	games  *game.Registry
	pubsub *pubsub.PubSub
}

// NewAPIHandlers creates a new API handlers instance
func NewAPIHandlers(dal dal.MarketDAL, games *game.Registry, ps *pubsub.PubSub) *APIHandlers {
	return &APIHandlers{
		dal:    dal,
		games:  games,
		pubsub: ps,
	}
}

// ListExperiences returns the experience catalog, optionally filtered by
// city or artform and sorted by popularity, price or rating
func (h *APIHandlers) ListExperiences(w http.ResponseWriter, r *http.Request) {
	experiences, err := h.dal.ListExperiences()
	if err != nil {
		logger.Error("Failed to list experiences", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	city := strings.TrimSpace(r.URL.Query().Get("city"))
	artform := strings.TrimSpace(r.URL.Query().Get("artform"))
	if city != "" || artform != "" {
		filtered := experiences[:0]
		for _, e := range experiences {
			if city != "" && !strings.EqualFold(e.City, city) {
				continue
			}
			if artform != "" && !strings.EqualFold(e.Artform, artform) {
				continue
			}
			filtered = append(filtered, e)
		}
		experiences = filtered
	}

	switch r.URL.Query().Get("sort") {
	case "price":
		sort.SliceStable(experiences, func(i, j int) bool { return experiences[i].Price < experiences[j].Price })
	case "rating":
		sort.SliceStable(experiences, func(i, j int) bool { return experiences[i].Rating > experiences[j].Rating })
	case "popularity", "":
		sort.SliceStable(experiences, func(i, j int) bool { return experiences[i].Popularity > experiences[j].Popularity })
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(experiences)
}

// GetExperience returns a single experience by id
func (h *APIHandlers) GetExperience(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	experience, err := h.dal.GetExperience(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(experience)
}

// AddInquiry records a visitor inquiry for an experience
func (h *APIHandlers) AddInquiry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ExperienceID string `json:"experienceId"`
		Name         string `json:"name"`
		Email        string `json:"email"`
		Message      string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode inquiry request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.ExperienceID == "" || req.Name == "" || req.Email == "" {
		http.Error(w, "experienceId, name and email are required", http.StatusBadRequest)
		return
	}

	// The inquiry must reference a real experience
	if _, err := h.dal.GetExperience(req.ExperienceID); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	inquiry, err := h.dal.AddInquiry(&models.Inquiry{
		ExperienceID: req.ExperienceID,
		Name:         req.Name,
		Email:        req.Email,
		Message:      req.Message,
	})
	if err != nil {
		logger.Error("Failed to add inquiry", "error", err, "experience_id", req.ExperienceID)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	logger.Info("Inquiry received", "experience_id", req.ExperienceID, "inquiry_id", inquiry.ID)

	h.pubsub.Publish(pubsub.Event{
		Type: "inquiry:new",
		Payload: map[string]interface{}{
			"experienceId": req.ExperienceID,
		},
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(inquiry)
}

// ListInquiries returns all inquiries. Admin only.
func (h *APIHandlers) ListInquiries(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r)
	if !auth.IsAdmin(user) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	inquiries, err := h.dal.ListInquiries()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(inquiries)
}

// GetProfile returns the signed-in user's profile
func (h *APIHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	profile, err := h.dal.GetProfile(user.ID)
	if err != nil {
		// No saved profile yet; return a skeleton from the identity provider
		profile = &models.Profile{
			UserID:      user.ID,
			DisplayName: user.Name,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// SaveProfile updates the signed-in user's profile
func (h *APIHandlers) SaveProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	user := auth.GetUser(r)
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		DisplayName string `json:"displayName"`
		City        string `json:"city"`
		Interests   string `json:"interests"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, err := h.dal.SaveProfile(&models.Profile{
		UserID:      user.ID,
		DisplayName: req.DisplayName,
		City:        req.City,
		Interests:   req.Interests,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profile)
}

// GameSession returns the session id for this browser, setting the cookie
// on first contact
func (h *APIHandlers) GameSession(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(GameSessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sessionID := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     GameSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
	})
	return sessionID
}

// GetGameState returns the current game state for this session
func (h *APIHandlers) GetGameState(w http.ResponseWriter, r *http.Request) {
	store := h.games.Get(h.GameSession(w, r))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(store.Snapshot())
}

// SelectCandidate picks the candidate for a fresh game
func (h *APIHandlers) SelectCandidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		CandidateID string `json:"candidateId"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, ok := game.CandidateByID(req.CandidateID); !ok {
		http.Error(w, fmt.Sprintf("unknown candidate %q", req.CandidateID), http.StatusNotFound)
		return
	}

	store := h.games.Get(h.GameSession(w, r))
	state := store.Dispatch(game.SelectCandidate{CandidateID: req.CandidateID})

	logger.Info("Candidate selected", "candidate_id", req.CandidateID)

	h.pubsub.Publish(pubsub.Event{
		Type: "game:select",
		Payload: map[string]interface{}{
			"candidateId": req.CandidateID,
		},
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

type draftResponse struct {
	Points    map[models.MetricID]int `json:"points"`
	Remaining int                     `json:"remaining"`
	Applied   bool                    `json:"applied"`
}

func (h *APIHandlers) writeDraft(w http.ResponseWriter, points map[models.MetricID]int, applied bool) {
	remaining := game.AllocationBudget
	for _, v := range points {
		remaining -= v
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(draftResponse{Points: points, Remaining: remaining, Applied: applied})
}

// GetAllocationDraft returns the session's current allocation draft
func (h *APIHandlers) GetAllocationDraft(w http.ResponseWriter, r *http.Request) {
	store := h.games.Get(h.GameSession(w, r))
	h.writeDraft(w, store.DraftPoints(), true)
}

// AdjustAllocationDraft moves one point on a draft metric. The draft itself
// enforces the budget and per-metric cap; a rejected nudge comes back with
// applied=false and the unchanged points.
func (h *APIHandlers) AdjustAllocationDraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		MetricID models.MetricID `json:"metricId"`
		Delta    int             `json:"delta"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	store := h.games.Get(h.GameSession(w, r))
	points, applied := store.AdjustDraft(req.MetricID, req.Delta)
	h.writeDraft(w, points, applied)
}

// AutoBalanceAllocationDraft spreads the full budget evenly across the draft
func (h *APIHandlers) AutoBalanceAllocationDraft(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	store := h.games.Get(h.GameSession(w, r))
	h.writeDraft(w, store.AutoBalanceDraft(), true)
}

// AllocateMetrics commits the allocation stage and starts the game
func (h *APIHandlers) AllocateMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Allocation map[models.MetricID]int `json:"allocation"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := game.ValidateAllocation(req.Allocation); err != nil {
		logger.Warn("Rejected allocation", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	store := h.games.Get(h.GameSession(w, r))
	if store.Snapshot().SelectedCandidateID == "" {
		http.Error(w, "No candidate selected", http.StatusConflict)
		return
	}

	state := store.Dispatch(game.AllocateMetrics{Allocation: req.Allocation})

	h.pubsub.Publish(pubsub.Event{Type: "game:allocate"})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// AnswerQuestion answers the current question with an option index
func (h *APIHandlers) AnswerQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		OptionIndex int `json:"optionIndex"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	store := h.games.Get(h.GameSession(w, r))
	current := store.Snapshot()

	if current.SelectedCandidateID == "" || !current.IsGameStarted {
		http.Error(w, "Game not started", http.StatusConflict)
		return
	}
	if current.IsGameFinished {
		http.Error(w, "Game already finished", http.StatusConflict)
		return
	}

	questions := game.QuestionsFor(current.SelectedCandidateID)
	if req.OptionIndex < 0 || current.CurrentQuestionIndex >= len(questions) ||
		req.OptionIndex >= len(questions[current.CurrentQuestionIndex].Options) {
		http.Error(w, "Option index out of range", http.StatusBadRequest)
		return
	}

	state := store.Dispatch(game.AnswerQuestion{OptionIndex: req.OptionIndex})

	h.pubsub.Publish(pubsub.Event{
		Type: "game:answer",
		Payload: map[string]interface{}{
			"questionIndex": current.CurrentQuestionIndex,
			"optionIndex":   req.OptionIndex,
		},
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// ResetGame returns this session's game to its initial state
func (h *APIHandlers) ResetGame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	store := h.games.Get(h.GameSession(w, r))
	state := store.Dispatch(game.ResetGame{})

	h.pubsub.Publish(pubsub.Event{Type: "game:reset"})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// GameResults returns the final score and verdict for a finished game
func (h *APIHandlers) GameResults(w http.ResponseWriter, r *http.Request) {
	store := h.games.Get(h.GameSession(w, r))
	state := store.Snapshot()

	if !state.IsGameFinished {
		http.Error(w, "Game not finished", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(game.ComputeResult(state))
}

// GameContent returns the static quiz content: candidates and metrics.
// Questions for a candidate are included when candidateId is given.
func (h *APIHandlers) GameContent(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"candidates": game.Candidates(),
		"metrics":    game.Metrics(),
		"budget":     game.AllocationBudget,
		"metricCap":  game.PerMetricCap,
	}

	if candidateID := r.URL.Query().Get("candidateId"); candidateID != "" {
		if _, ok := game.CandidateByID(candidateID); !ok {
			http.Error(w, fmt.Sprintf("unknown candidate %q", candidateID), http.StatusNotFound)
			return
		}
		resp["questions"] = game.QuestionsFor(candidateID)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// EventsSSE provides Server-Sent Events for realtime updates
func (h *APIHandlers) EventsSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	eventChan := h.pubsub.Subscribe()
	defer h.pubsub.Unsubscribe(eventChan)

	fmt.Fprintf(w, "data: {\"type\":\"connected\"}\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	for {
		select {
		case event := <-eventChan:
			data, _ := json.Marshal(event)
			fmt.Fprintf(w, "data: %s\n\n", data)
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		case <-r.Context().Done():
			logger.Debug("SSE client disconnected")
			return
		case <-time.After(30 * time.Second):
			// Keepalive ping
			fmt.Fprintf(w, ": keepalive\n\n")
			if f, ok := w.(http.Flusher); ok {
				f.Flush()
			}
		}
	}
}
