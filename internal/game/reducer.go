package game

import "github.com/adityarawat/manch-ui/internal/models"

// Command is one of the four game commands. The reducer treats any
// guard violation as a silent no-op and returns the input state unchanged.
type Command interface {
	isCommand()
}

// SelectCandidate resets the game and fixes the active candidate
type SelectCandidate struct {
	CandidateID string
}

// AllocateMetrics commits the initial resource allocation as the metric
// baseline and starts the game. The budget and per-metric caps are enforced
// by the allocation stage, not here.
type AllocateMetrics struct {
	Allocation map[models.MetricID]int
}

// AnswerQuestion answers the current question with the given option index
type AnswerQuestion struct {
	OptionIndex int
}

// ResetGame returns the game to its initial state
type ResetGame struct{}

func (SelectCandidate) isCommand() {}
func (AllocateMetrics) isCommand() {}
func (AnswerQuestion) isCommand()  {}
func (ResetGame) isCommand()       {}

// InitialState returns the canonical initial game state: no candidate,
// all five metrics at zero, no answers, both flags false
func InitialState() models.GameState {
	metrics := make(map[models.MetricID]int, len(MetricIDs()))
	for _, id := range MetricIDs() {
		metrics[id] = 0
	}
	return models.GameState{
		Metrics: metrics,
		Answers: []int{},
	}
}

// Reduce applies a command to a game state and returns the next state.
// It is a pure function: the input state is never mutated, and rejected
// commands return the input unchanged.
func Reduce(state models.GameState, cmd Command) models.GameState {
	switch c := cmd.(type) {
	case SelectCandidate:
		next := InitialState()
		next.SelectedCandidateID = c.CandidateID
		return next

	case AllocateMetrics:
		next := cloneState(state)
		metrics := make(map[models.MetricID]int, len(MetricIDs()))
		for _, id := range MetricIDs() {
			metrics[id] = clamp(c.Allocation[id])
		}
		next.Metrics = metrics
		next.IsGameStarted = true
		return next

	case AnswerQuestion:
		if state.SelectedCandidateID == "" {
			return state
		}
		questions := QuestionsFor(state.SelectedCandidateID)
		if state.CurrentQuestionIndex >= len(questions) {
			return state
		}
		question := questions[state.CurrentQuestionIndex]
		if c.OptionIndex < 0 || c.OptionIndex >= len(question.Options) {
			return state
		}

		next := cloneState(state)
		for metricID, delta := range question.Options[c.OptionIndex].Effects {
			next.Metrics[metricID] = clamp(next.Metrics[metricID] + delta)
		}
		next.Answers = append(next.Answers, c.OptionIndex)
		next.CurrentQuestionIndex++
		next.IsGameFinished = next.CurrentQuestionIndex == len(questions)
		return next

	case ResetGame:
		return InitialState()
	}

	return state
}

// cloneState returns a deep copy so the reducer never aliases the caller's maps
func cloneState(state models.GameState) models.GameState {
	next := state
	next.Metrics = make(map[models.MetricID]int, len(state.Metrics))
	for id, v := range state.Metrics {
		next.Metrics[id] = v
	}
	next.Answers = make([]int, len(state.Answers))
	copy(next.Answers, state.Answers)
	return next
}

// clamp bounds a metric value to [0, 100]
func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
