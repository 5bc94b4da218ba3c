package game

import (
	"math"

	"github.com/adityarawat/manch-ui/internal/models"
)

const (
	// WinThreshold is the minimum average score for a victory (inclusive)
	WinThreshold = 55.0
	// MiddlingThreshold marks a respectable but losing campaign
	MiddlingThreshold = 40.0
	// LowMetricThreshold triggers a per-metric remark when a metric
	// finishes below it
	LowMetricThreshold = 40
)

// Result is the derived outcome of a finished game
type Result struct {
	Score   float64  `json:"score"`
	Won     bool     `json:"won"`
	Outcome string   `json:"outcome"`
	Remarks []string `json:"remarks"`
}

var lowMetricRemarks = map[models.MetricID]string{
	models.MetricVoteBank:    "Your core vote bank never consolidated behind you.",
	models.MetricYouthAppeal: "Young voters drifted to louder campaigns.",
	models.MetricWomenVoters: "Women voters stayed away from your rallies.",
	models.MetricCredibility: "Too many U-turns left your credibility in doubt.",
	models.MetricMomentum:    "The campaign peaked too early and lost momentum.",
}

// ComputeResult derives the final score and verdict from a game state.
// The score is the arithmetic mean of the five metrics, rounded to one
// decimal place; the win threshold is inclusive.
func ComputeResult(state models.GameState) Result {
	ids := MetricIDs()
	sum := 0
	for _, id := range ids {
		sum += state.Metrics[id]
	}
	score := math.Round(float64(sum)/float64(len(ids))*10) / 10

	result := Result{
		Score: score,
		Won:   score >= WinThreshold,
	}
	if result.Won {
		result.Outcome = "Victory"
	} else {
		result.Outcome = "Defeat"
	}

	for _, id := range ids {
		if state.Metrics[id] < LowMetricThreshold {
			result.Remarks = append(result.Remarks, lowMetricRemarks[id])
		}
	}
	if !result.Won && score >= MiddlingThreshold {
		result.Remarks = append(result.Remarks, "A spirited campaign that fell short of the majority mark.")
	}

	return result
}
