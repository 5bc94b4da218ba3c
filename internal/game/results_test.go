package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adityarawat/manch-ui/internal/models"
)

func stateWithMetrics(values map[models.MetricID]int) models.GameState {
	state := InitialState()
	for id, v := range values {
		state.Metrics[id] = v
	}
	state.IsGameStarted = true
	state.IsGameFinished = true
	return state
}

func uniformMetrics(v int) map[models.MetricID]int {
	values := map[models.MetricID]int{}
	for _, id := range MetricIDs() {
		values[id] = v
	}
	return values
}

func TestComputeResultWinThresholdInclusive(t *testing.T) {
	result := ComputeResult(stateWithMetrics(uniformMetrics(55)))

	assert.Equal(t, 55.0, result.Score)
	assert.True(t, result.Won)
	assert.Equal(t, "Victory", result.Outcome)
}

func TestComputeResultJustBelowThreshold(t *testing.T) {
	// 55+55+55+55+54 = 274, mean 54.8
	values := uniformMetrics(55)
	values[models.MetricMomentum] = 54
	result := ComputeResult(stateWithMetrics(values))

	assert.Equal(t, 54.8, result.Score)
	assert.False(t, result.Won)
	assert.Equal(t, "Defeat", result.Outcome)
}

func TestComputeResultRoundsToOneDecimal(t *testing.T) {
	// 60+60+60+60+33 = 273, mean 54.6
	values := uniformMetrics(60)
	values[models.MetricCredibility] = 33
	result := ComputeResult(stateWithMetrics(values))

	assert.Equal(t, 54.6, result.Score)
}

func TestComputeResultLowMetricRemarks(t *testing.T) {
	values := uniformMetrics(70)
	values[models.MetricWomenVoters] = 39
	values[models.MetricMomentum] = 10
	result := ComputeResult(stateWithMetrics(values))

	assert.True(t, result.Won)
	assert.Contains(t, result.Remarks, lowMetricRemarks[models.MetricWomenVoters])
	assert.Contains(t, result.Remarks, lowMetricRemarks[models.MetricMomentum])
	assert.Len(t, result.Remarks, 2)
}

func TestComputeResultMiddlingRemark(t *testing.T) {
	result := ComputeResult(stateWithMetrics(uniformMetrics(45)))

	assert.False(t, result.Won)
	assert.Contains(t, result.Remarks, "A spirited campaign that fell short of the majority mark.")
}

func TestComputeResultNoMiddlingRemarkBelowBand(t *testing.T) {
	result := ComputeResult(stateWithMetrics(uniformMetrics(20)))

	assert.False(t, result.Won)
	assert.NotContains(t, result.Remarks, "A spirited campaign that fell short of the majority mark.")
	// Every metric sits below the low threshold
	assert.Len(t, result.Remarks, 5)
}

func TestComputeResultWinnerGetsNoMiddlingRemark(t *testing.T) {
	result := ComputeResult(stateWithMetrics(uniformMetrics(80)))

	assert.True(t, result.Won)
	assert.Empty(t, result.Remarks)
}
