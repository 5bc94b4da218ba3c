package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adityarawat/manch-ui/internal/models"
)

func TestAllocationDraftStartsEmpty(t *testing.T) {
	draft := NewAllocationDraft()

	assert.Equal(t, 0, draft.Total())
	points := draft.Points()
	require.Len(t, points, 5)
	for _, id := range MetricIDs() {
		assert.Equal(t, 0, points[id])
	}
}

func TestIncrementRespectsPerMetricCap(t *testing.T) {
	draft := NewAllocationDraft()

	for i := 0; i < PerMetricCap; i++ {
		assert.True(t, draft.Increment(models.MetricVoteBank))
	}
	assert.False(t, draft.Increment(models.MetricVoteBank), "increment past the cap must be rejected")
	assert.Equal(t, PerMetricCap, draft.Points()[models.MetricVoteBank])
	assert.Equal(t, PerMetricCap, draft.Total())
}

func TestIncrementRespectsBudget(t *testing.T) {
	draft := NewAllocationDraft()

	// 5 + 5 + 5 fills the budget of 15
	for i := 0; i < PerMetricCap; i++ {
		require.True(t, draft.Increment(models.MetricVoteBank))
		require.True(t, draft.Increment(models.MetricYouthAppeal))
		require.True(t, draft.Increment(models.MetricWomenVoters))
	}
	require.Equal(t, AllocationBudget, draft.Total())

	assert.False(t, draft.Increment(models.MetricCredibility), "increment over budget must be rejected")
	assert.Equal(t, 0, draft.Points()[models.MetricCredibility])
	assert.Equal(t, AllocationBudget, draft.Total())
}

func TestIncrementUnknownMetric(t *testing.T) {
	draft := NewAllocationDraft()
	assert.False(t, draft.Increment(models.MetricID("swingStates")))
	assert.Equal(t, 0, draft.Total())
}

func TestDecrementFloorsAtZero(t *testing.T) {
	draft := NewAllocationDraft()

	assert.False(t, draft.Decrement(models.MetricMomentum))

	require.True(t, draft.Increment(models.MetricMomentum))
	assert.True(t, draft.Decrement(models.MetricMomentum))
	assert.Equal(t, 0, draft.Points()[models.MetricMomentum])
	assert.False(t, draft.Decrement(models.MetricMomentum))
}

func TestAutoBalanceDistributesEvenly(t *testing.T) {
	draft := NewAllocationDraft()
	draft.AutoBalance()

	// 15 points over 5 metrics is exactly 3 each
	points := draft.Points()
	for _, id := range MetricIDs() {
		assert.Equal(t, 3, points[id], "metric %s", id)
	}
	assert.Equal(t, AllocationBudget, draft.Total())
}

func TestAutoBalanceOverwritesDraft(t *testing.T) {
	draft := NewAllocationDraft()
	for i := 0; i < PerMetricCap; i++ {
		require.True(t, draft.Increment(models.MetricVoteBank))
	}

	draft.AutoBalance()

	assert.Equal(t, 3, draft.Points()[models.MetricVoteBank])
	assert.Equal(t, AllocationBudget, draft.Total())
}

func TestValidateAllocation(t *testing.T) {
	tests := []struct {
		name       string
		allocation map[models.MetricID]int
		wantErr    bool
	}{
		{
			name: "full valid allocation",
			allocation: map[models.MetricID]int{
				models.MetricVoteBank:    5,
				models.MetricYouthAppeal: 5,
				models.MetricWomenVoters: 5,
			},
		},
		{
			name:       "partial spend is allowed",
			allocation: map[models.MetricID]int{models.MetricMomentum: 2},
		},
		{
			name:       "empty allocation is allowed",
			allocation: map[models.MetricID]int{},
		},
		{
			name:       "per-metric cap exceeded",
			allocation: map[models.MetricID]int{models.MetricVoteBank: 6},
			wantErr:    true,
		},
		{
			name: "budget exceeded",
			allocation: map[models.MetricID]int{
				models.MetricVoteBank:    5,
				models.MetricYouthAppeal: 5,
				models.MetricWomenVoters: 5,
				models.MetricCredibility: 1,
			},
			wantErr: true,
		},
		{
			name:       "negative value",
			allocation: map[models.MetricID]int{models.MetricVoteBank: -1},
			wantErr:    true,
		},
		{
			name:       "unknown metric",
			allocation: map[models.MetricID]int{models.MetricID("charisma"): 1},
			wantErr:    true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAllocation(tc.allocation)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
