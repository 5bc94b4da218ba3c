package game

import (
	"fmt"

	"github.com/adityarawat/manch-ui/internal/models"
)

const (
	// AllocationBudget is the total number of points a player may commit
	// during the allocation stage
	AllocationBudget = 15
	// PerMetricCap is the maximum points a single metric may receive
	PerMetricCap = 5
)

// AllocationDraft is the allocation stage's local working copy. It enforces
// the budget and per-metric cap on every mutation; the reducer trusts
// whatever the stage finally commits.
type AllocationDraft struct {
	points map[models.MetricID]int
}

// NewAllocationDraft returns a draft with zero points on every metric
func NewAllocationDraft() *AllocationDraft {
	points := make(map[models.MetricID]int, len(MetricIDs()))
	for _, id := range MetricIDs() {
		points[id] = 0
	}
	return &AllocationDraft{points: points}
}

// Increment adds one point to a metric. It reports false and leaves the
// draft unchanged if the metric is unknown, already at the per-metric cap,
// or the budget is exhausted.
func (d *AllocationDraft) Increment(id models.MetricID) bool {
	current, ok := d.points[id]
	if !ok {
		return false
	}
	if current >= PerMetricCap {
		return false
	}
	if d.Total() >= AllocationBudget {
		return false
	}
	d.points[id] = current + 1
	return true
}

// Decrement removes one point from a metric, refusing to go below zero
func (d *AllocationDraft) Decrement(id models.MetricID) bool {
	current, ok := d.points[id]
	if !ok || current <= 0 {
		return false
	}
	d.points[id] = current - 1
	return true
}

// Total returns the points committed so far
func (d *AllocationDraft) Total() int {
	total := 0
	for _, v := range d.points {
		total += v
	}
	return total
}

// Points returns a copy of the current draft allocation
func (d *AllocationDraft) Points() map[models.MetricID]int {
	points := make(map[models.MetricID]int, len(d.points))
	for id, v := range d.points {
		points[id] = v
	}
	return points
}

// AutoBalance distributes the full budget evenly across all metrics,
// giving any remainder to the first metrics in table order, capped
// per metric
func (d *AllocationDraft) AutoBalance() {
	ids := MetricIDs()
	base := AllocationBudget / len(ids)
	remainder := AllocationBudget % len(ids)

	for i, id := range ids {
		points := base
		if i < remainder {
			points++
		}
		if points > PerMetricCap {
			points = PerMetricCap
		}
		d.points[id] = points
	}
}

// ValidateAllocation checks a submitted allocation against the stage
// invariants: known metrics only, non-negative values, per-metric cap,
// and total budget. Metrics missing from the map count as zero.
func ValidateAllocation(allocation map[models.MetricID]int) error {
	known := make(map[models.MetricID]bool, len(MetricIDs()))
	for _, id := range MetricIDs() {
		known[id] = true
	}

	total := 0
	for id, v := range allocation {
		if !known[id] {
			return fmt.Errorf("unknown metric %q", id)
		}
		if v < 0 {
			return fmt.Errorf("metric %q has negative allocation %d", id, v)
		}
		if v > PerMetricCap {
			return fmt.Errorf("metric %q exceeds the per-metric cap of %d", id, PerMetricCap)
		}
		total += v
	}

	if total > AllocationBudget {
		return fmt.Errorf("total allocation %d exceeds the budget of %d", total, AllocationBudget)
	}

	return nil
}
