package mocks

import (
	"testing"

	"github.com/adityarawat/manch-ui/internal/dal"
	"github.com/adityarawat/manch-ui/internal/logger"
)

func init() {
	logger.Init()
}

func TestMockClickHouseSyncPopularity(t *testing.T) {
	client := NewMockClickHouseClient()
	store := dal.NewMemoryDAL()

	synced := make(map[string]int)
	err := client.SyncPopularity(func(experienceID string, score int) error {
		exp, err := store.SetPopularity(experienceID, score)
		if err != nil {
			return err
		}
		synced[experienceID] = exp.Popularity
		return nil
	})
	if err != nil {
		t.Fatalf("SyncPopularity() failed: %v", err)
	}

	experiences, err := store.ListExperiences()
	if err != nil {
		t.Fatalf("ListExperiences() failed: %v", err)
	}
	if len(synced) != len(experiences) {
		t.Errorf("synced %d experiences, catalog has %d", len(synced), len(experiences))
	}
	for id, score := range synced {
		if score <= 0 || score > 100 {
			t.Errorf("experience %s synced score %d out of range", id, score)
		}
	}
}

func TestMockClickHousePopularityScores(t *testing.T) {
	client := NewMockClickHouseClient()

	all, err := client.GetAllPopularity()
	if err != nil {
		t.Fatalf("GetAllPopularity() failed: %v", err)
	}
	for id, base := range client.baseScores {
		score, err := client.GetPopularity(id)
		if err != nil {
			t.Fatalf("GetPopularity(%s) failed: %v", id, err)
		}
		spread := base / 5
		if score < base-spread || score > base+spread {
			t.Errorf("GetPopularity(%s) = %d, want within %d of %d", id, score, spread, base)
		}
		if _, ok := all[id]; !ok {
			t.Errorf("GetAllPopularity() missing experience %s", id)
		}
	}

	// Unknown experiences get a default baseline
	score, err := client.GetPopularity("no-such-id")
	if err != nil {
		t.Fatalf("GetPopularity() failed: %v", err)
	}
	if score < 30 || score > 50 {
		t.Errorf("default score = %d, want near 40", score)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
}
