package mocks

import (
	"math/rand"

	"github.com/adityarawat/manch-ui/internal/logger"
)

// MockClickHouseClient provides a mock ClickHouse client for local development
type MockClickHouseClient struct {
	baseScores map[string]int
}

// NewMockClickHouseClient creates a mock ClickHouse client seeded with
// plausible popularity scores for the default catalog
func NewMockClickHouseClient() *MockClickHouseClient {
	logger.Info("Using MOCK ClickHouse client for local development")

	return &MockClickHouseClient{
		baseScores: map[string]int{
			"1":  72, // Madhubani Painting Workshop
			"2":  64, // Kathak Evening Recital
			"3":  81, // Blue Pottery Masterclass
			"4":  58, // Baul Music Under the Stars
			"5":  66, // Warli Art Family Session
			"6":  47, // Odissi Morning Baithak
			"7":  59, // Channapatna Toy Making
			"8":  88, // Qawwali at the Dargah
			"9":  53, // Pattachitra Scroll Storytelling
			"10": 44, // Theatre Improv Jam
		},
	}
}

// GetPopularity returns a mock popularity score with slight variation
func (m *MockClickHouseClient) GetPopularity(experienceID string) (int, error) {
	base, ok := m.baseScores[experienceID]
	if !ok {
		base = 40 // Default for unknown experiences
	}

	return jitter(base), nil
}

// GetAllPopularity returns mock scores for the full catalog
func (m *MockClickHouseClient) GetAllPopularity() (map[string]int, error) {
	result := make(map[string]int)
	for id, base := range m.baseScores {
		result[id] = jitter(base)
	}
	return result, nil
}

// SyncPopularity pushes mock scores through updateFunc
func (m *MockClickHouseClient) SyncPopularity(updateFunc func(experienceID string, score int) error) error {
	allScores, err := m.GetAllPopularity()
	if err != nil {
		return err
	}

	for experienceID, score := range allScores {
		if err := updateFunc(experienceID, score); err != nil {
			return err
		}
	}

	return nil
}

// Close is a no-op for the mock
func (m *MockClickHouseClient) Close() error {
	return nil
}

// jitter adds roughly ±10% variance for realism
func jitter(base int) int {
	spread := base / 5
	if spread == 0 {
		return base
	}
	return base + rand.Intn(spread) - spread/2
}
