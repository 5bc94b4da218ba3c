package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Client provides ClickHouse integration for experience popularity scores
type Client struct {
	conn driver.Conn
}

// NewClient creates a new ClickHouse client
func NewClient(addr, database, username, password string) (*Client, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Client{conn: conn}, nil
}

// GetPopularity retrieves the popularity score for a single experience.
// The score blends distinct visitors, total views and inquiry volume over
// the trailing 30 days.
func (c *Client) GetPopularity(experienceID string) (int, error) {
	var score int

	query := `
		SELECT
			toInt32(
				countDistinct(user_id) * 5 +      -- Unique visitors
				countIf(action = 'view') / 20 +   -- Page views
				countIf(action = 'inquiry') * 10  -- Inquiries weigh heaviest
			) as popularity
		FROM experience_interactions
		WHERE experience_id = $1
		AND timestamp >= now() - INTERVAL 30 DAY
	`

	row := c.conn.QueryRow(context.Background(), query, experienceID)
	if err := row.Scan(&score); err != nil {
		return 0, err
	}

	return score, nil
}

// GetAllPopularity retrieves popularity scores for every experience
func (c *Client) GetAllPopularity() (map[string]int, error) {
	scores := make(map[string]int)

	query := `
		SELECT
			experience_id,
			toInt32(
				countDistinct(user_id) * 5 +
				countIf(action = 'view') / 20 +
				countIf(action = 'inquiry') * 10
			) as popularity
		FROM experience_interactions
		WHERE timestamp >= now() - INTERVAL 30 DAY
		GROUP BY experience_id
	`

	rows, err := c.conn.Query(context.Background(), query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var score int
		if err := rows.Scan(&id, &score); err != nil {
			return nil, err
		}
		scores[id] = score
	}

	return scores, nil
}

// SyncPopularity pushes the latest scores into the catalog via updateFunc.
// Meant to run on a periodic ticker.
func (c *Client) SyncPopularity(updateFunc func(experienceID string, score int) error) error {
	allScores, err := c.GetAllPopularity()
	if err != nil {
		return err
	}

	for experienceID, score := range allScores {
		if err := updateFunc(experienceID, score); err != nil {
			return fmt.Errorf("failed to update popularity for %s: %w", experienceID, err)
		}
	}

	return nil
}

// Close closes the ClickHouse connection
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
