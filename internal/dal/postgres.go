package dal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/adityarawat/manch-ui/internal/models"
)

// PostgresDAL implements MarketDAL using PostgreSQL
type PostgresDAL struct {
	db *sql.DB
}

// NewPostgresDAL creates a new PostgreSQL data access layer optimized for CloudNativePG
func NewPostgresDAL(connString string) (*PostgresDAL, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	// Connection pool settings tuned for CloudNativePG clusters
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Retry the initial ping to ride out Kubernetes DNS propagation delays
	maxRetries := 5
	retryDelay := 5 * time.Second
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		err := db.PingContext(ctx)
		cancel()

		if err == nil {
			lastErr = nil
			break
		}

		lastErr = err
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("failed to ping postgres after %d retries: %w", maxRetries, lastErr)
	}

	dal := &PostgresDAL{db: db}

	if err := dal.initSchema(); err != nil {
		return nil, err
	}

	return dal, nil
}

func (p *PostgresDAL) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS experiences (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		artform TEXT NOT NULL,
		city TEXT NOT NULL,
		venue TEXT NOT NULL,
		price INTEGER NOT NULL,
		duration_min INTEGER NOT NULL,
		rating DOUBLE PRECISION NOT NULL,
		popularity INTEGER NOT NULL DEFAULT 50,
		image TEXT,
		image_data BYTEA,
		description TEXT
	);

	CREATE TABLE IF NOT EXISTS inquiries (
		id TEXT PRIMARY KEY,
		ts BIGINT NOT NULL,
		experience_id TEXT NOT NULL REFERENCES experiences(id),
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		message TEXT
	);

	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		city TEXT,
		interests TEXT
	);
	`

	if _, err := p.db.Exec(schema); err != nil {
		return err
	}

	var count int
	if err := p.db.QueryRow("SELECT COUNT(*) FROM experiences").Scan(&count); err != nil {
		return err
	}

	if count == 0 {
		if err := p.seedData(); err != nil {
			return err
		}
		if err := p.MigrateImagesToDatabase(); err != nil {
			return err
		}
	}

	return nil
}

func (p *PostgresDAL) seedData() error {
	for _, e := range getDefaultExperiences() {
		_, err := p.db.Exec(`
			INSERT INTO experiences (id, title, artform, city, venue, price, duration_min, rating, popularity, image, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, e.ID, e.Title, e.Artform, e.City, e.Venue, e.Price, e.DurationMin, e.Rating, e.Popularity, e.Image, e.Description)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *PostgresDAL) ListExperiences() ([]models.Experience, error) {
	rows, err := p.db.Query(`
		SELECT id, title, artform, city, venue, price, duration_min, rating, popularity, image, description
		FROM experiences
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	experiences := []models.Experience{}
	for rows.Next() {
		var e models.Experience
		err := rows.Scan(&e.ID, &e.Title, &e.Artform, &e.City, &e.Venue, &e.Price, &e.DurationMin, &e.Rating, &e.Popularity, &e.Image, &e.Description)
		if err != nil {
			return nil, err
		}
		experiences = append(experiences, e)
	}

	return experiences, nil
}

func (p *PostgresDAL) GetExperience(id string) (*models.Experience, error) {
	var e models.Experience
	err := p.db.QueryRow(`
		SELECT id, title, artform, city, venue, price, duration_min, rating, popularity, image, description
		FROM experiences WHERE id = $1
	`, id).Scan(&e.ID, &e.Title, &e.Artform, &e.City, &e.Venue, &e.Price, &e.DurationMin, &e.Rating, &e.Popularity, &e.Image, &e.Description)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("experience not found")
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

// GetExperienceImageByPath retrieves image bytes stored in the database
// for the given image path (e.g. /images/qawwali-dargah.png)
func (p *PostgresDAL) GetExperienceImageByPath(imagePath string) ([]byte, error) {
	var data []byte
	err := p.db.QueryRow(`
		SELECT image_data FROM experiences WHERE image = $1 AND image_data IS NOT NULL
	`, imagePath).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("image not found")
	}
	if err != nil {
		return nil, err
	}

	return data, nil
}

func (p *PostgresDAL) SetPopularity(id string, score int) (*models.Experience, error) {
	result, err := p.db.Exec(`UPDATE experiences SET popularity = $1 WHERE id = $2`, score, id)
	if err != nil {
		return nil, err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return nil, fmt.Errorf("experience not found")
	}

	return p.GetExperience(id)
}

func (p *PostgresDAL) AddInquiry(inquiry *models.Inquiry) (*models.Inquiry, error) {
	if inquiry.ID == "" {
		inquiry.ID = uuid.NewString()
	}
	if inquiry.TS == 0 {
		inquiry.TS = time.Now().UnixMilli()
	}

	_, err := p.db.Exec(`
		INSERT INTO inquiries (id, ts, experience_id, name, email, message)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, inquiry.ID, inquiry.TS, inquiry.ExperienceID, inquiry.Name, inquiry.Email, inquiry.Message)

	return inquiry, err
}

func (p *PostgresDAL) ListInquiries() ([]models.Inquiry, error) {
	rows, err := p.db.Query(`
		SELECT id, ts, experience_id, name, email, message
		FROM inquiries ORDER BY ts ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inquiries := []models.Inquiry{}
	for rows.Next() {
		var inq models.Inquiry
		if err := rows.Scan(&inq.ID, &inq.TS, &inq.ExperienceID, &inq.Name, &inq.Email, &inq.Message); err != nil {
			return nil, err
		}
		inquiries = append(inquiries, inq)
	}

	return inquiries, nil
}

func (p *PostgresDAL) GetProfile(userID string) (*models.Profile, error) {
	var prof models.Profile
	err := p.db.QueryRow(`
		SELECT user_id, display_name, city, interests
		FROM profiles WHERE user_id = $1
	`, userID).Scan(&prof.UserID, &prof.DisplayName, &prof.City, &prof.Interests)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile not found")
	}
	if err != nil {
		return nil, err
	}

	return &prof, nil
}

func (p *PostgresDAL) SaveProfile(profile *models.Profile) (*models.Profile, error) {
	if profile.UserID == "" {
		return nil, fmt.Errorf("profile requires a user id")
	}

	_, err := p.db.Exec(`
		INSERT INTO profiles (user_id, display_name, city, interests)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			city = EXCLUDED.city,
			interests = EXCLUDED.interests
	`, profile.UserID, profile.DisplayName, profile.City, profile.Interests)

	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (p *PostgresDAL) Reset() error {
	for _, stmt := range []string{"DELETE FROM inquiries", "DELETE FROM profiles", "DELETE FROM experiences"} {
		if _, err := p.db.Exec(stmt); err != nil {
			return err
		}
	}
	return p.seedData()
}

func (p *PostgresDAL) Close() error {
	return p.db.Close()
}
