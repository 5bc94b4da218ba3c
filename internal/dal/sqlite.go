package dal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/adityarawat/manch-ui/internal/models"
)

// SQLiteDAL implements MarketDAL using SQLite
type SQLiteDAL struct {
	db *sql.DB
}

// NewSQLiteDAL creates a new SQLite data access layer
func NewSQLiteDAL(dbPath string) (*SQLiteDAL, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	dal := &SQLiteDAL{db: db}

	if err := dal.initSchema(); err != nil {
		return nil, err
	}

	return dal, nil
}

func (s *SQLiteDAL) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS experiences (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		artform TEXT NOT NULL,
		city TEXT NOT NULL,
		venue TEXT NOT NULL,
		price INTEGER NOT NULL,
		duration_min INTEGER NOT NULL,
		rating REAL NOT NULL,
		popularity INTEGER NOT NULL DEFAULT 50,
		image TEXT,
		description TEXT
	);

	CREATE TABLE IF NOT EXISTS inquiries (
		id TEXT PRIMARY KEY,
		ts INTEGER NOT NULL,
		experience_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		message TEXT,
		FOREIGN KEY (experience_id) REFERENCES experiences(id)
	);

	CREATE TABLE IF NOT EXISTS profiles (
		user_id TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		city TEXT,
		interests TEXT
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Add popularity column to databases created before it existed.
	// SQLite doesn't support IF NOT EXISTS for ALTER TABLE, so check first.
	var popularityExists int
	err := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM pragma_table_info('experiences')
		WHERE name='popularity'
	`).Scan(&popularityExists)
	if err != nil {
		return fmt.Errorf("failed to check popularity column existence: %w", err)
	}

	if popularityExists == 0 {
		_, err = s.db.Exec(`ALTER TABLE experiences ADD COLUMN popularity INTEGER NOT NULL DEFAULT 50`)
		if err != nil {
			return fmt.Errorf("failed to add popularity column: %w", err)
		}
	}

	// Seed default catalog if empty
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM experiences").Scan(&count); err != nil {
		return err
	}

	if count == 0 {
		if err := s.seedData(); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLiteDAL) seedData() error {
	for _, e := range getDefaultExperiences() {
		_, err := s.db.Exec(`
			INSERT INTO experiences (id, title, artform, city, venue, price, duration_min, rating, popularity, image, description)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, e.ID, e.Title, e.Artform, e.City, e.Venue, e.Price, e.DurationMin, e.Rating, e.Popularity, e.Image, e.Description)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteDAL) ListExperiences() ([]models.Experience, error) {
	rows, err := s.db.Query(`
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

func (s *SQLiteDAL) GetExperience(id string) (*models.Experience, error) {
	var e models.Experience
	err := s.db.QueryRow(`
		SELECT id, title, artform, city, venue, price, duration_min, rating, popularity, image, description
		FROM experiences WHERE id = ?
	`, id).Scan(&e.ID, &e.Title, &e.Artform, &e.City, &e.Venue, &e.Price, &e.DurationMin, &e.Rating, &e.Popularity, &e.Image, &e.Description)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("experience not found")
	}
	if err != nil {
		return nil, err
	}

	return &e, nil
}

func (s *SQLiteDAL) SetPopularity(id string, score int) (*models.Experience, error) {
	result, err := s.db.Exec(`UPDATE experiences SET popularity = ? WHERE id = ?`, score, id)
	if err != nil {
		return nil, err
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return nil, fmt.Errorf("experience not found")
	}

	return s.GetExperience(id)
}

func (s *SQLiteDAL) AddInquiry(inquiry *models.Inquiry) (*models.Inquiry, error) {
	if inquiry.ID == "" {
		inquiry.ID = uuid.NewString()
	}
	if inquiry.TS == 0 {
		inquiry.TS = time.Now().UnixMilli()
	}

	_, err := s.db.Exec(`
		INSERT INTO inquiries (id, ts, experience_id, name, email, message)
		VALUES (?, ?, ?, ?, ?, ?)
	`, inquiry.ID, inquiry.TS, inquiry.ExperienceID, inquiry.Name, inquiry.Email, inquiry.Message)

	return inquiry, err
}

func (s *SQLiteDAL) ListInquiries() ([]models.Inquiry, error) {
	rows, err := s.db.Query(`
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

func (s *SQLiteDAL) GetProfile(userID string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.QueryRow(`
		SELECT user_id, display_name, city, interests
		FROM profiles WHERE user_id = ?
	`, userID).Scan(&p.UserID, &p.DisplayName, &p.City, &p.Interests)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile not found")
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *SQLiteDAL) SaveProfile(profile *models.Profile) (*models.Profile, error) {
	if profile.UserID == "" {
		return nil, fmt.Errorf("profile requires a user id")
	}

	_, err := s.db.Exec(`
		INSERT INTO profiles (user_id, display_name, city, interests)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			display_name = excluded.display_name,
			city = excluded.city,
			interests = excluded.interests
	`, profile.UserID, profile.DisplayName, profile.City, profile.Interests)

	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *SQLiteDAL) Reset() error {
	for _, table := range []string{"inquiries", "profiles", "experiences"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	return s.seedData()
}

func (s *SQLiteDAL) Close() error {
	return s.db.Close()
}
