package models

// MetricID identifies one of the five campaign metrics
type MetricID string

const (
	MetricVoteBank    MetricID = "voteBank"
	MetricYouthAppeal MetricID = "youthAppeal"
	MetricWomenVoters MetricID = "womenVoters"
	MetricCredibility MetricID = "credibility"
	MetricMomentum    MetricID = "momentum"
)

// Metric describes one scored campaign dimension
type Metric struct {
	ID    MetricID `json:"id"`
	Label string   `json:"label"`
	Color string   `json:"color"`
}

// Candidate represents a playable campaign candidate
type Candidate struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Party      string `json:"party"`
	PartyShort string `json:"partyShort"`
	Tagline    string `json:"tagline"`
	Slogan     string `json:"slogan"`
	Avatar     string `json:"avatar"`
	Color      string `json:"color"`
}

// Option is one answer to a quiz question. Effects maps metric ids to
// signed deltas; metrics absent from the map are unaffected.
type Option struct {
	Text    string           `json:"text"`
	Effects map[MetricID]int `json:"effects"`
}

// Question is one situation in a candidate's ordered question list
type Question struct {
	Situation string   `json:"situation"`
	Options   []Option `json:"options"`
}

// GameState is the single mutable record for one play session
type GameState struct {
	SelectedCandidateID  string           `json:"selectedCandidateId"`
	CurrentQuestionIndex int              `json:"currentQuestionIndex"`
	Metrics              map[MetricID]int `json:"metrics"`
	Answers              []int            `json:"answers"`
	IsGameStarted        bool             `json:"isGameStarted"`
	IsGameFinished       bool             `json:"isGameFinished"`
}

// Experience represents a bookable art experience in the marketplace
type Experience struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Artform     string  `json:"artform"`
	City        string  `json:"city"`
	Venue       string  `json:"venue"`
	Price       int     `json:"price"`
	DurationMin int     `json:"durationMin"`
	Rating      float64 `json:"rating"`
	Popularity  int     `json:"popularity"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// Inquiry is a booking inquiry submitted for an experience
type Inquiry struct {
	ID           string `json:"id"`
	TS           int64  `json:"ts"`
	ExperienceID string `json:"experienceId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Message      string `json:"message"`
}

// Profile holds the thin per-user profile read/written through the store
type Profile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	City        string `json:"city"`
	Interests   string `json:"interests"`
}
