package dal

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adityarawat/manch-ui/internal/models"
)

// MemoryDAL implements MarketDAL using in-memory storage
type MemoryDAL struct {
	mu          sync.RWMutex
	experiences []models.Experience
	inquiries   []models.Inquiry
	profiles    map[string]models.Profile
}

// NewMemoryDAL creates a new in-memory data access layer seeded with the
// default experience catalog
func NewMemoryDAL() *MemoryDAL {
	return &MemoryDAL{
		experiences: getDefaultExperiences(),
		inquiries:   []models.Inquiry{},
		profiles:    make(map[string]models.Profile),
	}
}

func (m *MemoryDAL) ListExperiences() ([]models.Experience, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Copy to avoid handing out the backing slice
	experiences := make([]models.Experience, len(m.experiences))
	copy(experiences, m.experiences)
	return experiences, nil
}

func (m *MemoryDAL) GetExperience(id string) (*models.Experience, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.experiences {
		if m.experiences[i].ID == id {
			exp := m.experiences[i]
			return &exp, nil
		}
	}
	return nil, fmt.Errorf("experience not found")
}

func (m *MemoryDAL) SetPopularity(id string, score int) (*models.Experience, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.experiences {
		if m.experiences[i].ID == id {
			m.experiences[i].Popularity = score
			exp := m.experiences[i]
			return &exp, nil
		}
	}
	return nil, fmt.Errorf("experience not found")
}

func (m *MemoryDAL) AddInquiry(inquiry *models.Inquiry) (*models.Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if inquiry.ID == "" {
		inquiry.ID = uuid.NewString()
	}
	if inquiry.TS == 0 {
		inquiry.TS = time.Now().UnixMilli()
	}

	m.inquiries = append(m.inquiries, *inquiry)
	return inquiry, nil
}

func (m *MemoryDAL) ListInquiries() ([]models.Inquiry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inquiries := make([]models.Inquiry, len(m.inquiries))
	copy(inquiries, m.inquiries)
	return inquiries, nil
}

func (m *MemoryDAL) GetProfile(userID string) (*models.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	profile, ok := m.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("profile not found")
	}
	return &profile, nil
}

func (m *MemoryDAL) SaveProfile(profile *models.Profile) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if profile.UserID == "" {
		return nil, fmt.Errorf("profile requires a user id")
	}
	m.profiles[profile.UserID] = *profile
	return profile, nil
}

func (m *MemoryDAL) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.experiences = getDefaultExperiences()
	m.inquiries = []models.Inquiry{}
	m.profiles = make(map[string]models.Profile)
	return nil
}

func getDefaultExperiences() []models.Experience {
	return []models.Experience{
		{ID: "1", Title: "Madhubani Painting Workshop", Artform: "Folk Painting", City: "Patna", Venue: "Kala Kendra Studio", Price: 1200, DurationMin: 180, Rating: 4.8, Popularity: 72, Image: "/images/madhubani-workshop.png", Description: "Paint traditional Mithila motifs with natural pigments under a national-award-winning artist."},
		{ID: "2", Title: "Kathak Evening Recital", Artform: "Classical Dance", City: "Lucknow", Venue: "Sangeet Natak Hall", Price: 800, DurationMin: 120, Rating: 4.6, Popularity: 64, Image: "/images/kathak-recital.png", Description: "An intimate evening of Lucknow gharana kathak with live tabla and sarangi."},
		{ID: "3", Title: "Blue Pottery Masterclass", Artform: "Pottery", City: "Jaipur", Venue: "Gulabi Haveli Courtyard", Price: 1500, DurationMin: 240, Rating: 4.9, Popularity: 81, Image: "/images/blue-pottery.png", Description: "Shape and glaze your own piece of Jaipur's famous Persian-blue pottery."},
		{ID: "4", Title: "Baul Music Under the Stars", Artform: "Folk Music", City: "Shantiniketan", Venue: "Sonajhuri Forest Grounds", Price: 600, DurationMin: 150, Rating: 4.7, Popularity: 58, Image: "/images/baul-night.png", Description: "Wandering Baul minstrels perform songs of love and longing around a bonfire."},
		{ID: "5", Title: "Warli Art Family Session", Artform: "Tribal Art", City: "Mumbai", Venue: "Prithvi Annexe", Price: 900, DurationMin: 120, Rating: 4.5, Popularity: 66, Image: "/images/warli-session.png", Description: "Learn the rhythmic geometry of Warli painting in a session built for all ages."},
		{ID: "6", Title: "Odissi Morning Baithak", Artform: "Classical Dance", City: "Bhubaneswar", Venue: "Rabindra Mandap", Price: 500, DurationMin: 90, Rating: 4.4, Popularity: 47, Image: "/images/odissi-baithak.png", Description: "A close-quarters baithak performance tracing the sculpturesque grammar of Odissi."},
		{ID: "7", Title: "Channapatna Toy Making", Artform: "Woodcraft", City: "Bengaluru", Venue: "Makers' Shed, Indiranagar", Price: 1100, DurationMin: 180, Rating: 4.6, Popularity: 59, Image: "/images/channapatna-toys.png", Description: "Turn, lacquer and polish your own wooden toy the Channapatna way."},
		{ID: "8", Title: "Qawwali at the Dargah", Artform: "Sufi Music", City: "Delhi", Venue: "Nizamuddin Basti", Price: 400, DurationMin: 120, Rating: 4.9, Popularity: 88, Image: "/images/qawwali-dargah.png", Description: "Thursday-evening qawwali in the lanes of Nizamuddin, followed by a heritage walk."},
		{ID: "9", Title: "Pattachitra Scroll Storytelling", Artform: "Folk Painting", City: "Puri", Venue: "Raghurajpur Artist Village", Price: 700, DurationMin: 150, Rating: 4.7, Popularity: 53, Image: "/images/pattachitra-scroll.png", Description: "Watch a chitrakar paint and sing a scroll story, then try the fine brushwork yourself."},
		{ID: "10", Title: "Theatre Improv Jam", Artform: "Theatre", City: "Pune", Venue: "Sudarshan Rangmanch", Price: 350, DurationMin: 120, Rating: 4.3, Popularity: 44, Image: "/images/improv-jam.png", Description: "A drop-in improv jam with working theatre actors; no experience needed."},
	}
}
