package dal

import "github.com/adityarawat/manch-ui/internal/models"

// MarketDAL defines the interface for the marketplace data access layer
type MarketDAL interface {
	ListExperiences() ([]models.Experience, error)
	GetExperience(id string) (*models.Experience, error)
	SetPopularity(id string, score int) (*models.Experience, error)
	AddInquiry(inquiry *models.Inquiry) (*models.Inquiry, error)
	ListInquiries() ([]models.Inquiry, error)
	GetProfile(userID string) (*models.Profile, error)
	SaveProfile(profile *models.Profile) (*models.Profile, error)
	Reset() error
}
