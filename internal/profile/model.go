package profile

import (
	"time"

	"github.com/nekogravitycat/trainer-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound = apperror.New(apperror.KindNotFound, "profile not found")
)

// Profile is the marketplace identity of a trainer or a client.
// Profiles are created and edited elsewhere; this service only reads them.
type Profile struct {
	ID         string // UUID
	ExternalID string // Subject issued by the identity provider
	Name       string
	Email      string
	IsTrainer  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
