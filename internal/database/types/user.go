package types

import (
	"errors"
	"time"

	"github.com/amora-app/amora/internal/database/types/enum"
)

// ErrUserNotFound is returned when a user lookup finds no row.
var ErrUserNotFound = errors.New("user not found")

// User is the primary account record. The reputation engine reads the
// profile-derived signal fields and denormalizes the current tier onto it
// so collaborators can filter cheaply.
type User struct {
	ID                  uint64    `bun:",pk"      json:"id"`
	DisplayName         string    `bun:",notnull" json:"displayName"`
	ProfileCompletion   int       `bun:",notnull" json:"profileCompletion"`
	IdentityVerified    bool      `bun:",notnull" json:"identityVerified"`
	Premium             bool      `bun:",notnull" json:"premium"`
	OnboardingCompleted bool      `bun:",notnull" json:"onboardingCompleted"`
	Tier                enum.Tier `bun:",notnull" json:"tier"`
	CreatedAt           time.Time `bun:",notnull" json:"createdAt"`
	UpdatedAt           time.Time `bun:",notnull" json:"updatedAt"`
}
