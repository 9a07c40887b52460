package entity

import (
	"time"
)

// User is a registered profile. Profiles are plain documents with no
// lifecycle rules; the matching engine only consumes their identity fields.
type User struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Email            string    `bson:"email" json:"email"`
	Phone            string    `bson:"phone" json:"phone"`
	BloodGroup       string    `bson:"bloodGroup" json:"bloodGroup"`
	Role             string    `bson:"role" json:"role"`
	Location         Location  `bson:"location" json:"location"`
	IsAvailable      bool      `bson:"isAvailable" json:"isAvailable"`
	LastDonationDate string    `bson:"lastDonationDate,omitempty" json:"lastDonationDate,omitempty"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}
