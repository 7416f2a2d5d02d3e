package models

import "time"

// Salon is the owning record for schedules and appointments. Timezone is an
// IANA zone name; all day bucketing happens in the salon's local time.
type Salon struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Address   string    `bson:"address,omitempty" json:"address,omitempty"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Timezone  string    `bson:"timezone" json:"timezone"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
