package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RiderPresence string

const (
	RiderOnline  RiderPresence = "online"
	RiderOffline RiderPresence = "offline"
)

type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lon float64 `bson:"lon" json:"lon"`
}

type Rider struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Phone           string             `bson:"phone" json:"phone"`
	BranchID        primitive.ObjectID `bson:"branch_id" json:"branch_id"`
	IsAvailable     bool               `bson:"is_available" json:"is_available"`
	Presence        RiderPresence      `bson:"presence" json:"presence"`
	Location        *Location          `bson:"location,omitempty" json:"location,omitempty"`
	TotalDeliveries int                `bson:"total_deliveries" json:"total_deliveries"`
	Rating          float64            `bson:"rating" json:"rating"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// Assignable reports whether the rider can take a new delivery.
func (r *Rider) Assignable() bool {
	return r.IsAvailable && r.Presence == RiderOnline
}
