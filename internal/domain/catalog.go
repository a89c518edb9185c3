package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	SortOrder int                `bson:"sort_order" json:"sort_order"`
	IsActive  bool               `bson:"is_active" json:"is_active"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

type VariantOption struct {
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
}

type VariantGroup struct {
	Name    string          `bson:"name" json:"name"`
	Min     int             `bson:"min" json:"min"`
	Max     int             `bson:"max" json:"max"`
	Options []VariantOption `bson:"options" json:"options"`
}

type MenuItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	ImageURL      string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CategoryID    primitive.ObjectID `bson:"category_id" json:"category_id"`
	IsAvailable   bool               `bson:"is_available" json:"is_available"`
	VariantGroups []VariantGroup     `bson:"variant_groups,omitempty" json:"variant_groups,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

type MenuItemFilter struct {
	CategoryID    primitive.ObjectID
	AvailableOnly bool
}
