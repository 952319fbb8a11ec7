package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusPublished is the default lifecycle status stamped on new products and
// backfilled onto legacy documents by cmd/migrate-products.
const StatusPublished = "published"

// Categories is the fixed set of admin-selectable product categories.
var Categories = []string{
	"Ropa",
	"Accesorios",
	"Zapatos",
	"Carteras",
	"Mochilas",
	"Poleras",
	"Polerones",
}

func ValidCategory(value string) bool {
	for _, c := range Categories {
		if c == value {
			return true
		}
	}
	return false
}

// Product is a single catalog record. ImageURL holds the admin-uploaded photo
// as an inline JPEG data URI and is never touched after creation; only the two
// AI fields are patched by the asset generator.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppID        string             `bson:"appId" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description" json:"description"`
	Price        int64              `bson:"price" json:"price"`
	Cost         *int64             `bson:"cost,omitempty" json:"cost,omitempty"`
	Stock        int                `bson:"stock,omitempty" json:"stock"`
	Category     string             `bson:"category" json:"category"`
	ImageURL     string             `bson:"imageUrl" json:"imageUrl"`
	AIImageURL   string             `bson:"aiImageUrl,omitempty" json:"aiImageUrl,omitempty"`
	AIProductURL string             `bson:"aiProductUrl,omitempty" json:"aiProductUrl,omitempty"`
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	CreatedBy    string             `bson:"createdBy" json:"createdBy"`
}
