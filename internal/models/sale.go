package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale is a minimal sales record kept in its own collection. Only the demo
// data seeder writes these today; future ERP modules (Estadísticas, Costos)
// will read them.
type Sale struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppID     string             `bson:"appId" json:"-"`
	Product   string             `bson:"product" json:"product"`
	Amount    int64              `bson:"amount" json:"amount"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedBy string             `bson:"createdBy" json:"createdBy"`
}
