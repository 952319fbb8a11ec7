package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"modaai/internal/catalog"
	"modaai/internal/genai"
	"modaai/internal/models"
)

// Catalog is the slice of the catalog store the handlers need. Tests plug in
// an in-memory fake; production wires *catalog.Store.
type Catalog interface {
	Create(ctx context.Context, p *models.Product) error
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	InsertSale(ctx context.Context, sale models.Sale) error
}

// CatalogWatcher provides the live-subscription feed behind the SSE stream.
type CatalogWatcher interface {
	Watch(ctx context.Context) (*catalog.Subscription, error)
}

// AssetGenerator starts a detached generation run. The create handler never
// waits on it.
type AssetGenerator interface {
	RunDetached(req genai.Request)
}
