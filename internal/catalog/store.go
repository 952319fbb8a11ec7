package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"modaai/internal/models"
)

// ErrNotFound is returned by reads for ids that do not exist in the tenant's
// catalog. Delete intentionally never returns it: a delete of a missing id is
// a no-op so client retries stay idempotent.
var ErrNotFound = errors.New("product not found")

// Store is the catalog persistence layer. All operations are scoped to a
// single tenant (appId); nothing here validates field contents, that is the
// form layer's job.
type Store struct {
	db    *mongo.Database
	appID string
}

func NewStore(db *mongo.Database, appID string) *Store {
	return &Store{db: db, appID: appID}
}

func (s *Store) products() *mongo.Collection {
	return s.db.Collection("products")
}

// Create assigns the id and creation stamp and inserts the record. The two AI
// fields are deliberately left absent; the generator patches them later.
func (s *Store) Create(ctx context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	p.AppID = s.appID
	p.CreatedAt = time.Now().UTC()
	if p.Status == "" {
		p.Status = models.StatusPublished
	}

	_, err := s.products().InsertOne(ctx, p)
	return err
}

// List returns the tenant's full catalog, newest first.
func (s *Store) List(ctx context.Context) ([]models.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.products().Find(ctx, bson.M{"appId": s.appID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Store) Get(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := s.products().FindOne(ctx, bson.M{"_id": id, "appId": s.appID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// AttachAsset patches a single AI asset field on an existing record. Patching
// a record that was deleted mid-generation matches zero documents and is not
// an error; the generation result simply has nowhere to land.
func (s *Store) AttachAsset(ctx context.Context, productID, field, dataURI string) error {
	if field != "aiImageUrl" && field != "aiProductUrl" {
		return fmt.Errorf("refusing to patch non-asset field %q", field)
	}

	id, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return fmt.Errorf("invalid product id %q: %w", productID, err)
	}

	_, err = s.products().UpdateOne(
		ctx,
		bson.M{"_id": id, "appId": s.appID},
		bson.M{"$set": bson.M{field: dataURI}},
	)
	return err
}

// Delete removes the record permanently. There is no soft delete and no undo;
// a missing id is treated as already deleted.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.products().DeleteOne(ctx, bson.M{"_id": id, "appId": s.appID})
	return err
}

func (s *Store) InsertSale(ctx context.Context, sale models.Sale) error {
	sale.ID = primitive.NewObjectID()
	sale.AppID = s.appID
	if sale.Date.IsZero() {
		sale.Date = time.Now().UTC()
	}
	_, err := s.db.Collection("sales").InsertOne(ctx, sale)
	return err
}
