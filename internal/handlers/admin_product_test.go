package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"modaai/internal/catalog"
	"modaai/internal/config"
	"modaai/internal/genai"
	"modaai/internal/imaging"
	"modaai/internal/middleware"
	"modaai/internal/models"
)

type fakeCatalog struct {
	mu       sync.Mutex
	products map[primitive.ObjectID]models.Product
	sales    []models.Sale
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: make(map[primitive.ObjectID]models.Product)}
}

func (f *fakeCatalog) Create(_ context.Context, p *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now().UTC()
	f.products[p.ID] = *p
	return nil
}

func (f *fakeCatalog) List(_ context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) Get(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return models.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.products, id)
	return nil
}

func (f *fakeCatalog) InsertSale(_ context.Context, sale models.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sales = append(f.sales, sale)
	return nil
}

type fakeGenerator struct {
	mu       sync.Mutex
	requests []genai.Request
}

func (f *fakeGenerator) RunDetached(req genai.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
}

func testConfig() config.Config {
	return config.Config{
		GeminiAPIKey:      "test-key",
		ImageMaxDimension: 1024,
		ImageJPEGQuality:  70,
	}
}

func TestCreateProductInsertsRecordAndSchedulesGeneration(t *testing.T) {
	store := newFakeCatalog()
	gen := &fakeGenerator{}
	cfg := testConfig()

	c, recorder := productFormRequest(t, validFields(), true)
	c.Set(middleware.ContextUID, "uid-1")

	CreateProduct(store, imaging.New(1024, 70), gen, cfg)(c)

	if recorder.Code != 201 {
		t.Fatalf("expected 201, got %d", recorder.Code)
	}
	if len(store.products) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(store.products))
	}

	var stored models.Product
	for _, p := range store.products {
		stored = p
	}
	if stored.Name != "Test Jacket" || stored.Price != 10000 || stored.Category != "Ropa" {
		t.Fatalf("stored record mismatch: %+v", stored)
	}
	if stored.AIImageURL != "" || stored.AIProductURL != "" {
		t.Fatal("AI fields must start absent")
	}
	if stored.Status != models.StatusPublished {
		t.Fatalf("expected status published, got %q", stored.Status)
	}
	if stored.CreatedBy != "uid-1" {
		t.Fatalf("expected createdBy uid-1, got %q", stored.CreatedBy)
	}
	if !strings.HasPrefix(stored.ImageURL, "data:image/jpeg;base64,") {
		t.Fatalf("expected inline data URI, got %.40s", stored.ImageURL)
	}

	if len(gen.requests) != 1 {
		t.Fatalf("expected one scheduled generation, got %d", len(gen.requests))
	}
	req := gen.requests[0]
	if req.ProductID != stored.ID.Hex() || req.Name != stored.Name || req.ImageDataURI != stored.ImageURL {
		t.Fatalf("generation request mismatch: %+v", req)
	}
}

func TestCreateProductWithPlaceholderKeySkipsGeneration(t *testing.T) {
	store := newFakeCatalog()
	gen := &fakeGenerator{}
	cfg := testConfig()
	cfg.GeminiAPIKey = config.GeminiKeyPlaceholder

	c, recorder := productFormRequest(t, validFields(), true)
	c.Set(middleware.ContextUID, "uid-1")

	CreateProduct(store, imaging.New(1024, 70), gen, cfg)(c)

	if len(store.products) != 1 {
		t.Fatalf("record must be created even without AI config, got %d", len(store.products))
	}
	if len(gen.requests) != 0 {
		t.Fatal("generation must not be scheduled with a placeholder key")
	}

	var resp struct {
		AIGeneration string `json:"aiGeneration"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response decode failed: %v", err)
	}
	if resp.AIGeneration == "" || resp.AIGeneration == "scheduled" {
		t.Fatalf("expected a configuration hint, got %q", resp.AIGeneration)
	}
}

func TestCreateProductRejectsInvalidForm(t *testing.T) {
	store := newFakeCatalog()
	gen := &fakeGenerator{}

	fields := validFields()
	delete(fields, "name")
	c, recorder := productFormRequest(t, fields, true)
	c.Set(middleware.ContextUID, "uid-1")

	CreateProduct(store, imaging.New(1024, 70), gen, testConfig())(c)

	if recorder.Code != 400 {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
	if len(store.products) != 0 {
		t.Fatal("nothing should be stored for an invalid form")
	}
}

func TestDeleteProductMissingIDIsNoOp(t *testing.T) {
	store := newFakeCatalog()

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("DELETE", "/admin/api/products/x", nil)
	c.Params = gin.Params{{Key: "id", Value: primitive.NewObjectID().Hex()}}

	DeleteProduct(store)(c)

	if recorder.Code != 200 {
		t.Fatalf("deleting a missing id should succeed, got %d", recorder.Code)
	}
}

func TestRegenerateAssetsUnknownProduct(t *testing.T) {
	store := newFakeCatalog()
	gen := &fakeGenerator{}

	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("POST", "/admin/api/products/x/generate", nil)
	c.Params = gin.Params{{Key: "id", Value: primitive.NewObjectID().Hex()}}

	RegenerateAssets(store, gen, testConfig())(c)

	if recorder.Code != 404 {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
	if len(gen.requests) != 0 {
		t.Fatal("nothing should be scheduled for a missing product")
	}
}

func TestSeedDemoDataInsertsProductsAndSales(t *testing.T) {
	store := newFakeCatalog()

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/admin/api/demo-data", nil)
	c.Set(middleware.ContextUID, "uid-9")

	SeedDemoData(store)(c)

	if len(store.products) != 3 {
		t.Fatalf("expected 3 demo products, got %d", len(store.products))
	}
	if len(store.sales) != 2 {
		t.Fatalf("expected 2 demo sales, got %d", len(store.sales))
	}
	for _, p := range store.products {
		if p.CreatedBy != "uid-9" {
			t.Fatalf("demo product missing creator stamp: %+v", p)
		}
	}
}
