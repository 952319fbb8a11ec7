package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"modaai/internal/catalog"
	"modaai/internal/config"
	"modaai/internal/genai"
	"modaai/internal/imaging"
	"modaai/internal/models"
)

// CreateProduct takes the admin multipart form, runs the uploaded photo
// through the preprocessor, inserts the record without AI fields, and fires
// the generation task detached. The response is sent as soon as the record is
// written; the two AI patches land later through the live stream.
func CreateProduct(store Catalog, pre imaging.Preprocessor, gen AssetGenerator, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, route)

		form, err := parseProductForm(c)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		if err := form.Validate(); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		file, err := form.Image.Open()
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "could not read image")
			return
		}
		defer file.Close()

		imageURL, err := pre.Process(file)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "could not decode image")
			return
		}

		product := models.Product{
			Name:        form.Name,
			Description: form.Description,
			Price:       form.Price,
			Cost:        form.Cost,
			Stock:       form.Stock,
			Category:    form.Category,
			ImageURL:    imageURL,
			Status:      models.StatusPublished,
			CreatedBy:   sessionUID(c),
		}

		if err := store.Create(c.Request.Context(), &product); err != nil {
			log.Error().Err(err).Str("route", route).Msg("insert failed")
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		aiGeneration := "scheduled"
		if err := cfg.GeminiReady(); err != nil {
			// Config errors are surfaced up front instead of dying
			// quietly inside the detached task.
			aiGeneration = err.Error()
			log.Warn().Str("product", product.ID.Hex()).Msg(aiGeneration)
		} else {
			gen.RunDetached(genai.Request{
				ProductID:    product.ID.Hex(),
				Name:         product.Name,
				Description:  product.Description,
				ImageDataURI: product.ImageURL,
			})
		}

		c.JSON(http.StatusCreated, gin.H{"data": product, "aiGeneration": aiGeneration})
	}
}

// DeleteProduct removes a record permanently. Deleting an id that is already
// gone reports success: the admin confirmed the intent and the end state is
// the same, so retries stay idempotent.
func DeleteProduct(store Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		if err := store.Delete(c.Request.Context(), id); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}

// RegenerateAssets re-runs the two-phase generation for an existing product.
// No idempotency guard: triggering it while a run is in flight just races,
// last writer wins per field.
func RegenerateAssets(store Catalog, gen AssetGenerator, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products/:id/generate"
		defer handlePanic(c, route)

		if err := cfg.GeminiReady(); err != nil {
			respondWithError(c, http.StatusConflict, route, err.Error())
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		product, err := store.Get(c.Request.Context(), id)
		if err == catalog.ErrNotFound {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		gen.RunDetached(genai.Request{
			ProductID:    product.ID.Hex(),
			Name:         product.Name,
			Description:  product.Description,
			ImageDataURI: product.ImageURL,
		})

		c.JSON(http.StatusAccepted, gin.H{"message": "generation scheduled"})
	}
}

// SeedDemoData inserts the fixed demo inventory plus a couple of fictitious
// sales records for the future ERP modules.
func SeedDemoData(store Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/demo-data"
		defer handlePanic(c, route)

		uid := sessionUID(c)

		demoProducts := []models.Product{
			{
				Name:        "Abrigo Camel Luxury",
				Price:       89990,
				Category:    "Ropa",
				Description: "Abrigo de lana premium color camel, corte elegante.",
				ImageURL:    "https://images.unsplash.com/photo-1539533018447-63fcce2678e3?q=80&w=400&h=400&auto=format&fit=crop",
			},
			{
				Name:        "Botas Cuero Italiano",
				Price:       125990,
				Category:    "Zapatos",
				Description: "Botas de cuero genuino hechas a mano en Italia.",
				ImageURL:    "https://images.unsplash.com/photo-1608256246200-53e635b5b65f?q=80&w=400&h=400&auto=format&fit=crop",
			},
			{
				Name:        "Bolso Minimal Negro",
				Price:       45000,
				Category:    "Accesorios",
				Description: "Bolso de hombro de cuero sintético de alta calidad.",
				ImageURL:    "https://images.unsplash.com/photo-1584917865442-de89df76afd3?q=80&w=400&h=400&auto=format&fit=crop",
			},
		}

		for i := range demoProducts {
			demoProducts[i].Status = models.StatusPublished
			demoProducts[i].CreatedBy = uid
			if err := store.Create(c.Request.Context(), &demoProducts[i]); err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
		}

		demoSales := []models.Sale{
			{Product: "Abrigo Camel", Amount: 89990, Date: time.Now().UTC(), CreatedBy: uid},
			{Product: "Bolso Minimal", Amount: 45000, Date: time.Now().UTC(), CreatedBy: uid},
		}
		for _, sale := range demoSales {
			if err := store.InsertSale(c.Request.Context(), sale); err != nil {
				respondWithError(c, http.StatusInternalServerError, route, "db error")
				return
			}
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "demo data created",
			"products": len(demoProducts),
			"sales":    len(demoSales),
		})
	}
}
