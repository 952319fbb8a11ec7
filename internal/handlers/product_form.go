package handlers

import (
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"modaai/internal/models"
)

// ProductForm is the admin creation form. Validation happens here, before
// anything touches the store; the store itself trusts its input.
type ProductForm struct {
	Name        string `validate:"required,max=180"`
	Price       int64  `validate:"min=0"`
	PriceSet    bool
	Category    string `validate:"required,category"`
	Description string `validate:"required"`
	Stock       int    `validate:"min=0"`
	Cost        *int64
	Image       *multipart.FileHeader
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.ValidCategory(fl.Field().String())
	})
	return v
}

func parseProductForm(c *gin.Context) (ProductForm, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return ProductForm{}, fmt.Errorf("invalid multipart form: %w", err)
	}

	form := ProductForm{}

	if value, ok := c.GetPostForm("name"); ok {
		form.Name = strings.TrimSpace(value)
	}
	if value, ok := c.GetPostForm("description"); ok {
		form.Description = strings.TrimSpace(value)
	}
	if value, ok := c.GetPostForm("category"); ok {
		form.Category = strings.TrimSpace(value)
	}

	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return ProductForm{}, fmt.Errorf("invalid price")
		}
		form.Price = parsed
		form.PriceSet = true
	}

	if value, ok := c.GetPostForm("stock"); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return ProductForm{}, fmt.Errorf("invalid stock")
		}
		form.Stock = parsed
	}

	if value, ok := c.GetPostForm("cost"); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil || parsed < 0 {
			return ProductForm{}, fmt.Errorf("invalid cost")
		}
		form.Cost = &parsed
	}

	file, err := c.FormFile("image")
	if err == nil {
		form.Image = file
	}

	return form, nil
}

// Validate enforces the form contract: required text fields, numeric bounds,
// the fixed category set, and a mandatory image.
func (f ProductForm) Validate() error {
	if !f.PriceSet {
		return fmt.Errorf("price required")
	}
	if f.Image == nil {
		return fmt.Errorf("image required")
	}
	if err := formValidator.Struct(f); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fmt.Errorf("invalid %s", strings.ToLower(errs[0].Field()))
		}
		return err
	}
	return nil
}
