package handlers

import (
	"bytes"
	"image"
	"image/jpeg"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	buf := &bytes.Buffer{}
	if err := jpeg.Encode(buf, img, nil); err != nil {
		t.Fatalf("jpeg encode failed: %v", err)
	}
	return buf.Bytes()
}

func productFormRequest(t *testing.T, fields map[string]string, withImage bool) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		_ = writer.WriteField(key, value)
	}
	if withImage {
		part, err := writer.CreateFormFile("image", "photo.jpg")
		if err != nil {
			t.Fatalf("CreateFormFile failed: %v", err)
		}
		_, _ = part.Write(jpegBytes(t, 64, 48))
	}
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/admin/api/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = req
	return c, recorder
}

func validFields() map[string]string {
	return map[string]string{
		"name":        "Test Jacket",
		"price":       "10000",
		"category":    "Ropa",
		"description": "desc",
	}
}

func TestParseProductFormValid(t *testing.T) {
	c, _ := productFormRequest(t, validFields(), true)

	form, err := parseProductForm(c)
	if err != nil {
		t.Fatalf("parseProductForm returned error: %v", err)
	}
	if err := form.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if form.Name != "Test Jacket" || form.Price != 10000 || form.Category != "Ropa" {
		t.Fatalf("unexpected form: %+v", form)
	}
	if form.Image == nil {
		t.Fatal("expected image file header")
	}
}

func TestParseProductFormOptionalFields(t *testing.T) {
	fields := validFields()
	fields["stock"] = "7"
	fields["cost"] = "4990"
	c, _ := productFormRequest(t, fields, true)

	form, err := parseProductForm(c)
	if err != nil {
		t.Fatalf("parseProductForm returned error: %v", err)
	}
	if form.Stock != 7 {
		t.Fatalf("expected stock 7, got %d", form.Stock)
	}
	if form.Cost == nil || *form.Cost != 4990 {
		t.Fatalf("expected cost 4990, got %v", form.Cost)
	}
}

func TestValidateRejectsUnknownCategory(t *testing.T) {
	fields := validFields()
	fields["category"] = "Electrónica"
	c, _ := productFormRequest(t, fields, true)

	form, err := parseProductForm(c)
	if err != nil {
		t.Fatalf("parseProductForm returned error: %v", err)
	}
	if err := form.Validate(); err == nil {
		t.Fatal("expected validation error for category outside the fixed set")
	}
}

func TestValidateRejectsMissingImage(t *testing.T) {
	c, _ := productFormRequest(t, validFields(), false)

	form, err := parseProductForm(c)
	if err != nil {
		t.Fatalf("parseProductForm returned error: %v", err)
	}
	if err := form.Validate(); err == nil {
		t.Fatal("expected validation error for missing image")
	}
}

func TestValidateRejectsNegativePrice(t *testing.T) {
	fields := validFields()
	fields["price"] = "-100"
	c, _ := productFormRequest(t, fields, true)

	form, err := parseProductForm(c)
	if err != nil {
		t.Fatalf("parseProductForm returned error: %v", err)
	}
	if err := form.Validate(); err == nil {
		t.Fatal("expected validation error for negative price")
	}
}

func TestParseProductFormRejectsNonNumericPrice(t *testing.T) {
	fields := validFields()
	fields["price"] = "diez mil"
	c, _ := productFormRequest(t, fields, true)

	if _, err := parseProductForm(c); err == nil {
		t.Fatal("expected parse error for non-numeric price")
	}
}
