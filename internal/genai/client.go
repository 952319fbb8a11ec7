package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrNotConfigured means the API key is missing or still the example value.
var ErrNotConfigured = errors.New("falta configurar la GEMINI_API_KEY")

// ErrNoImage means the endpoint answered 2xx but no inline image part was
// present in the first candidate.
var ErrNoImage = errors.New("la respuesta no contiene imagen")

const keyPlaceholder = "TU_GEMINI_API_KEY_AQUI"

// Client talks to the Gemini generateContent REST endpoint: POST JSON with a
// text prompt plus one inline base64 JPEG, key-authenticated via query param.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

func NewClient(baseURL, model, apiKey string) *Client {
	return &Client{
		httpClient: http.DefaultClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		apiKey:     apiKey,
	}
}

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

// GenerateImage submits one prompt plus the base product photo and returns the
// first inline image of the first candidate as raw base64. Every failure mode
// (transport, non-2xx, empty candidates, image-less response) is a unit
// failure with a human-readable message and no structured taxonomy.
func (c *Client) GenerateImage(ctx context.Context, prompt, imageBase64 string) (string, error) {
	key := strings.TrimSpace(c.apiKey)
	if key == "" || key == keyPlaceholder {
		return "", ErrNotConfigured
	}

	payload := generateRequest{
		Contents: []generateContent{{
			Parts: []generatePart{
				{Text: prompt},
				{InlineData: &inlineData{MimeType: "image/jpeg", Data: imageBase64}},
			},
		}},
		GenerationConfig: generationConfig{ResponseModalities: []string{"IMAGE"}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error al conectar con la IA: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("la IA respondió %s", resp.Status)
	}

	var decoded generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<20)).Decode(&decoded); err != nil {
		return "", fmt.Errorf("respuesta inválida de la IA: %w", err)
	}

	if len(decoded.Candidates) == 0 {
		return "", ErrNoImage
	}
	for _, part := range decoded.Candidates[0].Content.Parts {
		if part.InlineData != nil && part.InlineData.Data != "" {
			return part.InlineData.Data, nil
		}
	}
	return "", ErrNoImage
}
