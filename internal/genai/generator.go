package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Phase identifies one of the two generation passes.
type Phase string

const (
	// PhaseModel is the editorial shot: a model wearing the article.
	PhaseModel Phase = "model"
	// PhaseProduct is the styled product-only shot, no person.
	PhaseProduct Phase = "product"
)

const (
	fieldModelShot   = "aiImageUrl"
	fieldProductShot = "aiProductUrl"
)

const modelShotPrompt = `Actúa como un fotógrafo de moda profesional.
Genera una imagen fotorrealista de una modelo (mujer u hombre según corresponda al producto) vistiendo el siguiente artículo de moda.

El artículo es: %s.

La imagen debe parecer una fotografía de estudio de alta calidad para una tienda de ropa online (e-commerce).
Asegúrate de que la prenda se vea claramente y sea el foco principal. Fondo neutro o urbano desenfocado.`

const productShotPrompt = `Actúa como un fotógrafo de producto profesional.
Genera una imagen fotorrealista del siguiente artículo de moda solo, sin personas, en una composición de estudio elegante y minimalista.

El artículo es: %s.

Fondo limpio con iluminación suave de estudio. El producto debe ser el único foco de la imagen.`

// AssetSink receives successfully generated assets. The catalog store
// implements it; tests substitute a recorder.
type AssetSink interface {
	AttachAsset(ctx context.Context, productID, field, dataURI string) error
}

// Notifier publishes the ephemeral per-phase success toasts. Failures are
// log-only on purpose: generation runs behind the admin's back and a missing
// asset is visible in the UI anyway.
type Notifier interface {
	Success(message string)
}

// Request carries everything a generation run needs. ImageDataURI is the
// product's stored base photo; the data-URI prefix is stripped before
// transmission.
type Request struct {
	ProductID    string
	Name         string
	Description  string
	ImageDataURI string
}

// PhaseResult reports the outcome of one pass so callers (and tests) can
// observe what the detached task would otherwise only log.
type PhaseResult struct {
	Phase Phase
	Field string
	Err   error
}

// Generator orchestrates the two sequential generation phases and attaches
// whichever succeed onto the originating record. Phases are independently
// fallible: a phase 1 failure never blocks phase 2, and neither failure is
// surfaced past a log line. There is no retry, no timeout and no guard
// against duplicate triggers; concurrent runs for the same product race and
// the last writer wins per field.
type Generator struct {
	client   *Client
	sink     AssetSink
	notifier Notifier
}

func NewGenerator(client *Client, sink AssetSink, notifier Notifier) *Generator {
	return &Generator{client: client, sink: sink, notifier: notifier}
}

// RunDetached fires a generation task in the background. The caller resolves
// immediately; results surface only through record patches and toasts.
func (g *Generator) RunDetached(req Request) {
	go func() {
		g.Run(context.Background(), req)
	}()
}

// Run executes phase 1 then phase 2, strictly in that order, and returns the
// per-phase outcomes.
func (g *Generator) Run(ctx context.Context, req Request) []PhaseResult {
	article := req.Name + " - " + req.Description

	raw, err := stripDataURI(req.ImageDataURI)
	if err != nil {
		log.Error().Err(err).Str("product", req.ProductID).Msg("genai: unusable base image")
		return []PhaseResult{
			{Phase: PhaseModel, Field: fieldModelShot, Err: err},
			{Phase: PhaseProduct, Field: fieldProductShot, Err: err},
		}
	}

	results := make([]PhaseResult, 0, 2)
	results = append(results, g.runPhase(ctx, req, PhaseModel, fieldModelShot,
		fmt.Sprintf(modelShotPrompt, article), raw,
		"Imagen de modelo generada para "+req.Name))
	results = append(results, g.runPhase(ctx, req, PhaseProduct, fieldProductShot,
		fmt.Sprintf(productShotPrompt, article), raw,
		"Foto de producto generada para "+req.Name))
	return results
}

func (g *Generator) runPhase(ctx context.Context, req Request, phase Phase, field, prompt, imageBase64, successMsg string) PhaseResult {
	result := PhaseResult{Phase: phase, Field: field}

	generated, err := g.client.GenerateImage(ctx, prompt, imageBase64)
	if err != nil {
		log.Error().Err(err).Str("product", req.ProductID).Str("phase", string(phase)).
			Msg("genai: phase failed")
		result.Err = err
		return result
	}

	dataURI := "data:image/jpeg;base64," + generated
	if err := g.sink.AttachAsset(ctx, req.ProductID, field, dataURI); err != nil {
		log.Error().Err(err).Str("product", req.ProductID).Str("phase", string(phase)).
			Msg("genai: attach failed")
		result.Err = err
		return result
	}

	if g.notifier != nil {
		g.notifier.Success(successMsg)
	}
	log.Info().Str("product", req.ProductID).Str("phase", string(phase)).Msg("genai: asset attached")
	return result
}

func stripDataURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, "data:image") {
		return "", fmt.Errorf("la imagen base no es un data URI")
	}
	parts := strings.SplitN(uri, ",", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", fmt.Errorf("data URI sin contenido")
	}
	return parts[1], nil
}
