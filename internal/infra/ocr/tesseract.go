// Package ocr turns certificate images into the structured field bag
// the matcher consumes. Recognition runs on Tesseract; field parsing is
// pure text work layered on top.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// TextRecognizer produces plain text from encoded image bytes.
type TextRecognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// TesseractRecognizer runs one gosseract client per call. Clients are
// cheap relative to a certificate scan and the per-call lifecycle keeps
// the recognizer safe for concurrent requests.
type TesseractRecognizer struct {
	clientFactory func() *gosseract.Client
	language      string
}

func NewTesseractRecognizer(language string) *TesseractRecognizer {
	return &TesseractRecognizer{
		clientFactory: gosseract.NewClient,
		language:      language,
	}
}

func (r *TesseractRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	client := r.clientFactory()
	defer client.Close()

	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	if r.language != "" {
		if err := client.SetLanguage(r.language); err != nil {
			return "", fmt.Errorf("set language: %w", err)
		}
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// FieldExtractor binds a recognizer to the institution directory and
// implements the orchestrator's OCR collaborator.
type FieldExtractor struct {
	Recognizer TextRecognizer
	Directory  *domain.InstitutionDirectory
}

func NewFieldExtractor(recognizer TextRecognizer, directory *domain.InstitutionDirectory) (*FieldExtractor, error) {
	if recognizer == nil || directory == nil {
		return nil, errors.New("field extractor requires a recognizer and an institution directory")
	}
	return &FieldExtractor{Recognizer: recognizer, Directory: directory}, nil
}

func (e *FieldExtractor) Extract(ctx context.Context, image []byte) (domain.ExtractedFields, error) {
	text, err := e.Recognizer.Recognize(ctx, image)
	if err != nil {
		return domain.ExtractedFields{}, err
	}
	return ParseFields(text, e.Directory), nil
}
