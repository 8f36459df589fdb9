package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that a requested entity does not exist in the
	// backing store.
	ErrNotFound = errors.New("not found")

	// ErrUnknownInstitution reports that no alias matched the OCR
	// institution name. ROI coordinates and reference images are
	// institution-specific, so visual authentication cannot proceed.
	ErrUnknownInstitution = errors.New("unknown institution")

	// ErrInvalidRegion reports an ROI that produces a zero-area or
	// out-of-bounds pixel rectangle.
	ErrInvalidRegion = errors.New("invalid region")

	// ErrAssetMissing reports that a reference seal or signature image
	// could not be loaded for a resolved profile.
	ErrAssetMissing = errors.New("reference asset missing")

	// ErrQrNotDetected reports that no QR payload was found in the image.
	ErrQrNotDetected = errors.New("qr code not detected")

	// ErrRecordLookup reports that the record store was unreachable.
	ErrRecordLookup = errors.New("record lookup failed")
)

// QrParseError reports that a decoded QR payload could not be parsed
// into a certificate identifier after all parsing strategies. The raw
// payload is carried for diagnostics.
type QrParseError struct {
	Payload string
}

func (e *QrParseError) Error() string {
	return fmt.Sprintf("could not extract certificate id from qr payload %q", e.Payload)
}
