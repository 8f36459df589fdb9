package domain

import "time"

// ExtractedFields is the structured field bag produced by the OCR
// collaborator for one certificate image. Read-only after extraction.
type ExtractedFields struct {
	CertificateNumber string `json:"certificate_no"`
	Name              string `json:"name"`
	Institution       string `json:"institution"`
	Course            string `json:"course,omitempty"`
	Year              string `json:"year,omitempty"`
	RawText           string `json:"raw_text,omitempty"`
}

// CertificateRecord is one row of the reference dataset. A single
// verification call operates on one consistent snapshot of these.
type CertificateRecord struct {
	CertificateNumber string     `json:"certificate_no"`
	Name              string     `json:"name"`
	Institution       string     `json:"institution"`
	Course            string     `json:"course"`
	Year              int        `json:"year"`
	DigitalHash       string     `json:"digital_hash,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
}
