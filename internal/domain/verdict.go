package domain

// FieldScoreSet holds the per-field similarity scores for one comparison
// between extracted fields and a candidate record, on a 0-100 scale,
// plus the derived weighted overall score.
type FieldScoreSet struct {
	Cert    float64 `json:"cert"`
	Name    float64 `json:"name"`
	Inst    float64 `json:"inst"`
	Year    float64 `json:"year"`
	Overall float64 `json:"overall"`
}

// ForgeryVerdict is the outcome of the visual authentication channel.
type ForgeryVerdict struct {
	InstitutionCode    string  `json:"institution_code"`
	SealScore          float64 `json:"seal_match_score"`
	SignatureScore     float64 `json:"signature_match_score"`
	SealAuthentic      bool    `json:"seal_authentic"`
	SignatureAuthentic bool    `json:"signature_authentic"`
	OverallAuthentic   bool    `json:"overall_authentic"`
	SealThreshold      float64 `json:"seal_threshold"`
	SignatureThreshold float64 `json:"signature_threshold"`
	Diagnostic         string  `json:"diagnostic,omitempty"`
}

// QrStatus classifies the outcome of QR-payload cross-verification.
type QrStatus string

const (
	QrStatusMatched      QrStatus = "MATCHED"
	QrStatusNotFound     QrStatus = "NOT_FOUND"
	QrStatusHashMismatch QrStatus = "HASH_MISMATCH"
	QrStatusParseFailed  QrStatus = "PARSE_FAILED"
)

// QrResult is the outcome of the QR verification channel.
type QrResult struct {
	CertificateID string   `json:"certificate_id,omitempty"`
	DigitalHash   string   `json:"digital_hash,omitempty"`
	Authentic     bool     `json:"authentic"`
	Status        QrStatus `json:"status"`
	RawPayload    string   `json:"qr_data,omitempty"`
}

// VerificationVerdict aggregates the independent evidence channels into
// the single unit returned to callers.
type VerificationVerdict struct {
	Matched       bool               `json:"matched"`
	MatchedRecord *CertificateRecord `json:"matched_record,omitempty"`
	Scores        *FieldScoreSet     `json:"confidence_scores,omitempty"`
	Forgery       ForgeryVerdict     `json:"forgery_detection"`
	Qr            *QrResult          `json:"qr,omitempty"`
	IsValid       bool               `json:"is_valid"`
}

// CachedVerdict is the unit stored in the verdict cache: the verdict
// together with the OCR fields that produced it, so a cached response
// carries the same payload as a fresh one.
type CachedVerdict struct {
	Extracted ExtractedFields     `json:"extracted"`
	Verdict   VerificationVerdict `json:"verdict"`
}
