package usecase

import (
	"context"
	"time"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// RecordSource exposes one consistent snapshot of the reference dataset
// per call. The fuzzy matcher scans the returned slice in order, so the
// best-of-N choice never mixes two snapshots.
type RecordSource interface {
	ListRecords(ctx context.Context) ([]domain.CertificateRecord, error)
}

// Ledger is the keyed lookup used by QR verification.
type Ledger interface {
	GetByCertificateID(ctx context.Context, certID string) (*domain.CertificateRecord, error)
}

// RegionExtractor crops a normalized ROI out of a raster image.
type RegionExtractor interface {
	Extract(img domain.Image, roi domain.ROI) (domain.Image, error)
}

// SealMatcher scores structural similarity between a seal region and a
// reference seal. Scores are in [0,1].
type SealMatcher interface {
	Similarity(region, reference domain.Image) (float64, error)
}

// SignatureMatcher scores correlation between a signature region and a
// reference signature. Raw correlation, no clipping.
type SignatureMatcher interface {
	Similarity(region, reference domain.Image) (float64, error)
}

// QrDecoder extracts the text payload of a 2-D barcode, or an empty
// string when none is detected.
type QrDecoder interface {
	Decode(img domain.Image) (string, error)
}

// AssetStore loads reference seal/signature images for a profile code.
// Implementations return a fresh handle per call; callers close it.
type AssetStore interface {
	ReferenceSeal(code string) (domain.Image, error)
	ReferenceSignature(code string) (domain.Image, error)
}

// FieldExtractor is the OCR collaborator: raw image bytes in, structured
// field bag out.
type FieldExtractor interface {
	Extract(ctx context.Context, image []byte) (domain.ExtractedFields, error)
}

// DecisionPolicy merges the evidence channels into the final validity
// decision. The default composition treats QR as supplementary; a
// policy bundle may override that.
type DecisionPolicy interface {
	Evaluate(ctx context.Context, input domain.PolicyInput) (domain.PolicyEvaluation, error)
}

type AuditEventRepository interface {
	Append(ctx context.Context, event domain.AuditEvent) (domain.AuditEvent, error)
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}

type VerificationCache interface {
	Get(ctx context.Context, key string) (*domain.CachedVerdict, bool, error)
	Put(ctx context.Context, key string, entry domain.CachedVerdict, ttl time.Duration) error
}
