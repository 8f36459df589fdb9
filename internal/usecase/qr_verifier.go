package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// QrVerifier decodes a QR payload, parses structured identifiers out of
// it, and checks them against the certificate ledger.
type QrVerifier struct {
	Regions RegionExtractor
	Decoder QrDecoder
	Ledger  Ledger
}

func NewQrVerifier(regions RegionExtractor, decoder QrDecoder, ledger Ledger) (*QrVerifier, error) {
	if decoder == nil || ledger == nil {
		return nil, errors.New("qr verifier requires decoder and ledger")
	}
	return &QrVerifier{Regions: regions, Decoder: decoder, Ledger: ledger}, nil
}

// Verify runs the full QR channel. When roi is non-nil the image is
// cropped first; a nil roi scans the whole image.
func (v *QrVerifier) Verify(ctx context.Context, img domain.Image, roi *domain.ROI) (domain.QrResult, error) {
	target := img
	if roi != nil {
		if v.Regions == nil {
			return domain.QrResult{}, errors.New("qr roi given but no region extractor configured")
		}
		region, err := v.Regions.Extract(img, *roi)
		if err != nil {
			return domain.QrResult{}, fmt.Errorf("extract qr region: %w", err)
		}
		defer region.Close()
		target = region
	}

	payload, err := v.Decoder.Decode(target)
	if err != nil {
		return domain.QrResult{}, fmt.Errorf("decode qr: %w", err)
	}
	if payload == "" {
		return domain.QrResult{}, domain.ErrQrNotDetected
	}

	certID, hash := ParseQrPayload(payload)
	if certID == "" {
		return domain.QrResult{
			Status:     domain.QrStatusParseFailed,
			RawPayload: payload,
		}, &domain.QrParseError{Payload: payload}
	}

	result := domain.QrResult{
		CertificateID: certID,
		DigitalHash:   hash,
		RawPayload:    payload,
	}
	record, err := v.Ledger.GetByCertificateID(ctx, certID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			result.Status = domain.QrStatusNotFound
			return result, nil
		}
		return domain.QrResult{}, fmt.Errorf("%w: %v", domain.ErrRecordLookup, err)
	}
	if record.DigitalHash != hash {
		// Distinct from not-found: a known certificate with the wrong
		// hash signals probable tampering.
		result.Status = domain.QrStatusHashMismatch
		return result, nil
	}
	result.Status = domain.QrStatusMatched
	result.Authentic = true
	return result, nil
}

// ParseQrPayload resolves (certificateID, digitalHash) from a decoded
// payload through an ordered chain of strategies: labeled line scan,
// identifier shape patterns, standalone-hash heuristic, and finally a
// bare identifier:hash pair. Earlier strategies win; later ones only
// fill fields still empty.
func ParseQrPayload(payload string) (certID, hash string) {
	certID, hash = scanLabeledLines(payload)
	if certID == "" {
		certID = matchIDPattern(payload)
	}
	if hash == "" {
		hash = findStandaloneHash(payload, certID)
	}
	if certID == "" && hash == "" {
		certID, hash = splitColonPair(payload)
	}
	return certID, hash
}

var (
	idLabels   = []string{"Certificate ID:", "Cert ID:", "ID:"}
	hashLabels = []string{"Digital Hash:", "Hash:"}
)

// scanLabeledLines walks the payload line by line stripping known label
// prefixes. The first matching label wins per field; an empty value
// after a hash label takes the hash from the next line.
func scanLabeledLines(payload string) (certID, hash string) {
	lines := strings.Split(payload, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if certID == "" {
			if value, ok := stripLabel(line, idLabels); ok {
				certID = value
				continue
			}
		}
		if hash == "" {
			if value, ok := stripLabel(line, hashLabels); ok {
				if value == "" && i+1 < len(lines) {
					value = strings.TrimSpace(lines[i+1])
				}
				hash = value
			}
		}
	}
	return certID, hash
}

func stripLabel(line string, labels []string) (string, bool) {
	for _, label := range labels {
		if strings.HasPrefix(line, label) {
			return strings.TrimSpace(strings.TrimPrefix(line, label)), true
		}
	}
	return "", false
}

// Certificate-identifier shapes, most specific first.
var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(JH[-_]?UNI[-_]?\d{4}[-_]?\d+)`),
	regexp.MustCompile(`(?i)(RTI[-_]?\d{4}[-_]?\d+)`),
	regexp.MustCompile(`(?i)([A-Z]+-[A-Z]+-\d{4}-\d+)`),
	regexp.MustCompile(`(?i)([A-Z]{2,4}[-_]?\d{3,4})`),
}

func matchIDPattern(payload string) string {
	for _, pattern := range idPatterns {
		if m := pattern.FindStringSubmatch(payload); m != nil {
			return m[1]
		}
	}
	return ""
}

var alnumLineRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// findStandaloneHash treats the first standalone alphanumeric line of
// length >= 10 that is not the identifier itself as the hash.
func findStandaloneHash(payload, certID string) string {
	for _, line := range strings.Split(payload, "\n") {
		line = strings.TrimSpace(line)
		if len(line) >= 10 && alnumLineRe.MatchString(line) && line != certID {
			return line
		}
	}
	return ""
}

// splitColonPair handles the bare "identifier:hash" form, only when the
// payload contains exactly one separator.
func splitColonPair(payload string) (certID, hash string) {
	if strings.Count(payload, ":") != 1 {
		return "", ""
	}
	parts := strings.SplitN(payload, ":", 2)
	id, value := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	// A scheme separator ("https://...") marks a URL, not an id:hash pair.
	if id == "" || value == "" || strings.HasPrefix(value, "//") {
		return "", ""
	}
	return id, value
}
