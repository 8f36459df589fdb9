package usecase

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"

	"github.com/agnivade/levenshtein"
)

// MatcherConfig drives the fuzzy record matcher. The weight vector and
// thresholds are configuration, never hard-coded at call sites.
//
// Per-field comparisons against FieldThreshold are strict (>), as is the
// YearGate: a score exactly equal to the threshold does not qualify.
type MatcherConfig struct {
	FieldThreshold float64
	YearGate       float64
	CertWeight     float64
	NameWeight     float64
	InstWeight     float64
	YearWeight     float64
}

func DefaultMatcherConfig() MatcherConfig {
	return MatcherConfig{
		FieldThreshold: 85,
		YearGate:       50,
		CertWeight:     0.4,
		NameWeight:     0.3,
		InstWeight:     0.2,
		YearWeight:     0.1,
	}
}

// FuzzyRecordMatcher scores extracted text fields against every
// candidate record and selects the best qualifying match.
type FuzzyRecordMatcher struct {
	cfg MatcherConfig
}

func NewFuzzyRecordMatcher(cfg MatcherConfig) *FuzzyRecordMatcher {
	def := DefaultMatcherConfig()
	if cfg.FieldThreshold <= 0 {
		cfg.FieldThreshold = def.FieldThreshold
	}
	if cfg.YearGate <= 0 {
		cfg.YearGate = def.YearGate
	}
	if cfg.CertWeight+cfg.NameWeight+cfg.InstWeight+cfg.YearWeight == 0 {
		cfg.CertWeight = def.CertWeight
		cfg.NameWeight = def.NameWeight
		cfg.InstWeight = def.InstWeight
		cfg.YearWeight = def.YearWeight
	}
	return &FuzzyRecordMatcher{cfg: cfg}
}

// Match scans all candidates, with no early exit: the best-of-N policy
// requires examining every one. Ties on the overall score resolve to the
// first-encountered candidate.
func (m *FuzzyRecordMatcher) Match(extracted domain.ExtractedFields, candidates []domain.CertificateRecord) (bool, *domain.CertificateRecord, *domain.FieldScoreSet) {
	var (
		best       *domain.CertificateRecord
		bestScores *domain.FieldScoreSet
	)
	for i := range candidates {
		candidate := candidates[i]
		scores := m.Score(extracted, candidate)
		if !m.qualifies(scores) {
			continue
		}
		if bestScores == nil || scores.Overall > bestScores.Overall {
			rec := candidate
			s := scores
			best = &rec
			bestScores = &s
		}
	}
	return best != nil, best, bestScores
}

// Score computes the per-field similarity scores for one candidate.
func (m *FuzzyRecordMatcher) Score(extracted domain.ExtractedFields, candidate domain.CertificateRecord) domain.FieldScoreSet {
	scores := domain.FieldScoreSet{
		Cert: fuzzRatio(normalizeField(extracted.CertificateNumber), normalizeField(candidate.CertificateNumber)),
		Name: fuzzRatio(normalizeField(extracted.Name), normalizeField(candidate.Name)),
		Inst: fuzzRatio(normalizeField(extracted.Institution), normalizeField(candidate.Institution)),
	}
	if extracted.Year != "" && extracted.Year == strconv.Itoa(candidate.Year) {
		scores.Year = 100
	}
	scores.Overall = scores.Cert*m.cfg.CertWeight +
		scores.Name*m.cfg.NameWeight +
		scores.Inst*m.cfg.InstWeight +
		scores.Year*m.cfg.YearWeight
	return scores
}

func (m *FuzzyRecordMatcher) qualifies(scores domain.FieldScoreSet) bool {
	return scores.Cert > m.cfg.FieldThreshold &&
		scores.Name > m.cfg.FieldThreshold &&
		scores.Inst > m.cfg.FieldThreshold &&
		scores.Year > m.cfg.YearGate
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeField collapses whitespace and uppercases, so OCR spacing
// noise does not depress the ratio.
func normalizeField(s string) string {
	return strings.ToUpper(strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " ")))
}

// fuzzRatio is a normalized edit-distance similarity on a 0-100 scale.
// Two empty strings are identical; one empty string scores zero.
func fuzzRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	return math.Round(100 * float64(longest-dist) / float64(longest))
}
