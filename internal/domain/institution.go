package domain

import (
	"sort"
	"strings"
)

// ROI is a rectangular sub-area of an image given as fractional
// coordinates of the full width/height. Coordinates are in [0,1] with
// X0 < X1 and Y0 < Y1.
type ROI struct {
	X0 float64 `json:"x0" yaml:"x0"`
	Y0 float64 `json:"y0" yaml:"y0"`
	X1 float64 `json:"x1" yaml:"x1"`
	Y1 float64 `json:"y1" yaml:"y1"`
}

// Valid reports whether the ROI is normalized and has positive area.
func (r ROI) Valid() bool {
	return r.X0 >= 0 && r.Y0 >= 0 && r.X1 <= 1 && r.Y1 <= 1 &&
		r.X0 < r.X1 && r.Y0 < r.Y1
}

// InstitutionProfile holds everything needed to visually authenticate a
// certificate from one institution. Immutable once loaded at startup.
type InstitutionProfile struct {
	Code               string  `json:"code" yaml:"code"`
	Name               string  `json:"name" yaml:"name"`
	SealROI            ROI     `json:"seal_roi" yaml:"seal_roi"`
	SignatureROI       ROI     `json:"signature_roi" yaml:"signature_roi"`
	QrROI              *ROI    `json:"qr_roi,omitempty" yaml:"qr_roi,omitempty"`
	SealImagePath      string  `json:"seal_image" yaml:"seal_image"`
	SignatureImagePath string  `json:"signature_image" yaml:"signature_image"`
	SealThreshold      float64 `json:"seal_threshold" yaml:"seal_threshold"`
	SignatureThreshold float64 `json:"signature_threshold" yaml:"signature_threshold"`
}

// InstitutionDirectory maps noisy OCR institution names to canonical
// profiles. Built once from configuration and never mutated, so it is
// safe to share across concurrent verification requests.
type InstitutionDirectory struct {
	profiles map[string]InstitutionProfile // by code
	byName   map[string]string             // canonical name -> code
	aliases  map[string]string             // lowercased alias -> canonical name
}

// NewInstitutionDirectory builds a directory from a profile list and an
// alias table. Alias keys are lowercased; canonical names map to
// profile codes through the profile entries themselves.
func NewInstitutionDirectory(profiles []InstitutionProfile, aliases map[string]string) *InstitutionDirectory {
	d := &InstitutionDirectory{
		profiles: make(map[string]InstitutionProfile, len(profiles)),
		byName:   make(map[string]string, len(profiles)),
		aliases:  make(map[string]string, len(aliases)),
	}
	for _, p := range profiles {
		d.profiles[p.Code] = p
		d.byName[p.Name] = p.Code
	}
	for alias, canonical := range aliases {
		d.aliases[normalizeAlias(alias)] = canonical
	}
	return d
}

// ProfileByCode returns the profile for a code.
func (d *InstitutionDirectory) ProfileByCode(code string) (InstitutionProfile, bool) {
	p, ok := d.profiles[code]
	return p, ok
}

// CanonicalName resolves a lowercased, trimmed alias to the canonical
// institution name. Unknown aliases resolve to themselves so that exact
// canonical names pass through without an alias entry.
func (d *InstitutionDirectory) CanonicalName(raw string) string {
	cleaned := normalizeAlias(raw)
	if canonical, ok := d.aliases[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// CodeForName returns the profile code registered for a canonical name.
// Lookup is case-insensitive.
func (d *InstitutionDirectory) CodeForName(name string) (string, bool) {
	for canonical, code := range d.byName {
		if normalizeAlias(canonical) == normalizeAlias(name) {
			return code, true
		}
	}
	return "", false
}

func normalizeAlias(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Codes returns all registered profile codes in sorted order.
func (d *InstitutionDirectory) Codes() []string {
	codes := make([]string, 0, len(d.profiles))
	for code := range d.profiles {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
