package config

import (
	"fmt"
	"os"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"

	"gopkg.in/yaml.v3"
)

// InstitutionsFile is the on-disk shape of the institution profile
// table. Profiles and aliases are loaded once at process start and
// handed to the engine as an immutable directory.
type InstitutionsFile struct {
	Institutions []domain.InstitutionProfile `yaml:"institutions"`
	Aliases      map[string]string           `yaml:"aliases"`
}

// Applied when a profile omits its thresholds. A zero threshold would
// let zero-evidence scores pass the inclusive comparison.
const (
	defaultSealThreshold      = 0.25
	defaultSignatureThreshold = 0.05
)

// LoadInstitutions reads and validates the profile table.
func LoadInstitutions(path string) (*domain.InstitutionDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read institutions file: %w", err)
	}
	return ParseInstitutions(data)
}

// ParseInstitutions builds the directory from raw YAML.
func ParseInstitutions(data []byte) (*domain.InstitutionDirectory, error) {
	var file InstitutionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse institutions file: %w", err)
	}
	if len(file.Institutions) == 0 {
		return nil, fmt.Errorf("institutions file declares no profiles")
	}
	seen := make(map[string]struct{}, len(file.Institutions))
	for i := range file.Institutions {
		p := &file.Institutions[i]
		if p.Code == "" || p.Name == "" {
			return nil, fmt.Errorf("institution profile missing code or name")
		}
		if _, dup := seen[p.Code]; dup {
			return nil, fmt.Errorf("duplicate institution code %q", p.Code)
		}
		seen[p.Code] = struct{}{}
		if !p.SealROI.Valid() {
			return nil, fmt.Errorf("institution %s: seal roi not normalized", p.Code)
		}
		if !p.SignatureROI.Valid() {
			return nil, fmt.Errorf("institution %s: signature roi not normalized", p.Code)
		}
		if p.QrROI != nil && !p.QrROI.Valid() {
			return nil, fmt.Errorf("institution %s: qr roi not normalized", p.Code)
		}
		if p.SealThreshold < 0 || p.SignatureThreshold < 0 {
			return nil, fmt.Errorf("institution %s: negative threshold", p.Code)
		}
		if p.SealThreshold == 0 {
			p.SealThreshold = defaultSealThreshold
		}
		if p.SignatureThreshold == 0 {
			p.SignatureThreshold = defaultSignatureThreshold
		}
	}
	return domain.NewInstitutionDirectory(file.Institutions, file.Aliases), nil
}
