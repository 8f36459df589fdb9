package usecase

import (
	"errors"
	"fmt"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// InstitutionProfileResolver maps a free-text institution name, possibly
// from noisy OCR, to a canonical profile. Resolution failure is fatal to
// the forgery pipeline: ROI coordinates and reference images are
// institution-specific and cannot be guessed.
type InstitutionProfileResolver struct {
	directory *domain.InstitutionDirectory
}

func NewInstitutionProfileResolver(directory *domain.InstitutionDirectory) (*InstitutionProfileResolver, error) {
	if directory == nil {
		return nil, errors.New("institution directory is required")
	}
	return &InstitutionProfileResolver{directory: directory}, nil
}

// Resolve normalizes the raw name, consults the alias table, and maps
// the canonical name to a profile.
func (r *InstitutionProfileResolver) Resolve(raw string) (domain.InstitutionProfile, error) {
	canonical := r.directory.CanonicalName(raw)
	code, ok := r.directory.CodeForName(canonical)
	if !ok {
		return domain.InstitutionProfile{}, fmt.Errorf("resolve institution %q: %w", raw, domain.ErrUnknownInstitution)
	}
	profile, ok := r.directory.ProfileByCode(code)
	if !ok {
		return domain.InstitutionProfile{}, fmt.Errorf("no profile for institution code %q: %w", code, domain.ErrUnknownInstitution)
	}
	return profile, nil
}
