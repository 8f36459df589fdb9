package vision

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// FileAssetStore loads reference seal and signature images from a base
// directory, using the relative paths recorded on each institution
// profile. Every call decodes a fresh handle so concurrent
// verifications never share a Mat.
type FileAssetStore struct {
	baseDir   string
	directory *domain.InstitutionDirectory
}

func NewFileAssetStore(baseDir string, directory *domain.InstitutionDirectory) (*FileAssetStore, error) {
	if baseDir == "" || directory == nil {
		return nil, errors.New("asset store requires a base directory and an institution directory")
	}
	return &FileAssetStore{baseDir: baseDir, directory: directory}, nil
}

func (s *FileAssetStore) ReferenceSeal(code string) (domain.Image, error) {
	profile, ok := s.directory.ProfileByCode(code)
	if !ok {
		return nil, fmt.Errorf("seal for %s: %w", code, domain.ErrUnknownInstitution)
	}
	return s.load(profile.SealImagePath)
}

func (s *FileAssetStore) ReferenceSignature(code string) (domain.Image, error) {
	profile, ok := s.directory.ProfileByCode(code)
	if !ok {
		return nil, fmt.Errorf("signature for %s: %w", code, domain.ErrUnknownInstitution)
	}
	return s.load(profile.SignatureImagePath)
}

func (s *FileAssetStore) load(relPath string) (domain.Image, error) {
	if relPath == "" {
		return nil, domain.ErrAssetMissing
	}
	return LoadImage(filepath.Join(s.baseDir, relPath))
}
