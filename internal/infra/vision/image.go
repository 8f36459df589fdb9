// Package vision implements the imaging layer on OpenCV: region
// extraction, ORB seal matching, template-correlation signature
// matching, QR decoding, and reference-asset loading.
package vision

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// matImage wraps a gocv.Mat behind the opaque domain handle. The Mat is
// owned by the wrapper; Close releases the native buffer.
type matImage struct {
	mat gocv.Mat
}

func (m *matImage) Width() int  { return m.mat.Cols() }
func (m *matImage) Height() int { return m.mat.Rows() }

func (m *matImage) Close() error {
	return m.mat.Close()
}

// DecodeImage parses encoded image bytes (PNG, JPEG, ...) into a
// domain handle. The caller owns the returned handle.
func DecodeImage(data []byte) (domain.Image, error) {
	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if mat.Empty() {
		mat.Close()
		return nil, errors.New("decode image: empty or unsupported payload")
	}
	return &matImage{mat: mat}, nil
}

// LoadImage reads an image file from disk into a domain handle.
func LoadImage(path string) (domain.Image, error) {
	mat := gocv.IMRead(path, gocv.IMReadColor)
	if mat.Empty() {
		mat.Close()
		return nil, fmt.Errorf("load image %s: %w", path, domain.ErrAssetMissing)
	}
	return &matImage{mat: mat}, nil
}

// matOf unwraps a domain handle produced by this package.
func matOf(img domain.Image) (gocv.Mat, error) {
	wrapped, ok := img.(*matImage)
	if !ok || wrapped == nil {
		return gocv.Mat{}, errors.New("image handle was not produced by the vision layer")
	}
	if wrapped.mat.Empty() {
		return gocv.Mat{}, errors.New("image handle is empty or already closed")
	}
	return wrapped.mat, nil
}

// grayscale returns a single-channel copy of src. The caller closes the
// returned Mat.
func grayscale(src gocv.Mat) gocv.Mat {
	if src.Channels() == 1 {
		return src.Clone()
	}
	gray := gocv.NewMat()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
	return gray
}
