package vision

import (
	"fmt"
	"image"
	"math"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// RegionExtractor crops fractional ROIs out of certificate images.
type RegionExtractor struct{}

func NewRegionExtractor() *RegionExtractor {
	return &RegionExtractor{}
}

// Extract crops roi from img. The crop is copied out so the returned
// handle stays valid after the source image is closed.
func (r *RegionExtractor) Extract(img domain.Image, roi domain.ROI) (domain.Image, error) {
	mat, err := matOf(img)
	if err != nil {
		return nil, err
	}
	rect, err := roiRect(mat.Cols(), mat.Rows(), roi)
	if err != nil {
		return nil, err
	}
	view := mat.Region(rect)
	defer view.Close()
	return &matImage{mat: view.Clone()}, nil
}

// roiRect converts fractional coordinates to a pixel rectangle. Each
// edge rounds to the nearest pixel so the same ratio tuple always maps
// to the same crop regardless of image scale.
func roiRect(width, height int, roi domain.ROI) (image.Rectangle, error) {
	if !roi.Valid() {
		return image.Rectangle{}, fmt.Errorf("%w: ratios %+v out of order or range", domain.ErrInvalidRegion, roi)
	}
	rect := image.Rect(
		int(math.Round(roi.X0*float64(width))),
		int(math.Round(roi.Y0*float64(height))),
		int(math.Round(roi.X1*float64(width))),
		int(math.Round(roi.Y1*float64(height))),
	)
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return image.Rectangle{}, fmt.Errorf("%w: %dx%d source yields empty crop", domain.ErrInvalidRegion, width, height)
	}
	return rect, nil
}
