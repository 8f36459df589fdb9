package vision

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// TemplateSignatureMatcher scores signature regions with normalized
// cross-correlation template matching. The reference is resized to the
// region's dimensions first, so the correlation compares shape rather
// than scale.
type TemplateSignatureMatcher struct{}

func NewTemplateSignatureMatcher() *TemplateSignatureMatcher {
	return &TemplateSignatureMatcher{}
}

// Similarity returns the peak TM_CCOEFF_NORMED correlation. The raw
// value is returned without clipping; slightly negative correlations
// are meaningful evidence against a match.
func (m *TemplateSignatureMatcher) Similarity(region, reference domain.Image) (float64, error) {
	regionMat, err := matOf(region)
	if err != nil {
		return 0, err
	}
	referenceMat, err := matOf(reference)
	if err != nil {
		return 0, err
	}

	regionGray := grayscale(regionMat)
	defer regionGray.Close()
	referenceGray := grayscale(referenceMat)
	defer referenceGray.Close()

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(referenceGray, &resized, image.Pt(regionGray.Cols(), regionGray.Rows()), 0, 0, gocv.InterpolationLinear)

	result := gocv.NewMat()
	defer result.Close()
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.MatchTemplate(regionGray, resized, &result, gocv.TmCcoeffNormed, mask)

	_, maxVal, _, _ := gocv.MinMaxLoc(result)
	return float64(maxVal), nil
}
