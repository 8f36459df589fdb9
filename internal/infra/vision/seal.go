package vision

import (
	"gocv.io/x/gocv"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// sealMinMatches is the floor below which ORB correspondence is treated
// as noise and the score collapses to zero.
const sealMinMatches = 10

// OrbSealMatcher scores seal regions with ORB keypoints and a Hamming
// brute-force matcher in cross-check mode. Cross-checking keeps only
// mutually best pairs, which suppresses the spurious matches that plain
// nearest-neighbour matching produces on textured paper.
type OrbSealMatcher struct{}

func NewOrbSealMatcher() *OrbSealMatcher {
	return &OrbSealMatcher{}
}

// Similarity returns matches / min(descriptor counts), clipped to 1.0,
// when more than sealMinMatches cross-checked pairs survive; otherwise
// 0.0. Images with fewer than two descriptors score 0.0 outright.
func (m *OrbSealMatcher) Similarity(region, reference domain.Image) (float64, error) {
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

	orb := gocv.NewORB()
	defer orb.Close()

	mask := gocv.NewMat()
	defer mask.Close()

	_, regionDesc := orb.DetectAndCompute(regionGray, mask)
	defer regionDesc.Close()
	_, referenceDesc := orb.DetectAndCompute(referenceGray, mask)
	defer referenceDesc.Close()

	if regionDesc.Rows() < 2 || referenceDesc.Rows() < 2 {
		return 0, nil
	}

	matcher := gocv.NewBFMatcherWithParams(gocv.NormHamming, true)
	defer matcher.Close()

	matches := matcher.Match(regionDesc, referenceDesc)
	if len(matches) <= sealMinMatches {
		return 0, nil
	}

	smaller := regionDesc.Rows()
	if referenceDesc.Rows() < smaller {
		smaller = referenceDesc.Rows()
	}
	score := float64(len(matches)) / float64(smaller)
	if score > 1.0 {
		score = 1.0
	}
	return score, nil
}
