//go:build integration

package vision

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

// sealFixture draws a corner-rich synthetic seal so ORB has plenty of
// keypoints to anchor on.
func sealFixture(t *testing.T) *matImage {
	t.Helper()
	mat := gocv.NewMatWithSize(256, 256, gocv.MatTypeCV8UC3)
	gocv.Rectangle(&mat, image.Rect(0, 0, 256, 256), color.RGBA{R: 255, G: 255, B: 255}, -1)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if (x*31+y*17)%3 == 0 {
				continue
			}
			shade := uint8((x*53 + y*101) % 200)
			gocv.Rectangle(&mat, image.Rect(x*32+4, y*32+4, x*32+20, y*32+20), color.RGBA{R: shade, G: shade, B: shade}, -1)
		}
	}
	gocv.Circle(&mat, image.Pt(128, 128), 60, color.RGBA{R: 30, G: 30, B: 30}, 3)
	return &matImage{mat: mat}
}

// flatFixture has no corners at all, so ORB yields no descriptors.
func flatFixture(t *testing.T) *matImage {
	t.Helper()
	mat := gocv.NewMatWithSize(256, 256, gocv.MatTypeCV8UC3)
	gocv.Rectangle(&mat, image.Rect(0, 0, 256, 256), color.RGBA{R: 128, G: 128, B: 128}, -1)
	return &matImage{mat: mat}
}

// signatureFixture uses smooth bands and strokes that survive linear
// resampling, so rescaled copies stay strongly correlated.
func signatureFixture(t *testing.T) *matImage {
	t.Helper()
	mat := gocv.NewMatWithSize(120, 320, gocv.MatTypeCV8UC3)
	for band := 0; band < 20; band++ {
		shade := uint8(55 + band*10)
		gocv.Rectangle(&mat, image.Rect(band*16, 0, band*16+16, 120), color.RGBA{R: shade, G: shade, B: shade}, -1)
	}
	gocv.Line(&mat, image.Pt(20, 90), image.Pt(300, 30), color.RGBA{R: 10, G: 10, B: 10}, 5)
	gocv.Circle(&mat, image.Pt(160, 60), 35, color.RGBA{R: 10, G: 10, B: 10}, 4)
	return &matImage{mat: mat}
}

func rescaled(t *testing.T, src *matImage, factor float64) *matImage {
	t.Helper()
	out := gocv.NewMat()
	gocv.Resize(src.mat, &out, image.Pt(0, 0), factor, factor, gocv.InterpolationArea)
	return &matImage{mat: out}
}

func TestOrbSealMatcher_IdenticalSealsScoreHigh(t *testing.T) {
	region := sealFixture(t)
	defer region.Close()
	reference := sealFixture(t)
	defer reference.Close()

	score, err := NewOrbSealMatcher().Similarity(region, reference)
	if err != nil {
		t.Fatalf("similarity: %v", err)
	}
	if score < 0 || score > 1 {
		t.Fatalf("score %v outside [0,1]", score)
	}
	if score <= 0.5 {
		t.Fatalf("identical seals scored %v, expected well above the match floor", score)
	}
}

func TestOrbSealMatcher_NoDescriptorsScoreZero(t *testing.T) {
	flat := flatFixture(t)
	defer flat.Close()
	textured := sealFixture(t)
	defer textured.Close()

	score, err := NewOrbSealMatcher().Similarity(flat, textured)
	if err != nil {
		t.Fatalf("similarity: %v", err)
	}
	if score != 0 {
		t.Fatalf("featureless region scored %v, want exactly 0", score)
	}
}

func TestOrbSealMatcher_ScoreStaysInUnitInterval(t *testing.T) {
	region := sealFixture(t)
	defer region.Close()
	reference := signatureFixture(t)
	defer reference.Close()

	score, err := NewOrbSealMatcher().Similarity(region, reference)
	if err != nil {
		t.Fatalf("similarity: %v", err)
	}
	if score < 0 || score > 1 {
		t.Fatalf("score %v outside [0,1]", score)
	}
}

func TestTemplateSignatureMatcher_ScaleInvariantReference(t *testing.T) {
	region := signatureFixture(t)
	defer region.Close()
	fullScale := signatureFixture(t)
	defer fullScale.Close()
	halfScale := rescaled(t, fullScale, 0.5)
	defer halfScale.Close()

	matcher := NewTemplateSignatureMatcher()
	same, err := matcher.Similarity(region, fullScale)
	if err != nil {
		t.Fatalf("similarity: %v", err)
	}
	if same < 0.99 {
		t.Fatalf("identical signature correlated at %v, want near 1.0", same)
	}
	scaled, err := matcher.Similarity(region, halfScale)
	if err != nil {
		t.Fatalf("similarity: %v", err)
	}
	// The reference is resized to the region's dimensions before
	// correlating, so a rescaled copy must correlate almost as well.
	if scaled < 0.9 {
		t.Fatalf("rescaled signature correlated at %v, want >= 0.9", scaled)
	}
	if same > 1.001 || scaled > 1.001 {
		t.Fatalf("correlation exceeded 1.0: same=%v scaled=%v", same, scaled)
	}
}
