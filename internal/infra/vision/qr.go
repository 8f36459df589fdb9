package vision

import (
	"strings"

	"gocv.io/x/gocv"

	"github.com/Jigyasa0405/Academic-Certificate-Validator/internal/domain"
)

// QrDecoder reads QR payloads with OpenCV's built-in detector.
type QrDecoder struct{}

func NewQrDecoder() *QrDecoder {
	return &QrDecoder{}
}

// Decode returns the trimmed payload text, or an empty string when no
// QR code is present in the image.
func (d *QrDecoder) Decode(img domain.Image) (string, error) {
	mat, err := matOf(img)
	if err != nil {
		return "", err
	}

	detector := gocv.NewQRCodeDetector()
	defer detector.Close()

	points := gocv.NewMat()
	defer points.Close()
	straight := gocv.NewMat()
	defer straight.Close()

	payload := detector.DetectAndDecode(mat, &points, &straight)
	return strings.TrimSpace(payload), nil
}
