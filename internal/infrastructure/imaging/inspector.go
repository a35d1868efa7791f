// Package imaging decodes image bytes and summarizes geometry and color for
// tag extraction.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

// downsampleSize bounds per-inspection pixel work; channel means are computed
// over this fixed small copy, never the full raster.
const downsampleSize = 64

type Inspector struct{}

func NewInspector() *Inspector { return &Inspector{} }

func (Inspector) Inspect(data []byte) (domain.ImageInfo, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return domain.ImageInfo{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	info := domain.ImageInfo{Width: bounds.Dx(), Height: bounds.Dy()}
	if info.Width <= 0 || info.Height <= 0 {
		return domain.ImageInfo{}, fmt.Errorf("empty image bounds %v", bounds)
	}

	small := resize.Resize(downsampleSize, downsampleSize, img, resize.NearestNeighbor)
	sb := small.Bounds()

	var sumR, sumG, sumB uint64
	for y := sb.Min.Y; y < sb.Max.Y; y++ {
		for x := sb.Min.X; x < sb.Max.X; x++ {
			r, g, b, _ := small.At(x, y).RGBA()
			sumR += uint64(r >> 8)
			sumG += uint64(g >> 8)
			sumB += uint64(b >> 8)
		}
	}

	pixels := float64(sb.Dx() * sb.Dy())
	info.MeanRed = float64(sumR) / pixels
	info.MeanGreen = float64(sumG) / pixels
	info.MeanBlue = float64(sumB) / pixels
	return info, nil
}
