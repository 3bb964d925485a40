package storage

import (
	"bytes"
	"fmt"
	"image"
	"io"

	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxImageWidth = 1280
	webpQuality   = 82
)

// ProcessImage decodifica JPEG/PNG, reduz para no máximo maxImageWidth
// de largura mantendo a proporção e reencoda como WebP. Todo upload de
// mídia (logo do salão, portfólio do estilista) passa por aqui.
func ProcessImage(r io.Reader) ([]byte, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxImageWidth {
		scaled := image.NewRGBA(image.Rect(0, 0, maxImageWidth, h*maxImageWidth/w))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), src, bounds, draw.Over, nil)
		src = scaled
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	return buf.Bytes(), nil
}
