package imaging

import (
	"bytes"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	"github.com/barberbook/booking-api/internal/httperr"
)

const (
	// MaxDimension bounds the longest edge of stored images.
	MaxDimension = 1600

	webpQuality = 82
)

// ToWebP decodes an uploaded image (jpeg/png/gif/webp), scales it down
// to fit MaxDimension, and re-encodes it as WebP.
func ToWebP(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		// webp is not registered with image.Decode; try it directly.
		img, err = webp.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, httperr.ErrBusiness("unsupported_image")
		}
	}

	img = Fit(img, MaxDimension)

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Fit scales img down so neither edge exceeds max, keeping aspect
// ratio. Images already within bounds are returned untouched.
func Fit(img image.Image, max int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= max && h <= max {
		return img
	}

	nw, nh := w, h
	if w >= h {
		nw = max
		nh = h * max / w
	} else {
		nh = max
		nw = w * max / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
