package oss

import (
	"bytes"
	"image"
	_ "image/gif"

	"github.com/disintegration/imaging"
)

// Downscale shrinks jpeg/png images larger than maxW x maxH, keeping aspect.
// Anything it cannot decode is returned unchanged.
func Downscale(data []byte, filename string, maxW, maxH int) []byte {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return data
	}
	if (maxW <= 0 || cfg.Width <= maxW) && (maxH <= 0 || cfg.Height <= maxH) {
		return data
	}

	var out imaging.Format
	switch format {
	case "jpeg":
		out = imaging.JPEG
	case "png":
		out = imaging.PNG
	default:
		f, err := imaging.FormatFromFilename(filename)
		if err != nil {
			return data
		}
		out = f
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data
	}
	img = imaging.Fit(img, orMax(maxW, cfg.Width), orMax(maxH, cfg.Height), imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, out, imaging.JPEGQuality(85)); err != nil {
		return data
	}
	return buf.Bytes()
}

func orMax(limit, actual int) int {
	if limit <= 0 {
		return actual
	}
	return limit
}
