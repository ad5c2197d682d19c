// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging generates JPEG thumbnails for uploaded restaurant
// photos. Images narrower than the target width are left alone to avoid
// upscaling.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Defaults for restaurant image thumbnails.
const (
	ThumbWidth   = 400
	ThumbQuality = 80

	// MaxPixels rejects decompression bombs before a full decode.
	MaxPixels = 50_000_000
)

// ErrTooLarge is returned for images whose pixel count exceeds MaxPixels.
var ErrTooLarge = errors.New("image too large")

// Thumbnail is one generated JPEG thumbnail.
type Thumbnail struct {
	Width  int
	Height int
	Data   []byte
}

// ContentType of every generated thumbnail.
const ContentType = "image/jpeg"

// MakeThumbnail scales src down to maxWidth preserving the aspect ratio
// and encodes it as JPEG. It returns (nil, nil) when src is already
// maxWidth pixels wide or narrower.
func MakeThumbnail(src []byte, maxWidth, quality int) (*Thumbnail, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}
	if cfg.Width <= maxWidth {
		return nil, nil
	}

	img, _, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	height := bounds.Dy() * maxWidth / bounds.Dx()
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return &Thumbnail{Width: maxWidth, Height: height, Data: buf.Bytes()}, nil
}
