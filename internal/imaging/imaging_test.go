// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestMakeThumbnail(t *testing.T) {
	thumb, err := MakeThumbnail(pngBytes(t, 1200, 800), ThumbWidth, ThumbQuality)
	if err != nil {
		t.Fatalf("MakeThumbnail: %v", err)
	}
	if thumb == nil {
		t.Fatal("expected a thumbnail for a wide image")
	}
	if thumb.Width != 400 || thumb.Height != 266 {
		t.Errorf("size = %dx%d, want 400x266", thumb.Width, thumb.Height)
	}

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(thumb.Data))
	if err != nil {
		t.Fatalf("thumbnail is not a JPEG: %v", err)
	}
	if cfg.Width != 400 {
		t.Errorf("decoded width = %d, want 400", cfg.Width)
	}
}

func TestMakeThumbnailSkipsSmallImages(t *testing.T) {
	thumb, err := MakeThumbnail(pngBytes(t, 300, 200), ThumbWidth, ThumbQuality)
	if err != nil {
		t.Fatalf("MakeThumbnail: %v", err)
	}
	if thumb != nil {
		t.Errorf("got %dx%d thumbnail for an image narrower than the target", thumb.Width, thumb.Height)
	}
}

func TestMakeThumbnailInvalidData(t *testing.T) {
	if _, err := MakeThumbnail([]byte("not an image"), ThumbWidth, ThumbQuality); err == nil {
		t.Error("expected an error for non-image data")
	}
}

func TestMakeThumbnailTooLarge(t *testing.T) {
	// 56M pixels; only the header is inspected.
	var buf bytes.Buffer
	img := image.NewGray(image.Rect(0, 0, 8000, 7000))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	_, err := MakeThumbnail(buf.Bytes(), ThumbWidth, ThumbQuality)
	if !errors.Is(err, ErrTooLarge) {
		t.Errorf("MakeThumbnail error = %v, want ErrTooLarge", err)
	}
}
