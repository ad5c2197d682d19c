// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rubms01/ai-restaurant/internal/imaging"
	"github.com/rubms01/ai-restaurant/internal/storage"
)

const (
	// maxUploadSize is the maximum allowed image upload size (10 MB).
	maxUploadSize = 10 << 20

	// thumbKind is the upload kind that gets a generated thumbnail.
	thumbKind = "restaurant"
)

// imageExtensions maps accepted MIME types to the stored file extension.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// uploadResponse is returned after a successful upload. Key is the value
// to store in the image field of the owning row.
type uploadResponse struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ThumbKey    string `json:"thumb_key,omitempty"`
	ThumbURL    string `json:"thumb_url,omitempty"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Upload stores an image under the prefix of its kind, e.g.
// restaurant/2026/10/<uuid>.jpg. Restaurant images also get a JPEG
// thumbnail next to the original.
func (a *Admin) Upload(w http.ResponseWriter, r *http.Request) {
	if a.objects == nil {
		writeMessage(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	kind := chi.URLParam(r, "kind")
	if !storage.ValidKind(kind) {
		writeMessage(w, http.StatusBadRequest, "unknown upload kind")
		return
	}

	// Limit request body to maxUploadSize + some overhead for form fields.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeMessage(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 10 MB")
			return
		}
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeMessage(w, http.StatusRequestEntityTooLarge, "file too large, maximum size is 10 MB")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Detect content type by sniffing; the client-supplied type is ignored.
	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		writeMessage(w, http.StatusBadRequest, "file type "+contentType+" is not allowed")
		return
	}

	var thumb *imaging.Thumbnail
	if kind == thumbKind {
		thumb, err = imaging.MakeThumbnail(data, imaging.ThumbWidth, imaging.ThumbQuality)
		if errors.Is(err, imaging.ErrTooLarge) {
			writeMessage(w, http.StatusBadRequest, "image dimensions too large")
			return
		}
		if err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "kind", kind)
			thumb = nil
		}
	}

	ctx := r.Context()
	key := storage.Key(kind, time.Now(), ext)
	if err := a.objects.Upload(ctx, key, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", key)
		writeMessage(w, http.StatusBadGateway, "failed to upload file")
		return
	}

	resp := uploadResponse{
		Key:         key,
		URL:         a.objects.FileURL(key),
		ContentType: contentType,
		Size:        int64(len(data)),
	}
	if thumb != nil {
		tk := storage.ThumbKey(key)
		if err := a.objects.Upload(ctx, tk, imaging.ContentType, bytes.NewReader(thumb.Data), int64(len(thumb.Data))); err != nil {
			slog.Warn("thumbnail upload failed", "error", err, "key", tk)
		} else {
			resp.ThumbKey = tk
			resp.ThumbURL = a.objects.FileURL(tk)
		}
	}

	slog.Info("image uploaded", "kind", kind, "key", key, "size", resp.Size)
	writeJSON(w, http.StatusCreated, resp)
}

// DeleteUpload removes an uploaded object and its thumbnail. Rows still
// pointing at the key are left as they are.
func (a *Admin) DeleteUpload(w http.ResponseWriter, r *http.Request) {
	if a.objects == nil {
		writeMessage(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}
	key := chi.URLParam(r, "*")
	if key == "" {
		writeMessage(w, http.StatusBadRequest, "missing key")
		return
	}
	if err := a.objects.Delete(r.Context(), key); err != nil {
		writeError(w, r, err)
		return
	}
	if err := a.objects.Delete(r.Context(), storage.ThumbKey(key)); err != nil {
		slog.Warn("thumbnail delete failed", "error", err, "key", key)
	}
	w.WriteHeader(http.StatusNoContent)
}
