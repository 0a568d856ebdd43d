package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20 // 10MB

var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"video/mp4":  true,
	"video/webm": true,
}

const uploadDisabledMessage = "uploads are not configured on this server"

// helper: sniff first 512 bytes and reset reader
func sniffMIME(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read: %w", err)
	}
	mime := http.DetectContentType(buf[:n])

	// reset so later reads start from byte 0
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek reset: %w", err)
	}
	return mime, nil
}

// uploadHandler godoc
//
//	@Summary		Upload a product photo or video
//	@Tags			admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Image or video"
//	@Success		201		{object}	dataEnvelope
//	@Failure		400		{object}	errorEnvelope
//	@Failure		501		{object}	errorEnvelope
//	@Security		ApiKeyAuth
//	@Router			/upload [post]
func (app *application) uploadHandler(w http.ResponseWriter, r *http.Request) {
	if app.cld == nil {
		app.notImplementedResponse(w, r, uploadDisabledMessage)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		app.badRequestResponse(w, r, fmt.Errorf("failed to parse form: %w", err))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, _, err := r.FormFile("file")
	if err != nil {
		app.badRequestResponse(w, r, errors.New("file is required"))
		return
	}
	defer file.Close()

	// sniff actual MIME from bytes (don’t trust Content-Type header)
	mime, err := sniffMIME(file)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if !allowedUploadTypes[strings.SplitN(mime, ";", 2)[0]] {
		app.badRequestResponse(w, r, fmt.Errorf("unsupported file type: %s", mime))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("media_%d_%s", time.Now().Unix(), uuid.NewString()[:8])
	url, err := app.uploadToCloudinaryWithID(ctx, file, publicID)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.jsonResponse(w, http.StatusCreated, map[string]string{"url": url})
}

// deleteUploadHandler removes a previously uploaded asset: DELETE /upload?url=...
func (app *application) deleteUploadHandler(w http.ResponseWriter, r *http.Request) {
	if app.cld == nil {
		app.notImplementedResponse(w, r, uploadDisabledMessage)
		return
	}

	mediaURL := r.URL.Query().Get("url")
	if mediaURL == "" {
		app.badRequestResponse(w, r, errors.New("url query parameter is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := app.deleteMediaFromCloudinary(ctx, mediaURL); err != nil {
		app.internalServerError(w, r, err)
		return
	}
	app.messageResponse(w, http.StatusOK, "media deleted")
}
