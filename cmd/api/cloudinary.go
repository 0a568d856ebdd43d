package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const mediaFolder = "plugshop"

func (app *application) deleteMediaFromCloudinary(ctx context.Context, mediaURL string) error {
	// Extract the public ID from the media URL
	publicID, err := extractPublicIDFromURL(mediaURL)
	if err != nil {
		return fmt.Errorf("failed to extract public ID: %w", err)
	}

	// Delete the asset from Cloudinary
	_, err = app.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceTypeFromURL(mediaURL),
	})
	if err != nil {
		return fmt.Errorf("failed to delete media from Cloudinary: %w", err)
	}

	return nil
}

// extractPublicIDFromURL turns
// https://res.cloudinary.com/<cloud>/image/upload/v123/plugshop/abc.jpg into
// plugshop/abc.
func extractPublicIDFromURL(mediaURL string) (string, error) {
	parsedURL, err := url.Parse(mediaURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL format: %w", err)
	}

	pathParts := strings.Split(parsedURL.Path, "/")
	for i, part := range pathParts {
		if part != "upload" || i+1 >= len(pathParts) {
			continue
		}
		rest := pathParts[i+1:]
		// Skip the version segment.
		if len(rest) > 1 && strings.HasPrefix(rest[0], "v") && isDigits(rest[0][1:]) {
			rest = rest[1:]
		}
		id := strings.Join(rest, "/")
		if dot := strings.LastIndex(id, "."); dot > strings.LastIndex(id, "/") {
			id = id[:dot]
		}
		if id == "" {
			break
		}
		return id, nil
	}

	return "", errors.New("failed to extract public ID from URL")
}

func resourceTypeFromURL(mediaURL string) string {
	if strings.Contains(mediaURL, "/video/upload/") {
		return "video"
	}
	return "image"
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// uploadToCloudinaryWithID uploads a file to Cloudinary using a custom public ID.
func (app *application) uploadToCloudinaryWithID(ctx context.Context, file io.Reader, publicID string) (string, error) {
	resp, err := app.cld.Upload.Upload(
		ctx,
		file,
		uploader.UploadParams{
			Folder:       mediaFolder,
			PublicID:     publicID,
			Overwrite:    api.Bool(false),
			ResourceType: "auto",
		},
	)

	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return resp.SecureURL, nil
}
