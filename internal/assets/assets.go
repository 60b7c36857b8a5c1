// Package assets integrates with the remote asset host that stores
// user-uploaded images.
package assets

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Host abstracts the asset host so services can be tested without network
// access. Upload accepts a base64 data URI or a public URL and returns the
// hosted asset's public URL.
type Host interface {
	Upload(ctx context.Context, image string) (string, error)
	Destroy(ctx context.Context, publicID string) error
}

// CloudinaryHost implements Host on top of the Cloudinary upload API.
type CloudinaryHost struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryHost builds a host from a CLOUDINARY_URL-style connection string.
func NewCloudinaryHost(url string) (*CloudinaryHost, error) {
	if url == "" {
		return nil, fmt.Errorf("cloudinary URL is empty")
	}
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryHost{cld: cld}, nil
}

// Upload pushes the image to the asset host and returns its secure URL.
func (h *CloudinaryHost) Upload(ctx context.Context, image string) (string, error) {
	res, err := h.cld.Upload.Upload(ctx, image, uploader.UploadParams{
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("asset upload: %w", err)
	}
	return res.SecureURL, nil
}

// Destroy removes an asset by its public ID.
func (h *CloudinaryHost) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := h.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("asset destroy: %w", err)
	}
	return nil
}

// PublicIDFromURL extracts the asset's public ID from a hosted URL, e.g.
// https://res.example.com/image/upload/v171/zmxorcxexpdbh8r0bkjb.png -> zmxorcxexpdbh8r0bkjb
func PublicIDFromURL(url string) string {
	if url == "" {
		return ""
	}
	parts := strings.Split(url, "/")
	last := parts[len(parts)-1]
	if i := strings.LastIndex(last, "."); i >= 0 {
		return last[:i]
	}
	return last
}
