// File: services/invoicing/storage.go
package invoicing

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"hebelki/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore keeps rendered invoice documents in Cloudinary under a
// per-business folder.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore initializes the artifact store from app config. It
// returns an error when credentials are missing so the caller can run
// without document storage.
func NewCloudinaryStore() (*CloudinaryStore, error) {
	cfg := config.AppConfig
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// UploadInvoice stores the document and returns its canonical URL.
func (s *CloudinaryStore) UploadInvoice(ctx context.Context, businessID, filename string, data []byte) (string, error) {
	publicID := strings.TrimSuffix(filename, ".txt")
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       fmt.Sprintf("invoices/%s", businessID),
		PublicID:     publicID,
		ResourceType: "raw",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload invoice document: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("no URL returned for uploaded invoice document")
	}
	return result.SecureURL, nil
}
