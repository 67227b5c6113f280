package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Service stores images as Cloudinary assets addressed by folder and name.
type Service struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// New constructs a Cloudinary service instance.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true

	return &Service{
		client: cld,
		folder: strings.Trim(cfg.Folder, "/"),
		logger: logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// GenerateUniqueFilename builds a name that cannot collide with an existing asset.
func (s *Service) GenerateUniqueFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s_%s%s", sanitizeBase(originalName), uuid.NewString(), ext)
}

// URL returns the delivery URL the asset will have once saved.
func (s *Service) URL(folder, name string) (string, error) {
	asset, err := s.client.Image(s.publicID(folder, name))
	if err != nil {
		return "", fmt.Errorf("failed to build asset url: %w", err)
	}
	return asset.String()
}

// Save uploads the image under the public id derived from folder and name.
func (s *Service) Save(ctx context.Context, folder, name string, data []byte) error {
	publicID := s.publicID(folder, name)
	params := uploader.UploadParams{
		PublicID:     publicID,
		ResourceType: "image",
	}

	result, err := s.client.Upload.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		return fmt.Errorf("failed to upload asset: %w", err)
	}

	s.logger.Info().Str("public_id", result.PublicID).Msg("image uploaded to cloudinary")
	return nil
}

func (s *Service) publicID(folder, name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	return strings.Trim(path.Join(s.folder, strings.Trim(folder, "/"), base), "/")
}

func sanitizeBase(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, base)

	base = strings.Trim(base, "-")
	if base == "" {
		base = "image"
	}
	return base
}
