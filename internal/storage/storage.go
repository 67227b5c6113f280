package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Folders images are stored under.
const (
	UserImagesFolder    = "UserImage"
	MessageImagesFolder = "MessagesImage"
)

var (
	// ErrImageTooLarge indicates the upload exceeded the configured limit.
	ErrImageTooLarge = errors.New("image exceeds maximum allowed size")
	// ErrInvalidImage indicates the upload is not one of the accepted image formats.
	ErrInvalidImage = errors.New("file is not a supported image")
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// FileStorage persists uploaded images and resolves their public URLs.
type FileStorage interface {
	GenerateUniqueFilename(originalName string) string
	URL(folder, name string) (string, error)
	Save(ctx context.Context, folder, name string, data []byte) error
}

// Upload is a validated image read from a request.
type Upload struct {
	Filename string
	MimeType string
	Data     []byte
}

// ReadUpload reads and validates a multipart image. A nil header yields a nil upload.
func ReadUpload(file *multipart.FileHeader, maxBytes int64) (*Upload, error) {
	if file == nil {
		return nil, nil
	}
	if maxBytes > 0 && file.Size > maxBytes {
		return nil, ErrImageTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer handle.Close()

	var reader io.Reader = handle
	if maxBytes > 0 {
		reader = io.LimitReader(handle, maxBytes+1)
	}

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, reader); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	return NewUpload(file.Filename, buf.Bytes(), maxBytes)
}

// NewUpload validates raw image bytes against the size limit and accepted formats.
func NewUpload(filename string, data []byte, maxBytes int64) (*Upload, error) {
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrImageTooLarge
	}

	detected := mimetype.Detect(data)
	mime := strings.ToLower(strings.TrimSpace(strings.Split(detected.String(), ";")[0]))
	if _, ok := allowedImageTypes[mime]; !ok {
		return nil, ErrInvalidImage
	}

	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == string(filepath.Separator) {
		name = ""
	}
	if filepath.Ext(name) == "" {
		name += detected.Extension()
	}

	return &Upload{Filename: name, MimeType: mime, Data: data}, nil
}

// UniqueFilename keeps the original extension and appends a random suffix to a sanitized base name.
func UniqueFilename(originalName string) string {
	name := filepath.Base(strings.TrimSpace(originalName))
	ext := strings.ToLower(filepath.Ext(name))
	base := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return -1
	}, strings.TrimSuffix(name, filepath.Ext(name)))

	if base == "" {
		base = "image"
	}

	return fmt.Sprintf("%s_%s%s", base, uuid.NewString(), ext)
}
