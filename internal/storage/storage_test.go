package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	buf := bytes.NewBuffer(nil)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestNewUploadAcceptsImages(t *testing.T) {
	upload, err := NewUpload("avatar", pngBytes(t), 1024*1024)
	require.NoError(t, err)
	require.Equal(t, "image/png", upload.MimeType)
	require.Equal(t, "avatar.png", upload.Filename)
}

func TestNewUploadRejectsOtherContent(t *testing.T) {
	_, err := NewUpload("notes.txt", []byte("plain text body"), 1024)
	require.ErrorIs(t, err, ErrInvalidImage)

	_, err = NewUpload("avatar.png", pngBytes(t), 8)
	require.ErrorIs(t, err, ErrImageTooLarge)
}

func TestUniqueFilenameKeepsExtension(t *testing.T) {
	first := UniqueFilename("../my photo.JPG")
	second := UniqueFilename("../my photo.JPG")

	require.NotEqual(t, first, second)
	require.True(t, strings.HasPrefix(first, "myphoto_"))
	require.True(t, strings.HasSuffix(first, ".jpg"))
	require.NotContains(t, first, "/")
}

func TestLocalStorageSavesUnderFolder(t *testing.T) {
	root := t.TempDir()
	store := NewLocalStorage(root, zerolog.Nop())

	url, err := store.URL(MessageImagesFolder, "pic.png")
	require.NoError(t, err)
	require.Equal(t, "/MessagesImage/pic.png", url)

	data := pngBytes(t)
	require.NoError(t, store.Save(context.Background(), MessageImagesFolder, "pic.png", data))

	stored, err := os.ReadFile(filepath.Join(root, MessageImagesFolder, "pic.png"))
	require.NoError(t, err)
	require.Equal(t, data, stored)
}
