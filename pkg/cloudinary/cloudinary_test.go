package cloudinary

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Config{CloudName: "demo"}, zerolog.Nop())
	require.Error(t, err)
}

func TestURLAddressesFolderAndName(t *testing.T) {
	svc, err := New(Config{CloudName: "demo", APIKey: "key", APISecret: "secret", Folder: "/sarhne/"}, zerolog.Nop())
	require.NoError(t, err)

	require.Equal(t, "sarhne/MessagesImage/pic_1", svc.publicID("MessagesImage", "pic_1.png"))

	url, err := svc.URL("MessagesImage", "pic_1.png")
	require.NoError(t, err)
	require.Contains(t, url, "demo")
	require.Contains(t, url, "sarhne/MessagesImage/pic_1")
}

func TestGenerateUniqueFilenameSanitizes(t *testing.T) {
	svc, err := New(Config{CloudName: "demo", APIKey: "key", APISecret: "secret"}, zerolog.Nop())
	require.NoError(t, err)

	name := svc.GenerateUniqueFilename("holiday pic!.PNG")
	require.True(t, strings.HasPrefix(name, "holiday-pic_"))
	require.True(t, strings.HasSuffix(name, ".png"))
}
