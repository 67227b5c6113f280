package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestFromViperAppliesDefaults(t *testing.T) {
	v := viper.New()
	v.Set("jwt.secret", "secret")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	require.Equal(t, "Sarhne API", cfg.AppName)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, "postgres", cfg.DatabaseDriver)
	require.Equal(t, 7, cfg.JWTDurationDays)
	require.Equal(t, 240*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, 10*time.Minute, cfg.ReactionCacheTTL)
	require.Equal(t, "local", cfg.StorageDriver)
	require.Equal(t, 5, cfg.UploadMaxMB)
}

func TestFromViperRequiresSecret(t *testing.T) {
	_, err := fromViper(viper.New())
	require.Error(t, err)
}

func TestFromViperRejectsUnknownDrivers(t *testing.T) {
	v := viper.New()
	v.Set("jwt.secret", "secret")
	v.Set("database.driver", "mysql")

	_, err := fromViper(v)
	require.Error(t, err)

	v = viper.New()
	v.Set("jwt.secret", "secret")
	v.Set("storage.driver", "s3")

	_, err = fromViper(v)
	require.Error(t, err)
}

func TestHTTPAddressKeepsColonPrefix(t *testing.T) {
	cfg := Config{AppPort: ":9000"}
	require.Equal(t, ":9000", cfg.HTTPAddress())
}
