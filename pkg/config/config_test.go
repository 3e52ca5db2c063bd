package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_GeocodingConfig(t *testing.T) {
	os.Setenv("GEOCODING_BASE_URL", "http://geocode.test:9090")
	os.Setenv("GEOCODING_MIN_INTERVAL_MS", "1500")
	defer func() {
		os.Unsetenv("GEOCODING_BASE_URL")
		os.Unsetenv("GEOCODING_MIN_INTERVAL_MS")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "http://geocode.test:9090", cfg.Geocoding.BaseURL)
	assert.Equal(t, 1500, cfg.Geocoding.MinIntervalMs)
	assert.Equal(t, "ro", cfg.Geocoding.CountryCodes)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("GEOCODING_BASE_URL")
	os.Unsetenv("GEOCODING_MIN_INTERVAL_MS")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Geocoding.BaseURL)
	assert.Equal(t, 1000, cfg.Geocoding.MinIntervalMs)
	assert.Equal(t, "petrecem", cfg.Database.Database)
	assert.Equal(t, 8080, cfg.Server.Port)
}
