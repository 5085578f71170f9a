package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvServices(t *testing.T) {
	t.Setenv("SERVICES", "catalogi|https://catalogi.example.nl/api/v1|geheim, documenten|https://documenten.example.nl/api/v1, kapot")

	services := envServices("SERVICES")
	require.Len(t, services, 2)

	assert.Equal(t, Service{
		Label:   "catalogi",
		APIRoot: "https://catalogi.example.nl/api/v1",
		Token:   "geheim",
	}, services[0])

	// Token is optional; entries without a base URL are skipped.
	assert.Equal(t, Service{
		Label:   "documenten",
		APIRoot: "https://documenten.example.nl/api/v1",
	}, services[1])
}

func TestEnvServicesUnset(t *testing.T) {
	assert.Nil(t, envServices("SERVICES_UNSET_FOR_TEST"))
}

func TestFromEnvServices(t *testing.T) {
	t.Setenv("SERVICES", "besluiten|https://besluiten.example.nl/api/v1|token123")

	cfg := FromEnv()
	require.Len(t, cfg.Services, 1)
	assert.Equal(t, "besluiten", cfg.Services[0].Label)
	assert.Equal(t, "https://besluiten.example.nl/api/v1", cfg.Services[0].APIRoot)
	assert.Equal(t, "token123", cfg.Services[0].Token)
}
