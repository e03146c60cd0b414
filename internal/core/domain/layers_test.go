package domain_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/rappelledev/internal/core/domain"
)

func TestSelectLayers(t *testing.T) {
	const override = "/home/u/.config/rappelledev/docker-compose.override.yaml"

	tests := []struct {
		name     string
		env      domain.Environment
		override string
		expected []string
	}{
		{
			name:     "prod without override",
			env:      domain.EnvProd,
			expected: []string{domain.BaseComposeFile, domain.ProdComposeFile},
		},
		{
			name:     "prod with override",
			env:      domain.EnvProd,
			override: override,
			expected: []string{domain.BaseComposeFile, domain.ProdComposeFile, override},
		},
		{
			name:     "dev without override",
			env:      domain.EnvDev,
			expected: []string{domain.BaseComposeFile, domain.DevComposeFile},
		},
		{
			name:     "dev with override",
			env:      domain.EnvDev,
			override: override,
			expected: []string{domain.BaseComposeFile, domain.DevComposeFile, override},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layers := domain.SelectLayers(tt.env, tt.override)

			files := make([]string, 0, len(layers))
			for _, l := range layers {
				files = append(files, l.File)
			}
			assert.Equal(t, tt.expected, files)
			assert.False(t,
				slices.Contains(files, domain.ProdComposeFile) && slices.Contains(files, domain.DevComposeFile),
				"prod and dev layers must never be combined")
		})
	}
}

func TestSelectLayers_IsDeterministic(t *testing.T) {
	first := domain.SelectLayers(domain.EnvDev, "/o.yaml")
	second := domain.SelectLayers(domain.EnvDev, "/o.yaml")
	assert.Equal(t, first, second)
}

func TestLayerArgs(t *testing.T) {
	layers := domain.SelectLayers(domain.EnvDev, "/o.yaml")
	assert.Equal(t, []string{
		"-f", "docker-compose.yaml",
		"-f", "docker-compose.dev.yaml",
		"-f", "/o.yaml",
	}, domain.LayerArgs(layers))

	assert.Empty(t, domain.LayerArgs(nil))
}
