package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overworld/internal/biome"
	"overworld/internal/config"
)

func TestBundledConfigLoads(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Defaults().Layout, cfg.Layout)
	assert.Equal(t, 4, cfg.Streaming.Workers)
	_, err = cfg.TileAtlas()
	assert.NoError(t, err)
}

func TestBiomeLabel(t *testing.T) {
	assert.Equal(t, "Deciduous Forest", biomeLabel(biome.DeciduousForest))
	assert.Equal(t, "Grass", biomeLabel(biome.Grass))
}

func TestPaletteCoversEveryKind(t *testing.T) {
	for _, k := range biome.Kinds() {
		_, ok := tilePalette[k]
		assert.True(t, ok, "no color for %s", k)
	}
}
