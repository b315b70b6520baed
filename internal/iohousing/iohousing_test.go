package iohousing_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/chuawjk/ecda/internal/iohousing"
	"github.com/chuawjk/ecda/pkg/config"
	"github.com/chuawjk/ecda/pkg/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const housingFixture = `Project,Town,Subzone,Estimated completion year,Total number of units
Garden Bloom,Tengah,Tengah Garden,2026,1400
Parc Flora,Tengah,Tengah Garden,2026,"1,100"
Alkaff Breeze,Bidadari,Bidadari ,2025,775
Queensway Canopy,Queenstown,,2025,620
Verandah,Bedok,Bedok North,TBC,330
`

func fixtureConfig(t *testing.T, content string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "btomapping.csv")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)

	cfg := config.New()
	cfg.Update([]config.Option{config.OptDataHousingFile(path)})
	return cfg
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	cfg := fixtureConfig(t, housingFixture)

	res, err := iohousing.New(cfg).Load(ctx)
	require.NoError(t, err)

	t.Run("keeps usable rows", func(t *testing.T) {
		require.Len(t, res, 3,
			"rows without subzone or with 'TBC' years are skipped")
	})

	t.Run("parses unit counts with separators", func(t *testing.T) {
		assert.Contains(t, res, forecast.HousingCompletion{
			Subzone: "Tengah Garden", Year: 2026, Units: 1100,
		})
	})

	t.Run("trims subzone names", func(t *testing.T) {
		assert.Contains(t, res, forecast.HousingCompletion{
			Subzone: "Bidadari", Year: 2025, Units: 775,
		})
	})
}

func TestLoad_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptDataHousingFile(
				filepath.Join(t.TempDir(), "no-such.csv"),
			),
		})

		_, err := iohousing.New(cfg).Load(ctx)
		assert.Error(t, err)
	})

	t.Run("missing required column", func(t *testing.T) {
		cfg := fixtureConfig(t,
			"Project,Subzone,Total number of units\nA,B,100\n")

		_, err := iohousing.New(cfg).Load(ctx)
		assert.Error(t, err)
	})
}
