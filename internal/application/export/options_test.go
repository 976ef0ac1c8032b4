package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/obras-api/internal/application/export"
	"github.com/jhoicas/obras-api/internal/domain"
)

func TestParseOptions_Defaults(t *testing.T) {
	opts, err := export.ParseOptions(export.RawOptions{})
	require.NoError(t, err)
	assert.Equal(t, export.FormatBoth, opts.Format)
	assert.True(t, opts.IncludePhotos)
	assert.Zero(t, opts.SiteID)
	assert.Nil(t, opts.Start)
}

func TestParseOptions_Valores(t *testing.T) {
	opts, err := export.ParseOptions(export.RawOptions{
		Format: "XLSX", SiteID: "12", StartDate: "2024-01-01", EndDate: "2024-01-31", IncludePhotos: "false",
	})
	require.NoError(t, err)
	assert.Equal(t, export.FormatXLSX, opts.Format)
	assert.Equal(t, int64(12), opts.SiteID)
	assert.Equal(t, "2024-01-31", opts.End.Format("2006-01-02"))
	assert.False(t, opts.IncludePhotos)
}

func TestParseOptions_Invalidas(t *testing.T) {
	cases := map[string]export.RawOptions{
		"formato":      {Format: "pdf"},
		"site_id":      {SiteID: "abc"},
		"site_id cero": {SiteID: "0"},
		"fecha":        {StartDate: "2024/01/01"},
		"rango":        {StartDate: "2024-02-01", EndDate: "2024-01-01"},
		"fotos":        {IncludePhotos: "quizás"},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := export.ParseOptions(raw)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
