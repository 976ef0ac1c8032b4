package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/domain"
	"github.com/jhoicas/obras-api/internal/domain/entity"
)

// Formatos de exportación.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatBoth = "both"
)

// Options parámetros de una exportación.
type Options struct {
	Format        string
	SiteID        int64 // 0: todas las obras visibles
	Start         *time.Time
	End           *time.Time
	IncludePhotos bool
}

// RawOptions valores tal como llegan en la query.
type RawOptions struct {
	Format        string `query:"format"`
	SiteID        string `query:"site_id"`
	StartDate     string `query:"start_date"`
	EndDate       string `query:"end_date"`
	IncludePhotos string `query:"include_photos"`
}

// ParseOptions valida la query. Cualquier valor mal formado es ErrInvalidInput.
func ParseOptions(raw RawOptions) (Options, error) {
	opts := Options{Format: strings.ToLower(strings.TrimSpace(raw.Format)), IncludePhotos: true}
	switch opts.Format {
	case "":
		opts.Format = FormatBoth
	case FormatCSV, FormatXLSX, FormatBoth:
	default:
		return opts, fmt.Errorf("%w: format debe ser csv, xlsx o both", domain.ErrInvalidInput)
	}
	if s := strings.TrimSpace(raw.SiteID); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			return opts, fmt.Errorf("%w: site_id inválido", domain.ErrInvalidInput)
		}
		opts.SiteID = id
	}
	var err error
	if opts.Start, err = dto.ParseDate(strings.TrimSpace(raw.StartDate)); err != nil {
		return opts, fmt.Errorf("%w: start_date: %v", domain.ErrInvalidInput, err)
	}
	if opts.End, err = dto.ParseDate(strings.TrimSpace(raw.EndDate)); err != nil {
		return opts, fmt.Errorf("%w: end_date: %v", domain.ErrInvalidInput, err)
	}
	if opts.Start != nil && opts.End != nil && opts.End.Before(*opts.Start) {
		return opts, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	if s := strings.TrimSpace(raw.IncludePhotos); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return opts, fmt.Errorf("%w: include_photos debe ser true o false", domain.ErrInvalidInput)
		}
		opts.IncludePhotos = b
	}
	return opts, nil
}

func (o Options) wantCSV() bool  { return o.Format == FormatCSV || o.Format == FormatBoth }
func (o Options) wantXLSX() bool { return o.Format == FormatXLSX || o.Format == FormatBoth }

// inRange compara por fecha de calendario UTC, ambos extremos inclusive.
func (o Options) inRange(t time.Time) bool {
	day := entity.DateOnly(t.UTC())
	if o.Start != nil && day.Before(*o.Start) {
		return false
	}
	if o.End != nil && day.After(*o.End) {
		return false
	}
	return true
}
