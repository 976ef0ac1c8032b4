// Package export arma el archivo de descarga: tablas planas CSV, un libro por obra
// y las fotos originales, empaquetados en un único ZIP.
package export

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/jhoicas/obras-api/internal/application/access"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// Nombres fijos dentro del archivo.
const (
	NoticeFile   = "NOTICE.txt"
	ErrorsFile   = "export_errors.txt"
	SheetsDir    = "sheets/"
	PhotosDir    = "photos/"
	archiveStamp = "export_20060102_150405.zip"
)

// SiteFailure obra cuyo libro no se pudo generar.
type SiteFailure struct {
	SiteID int64
	Name   string
	Reason string
}

// Result archivo generado y resumen.
type Result struct {
	Filename      string
	Data          []byte
	Sites         int
	Failed        []SiteFailure
	Photos        int
	SkippedPhotos int
}

// Engine motor de exportación. Es síncrono: cada llamada construye el archivo completo en memoria.
type Engine struct {
	store         repository.Store
	renderer      WorkbookRenderer
	fetcher       PhotoFetcher
	newArchive    ArchiveFactory
	observer      Observer
	minSheetBytes int
	log           zerolog.Logger
	now           func() time.Time
}

// NewEngine construye el motor. minSheetBytes es el tamaño mínimo aceptable de un libro.
func NewEngine(store repository.Store, renderer WorkbookRenderer, fetcher PhotoFetcher, newArchive ArchiveFactory, minSheetBytes int, log zerolog.Logger) *Engine {
	return &Engine{
		store:         store,
		renderer:      renderer,
		fetcher:       fetcher,
		newArchive:    newArchive,
		minSheetBytes: minSheetBytes,
		log:           log,
		now:           time.Now,
	}
}

// WithObserver registra el observador de métricas.
func (e *Engine) WithObserver(o Observer) *Engine {
	e.observer = o
	return e
}

// WithClock reemplaza el reloj (tests).
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Export genera el archivo para las obras visibles por id.
// Solo un fallo al resolver el alcance es error; el resto degrada.
func (e *Engine) Export(ctx context.Context, id access.Identity, opts Options) (*Result, error) {
	started := e.now()
	now := started.UTC()

	sites, err := e.resolveScope(ctx, id, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	arc := e.newArchive(&buf)
	res := &Result{Filename: now.Format(archiveStamp), Sites: len(sites)}

	if len(sites) == 0 {
		if err := arc.Add(NoticeFile, noticeText(now), now); err != nil {
			return nil, fmt.Errorf("escribir aviso: %w", err)
		}
		if err := arc.Close(); err != nil {
			return nil, fmt.Errorf("cerrar archivo: %w", err)
		}
		res.Data = buf.Bytes()
		e.finish(opts, res, started)
		return res, nil
	}

	ds := collect(ctx, e.store, sites, e.log)
	ds.filterPhotos(opts)

	namer := newSheetNamer()
	names := make(map[int64]string, len(sites))
	for _, s := range sites {
		names[s.ID] = namer.name(s.ProjectNo, s.SiteName, s.ID)
	}

	if opts.wantCSV() {
		tables, err := flatTables(ds)
		if err != nil {
			return nil, fmt.Errorf("tablas planas: %w", err)
		}
		for _, t := range tables {
			if err := arc.Add(t.name, t.data, now); err != nil {
				return nil, fmt.Errorf("escribir %s: %w", t.name, err)
			}
		}
	}

	if opts.wantXLSX() {
		for _, s := range sites {
			name := names[s.ID]
			data, err := e.renderSheet(renderLayout(name, newSiteView(ds, s)))
			if err != nil {
				e.log.Warn().Err(err).Int64("site_id", s.ID).Str("sheet", name).Msg("libro de obra omitido")
				res.Failed = append(res.Failed, SiteFailure{SiteID: s.ID, Name: name, Reason: err.Error()})
				continue
			}
			if err := arc.Add(SheetsDir+name+".xlsx", data, now); err != nil {
				return nil, fmt.Errorf("escribir libro %s: %w", name, err)
			}
		}
	}

	if opts.IncludePhotos {
		for _, p := range ds.Photos {
			data, err := e.fetcher.Fetch(ctx, p.URL)
			if err != nil {
				e.log.Warn().Err(err).Int64("site_id", p.SiteID).Int64("photo_id", p.ID).Msg("foto omitida")
				res.SkippedPhotos++
				continue
			}
			if err := arc.Add(photoPath(names[p.SiteID], p), data, p.UploadedAt); err != nil {
				return nil, fmt.Errorf("escribir foto %d: %w", p.ID, err)
			}
			res.Photos++
		}
	}

	if len(res.Failed) > 0 {
		if err := arc.Add(ErrorsFile, errorManifest(res.Failed), now); err != nil {
			return nil, fmt.Errorf("escribir errores: %w", err)
		}
	}
	if err := arc.Close(); err != nil {
		return nil, fmt.Errorf("cerrar archivo: %w", err)
	}
	res.Data = buf.Bytes()
	e.finish(opts, res, started)
	return res, nil
}

// resolveScope obras visibles, acotadas a opts.SiteID si viene.
// Una obra no visible o inexistente deja el alcance vacío.
func (e *Engine) resolveScope(ctx context.Context, id access.Identity, opts Options) ([]*entity.Site, error) {
	sites, err := e.store.Sites().List(ctx, access.OwnerFilter(id))
	if err != nil {
		return nil, fmt.Errorf("resolver alcance: %w", err)
	}
	if opts.SiteID == 0 {
		return sites, nil
	}
	for _, s := range sites {
		if s.ID == opts.SiteID {
			return []*entity.Site{s}, nil
		}
	}
	return nil, nil
}

// renderSheet aísla el fallo de una obra, incluido un pánico del renderizador.
func (e *Engine) renderSheet(layout *Layout) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("pánico al renderizar: %v", r)
		}
	}()
	data, err = e.renderer.Render(layout)
	if err != nil {
		return nil, err
	}
	if len(data) < e.minSheetBytes {
		return nil, fmt.Errorf("libro demasiado pequeño (%d bytes)", len(data))
	}
	return data, nil
}

func (e *Engine) finish(opts Options, res *Result, started time.Time) {
	elapsed := e.now().Sub(started)
	e.log.Info().
		Str("format", opts.Format).
		Int("sites", res.Sites).
		Int("failed_sites", len(res.Failed)).
		Int("photos", res.Photos).
		Int("skipped_photos", res.SkippedPhotos).
		Int("bytes", len(res.Data)).
		Dur("elapsed", elapsed).
		Msg("exportación generada")
	if e.observer != nil {
		e.observer.ExportFinished(opts.Format, res.Sites, len(res.Failed), res.Photos, res.SkippedPhotos, elapsed)
	}
}

// photoPath photos/{obra}/{AAAA}/{MM}/{id}_{nombre}.
func photoPath(siteDir string, p *entity.Photo) string {
	t := p.UploadedAt.UTC()
	return fmt.Sprintf("%s%s/%04d/%02d/%d_%s", PhotosDir, siteDir, t.Year(), int(t.Month()), p.ID, photoBaseName(p))
}

func photoBaseName(p *entity.Photo) string {
	src := p.StoragePath
	if src == "" {
		if u, err := url.Parse(p.URL); err == nil {
			src = u.Path
		}
	}
	if base := cleanName(path.Base(src)); base != "" && base != "." {
		return strings.ReplaceAll(base, " ", "_")
	}
	return "photo"
}

func noticeText(now time.Time) []byte {
	return []byte("내보낼 현장이 없습니다.\n" +
		"생성 시각(UTC): " + now.Format(timestampLayout) + "\n")
}

func errorManifest(failed []SiteFailure) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "시트 생성 실패 %d건\n", len(failed))
	for _, f := range failed {
		fmt.Fprintf(&b, "site_id=%d\tname=%s\treason=%s\n", f.SiteID, f.Name, f.Reason)
	}
	return []byte(b.String())
}
