package export_test

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jhoicas/obras-api/internal/application/access"
	"github.com/jhoicas/obras-api/internal/application/export"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"github.com/jhoicas/obras-api/internal/infrastructure/archive"
	"github.com/jhoicas/obras-api/internal/infrastructure/memory"
	"github.com/jhoicas/obras-api/internal/infrastructure/xlsx"
)

var (
	owner    = access.Identity{UserID: 1, Role: entity.RoleUser}
	stranger = access.Identity{UserID: 2, Role: entity.RoleUser}
	admin    = access.Identity{UserID: 9, Role: entity.RoleAdmin}
	fixedNow = time.Date(2024, 6, 1, 8, 30, 15, 0, time.UTC)
)

// failingRenderer falla para las hojas indicadas y delega el resto.
type failingRenderer struct {
	next  export.WorkbookRenderer
	fail  map[string]bool
	empty map[string]bool
}

func (r failingRenderer) Render(l *export.Layout) ([]byte, error) {
	if r.fail[l.Sheet] {
		return nil, errors.New("plantilla rota")
	}
	if r.empty[l.Sheet] {
		return []byte("PK"), nil
	}
	return r.next.Render(l)
}

type fakeFetcher struct {
	missing map[string]bool
	calls   int
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls++
	if f.missing[url] {
		return nil, fmt.Errorf("404 %s", url)
	}
	return []byte("img:" + url), nil
}

type recordingObserver struct {
	format  string
	sites   int
	failed  int
	photos  int
	skipped int
}

func (o *recordingObserver) ExportFinished(format string, sites, failed, photos, skipped int, _ time.Duration) {
	o.format, o.sites, o.failed, o.photos, o.skipped = format, sites, failed, photos, skipped
}

func newEngine(st *memory.Store, r export.WorkbookRenderer, f export.PhotoFetcher) *export.Engine {
	if r == nil {
		r = xlsx.NewRenderer()
	}
	if f == nil {
		f = &fakeFetcher{}
	}
	return export.NewEngine(st, r, f, archive.Factory, 2048, zerolog.Nop()).
		WithClock(func() time.Time { return fixedNow })
}

func seedSite(t *testing.T, st *memory.Store, projectNo, name string, createdBy int64) *entity.Site {
	t.Helper()
	reg := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := &entity.Site{
		ProjectNo:           projectNo,
		ConstructionCompany: "현대건설",
		SiteName:            name,
		Address:             "서울시 강남구",
		HouseholdCount:      100,
		RegistrationDate:    &reg,
		CertificationAudit:  entity.FlagNo,
		HomeIoT:             entity.FlagYes,
		NetworkSubscription: entity.FlagNo,
		CreatedBy:           createdBy,
		CreatedAt:           fixedNow,
	}
	require.NoError(t, st.Sites().Create(context.Background(), s))
	return s
}

func unzip(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	out := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		out[f.Name] = b
	}
	return out
}

// readTable decodifica el BOM y traduce los encabezados a claves.
func readTable(t *testing.T, data []byte) []map[string]string {
	t.Helper()
	require.True(t, bytes.HasPrefix(data, []byte("\xef\xbb\xbf")), "la tabla lleva BOM UTF-8")
	r := csv.NewReader(transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	keys := make([]string, len(rows[0]))
	for i, label := range rows[0] {
		k, ok := export.ColumnKey(label)
		require.True(t, ok, "encabezado sin clave: %q", label)
		keys[i] = k
	}
	var out []map[string]string
	for _, row := range rows[1:] {
		m := map[string]string{}
		for i, v := range row {
			m[keys[i]] = v
		}
		out = append(out, m)
	}
	return out
}

func defaultOpts() export.Options {
	return export.Options{Format: export.FormatBoth, IncludePhotos: true}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alcance
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_AlcanceVacioSoloAviso(t *testing.T) {
	st := memory.NewStore()
	seedSite(t, st, "NA/0001", "힐스테이트", owner.UserID)
	obs := &recordingObserver{}
	eng := newEngine(st, nil, nil).WithObserver(obs)

	res, err := eng.Export(context.Background(), stranger, defaultOpts())
	require.NoError(t, err, "un alcance vacío nunca es error")
	assert.Equal(t, "export_20240601_083015.zip", res.Filename)

	files := unzip(t, res.Data)
	require.Len(t, files, 1)
	assert.Contains(t, string(files[export.NoticeFile]), "현장이 없습니다")
	assert.Equal(t, export.FormatBoth, obs.format, "el observador se notifica")
	assert.Equal(t, 0, obs.sites)
}

func TestExport_FiltroDeObraAjenaQuedaVacio(t *testing.T) {
	st := memory.NewStore()
	seedSite(t, st, "NA/0001", "A", owner.UserID)
	other := seedSite(t, st, "NA/0002", "B", stranger.UserID)

	opts := defaultOpts()
	opts.SiteID = other.ID
	res, err := newEngine(st, nil, nil).Export(context.Background(), owner, opts)
	require.NoError(t, err)
	files := unzip(t, res.Data)
	assert.Contains(t, files, export.NoticeFile)
}

func TestExport_FalloAlListarObrasEsError(t *testing.T) {
	st := memory.NewStore()
	st.FailTable(memory.TableSites, errors.New("sin conexión"))

	_, err := newEngine(st, nil, nil).Export(context.Background(), admin, defaultOpts())
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libros por obra
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_UnaObraFallidaNoAbortaElResto(t *testing.T) {
	st := memory.NewStore()
	a := seedSite(t, st, "NA/0001", "가나", owner.UserID)
	b := seedSite(t, st, "NA/0002", "다라", owner.UserID)
	c := seedSite(t, st, "NA/0003", "마바", owner.UserID)
	r := failingRenderer{next: xlsx.NewRenderer(), fail: map[string]bool{"NA0002_다라": true}}
	obs := &recordingObserver{}

	res, err := newEngine(st, r, nil).WithObserver(obs).Export(context.Background(), owner, defaultOpts())
	require.NoError(t, err)
	files := unzip(t, res.Data)

	assert.Contains(t, files, "sheets/NA0001_가나.xlsx")
	assert.NotContains(t, files, "sheets/NA0002_다라.xlsx")
	assert.Contains(t, files, "sheets/NA0003_마바.xlsx")
	require.Contains(t, files, export.ErrorsFile)
	manifest := string(files[export.ErrorsFile])
	assert.Contains(t, manifest, fmt.Sprintf("site_id=%d", b.ID))
	assert.NotContains(t, manifest, fmt.Sprintf("site_id=%d\t", a.ID))
	assert.NotContains(t, manifest, fmt.Sprintf("site_id=%d\t", c.ID))
	assert.Equal(t, 1, obs.failed)
}

func TestExport_LibroDemasiadoPequeno(t *testing.T) {
	st := memory.NewStore()
	s := seedSite(t, st, "NE/0001", "소형", owner.UserID)
	r := failingRenderer{next: xlsx.NewRenderer(), empty: map[string]bool{"NE0001_소형": true}}

	res, err := newEngine(st, r, nil).Export(context.Background(), owner, defaultOpts())
	require.NoError(t, err)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, s.ID, res.Failed[0].SiteID)
	assert.Contains(t, res.Failed[0].Reason, "pequeño")
}

func TestExport_FormatoCSVSinLibros(t *testing.T) {
	st := memory.NewStore()
	seedSite(t, st, "NA/0001", "가나", owner.UserID)

	opts := defaultOpts()
	opts.Format = export.FormatCSV
	res, err := newEngine(st, nil, nil).Export(context.Background(), owner, opts)
	require.NoError(t, err)
	for name := range unzip(t, res.Data) {
		assert.False(t, strings.HasPrefix(name, export.SheetsDir), "csv no incluye libros: %s", name)
	}

	opts.Format = export.FormatXLSX
	res, err = newEngine(st, nil, nil).Export(context.Background(), owner, opts)
	require.NoError(t, err)
	files := unzip(t, res.Data)
	assert.NotContains(t, files, "sites.csv")
	assert.Contains(t, files, "sheets/NA0001_가나.xlsx")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tablas planas
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_TablasPlanasIdaYVuelta(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	a := seedSite(t, st, "NA/0001", "가나", owner.UserID)
	b := seedSite(t, st, "NA/0002", "다라, \"특수\"", owner.UserID)
	require.NoError(t, st.Integrations().Upsert(ctx, &entity.IntegrationRecord{SiteID: a.ID, Scope: entity.ScopeHousehold, IntegrationType: "door_lock", Enabled: "Y", CompanyName: "삼성"}))
	require.NoError(t, st.Integrations().Upsert(ctx, &entity.IntegrationRecord{SiteID: b.ID, Scope: entity.ScopeHousehold, IntegrationType: "heating", Enabled: "N", Notes: "줄\n바꿈"}))

	res, err := newEngine(st, nil, nil).Export(ctx, owner, defaultOpts())
	require.NoError(t, err)
	files := unzip(t, res.Data)

	for _, name := range []string{"sites.csv", "site_contacts.csv", "contact_people.csv", "site_products.csv",
		"work_items.csv", "photos.csv", "household_integrations.csv", "common_integrations.csv"} {
		assert.Contains(t, files, name)
	}

	sites := readTable(t, files["sites.csv"])
	require.Len(t, sites, 2)
	got := map[string]string{}
	for _, row := range sites {
		got[row["id"]+"|site_name"] = row["site_name"]
		got[row["id"]+"|project_no"] = row["project_no"]
	}
	assert.Equal(t, map[string]string{
		fmt.Sprint(a.ID) + "|site_name":  a.SiteName,
		fmt.Sprint(a.ID) + "|project_no": a.ProjectNo,
		fmt.Sprint(b.ID) + "|site_name":  b.SiteName,
		fmt.Sprint(b.ID) + "|project_no": b.ProjectNo,
	}, got)

	household := readTable(t, files["household_integrations.csv"])
	require.Len(t, household, 2)
	pairs := map[string]string{}
	for _, row := range household {
		pairs[row["site_id"]+"|"+export.IntegrationType(row["integration_type"])] = row["company_name"] + row["notes"]
	}
	assert.Equal(t, map[string]string{
		fmt.Sprint(a.ID) + "|door_lock": "삼성",
		fmt.Sprint(b.ID) + "|heating":   "줄\n바꿈",
	}, pairs)
	assert.Equal(t, "도어록", export.IntegrationLabel("door_lock"), "el CSV muestra la etiqueta, no la clave")
}

func TestExport_TablaNoDisponibleDegrada(t *testing.T) {
	st := memory.NewStore()
	seedSite(t, st, "NA/0001", "가나", owner.UserID)
	st.FailTable(memory.TableProducts, errors.New("relation does not exist"))
	st.FailTable(memory.TableCommon, errors.New("relation does not exist"))

	res, err := newEngine(st, nil, nil).Export(context.Background(), owner, defaultOpts())
	require.NoError(t, err)
	files := unzip(t, res.Data)
	assert.Empty(t, readTable(t, files["site_products.csv"]), "solo encabezado")
	assert.Contains(t, files, "sheets/NA0001_가나.xlsx", "el libro se genera con huecos")
	assert.NotContains(t, files, export.ErrorsFile)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fotos
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_FotosRutaYOmisiones(t *testing.T) {
	st := memory.NewStore()
	ctx := context.Background()
	s := seedSite(t, st, "NA/0001", "가나", owner.UserID)
	may := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)
	jan := time.Date(2024, 1, 9, 10, 0, 0, 0, time.UTC)
	ok := &entity.Photo{SiteID: s.ID, Title: "a", StoragePath: "sites/1/2024/05/aaa.jpg", URL: "https://cdn/a.jpg", UploadedAt: may}
	broken := &entity.Photo{SiteID: s.ID, Title: "b", StoragePath: "sites/1/2024/05/bbb.jpg", URL: "https://cdn/b.jpg", UploadedAt: may}
	old := &entity.Photo{SiteID: s.ID, Title: "c", StoragePath: "sites/1/2024/01/ccc.jpg", URL: "https://cdn/c.jpg", UploadedAt: jan}
	for _, p := range []*entity.Photo{ok, broken, old} {
		require.NoError(t, st.Photos().Create(ctx, p))
	}
	fetcher := &fakeFetcher{missing: map[string]bool{"https://cdn/b.jpg": true}}

	opts := defaultOpts()
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	opts.Start, opts.End = &start, &end
	res, err := newEngine(st, nil, fetcher).Export(ctx, owner, opts)
	require.NoError(t, err)

	files := unzip(t, res.Data)
	want := fmt.Sprintf("photos/NA0001_가나/2024/05/%d_aaa.jpg", ok.ID)
	require.Contains(t, files, want)
	assert.Equal(t, "img:https://cdn/a.jpg", string(files[want]))
	assert.Equal(t, 1, res.Photos)
	assert.Equal(t, 1, res.SkippedPhotos)
	assert.Equal(t, 2, fetcher.calls, "la foto de enero queda fuera del rango")
	assert.Len(t, readTable(t, files["photos.csv"]), 2, "photos.csv respeta el rango")

	opts.IncludePhotos = false
	fetcher.calls = 0
	_, err = newEngine(st, nil, fetcher).Export(ctx, owner, opts)
	require.NoError(t, err)
	assert.Zero(t, fetcher.calls)
}
