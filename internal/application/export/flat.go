package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/obras-api/internal/application/dto"
	"github.com/jhoicas/obras-api/internal/domain/entity"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const timestampLayout = "2006-01-02 15:04:05"

// column columna de una tabla plana: clave de etiqueta y extractor.
type column[T any] struct {
	key   string
	value func(T) string
}

// flatTable una tabla plana ya serializada.
type flatTable struct {
	name string
	data []byte
}

// encodeTable escribe encabezado y filas en CSV UTF-8 con BOM.
func encodeTable[T any](cols []column[T], rows []T) ([]byte, error) {
	var buf bytes.Buffer
	tw := transform.NewWriter(&buf, unicode.UTF8BOM.NewEncoder())
	w := csv.NewWriter(tw)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = ColumnLabel(c.key)
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	record := make([]string, len(cols))
	for _, row := range rows {
		for i, c := range cols {
			record[i] = c.value(row)
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func id64(v int64) string      { return strconv.FormatInt(v, 10) }
func itoa(v int) string        { return strconv.Itoa(v) }
func stamp(t time.Time) string { return t.UTC().Format(timestampLayout) }
func date(t *time.Time) string { return dto.FormatDate(t) }

func yesNo(b bool) string {
	if b {
		return entity.FlagYes
	}
	return entity.FlagNo
}

var siteColumns = []column[*entity.Site]{
	{"id", func(s *entity.Site) string { return id64(s.ID) }},
	{"project_no", func(s *entity.Site) string { return s.ProjectNo }},
	{"construction_company", func(s *entity.Site) string { return s.ConstructionCompany }},
	{"site_name", func(s *entity.Site) string { return s.SiteName }},
	{"address", func(s *entity.Site) string { return s.Address }},
	{"detail_address", func(s *entity.Site) string { return s.DetailAddress }},
	{"household_count", func(s *entity.Site) string { return itoa(s.HouseholdCount) }},
	{"registration_date", func(s *entity.Site) string { return date(s.RegistrationDate) }},
	{"delivery_date", func(s *entity.Site) string { return date(s.DeliveryDate) }},
	{"completion_date", func(s *entity.Site) string { return date(s.CompletionDate) }},
	{"certification_audit", func(s *entity.Site) string { return s.CertificationAudit }},
	{"home_iot", func(s *entity.Site) string { return s.HomeIoT }},
	{"product_bi", func(s *entity.Site) string { return s.ProductBI }},
	{"notes", func(s *entity.Site) string { return s.Notes }},
	{"network_subscription", func(s *entity.Site) string { return s.NetworkSubscription }},
	{"network_subscription_period", func(s *entity.Site) string { return s.NetworkSubscriptionPeriod }},
	{"created_by", func(s *entity.Site) string { return id64(s.CreatedBy) }},
	{"created_at", func(s *entity.Site) string { return stamp(s.CreatedAt) }},
}

var contactColumns = []column[*entity.SiteContact]{
	{"site_id", func(c *entity.SiteContact) string { return id64(c.SiteID) }},
	{"project_no", func(c *entity.SiteContact) string { return c.ProjectNo }},
	{"pm_name", func(c *entity.SiteContact) string { return c.PMName }},
	{"pm_phone", func(c *entity.SiteContact) string { return c.PMPhone }},
	{"sales_manager_name", func(c *entity.SiteContact) string { return c.SalesManagerName }},
	{"sales_manager_phone", func(c *entity.SiteContact) string { return c.SalesManagerPhone }},
	{"construction_manager_name", func(c *entity.SiteContact) string { return c.ConstructionManagerName }},
	{"construction_manager_phone", func(c *entity.SiteContact) string { return c.ConstructionManagerPhone }},
	{"installer_name", func(c *entity.SiteContact) string { return c.InstallerName }},
	{"installer_phone", func(c *entity.SiteContact) string { return c.InstallerPhone }},
	{"network_manager_name", func(c *entity.SiteContact) string { return c.NetworkManagerName }},
	{"network_manager_phone", func(c *entity.SiteContact) string { return c.NetworkManagerPhone }},
}

var personColumns = []column[*entity.ContactPerson]{
	{"site_id", func(p *entity.ContactPerson) string { return id64(p.SiteID) }},
	{"category", func(p *entity.ContactPerson) string { return lookup(contactCategoryLabels, p.Category) }},
	{"name", func(p *entity.ContactPerson) string { return p.Name }},
	{"phone", func(p *entity.ContactPerson) string { return p.Phone }},
	{"sort_order", func(p *entity.ContactPerson) string { return itoa(p.SortOrder) }},
}

func productColumns() []column[*entity.SiteProduct] {
	cols := []column[*entity.SiteProduct]{
		{"site_id", func(p *entity.SiteProduct) string { return id64(p.SiteID) }},
		{"project_no", func(p *entity.SiteProduct) string { return p.ProjectNo }},
	}
	for _, slot := range entity.ProductSlots {
		cols = append(cols,
			column[*entity.SiteProduct]{slot + "_model", func(p *entity.SiteProduct) string { return p.Slot(slot).Model }},
			column[*entity.SiteProduct]{slot + "_qty", func(p *entity.SiteProduct) string { return itoa(p.Slot(slot).Quantity) }},
		)
	}
	return cols
}

var workItemColumns = []column[*entity.WorkItem]{
	{"id", func(w *entity.WorkItem) string { return id64(w.ID) }},
	{"site_id", func(w *entity.WorkItem) string { return id64(w.SiteID) }},
	{"content", func(w *entity.WorkItem) string { return w.Content }},
	{"status", func(w *entity.WorkItem) string { return lookup(statusLabels, w.Status) }},
	{"alarm_date", func(w *entity.WorkItem) string { return date(w.AlarmDate) }},
	{"alarm_confirmed", func(w *entity.WorkItem) string { return yesNo(w.AlarmConfirmed) }},
	{"done_date", func(w *entity.WorkItem) string { return date(w.DoneDate) }},
	{"created_at", func(w *entity.WorkItem) string { return stamp(w.CreatedAt) }},
}

var photoColumns = []column[*entity.Photo]{
	{"id", func(p *entity.Photo) string { return id64(p.ID) }},
	{"site_id", func(p *entity.Photo) string { return id64(p.SiteID) }},
	{"title", func(p *entity.Photo) string { return p.Title }},
	{"url", func(p *entity.Photo) string { return p.URL }},
	{"storage_path", func(p *entity.Photo) string { return p.StoragePath }},
	{"uploaded_at", func(p *entity.Photo) string { return stamp(p.UploadedAt) }},
}

var integrationColumns = []column[*entity.IntegrationRecord]{
	{"site_id", func(r *entity.IntegrationRecord) string { return id64(r.SiteID) }},
	{"project_no", func(r *entity.IntegrationRecord) string { return r.ProjectNo }},
	{"integration_type", func(r *entity.IntegrationRecord) string { return IntegrationLabel(r.IntegrationType) }},
	{"enabled", func(r *entity.IntegrationRecord) string { return r.Enabled }},
	{"company_name", func(r *entity.IntegrationRecord) string { return r.CompanyName }},
	{"contact_person", func(r *entity.IntegrationRecord) string { return r.ContactPerson }},
	{"contact_phone", func(r *entity.IntegrationRecord) string { return r.ContactPhone }},
	{"notes", func(r *entity.IntegrationRecord) string { return r.Notes }},
}

// flatTables serializa las ocho tablas planas en orden fijo.
func flatTables(ds *Dataset) ([]flatTable, error) {
	type job struct {
		name   string
		encode func() ([]byte, error)
	}
	jobs := []job{
		{"sites.csv", func() ([]byte, error) { return encodeTable(siteColumns, ds.Sites) }},
		{"site_contacts.csv", func() ([]byte, error) { return encodeTable(contactColumns, ds.flatContacts) }},
		{"contact_people.csv", func() ([]byte, error) { return encodeTable(personColumns, ds.flatPeople) }},
		{"site_products.csv", func() ([]byte, error) { return encodeTable(productColumns(), ds.flatProducts) }},
		{"work_items.csv", func() ([]byte, error) { return encodeTable(workItemColumns, ds.WorkItems) }},
		{"photos.csv", func() ([]byte, error) { return encodeTable(photoColumns, ds.Photos) }},
		{"household_integrations.csv", func() ([]byte, error) { return encodeTable(integrationColumns, ds.flatHousehold) }},
		{"common_integrations.csv", func() ([]byte, error) { return encodeTable(integrationColumns, ds.flatCommon) }},
	}
	out := make([]flatTable, 0, len(jobs))
	for _, j := range jobs {
		data, err := j.encode()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", j.name, err)
		}
		out = append(out, flatTable{name: j.name, data: data})
	}
	return out, nil
}
