package export

import (
	"sort"
	"strings"

	"github.com/jhoicas/obras-api/internal/domain/entity"
)

// siteView datos de una obra listos para el formulario.
type siteView struct {
	site      *entity.Site
	contact   *entity.SiteContact
	people    []*entity.ContactPerson
	product   *entity.SiteProduct
	household []*entity.IntegrationRecord
	common    []*entity.IntegrationRecord
}

func newSiteView(ds *Dataset, s *entity.Site) *siteView {
	contact := ds.Contacts[s.ID]
	if contact == nil {
		contact = &entity.SiteContact{SiteID: s.ID}
	}
	return &siteView{
		site:      s,
		contact:   contact,
		people:    ds.People[s.ID],
		product:   ds.Products[s.ID],
		household: ds.Household[s.ID],
		common:    ds.Common[s.ID],
	}
}

// block sección del formulario.
type block interface {
	render(b *layoutBuilder, v *siteView)
}

// field par etiqueta/valor; wide ocupa el resto de la fila y ajusta el texto.
type field struct {
	key   string
	value func(v *siteView) string
	wide  bool
}

func siteField(key string, fn func(s *entity.Site) string) field {
	return field{key: key, value: func(v *siteView) string { return fn(v.site) }}
}

func wideSiteField(key string, fn func(s *entity.Site) string) field {
	f := siteField(key, fn)
	f.wide = true
	return f
}

func contactField(key string, fn func(c *entity.SiteContact) string) field {
	return field{key: key, value: func(v *siteView) string { return fn(v.contact) }}
}

// siteTemplate orden y contenido del formulario por obra.
var siteTemplate = []block{
	titleBand{},
	fieldGrid{title: "기본 정보", fields: []field{
		siteField("project_no", func(s *entity.Site) string { return s.ProjectNo }),
		siteField("construction_company", func(s *entity.Site) string { return s.ConstructionCompany }),
		siteField("site_name", func(s *entity.Site) string { return s.SiteName }),
		wideSiteField("address", func(s *entity.Site) string { return s.Address }),
		wideSiteField("detail_address", func(s *entity.Site) string { return s.DetailAddress }),
		siteField("household_count", func(s *entity.Site) string { return itoa(s.HouseholdCount) }),
		siteField("registration_date", func(s *entity.Site) string { return date(s.RegistrationDate) }),
		siteField("delivery_date", func(s *entity.Site) string { return date(s.DeliveryDate) }),
		siteField("completion_date", func(s *entity.Site) string { return date(s.CompletionDate) }),
		siteField("certification_audit", func(s *entity.Site) string { return s.CertificationAudit }),
		siteField("home_iot", func(s *entity.Site) string { return s.HomeIoT }),
		siteField("product_bi", func(s *entity.Site) string { return s.ProductBI }),
		siteField("network_subscription", func(s *entity.Site) string { return s.NetworkSubscription }),
		siteField("network_subscription_period", func(s *entity.Site) string { return s.NetworkSubscriptionPeriod }),
		wideSiteField("notes", func(s *entity.Site) string { return s.Notes }),
	}},
	fieldGrid{title: "담당자", fields: []field{
		contactField("pm_name", func(c *entity.SiteContact) string { return c.PMName }),
		contactField("pm_phone", func(c *entity.SiteContact) string { return c.PMPhone }),
		contactField("sales_manager_name", func(c *entity.SiteContact) string { return c.SalesManagerName }),
		contactField("sales_manager_phone", func(c *entity.SiteContact) string { return c.SalesManagerPhone }),
		contactField("construction_manager_name", func(c *entity.SiteContact) string { return c.ConstructionManagerName }),
		contactField("construction_manager_phone", func(c *entity.SiteContact) string { return c.ConstructionManagerPhone }),
		contactField("installer_name", func(c *entity.SiteContact) string { return c.InstallerName }),
		contactField("installer_phone", func(c *entity.SiteContact) string { return c.InstallerPhone }),
		contactField("network_manager_name", func(c *entity.SiteContact) string { return c.NetworkManagerName }),
		contactField("network_manager_phone", func(c *entity.SiteContact) string { return c.NetworkManagerPhone }),
	}},
	contactPeople{},
	productPairs{},
	integrationTable{title: "세대 연동", scope: entity.ScopeHousehold},
	integrationTable{title: "공용부 연동", scope: entity.ScopeCommon},
}

// renderLayout aplica siteTemplate a la obra.
func renderLayout(sheet string, v *siteView) *Layout {
	b := newLayoutBuilder(sheet)
	for _, blk := range siteTemplate {
		blk.render(b, v)
	}
	return b.build()
}

type titleBand struct{}

func (titleBand) render(b *layoutBuilder, v *siteView) {
	title := strings.TrimSpace(v.site.ProjectNo + " " + v.site.SiteName)
	b.span(1, GridColumns, "현장 정보 "+title, StyleTitle)
	b.height(30)
	b.next()
	b.gap()
}

func section(b *layoutBuilder, title string) {
	b.span(1, GridColumns, title, StyleSection)
	b.next()
}

// fieldGrid tres pares etiqueta/valor por fila.
type fieldGrid struct {
	title  string
	fields []field
}

func (g fieldGrid) render(b *layoutBuilder, v *siteView) {
	section(b, g.title)
	col := 1
	for _, f := range g.fields {
		if f.wide {
			if col > 1 {
				b.next()
			}
			b.set(1, ColumnLabel(f.key), StyleLabel)
			b.span(2, GridColumns, f.value(v), StyleWrap)
			if len([]rune(f.value(v))) > 60 {
				b.height(45)
			}
			b.next()
			col = 1
			continue
		}
		b.set(col, ColumnLabel(f.key), StyleLabel)
		b.set(col+1, f.value(v), StyleValue)
		col += 2
		if col > GridColumns {
			b.next()
			col = 1
		}
	}
	if col > 1 {
		b.next()
	}
	b.gap()
}

// contactPeople listas adicionales por categoría.
type contactPeople struct{}

func (contactPeople) render(b *layoutBuilder, v *siteView) {
	section(b, "추가 담당자")
	b.set(1, ColumnLabel("category"), StyleHeader)
	b.span(2, 3, ColumnLabel("name"), StyleHeader)
	b.span(4, GridColumns, ColumnLabel("phone"), StyleHeader)
	b.next()
	for _, category := range entity.ContactCategories {
		for _, p := range v.people {
			if p.Category != category {
				continue
			}
			b.set(1, lookup(contactCategoryLabels, category), StyleValue)
			b.span(2, 3, p.Name, StyleValue)
			b.span(4, GridColumns, p.Phone, StyleValue)
			b.next()
		}
	}
	b.gap()
}

// productPairs por cada grupo de tres ranuras: una fila de modelos y otra de cantidades.
type productPairs struct{}

func (productPairs) render(b *layoutBuilder, v *siteView) {
	section(b, "제품")
	slots := entity.ProductSlots
	for start := 0; start < len(slots); start += GridColumns / 2 {
		end := min(start+GridColumns/2, len(slots))
		group := slots[start:end]
		for i, slot := range group {
			b.set(2*i+1, ColumnLabel(slot+"_model"), StyleLabel)
			b.set(2*i+2, v.product.Slot(slot).Model, StyleValue)
		}
		b.next()
		for i, slot := range group {
			b.set(2*i+1, ColumnLabel(slot+"_qty"), StyleLabel)
			if v.product == nil {
				b.set(2*i+2, "", StyleValue)
				continue
			}
			b.set(2*i+2, v.product.Slot(slot).Quantity, StyleValue)
		}
		b.next()
	}
	b.gap()
}

// integrationTable todos los tipos del ámbito en orden canónico, con huecos en blanco
// para los que no tienen datos, seguidos de los tipos fuera de la lista.
type integrationTable struct {
	title string
	scope entity.IntegrationScope
}

var integrationHeader = []string{"integration_type", "enabled", "company_name", "contact_person", "contact_phone", "notes"}

func (t integrationTable) render(b *layoutBuilder, v *siteView) {
	section(b, t.title)
	for i, key := range integrationHeader {
		b.set(i+1, ColumnLabel(key), StyleHeader)
	}
	b.next()

	records := v.household
	if t.scope == entity.ScopeCommon {
		records = v.common
	}
	byType := make(map[string]*entity.IntegrationRecord, len(records))
	for _, r := range records {
		byType[r.IntegrationType] = r
	}
	order := append([]string(nil), t.scope.Types()...)
	var extra []string
	for typ := range byType {
		if !t.scope.Allows(typ) {
			extra = append(extra, typ)
		}
	}
	sort.Strings(extra)
	order = append(order, extra...)

	for _, typ := range order {
		r := byType[typ]
		if r == nil {
			r = &entity.IntegrationRecord{IntegrationType: typ}
		}
		b.set(1, IntegrationLabel(typ), StyleLabel)
		b.set(2, r.Enabled, StyleValue)
		b.set(3, r.CompanyName, StyleValue)
		b.set(4, r.ContactPerson, StyleValue)
		b.set(5, r.ContactPhone, StyleValue)
		b.set(6, r.Notes, StyleWrap)
		b.next()
	}
	b.gap()
}
