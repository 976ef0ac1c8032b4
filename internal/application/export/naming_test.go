package export

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/obras-api/internal/domain/entity"
)

func TestSheetName(t *testing.T) {
	cases := []struct {
		name, projectNo, siteName string
		id                        int64
		want                      string
	}{
		{"básico", "NA/0001", "힐스테이트", 1, "NA0001_힐스테이트"},
		{"caracteres inseguros", "NE/0002", `a:b*c?"d"<e>|[f]`, 2, "NE0002_abcdef"},
		{"espacios colapsados", "NA/0003", "  래미안   \t 1단지 ", 3, "NA0003_래미안 1단지"},
		{"solo nombre", "", "자이", 4, "자이"},
		{"vacío", "", "  /// ", 5, "site_5"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, SheetName(c.projectNo, c.siteName, c.id))
		})
	}
}

func TestSheetName_TruncaYNormaliza(t *testing.T) {
	long := strings.Repeat("가", 40)
	name := SheetName("NA/0001", long, 1)
	assert.Equal(t, MaxSheetNameRunes, utf8.RuneCountInString(name))

	// "가" descompuesto en jamo (NFD) se recompone.
	assert.Equal(t, "NA0001_가", SheetName("NA/0001", "\u1100\u1161", 1))
}

func TestSheetNamer_Duplicados(t *testing.T) {
	n := newSheetNamer()
	long := strings.Repeat("나", 40)
	first := n.name("NA/0001", long, 7)
	second := n.name("NA/0001", long+"다", 8)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(second, "_8"))
	assert.LessOrEqual(t, utf8.RuneCountInString(second), MaxSheetNameRunes)
}

func TestLabelsUnicas(t *testing.T) {
	assert.Len(t, columnKeys, len(columnLabels), "cada encabezado debe ser único para poder invertirlo")
	assert.Len(t, integrationKeys, len(integrationLabels))
	types := append(append([]string{}, entity.HouseholdIntegrationTypes...), entity.CommonIntegrationTypes...)
	for _, typ := range types {
		_, ok := integrationLabels[typ]
		assert.True(t, ok, "tipo sin etiqueta: %s", typ)
	}
}
