package export

// GridColumns ancho de la rejilla del formulario por obra (A-F).
const GridColumns = 6

// Style estilo lógico de una celda; el renderizador lo traduce a formato real.
type Style int

const (
	StyleNone Style = iota
	StyleTitle
	StyleSection
	StyleLabel
	StyleValue
	StyleWrap
	StyleHeader
)

// Cell celda con coordenadas base 1.
type Cell struct {
	Col   int
	Row   int
	Value any
	Style Style
}

// Merge rango combinado; el estilo se aplica a todo el rango.
type Merge struct {
	FromCol, FromRow int
	ToCol, ToRow     int
	Style            Style
}

// Layout hoja ya resuelta, independiente de la librería de hojas de cálculo.
type Layout struct {
	Sheet   string
	Widths  []float64
	Heights map[int]float64
	Cells   []Cell
	Merges  []Merge
}

// layoutBuilder avanza fila a fila.
type layoutBuilder struct {
	l   *Layout
	row int
}

func newLayoutBuilder(sheet string) *layoutBuilder {
	return &layoutBuilder{
		l: &Layout{
			Sheet:   sheet,
			Widths:  []float64{16, 24, 16, 24, 16, 24},
			Heights: map[int]float64{},
		},
		row: 1,
	}
}

func (b *layoutBuilder) set(col int, v any, s Style) {
	b.l.Cells = append(b.l.Cells, Cell{Col: col, Row: b.row, Value: v, Style: s})
}

// span escribe v en col y combina hasta toCol.
func (b *layoutBuilder) span(col, toCol int, v any, s Style) {
	b.set(col, v, s)
	if toCol > col {
		b.l.Merges = append(b.l.Merges, Merge{FromCol: col, FromRow: b.row, ToCol: toCol, ToRow: b.row, Style: s})
	}
}

func (b *layoutBuilder) height(h float64) { b.l.Heights[b.row] = h }

func (b *layoutBuilder) next() { b.row++ }

// gap deja una fila en blanco entre secciones.
func (b *layoutBuilder) gap() { b.row++ }

func (b *layoutBuilder) build() *Layout { return b.l }
