// Package xlsx escribe con excelize los Layout del motor de exportación.
package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/obras-api/internal/application/export"
)

var _ export.WorkbookRenderer = Renderer{}

// Renderer genera un libro con una única hoja por Layout.
type Renderer struct{}

// NewRenderer devuelve el renderizador.
func NewRenderer() Renderer { return Renderer{} }

var thinBorder = []excelize.Border{
	{Type: "left", Color: "999999", Style: 1},
	{Type: "top", Color: "999999", Style: 1},
	{Type: "bottom", Color: "999999", Style: 1},
	{Type: "right", Color: "999999", Style: 1},
}

var styleDefs = map[export.Style]*excelize.Style{
	export.StyleTitle: {
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	},
	export.StyleSection: {
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#305496"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	},
	export.StyleLabel: {
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border:    thinBorder,
		Alignment: &excelize.Alignment{Vertical: "center"},
	},
	export.StyleValue: {
		Border:    thinBorder,
		Alignment: &excelize.Alignment{Vertical: "center"},
	},
	export.StyleWrap: {
		Border:    thinBorder,
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	},
	export.StyleHeader: {
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
		Border:    thinBorder,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	},
}

// Render escribe el layout y devuelve los bytes del .xlsx.
func (Renderer) Render(layout *export.Layout) ([]byte, error) {
	if layout == nil || layout.Sheet == "" {
		return nil, fmt.Errorf("xlsx: layout sin nombre de hoja")
	}
	f := excelize.NewFile()
	defer f.Close()

	sheet := layout.Sheet
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx: nombre de hoja %q: %w", sheet, err)
	}

	styles := make(map[export.Style]int, len(styleDefs))
	for s, def := range styleDefs {
		id, err := f.NewStyle(def)
		if err != nil {
			return nil, fmt.Errorf("xlsx: crear estilo: %w", err)
		}
		styles[s] = id
	}

	for i, w := range layout.Widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}
	for row, h := range layout.Heights {
		if err := f.SetRowHeight(sheet, row, h); err != nil {
			return nil, fmt.Errorf("xlsx: alto de fila %d: %w", row, err)
		}
	}

	for _, c := range layout.Cells {
		cell, err := excelize.CoordinatesToCellName(c.Col, c.Row)
		if err != nil {
			return nil, err
		}
		if c.Value != nil && c.Value != "" {
			if err := f.SetCellValue(sheet, cell, c.Value); err != nil {
				return nil, fmt.Errorf("xlsx: celda %s: %w", cell, err)
			}
		}
		if id, ok := styles[c.Style]; ok {
			if err := f.SetCellStyle(sheet, cell, cell, id); err != nil {
				return nil, fmt.Errorf("xlsx: estilo %s: %w", cell, err)
			}
		}
	}

	for _, m := range layout.Merges {
		from, err := excelize.CoordinatesToCellName(m.FromCol, m.FromRow)
		if err != nil {
			return nil, err
		}
		to, err := excelize.CoordinatesToCellName(m.ToCol, m.ToRow)
		if err != nil {
			return nil, err
		}
		if err := f.MergeCell(sheet, from, to); err != nil {
			return nil, fmt.Errorf("xlsx: combinar %s:%s: %w", from, to, err)
		}
		if id, ok := styles[m.Style]; ok {
			if err := f.SetCellStyle(sheet, from, to, id); err != nil {
				return nil, fmt.Errorf("xlsx: estilo %s:%s: %w", from, to, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
