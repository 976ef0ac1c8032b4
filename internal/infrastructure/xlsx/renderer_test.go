package xlsx_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/obras-api/internal/application/export"
	"github.com/jhoicas/obras-api/internal/infrastructure/xlsx"
)

func TestRender_LibroLegible(t *testing.T) {
	layout := &export.Layout{
		Sheet:   "NA0001_힐스테이트",
		Widths:  []float64{16, 24, 16, 24, 16, 24},
		Heights: map[int]float64{1: 30},
		Cells: []export.Cell{
			{Col: 1, Row: 1, Value: "현장 정보", Style: export.StyleTitle},
			{Col: 1, Row: 3, Value: "세대수", Style: export.StyleLabel},
			{Col: 2, Row: 3, Value: 120, Style: export.StyleValue},
			{Col: 1, Row: 4, Value: "주소", Style: export.StyleLabel},
			{Col: 2, Row: 4, Value: "서울시 강남구 테헤란로 1", Style: export.StyleWrap},
		},
		Merges: []export.Merge{
			{FromCol: 1, FromRow: 1, ToCol: 6, ToRow: 1, Style: export.StyleTitle},
			{FromCol: 2, FromRow: 4, ToCol: 6, ToRow: 4, Style: export.StyleWrap},
		},
	}

	data, err := xlsx.NewRenderer().Render(layout)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"NA0001_힐스테이트"}, f.GetSheetList(), "una única hoja con el nombre del layout")
	v, err := f.GetCellValue("NA0001_힐스테이트", "B3")
	require.NoError(t, err)
	assert.Equal(t, "120", v)

	merges, err := f.GetMergeCells("NA0001_힐스테이트")
	require.NoError(t, err)
	assert.Len(t, merges, 2)
}

func TestRender_SinNombreDeHoja(t *testing.T) {
	_, err := xlsx.NewRenderer().Render(&export.Layout{})
	assert.Error(t, err)
}
