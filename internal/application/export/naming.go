package export

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxSheetNameRunes límite de Excel para el nombre de una hoja.
const MaxSheetNameRunes = 31

// unsafeRunes caracteres no válidos en nombres de hoja o de archivo.
const unsafeRunes = `\/:*?"<>|[]'`

// SheetName nombre determinista de la hoja de una obra a partir de
// {project_no}_{site_name}; "site_{id}" si ambos quedan vacíos.
func SheetName(projectNo, siteName string, id int64) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{projectNo, siteName} {
		if c := cleanName(p); c != "" {
			parts = append(parts, c)
		}
	}
	name := truncateRunes(strings.Join(parts, "_"), MaxSheetNameRunes)
	if name == "" {
		return fmt.Sprintf("site_%d", id)
	}
	return name
}

func cleanName(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	space := false
	for _, r := range s {
		switch {
		case strings.ContainsRune(unsafeRunes, r), unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n]))
}

// sheetNamer reparte nombres únicos dentro de una exportación.
type sheetNamer struct {
	used map[string]bool
}

func newSheetNamer() *sheetNamer {
	return &sheetNamer{used: map[string]bool{}}
}

// name devuelve SheetName, con sufijo _{id} si ya estaba en uso.
func (n *sheetNamer) name(projectNo, siteName string, id int64) string {
	name := SheetName(projectNo, siteName, id)
	if n.used[strings.ToLower(name)] {
		suffix := fmt.Sprintf("_%d", id)
		name = truncateRunes(name, MaxSheetNameRunes-utf8.RuneCountInString(suffix)) + suffix
	}
	n.used[strings.ToLower(name)] = true
	return name
}
