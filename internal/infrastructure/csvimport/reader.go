// Package csvimport lee exportaciones de producción en CSV (tag,date,am,pm)
// y las carga como registros de ordeño.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Row una línea de producción ya interpretada.
type Row struct {
	Line int
	Tag  string
	Date time.Time
	AM   *decimal.Decimal
	PM   *decimal.Decimal
}

// Options formato del archivo.
type Options struct {
	Latin1 bool // exportaciones antiguas en ISO-8859-1
	Comma  rune // separador; por defecto ','
}

var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// Read interpreta el CSV completo. La primera fila se ignora si es cabecera (tag,...).
// Un error de formato en cualquier línea detiene la lectura indicando el número de línea.
func Read(r io.Reader, opts Options) ([]Row, error) {
	if opts.Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	var rows []Row
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		header := first
		first = false
		if header && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "tag") {
			continue
		}
		if isBlank(rec) {
			continue
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("csv: línea %d: %w", line, err)
		}
		row.Line = line
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(rec []string) (Row, error) {
	if len(rec) < 3 {
		return Row{}, fmt.Errorf("se esperaban al menos 3 columnas (tag,date,am[,pm]), hay %d", len(rec))
	}
	tag := strings.ToUpper(strings.TrimSpace(rec[0]))
	if tag == "" {
		return Row{}, fmt.Errorf("tag vacío")
	}
	date, err := parseDate(rec[1])
	if err != nil {
		return Row{}, err
	}
	am, err := parseLiters(rec[2])
	if err != nil {
		return Row{}, fmt.Errorf("am: %w", err)
	}
	var pm *decimal.Decimal
	if len(rec) > 3 {
		if pm, err = parseLiters(rec[3]); err != nil {
			return Row{}, fmt.Errorf("pm: %w", err)
		}
	}
	if am == nil && pm == nil {
		return Row{}, fmt.Errorf("sin litros en ninguna sesión")
	}
	return Row{Tag: tag, Date: date, AM: am, PM: pm}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", s)
}

// parseLiters acepta coma decimal ("10,5"). Vacío significa sesión sin ordeño.
func parseLiters(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil, nil
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return nil, fmt.Errorf("cantidad inválida %q", s)
	}
	if d.IsNegative() {
		return nil, fmt.Errorf("cantidad negativa %q", s)
	}
	return &d, nil
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
