package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// articleRow una línea del CSV de catálogo:
// code;name;supplier;minimum_stock[;supplier_contact]
type articleRow struct {
	Line            int
	Code            string
	Name            string
	Supplier        string
	SupplierContact string
	MinimumStock    *int
}

var expectedHeader = []string{"code", "name", "supplier", "minimum_stock"}

// decodeInput devuelve el contenido en UTF-8. Las exportaciones de Excel
// suelen venir en Windows-1252; si los bytes no son UTF-8 válido se convierten.
func decodeInput(raw []byte, encoding string) (io.Reader, error) {
	switch strings.ToLower(encoding) {
	case "utf-8", "utf8":
		return bytes.NewReader(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))), nil
	case "cp1252", "windows-1252", "latin1":
		return transform.NewReader(bytes.NewReader(raw), charmap.Windows1252.NewDecoder()), nil
	case "", "auto":
		if utf8.Valid(raw) {
			return decodeInput(raw, "utf-8")
		}
		return decodeInput(raw, "cp1252")
	default:
		return nil, fmt.Errorf("codificación no soportada %q", encoding)
	}
}

// parseCatalog lee el CSV separado por ';'. La primera línea es la cabecera.
func parseCatalog(r io.Reader) ([]articleRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	if len(header) < len(expectedHeader) {
		return nil, fmt.Errorf("cabecera incompleta: se esperaba %s", strings.Join(expectedHeader, ";"))
	}
	for i, col := range expectedHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), col) {
			return nil, fmt.Errorf("columna %d: se esperaba %q, llegó %q", i+1, col, header[i])
		}
	}

	var rows []articleRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("línea %d: faltan columnas", line)
		}
		row := articleRow{
			Line:     line,
			Code:     strings.TrimSpace(rec[0]),
			Name:     strings.TrimSpace(rec[1]),
			Supplier: strings.TrimSpace(rec[2]),
		}
		if len(rec) > 3 && strings.TrimSpace(rec[3]) != "" {
			n, err := strconv.Atoi(strings.TrimSpace(rec[3]))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("línea %d: minimum_stock inválido %q", line, rec[3])
			}
			row.MinimumStock = &n
		}
		if len(rec) > 4 {
			row.SupplierContact = strings.TrimSpace(rec[4])
		}
		if row.Code == "" || row.Name == "" || row.Supplier == "" {
			return nil, fmt.Errorf("línea %d: code, name y supplier son obligatorios", line)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
