package main

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/usecase"
	"github.com/jhoicas/lagerverwaltung-api/internal/infrastructure/memory"
	"github.com/jhoicas/lagerverwaltung-api/pkg/logger"
)

const sampleCSV = "code;name;supplier;minimum_stock;supplier_contact\n" +
	"STUHL-07;Stuhl Eiche;Möbelwerk Nord;12;info@moebelwerk.de\n" +
	"TISCH-01;Tisch Buche;möbelwerk nord;;\n" +
	"\n" +
	"REGAL-03;Regal Kiefer;Holz Süd;4\n"

func TestDecodeInput_Windows1252(t *testing.T) {
	// "Möbel" en Windows-1252: ö = 0xF6
	raw := []byte("code;name;supplier\nA;M\xf6bel;S\n")
	r, err := decodeInput(raw, "auto")
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Möbel")
}

func TestDecodeInput_UTF8ConBOM(t *testing.T) {
	r, err := decodeInput([]byte("\xef\xbb\xbfcode"), "utf-8")
	require.NoError(t, err)
	out, _ := io.ReadAll(r)
	assert.Equal(t, "code", string(out))

	_, err = decodeInput(nil, "ebcdic")
	assert.Error(t, err)
}

func TestParseCatalog(t *testing.T) {
	rows, err := parseCatalog(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "STUHL-07", rows[0].Code)
	require.NotNil(t, rows[0].MinimumStock)
	assert.Equal(t, 12, *rows[0].MinimumStock)
	assert.Equal(t, "info@moebelwerk.de", rows[0].SupplierContact)
	assert.Nil(t, rows[1].MinimumStock, "columna vacía = mínimo por defecto")
	assert.Equal(t, 5, rows[2].Line)
}

func TestParseCatalog_Errores(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("codigo;nombre;proveedor;minimo\n"))
	assert.Error(t, err, "cabecera incorrecta")

	_, err = parseCatalog(strings.NewReader("code;name;supplier;minimum_stock\nA;B;C;-1\n"))
	assert.ErrorContains(t, err, "línea 2")

	_, err = parseCatalog(strings.NewReader("code;name;supplier;minimum_stock\nA;;C;1\n"))
	assert.Error(t, err)
}

func TestImportCatalog_Idempotente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	suppliers := usecase.NewSupplierUseCase(store.Suppliers())
	articles := usecase.NewArticleUseCase(store.Articles(), store.Suppliers())

	rows, err := parseCatalog(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	sum, err := importCatalog(ctx, rows, suppliers, articles, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, importSummary{SuppliersCreated: 2, ArticlesCreated: 3}, sum)

	tisch, err := articles.GetByCode(ctx, "TISCH-01")
	require.NoError(t, err)
	assert.Equal(t, 1, tisch.MinimumStock)

	sum, err = importCatalog(ctx, rows, suppliers, articles, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, importSummary{ArticlesSkipped: 3}, sum)
}
