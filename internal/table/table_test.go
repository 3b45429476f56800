package table

import (
	"strconv"
	"testing"
)

type row struct {
	Nombre  string
	Ciudad  string
	Salario int64
}

func testColumns() []Column[row] {
	return []Column[row]{
		{Key: "nombre", Header: "Nombre", Value: func(r row) string { return r.Nombre }},
		{Key: "ciudad", Header: "Ciudad", Value: func(r row) string { return r.Ciudad }},
		{Key: "salarioDeseado", Header: "Salario Deseado", Value: func(r row) string { return strconv.FormatInt(r.Salario, 10) }},
	}
}

func testRows() []row {
	return []row{
		{"Ana Torres", "Monterrey", 30000},
		{"Bruno Díaz", "Guadalajara", 55000},
		{"Carla Ruiz", "Ciudad de México", 42000},
		{"Daniel Ortiz", "Monterrey", 25000},
		{"Elena Vázquez", "Puebla", 61000},
		{"Fernando Gil", "Ciudad de México", 38000},
		{"Gabriela Anaya", "Querétaro", 47000},
	}
}

func newTestTable() *Table[row] {
	return New(testColumns(), testRows(), DefaultConfig("nombre"))
}

func TestSearchFiltersDesignatedColumn(t *testing.T) {
	t.Parallel()

	tb := newTestTable()
	tb.SetSearch("ana")

	got := tb.Filtered()
	if len(got) != 2 { // Ana Torres y Gabriela Anaya
		t.Fatalf("expected 2 rows, got %d", len(got))
	}

	// La búsqueda es sólo sobre la columna designada: "Monterrey" no
	// es un nombre.
	tb.SetSearch("Monterrey")
	if got := tb.Filtered(); len(got) != 0 {
		t.Fatalf("expected 0 rows, got %d", len(got))
	}

	tb.SetSearch("")
	if got := tb.Filtered(); len(got) != 7 {
		t.Fatalf("expected all rows with empty query, got %d", len(got))
	}
}

func TestToggleSortNeverRests(t *testing.T) {
	t.Parallel()

	tb := newTestTable()

	tb.ToggleSort("nombre")
	if key, dir := tb.Sort(); key != "nombre" || dir != Asc {
		t.Fatalf("expected nombre asc, got %s %d", key, dir)
	}
	if got := tb.Filtered(); got[0].Nombre != "Ana Torres" {
		t.Fatalf("expected Ana first, got %s", got[0].Nombre)
	}

	tb.ToggleSort("nombre")
	if _, dir := tb.Sort(); dir != Desc {
		t.Fatalf("expected desc, got %d", dir)
	}
	if got := tb.Filtered(); got[0].Nombre != "Gabriela Anaya" {
		t.Fatalf("expected Gabriela first, got %s", got[0].Nombre)
	}

	// Tercer toggle: vuelve a asc, nunca a "sin ordenar".
	tb.ToggleSort("nombre")
	if _, dir := tb.Sort(); dir != Asc {
		t.Fatalf("expected asc again, got %d", dir)
	}

	// Cambiar de columna reinicia en asc.
	tb.ToggleSort("salarioDeseado")
	if key, dir := tb.Sort(); key != "salarioDeseado" || dir != Asc {
		t.Fatalf("expected salarioDeseado asc, got %s %d", key, dir)
	}
	if got := tb.Filtered(); got[0].Salario != 25000 {
		t.Fatalf("expected numeric sort, got %d first", got[0].Salario)
	}
}

func TestPagination(t *testing.T) {
	t.Parallel()

	tb := newTestTable() // 7 filas, 5 por página

	if tb.PageCount() != 2 {
		t.Fatalf("expected 2 pages, got %d", tb.PageCount())
	}
	if got := tb.Page(); len(got) != 5 {
		t.Fatalf("expected 5 rows on page 1, got %d", len(got))
	}

	tb.SetPage(2)
	if got := tb.Page(); len(got) != 2 {
		t.Fatalf("expected 2 rows on page 2, got %d", len(got))
	}

	// La entrada directa se valida a [1, pageCount].
	tb.SetPage(99)
	if tb.CurrentPage() != 2 {
		t.Fatalf("expected clamp to 2, got %d", tb.CurrentPage())
	}
	tb.SetPage(-3)
	if tb.CurrentPage() != 1 {
		t.Fatalf("expected clamp to 1, got %d", tb.CurrentPage())
	}
}

func TestSearchResetsPage(t *testing.T) {
	t.Parallel()

	tb := newTestTable()
	tb.SetPage(2)
	tb.SetSearch("a")
	if tb.CurrentPage() != 1 {
		t.Fatalf("expected page reset on search, got %d", tb.CurrentPage())
	}
}

func TestSetPageSize(t *testing.T) {
	t.Parallel()

	tb := newTestTable()
	tb.SetPageSize(10)
	if tb.PageCount() != 1 {
		t.Fatalf("expected single page with size 10, got %d", tb.PageCount())
	}
	if got := tb.Page(); len(got) != 7 {
		t.Fatalf("expected all 7 rows, got %d", len(got))
	}
}

func TestExportDataUsesFilteredRows(t *testing.T) {
	t.Parallel()

	tb := newTestTable()
	tb.SetSearch("ana")

	headers, rows := tb.ExportData()
	if len(headers) != 3 || headers[0] != "Nombre" {
		t.Fatalf("unexpected headers: %v", headers)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 exported rows, got %d", len(rows))
	}
	for _, r := range rows {
		if len(r) != 3 {
			t.Fatalf("expected 3 cells per row, got %v", r)
		}
	}
}
