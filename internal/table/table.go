// Package table implementa la mecánica de la tabla del dashboard:
// búsqueda sobre una columna designada, ordenamiento asc/desc,
// paginación del lado del cliente y la instantánea de filas filtradas
// para exportar. Es de sólo lectura: no hay camino de escritura.
package table

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Column define una columna visible con su encabezado y el valor
// textual de cada fila.
type Column[T any] struct {
	Key    string
	Header string
	Value  func(T) string
}

// Config controla búsqueda y paginación.
type Config struct {
	SearchColumn    string
	SearchDebounce  time.Duration // lo aplica la capa de UI antes de filtrar
	PageSize        int
	PageSizeOptions []int
}

// DefaultConfig refleja la configuración de la vista de candidatos.
func DefaultConfig(searchColumn string) Config {
	return Config{
		SearchColumn:    searchColumn,
		SearchDebounce:  300 * time.Millisecond,
		PageSize:        5,
		PageSizeOptions: []int{5, 10, 20, 50},
	}
}

// Direction es el sentido del ordenamiento. Con ordenamiento activo no
// existe estado "sin ordenar": alternar cicla asc→desc→asc.
type Direction int

const (
	Asc Direction = iota
	Desc
)

type Table[T any] struct {
	columns []Column[T]
	rows    []T
	cfg     Config

	search  string
	sortKey string
	sortDir Direction
	page    int // 1-based
}

func New[T any](columns []Column[T], rows []T, cfg Config) *Table[T] {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 5
	}
	return &Table[T]{columns: columns, rows: rows, cfg: cfg, page: 1}
}

// SetSearch aplica el texto de búsqueda (ya debounceado por la UI)
// sobre la columna designada y regresa a la primera página.
func (t *Table[T]) SetSearch(query string) {
	t.search = strings.TrimSpace(query)
	t.page = 1
}

// ToggleSort alterna el sentido sobre la columna dada. Cambiar de
// columna empieza en ascendente; repetir alterna asc→desc→asc sin
// pasar nunca por "sin ordenar".
func (t *Table[T]) ToggleSort(key string) {
	if t.sortKey == key {
		if t.sortDir == Asc {
			t.sortDir = Desc
		} else {
			t.sortDir = Asc
		}
		return
	}
	t.sortKey = key
	t.sortDir = Asc
}

// Sort informa la columna y sentido actuales.
func (t *Table[T]) Sort() (string, Direction) {
	return t.sortKey, t.sortDir
}

// SetPage navega a una página directa, validada a [1, PageCount].
func (t *Table[T]) SetPage(page int) {
	count := t.PageCount()
	if page < 1 {
		page = 1
	}
	if page > count {
		page = count
	}
	t.page = page
}

// SetPageSize cambia el tamaño de página y reubica al inicio.
func (t *Table[T]) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	t.cfg.PageSize = size
	t.page = 1
}

// CurrentPage devuelve la página actual (1-based).
func (t *Table[T]) CurrentPage() int { return t.page }

// PageCount devuelve el número de páginas del conjunto filtrado;
// mínimo 1 incluso sin filas.
func (t *Table[T]) PageCount() int {
	total := len(t.Filtered())
	if total == 0 {
		return 1
	}
	count := total / t.cfg.PageSize
	if total%t.cfg.PageSize != 0 {
		count++
	}
	return count
}

// Filtered devuelve las filas que pasan la búsqueda, ordenadas. Es la
// instantánea que se exporta.
func (t *Table[T]) Filtered() []T {
	rows := make([]T, 0, len(t.rows))

	col := t.column(t.cfg.SearchColumn)
	query := strings.ToLower(t.search)
	for _, row := range t.rows {
		if query != "" && col != nil {
			if !strings.Contains(strings.ToLower(col.Value(row)), query) {
				continue
			}
		}
		rows = append(rows, row)
	}

	if sortCol := t.column(t.sortKey); sortCol != nil {
		sort.SliceStable(rows, func(i, j int) bool {
			less := compareValues(sortCol.Value(rows[i]), sortCol.Value(rows[j]))
			if t.sortDir == Desc {
				return !less
			}
			return less
		})
	}
	return rows
}

// Page devuelve las filas de la página actual.
func (t *Table[T]) Page() []T {
	rows := t.Filtered()
	start := (t.page - 1) * t.cfg.PageSize
	if start >= len(rows) {
		return nil
	}
	end := start + t.cfg.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

// ExportData aplana encabezados y filas filtradas para la exportación.
func (t *Table[T]) ExportData() (headers []string, data [][]string) {
	for _, c := range t.columns {
		headers = append(headers, c.Header)
	}
	for _, row := range t.Filtered() {
		values := make([]string, 0, len(t.columns))
		for _, c := range t.columns {
			values = append(values, c.Value(row))
		}
		data = append(data, values)
	}
	return headers, data
}

func (t *Table[T]) column(key string) *Column[T] {
	if key == "" {
		return nil
	}
	for i := range t.columns {
		if t.columns[i].Key == key {
			return &t.columns[i]
		}
	}
	return nil
}

// compareValues ordena numéricamente cuando ambos valores son números
// y lexicográficamente en caso contrario.
func compareValues(a, b string) bool {
	na, errA := strconv.ParseFloat(a, 64)
	nb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil {
		return na < nb
	}
	return strings.ToLower(a) < strings.ToLower(b)
}
