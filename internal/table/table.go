// Package table is a presentation-agnostic list/search/paginate view model
// over an in-memory row collection. Screens declare columns as typed
// accessor functions and feed the computed View to a template.
package table

import (
	"fmt"
	"reflect"
	"strings"
)

var PageSizes = []int{5, 10, 25}

const DefaultPageSize = 10

// Column resolves one cell from a row. An empty accessor result renders as
// the placeholder dash.
type Column[T any] struct {
	Label string
	Value func(T) string
}

type Table[T any] struct {
	Title   string
	Columns []Column[T]
	// Ref yields the row identifier used for per-row action links.
	Ref func(T) string
}

type Params struct {
	Query string
	Page  int
	Size  int
}

type Row struct {
	Cells []string
	Ref   string
}

type View struct {
	Title     string
	Labels    []string
	Rows      []Row
	Query     string
	Size      int
	PageSizes []int
	Page      int
	PageCount int
	Total     int
	Start     int
	End       int
	HasPrev   bool
	HasNext   bool
}

// View filters, pages and renders the rows. The requested page is clamped,
// so a changed query lands the caller back on a valid page; callers reset
// to page 1 by omitting the page parameter from search submissions.
func (t Table[T]) View(rows []T, p Params) View {
	size := p.Size
	if !validSize(size) {
		size = DefaultPageSize
	}

	filtered := make([]T, 0, len(rows))
	for _, row := range rows {
		if Matches(row, p.Query) {
			filtered = append(filtered, row)
		}
	}

	total := len(filtered)
	pageCount := (total + size - 1) / size
	page := p.Page
	if page < 1 {
		page = 1
	}
	if pageCount > 0 && page > pageCount {
		page = pageCount
	}
	if pageCount == 0 {
		page = 1
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	view := View{
		Title:     t.Title,
		Query:     p.Query,
		Size:      size,
		PageSizes: PageSizes,
		Page:      page,
		PageCount: pageCount,
		Total:     total,
		HasPrev:   page > 1,
		HasNext:   pageCount > 0 && page < pageCount,
	}
	for _, col := range t.Columns {
		view.Labels = append(view.Labels, col.Label)
	}
	if total > 0 {
		view.Start = start + 1
		view.End = end
	}

	for _, row := range filtered[start:end] {
		rendered := Row{Cells: make([]string, 0, len(t.Columns))}
		for _, col := range t.Columns {
			cell := col.Value(row)
			if cell == "" {
				cell = "-"
			}
			rendered.Cells = append(rendered.Cells, cell)
		}
		if t.Ref != nil {
			rendered.Ref = t.Ref(row)
		}
		view.Rows = append(view.Rows, rendered)
	}

	return view
}

func (v View) PrevPage() int {
	if v.Page > 1 {
		return v.Page - 1
	}
	return 1
}

func (v View) NextPage() int {
	if v.Page < v.PageCount {
		return v.Page + 1
	}
	return v.PageCount
}

// Matches reports whether any field of the row contains the query as a
// case-insensitive substring. The match deliberately spans every exported
// field of the row, not just the displayed columns. An empty query matches
// everything.
func Matches(row interface{}, query string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)
	for _, value := range fieldStrings(row) {
		if strings.Contains(strings.ToLower(value), needle) {
			return true
		}
	}
	return false
}

func fieldStrings(row interface{}) []string {
	v := reflect.ValueOf(row)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return []string{fmt.Sprintf("%v", row)}
	}
	values := make([]string, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		if !v.Type().Field(i).IsExported() {
			continue
		}
		values = append(values, fmt.Sprintf("%v", v.Field(i).Interface()))
	}
	return values
}

func validSize(size int) bool {
	for _, s := range PageSizes {
		if size == s {
			return true
		}
	}
	return false
}
