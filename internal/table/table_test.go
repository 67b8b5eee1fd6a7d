package table

import (
	"fmt"
	"testing"
)

type sampleRow struct {
	ID     string
	Name   string
	Detail string
	hidden string
}

func sampleTable() Table[sampleRow] {
	return Table[sampleRow]{
		Title: "Samples",
		Columns: []Column[sampleRow]{
			{Label: "Name", Value: func(r sampleRow) string { return r.Name }},
			{Label: "Detail", Value: func(r sampleRow) string { return r.Detail }},
		},
		Ref: func(r sampleRow) string { return r.ID },
	}
}

func sampleRows(n int) []sampleRow {
	rows := make([]sampleRow, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, sampleRow{
			ID:     fmt.Sprintf("id-%d", i),
			Name:   fmt.Sprintf("Row %d", i),
			Detail: fmt.Sprintf("detail %d", i),
		})
	}
	return rows
}

func TestViewDefaults(t *testing.T) {
	view := sampleTable().View(sampleRows(23), Params{})
	if view.Size != DefaultPageSize {
		t.Fatalf("size = %d, want %d", view.Size, DefaultPageSize)
	}
	if view.Page != 1 || view.PageCount != 3 || view.Total != 23 {
		t.Fatalf("page=%d pageCount=%d total=%d", view.Page, view.PageCount, view.Total)
	}
	if len(view.Rows) != 10 {
		t.Fatalf("rows = %d", len(view.Rows))
	}
	if view.Start != 1 || view.End != 10 {
		t.Fatalf("start=%d end=%d", view.Start, view.End)
	}
	if view.HasPrev || !view.HasNext {
		t.Fatalf("hasPrev=%v hasNext=%v", view.HasPrev, view.HasNext)
	}
}

func TestViewUnknownSizeFallsBack(t *testing.T) {
	view := sampleTable().View(sampleRows(6), Params{Size: 7})
	if view.Size != DefaultPageSize {
		t.Fatalf("size = %d, want %d", view.Size, DefaultPageSize)
	}
}

func TestViewLastPartialPage(t *testing.T) {
	view := sampleTable().View(sampleRows(23), Params{Page: 3})
	if len(view.Rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(view.Rows))
	}
	if view.Start != 21 || view.End != 23 {
		t.Fatalf("start=%d end=%d", view.Start, view.End)
	}
	if !view.HasPrev || view.HasNext {
		t.Fatalf("hasPrev=%v hasNext=%v", view.HasPrev, view.HasNext)
	}
	if view.NextPage() != 3 {
		t.Fatalf("NextPage past the end = %d", view.NextPage())
	}
}

func TestViewClampsOutOfRangePage(t *testing.T) {
	view := sampleTable().View(sampleRows(12), Params{Page: 9})
	if view.Page != 2 {
		t.Fatalf("page = %d, want 2", view.Page)
	}

	view = sampleTable().View(sampleRows(12), Params{Page: -4})
	if view.Page != 1 {
		t.Fatalf("page = %d, want 1", view.Page)
	}
}

func TestViewFilterSpansAllFields(t *testing.T) {
	rows := []sampleRow{
		{ID: "abc-1", Name: "Computer Science", Detail: "four years"},
		{ID: "xyz-2", Name: "Medicine", Detail: "six years"},
	}

	// Matches on a column that is not displayed.
	view := sampleTable().View(rows, Params{Query: "ABC"})
	if view.Total != 1 || view.Rows[0].Cells[0] != "Computer Science" {
		t.Fatalf("unexpected view: %+v", view)
	}

	// Case-insensitive substring on a displayed column.
	view = sampleTable().View(rows, Params{Query: "medi"})
	if view.Total != 1 || view.Rows[0].Cells[0] != "Medicine" {
		t.Fatalf("unexpected view: %+v", view)
	}

	// Nothing matches.
	view = sampleTable().View(rows, Params{Query: "zzzz"})
	if view.Total != 0 || len(view.Rows) != 0 || view.Page != 1 || view.PageCount != 0 {
		t.Fatalf("unexpected empty view: %+v", view)
	}
}

func TestViewNarrowedQueryClampsPage(t *testing.T) {
	rows := sampleRows(23)
	// Page 3 is valid unfiltered, but a narrowed result set no longer has it.
	view := sampleTable().View(rows, Params{Query: "Row 1", Page: 3})
	// "Row 1" matches Row 1 and Row 10..19: 11 rows, two pages.
	if view.Total != 11 {
		t.Fatalf("total = %d, want 11", view.Total)
	}
	if view.Page != 2 {
		t.Fatalf("page = %d, want 2", view.Page)
	}
}

func TestViewEmptyCellPlaceholder(t *testing.T) {
	rows := []sampleRow{{ID: "id-1", Name: "Known"}}
	view := sampleTable().View(rows, Params{})
	if view.Rows[0].Cells[1] != "-" {
		t.Fatalf("empty cell = %q, want -", view.Rows[0].Cells[1])
	}
	if view.Rows[0].Ref != "id-1" {
		t.Fatalf("ref = %q", view.Rows[0].Ref)
	}
}

func TestMatchesIgnoresUnexportedFields(t *testing.T) {
	row := sampleRow{Name: "visible", hidden: "secret"}
	if Matches(row, "secret") {
		t.Fatal("unexported field should not be searchable")
	}
	if !Matches(row, "") {
		t.Fatal("empty query must match everything")
	}
	if !Matches(&row, "visible") {
		t.Fatal("pointer rows should match like values")
	}
}
