package page

import "filut/models"

// Row is one line of the restaurant table. It refers to its restaurant
// directly so it stays correct however the list is filtered or reordered.
type Row struct {
	Restaurant  *models.Restaurant
	Highlighted bool
}

// Table is the body of the restaurant table.
type Table struct {
	Rows []Row
}

// AppendRows adds a row per restaurant after any rows already present.
// This is the page load path.
func (t *Table) AppendRows(restaurants []*models.Restaurant) {
	for _, r := range restaurants {
		t.Rows = append(t.Rows, Row{Restaurant: r})
	}
}

// Rebuild clears the body and adds a row per restaurant. This is the
// filter path.
func (t *Table) Rebuild(restaurants []*models.Restaurant) {
	t.Rows = make([]Row, 0, len(restaurants))
	t.AppendRows(restaurants)
}

// Highlight clears every row's highlight and then highlights the rows of
// the given restaurant. It reports whether such a row exists.
func (t *Table) Highlight(id string) bool {
	found := false
	for i := range t.Rows {
		t.Rows[i].Highlighted = t.Rows[i].Restaurant.ID == id
		if t.Rows[i].Highlighted {
			found = true
		}
	}
	return found
}

func (t *Table) clone() Table {
	rows := make([]Row, len(t.Rows))
	copy(rows, t.Rows)
	return Table{Rows: rows}
}
