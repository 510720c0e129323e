package domain

// Row maps a column name to the cell value for one record. Values are always
// strings after ingestion; missing cells are stored as "".
type Row map[string]string

// Table is the in-memory form of one uploaded CSV: an ordered header plus
// uniform-shape rows. Dispatch only reads it; a new upload replaces it
// wholesale.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// HasColumn reports whether name is part of the table header.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
