package sqlgen

// JoinAttribute declares how a table connects to one related table:
// the declaring table's column on the left of the ON condition, the
// related table's column on the right. Table optionally names the
// physical target table when it differs from the relation name.
type JoinAttribute struct {
	Local  string
	Remote string
	Table  string
}

// TargetTable returns the physical table the relation points at: the
// declared override when present, otherwise the relation name itself.
func (a JoinAttribute) TargetTable(relation string) string {
	if a.Table != "" {
		return a.Table
	}
	return relation
}

// Table describes one table participating in queries: its name, an
// optional preferred alias, and the named relations connecting it to
// other tables. Declare tables once and reuse them read-only across
// compilations; Build never mutates them.
type Table struct {
	Name      string
	Alias     string
	Relations map[string]JoinAttribute
}

// NewTable returns a table declaration with the given name.
func NewTable(name string) *Table {
	return &Table{Name: name, Relations: make(map[string]JoinAttribute)}
}

// As sets the preferred alias used when the table is referenced in a
// query. A preferred alias that collides with an earlier one falls back
// to the generated form.
func (t *Table) As(alias string) *Table {
	t.Alias = alias
	return t
}

// Relation declares a connection to the table named by relation,
// matching t's local column against the target's remote column.
func (t *Table) Relation(relation, local, remote string) *Table {
	return t.RelationTo(relation, "", local, remote)
}

// RelationTo declares a relation whose physical target table differs
// from the relation name. An empty table means the relation name is the
// table.
func (t *Table) RelationTo(relation, table, local, remote string) *Table {
	if t.Relations == nil {
		t.Relations = make(map[string]JoinAttribute)
	}
	t.Relations[relation] = JoinAttribute{Local: local, Remote: remote, Table: table}
	return t
}
