package sqlgen

import (
	"fmt"
	"strings"

	"github.com/arthurm040/SQL-generator/dialect"
)

// Agg selects an aggregate function applied to a column.
type Agg int

const (
	AggNone Agg = iota
	Count
	Sum
	Avg
	Min
	Max
	CountDistinct
)

// String returns the aggregate's name.
func (a Agg) String() string {
	switch a {
	case Count:
		return "COUNT"
	case Sum:
		return "SUM"
	case Avg:
		return "AVG"
	case Min:
		return "MIN"
	case Max:
		return "MAX"
	case CountDistinct:
		return "COUNT_DISTINCT"
	}
	return ""
}

// wrap renders the aggregate applied to expr.
func (a Agg) wrap(expr string) string {
	switch a {
	case AggNone:
		return expr
	case CountDistinct:
		return "COUNT(DISTINCT " + expr + ")"
	default:
		return a.String() + "(" + expr + ")"
	}
}

// SelectItem is one projected column. Raw carries the string form: a
// "table.field" reference resolved against the query, or any other SQL
// snippet emitted verbatim. Structured items set Table and Field
// directly and fail on unknown tables instead of passing through.
// As names the output column, Distinct prefixes the expression, Agg
// wraps it.
type SelectItem struct {
	Raw      string
	Table    string
	Field    string
	Agg      Agg
	Distinct bool
	As       string
}

// Columns builds raw select items from strings.
func Columns(specs ...string) []SelectItem {
	items := make([]SelectItem, len(specs))
	for i, s := range specs {
		items[i] = SelectItem{Raw: s}
	}
	return items
}

// Column builds a structured select item for table.field.
func Column(table, field string) SelectItem {
	return SelectItem{Table: table, Field: field}
}

// Aggregate wraps the column in the given aggregate function.
func (s SelectItem) Aggregate(a Agg) SelectItem {
	s.Agg = a
	return s
}

// Named sets the output alias, rendered as AS name.
func (s SelectItem) Named(name string) SelectItem {
	s.As = name
	return s
}

// renderSelectItem emits one select expression.
func (c *compilation) renderSelectItem(item SelectItem) (string, error) {
	var expr string
	switch {
	case item.Raw != "":
		expr = c.resolveRawColumn(item.Raw)
	case item.Field != "":
		table := item.Table
		if table == "" {
			if len(c.tables) != 1 {
				return "", fmt.Errorf("sqlgen: select column %q needs a table in a multi-table query", item.Field)
			}
			table = c.tables[0].Name
		}
		ref, ok := c.columnRef(table, item.Field)
		if !ok {
			return "", fmt.Errorf("sqlgen: unknown table %q in select column", table)
		}
		expr = ref
	default:
		return "", fmt.Errorf("sqlgen: empty select column")
	}
	if item.Distinct {
		expr = "DISTINCT " + expr
	}
	expr = item.Agg.wrap(expr)
	if item.As != "" {
		expr += " AS " + item.As
	}
	return expr, nil
}

// columnRef joins the table's alias with field, reporting whether the
// table is part of the query.
func (c *compilation) columnRef(table, field string) (string, bool) {
	alias, ok := c.aliases.alias(table)
	if !ok {
		return "", false
	}
	return alias + "." + field, true
}

// resolveRawColumn qualifies raw as alias.field when the whole string
// parses as a column reference to a table in the query; anything else
// passes through verbatim, which is how expressions like COUNT(*) or
// NOW() reach the output.
func (c *compilation) resolveRawColumn(raw string) string {
	table, field, ok := strings.Cut(raw, ".")
	if !ok {
		return raw
	}
	if !dialect.ValidIdentifier(table) {
		return raw
	}
	if field != "*" && !dialect.ValidIdentifier(field) {
		return raw
	}
	if ref, ok := c.columnRef(table, field); ok {
		return ref
	}
	return raw
}
