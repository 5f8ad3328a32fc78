package sqlgen

import (
	"fmt"
	"strings"
)

// Direction orders an ORDER BY column.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// GroupItem is one GROUP BY column: a raw "table.field" string or a
// structured reference.
type GroupItem struct {
	Raw   string
	Table string
	Field string
}

// OrderItem is one ORDER BY column with an optional direction. Raw
// strings may carry a trailing direction: "orders.total DESC".
type OrderItem struct {
	Raw   string
	Table string
	Field string
	Dir   Direction
}

// Groups builds raw group items from strings.
func Groups(specs ...string) []GroupItem {
	items := make([]GroupItem, len(specs))
	for i, s := range specs {
		items[i] = GroupItem{Raw: s}
	}
	return items
}

// Orders builds raw order items from "table.field [ASC|DESC]" strings.
func Orders(specs ...string) []OrderItem {
	items := make([]OrderItem, len(specs))
	for i, s := range specs {
		items[i] = OrderItem{Raw: s}
	}
	return items
}

// Limit wraps n for Query.Limit.
func Limit(n int) *int {
	return &n
}

// Query declares one compilation: the participating tables (first entry
// is the base table), the projected columns, and the optional join,
// filter, grouping, ordering and limit clauses. A Query and its tables
// are never mutated by Build.
type Query struct {
	Tables     []*Table
	Select     []SelectItem
	Joins      []Join
	Where      Where
	Conditions []Condition
	GroupBy    []GroupItem
	OrderBy    []OrderItem
	Limit      *int
}

// renderGroupItem emits one GROUP BY expression.
func (c *compilation) renderGroupItem(item GroupItem) (string, error) {
	if item.Raw != "" {
		return c.resolveRawColumn(item.Raw), nil
	}
	if item.Field == "" {
		return "", fmt.Errorf("sqlgen: empty group by column")
	}
	ref, ok := c.columnRef(item.Table, item.Field)
	if !ok {
		return "", fmt.Errorf("sqlgen: unknown table %q in group by", item.Table)
	}
	return ref, nil
}

// renderOrderItem emits one ORDER BY expression with its direction.
func (c *compilation) renderOrderItem(item OrderItem) (string, error) {
	if item.Raw != "" {
		expr, dir := splitOrderSpec(item.Raw)
		if dir != "" {
			return c.resolveRawColumn(expr) + " " + dir, nil
		}
		return c.resolveRawColumn(expr), nil
	}
	if item.Field == "" {
		return "", fmt.Errorf("sqlgen: empty order by column")
	}
	ref, ok := c.columnRef(item.Table, item.Field)
	if !ok {
		return "", fmt.Errorf("sqlgen: unknown table %q in order by", item.Table)
	}
	if item.Dir != "" {
		ref += " " + string(item.Dir)
	}
	return ref, nil
}

// splitOrderSpec peels a trailing ASC or DESC (any case) off a raw
// order string. Strings that do not end in a direction come back whole.
func splitOrderSpec(raw string) (expr, dir string) {
	fields := strings.Fields(raw)
	if len(fields) == 2 {
		switch strings.ToUpper(fields[1]) {
		case string(Asc), string(Desc):
			return fields[0], strings.ToUpper(fields[1])
		}
	}
	return strings.TrimSpace(raw), ""
}
