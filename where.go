package sqlgen

import (
	"fmt"
	"reflect"
	"strings"
)

// Filter is one ordered entry of the condition DSL: a key of the form
// [and__|or__]table.field[__operator] with its operand.
type Filter struct {
	Key   string
	Value any
}

// Where is the ordered condition list of the DSL form. Order is
// significant: conditions join left to right, each with the connector
// its own key carries.
type Where []Filter

// operatorSuffixes maps recognized key suffixes to operators. The
// longer ge/le spellings seen in the wild are accepted as aliases.
var operatorSuffixes = map[string]Op{
	"eq":          OpEQ,
	"ne":          OpNE,
	"lt":          OpLT,
	"le":          OpLE,
	"lte":         OpLE,
	"gt":          OpGT,
	"ge":          OpGE,
	"gte":         OpGE,
	"like":        OpLike,
	"ilike":       OpILike,
	"in":          OpIn,
	"not_in":      OpNotIn,
	"is_null":     OpIsNull,
	"is_not_null": OpNotNull,
	"between":     OpBetween,
}

// parseFilterKey splits a DSL key into its connector, field path and
// operator. Connector prefix and operator suffix are both optional; an
// unrecognized suffix folds back into the field path under the default
// eq operator.
func parseFilterKey(key string) (conn Connector, path string, op Op) {
	conn, path, op = And, key, OpEQ
	if rest, ok := strings.CutPrefix(path, "and__"); ok {
		path = rest
	} else if rest, ok := strings.CutPrefix(path, "or__"); ok {
		conn, path = Or, rest
	}
	if i := strings.LastIndex(path, "__"); i >= 0 {
		if o, ok := operatorSuffixes[path[i+2:]]; ok {
			op, path = o, path[:i]
		}
	}
	return conn, path, op
}

// normalizeFilter converts one DSL entry into a structured condition.
// Table resolution happens later, once the joined table set is known.
func normalizeFilter(f Filter) (Condition, error) {
	if f.Key == "" {
		return nil, NewConditionError(f.Key, "empty key")
	}
	conn, path, op := parseFilterKey(f.Key)
	if path == "" {
		return nil, NewConditionError(f.Key, "empty field path")
	}
	var table, field string
	if before, after, ok := strings.Cut(path, "."); ok {
		table, field = before, after
	} else {
		field = path
	}
	switch op {
	case OpIn, OpNotIn:
		values, ok := operandList(f.Value)
		if !ok {
			return nil, NewConditionError(f.Key, fmt.Sprintf("%s takes a sequence operand, got %T", op, f.Value))
		}
		if len(values) == 0 {
			return nil, NewConditionError(f.Key, "in and not_in take a non-empty sequence")
		}
		return SetMembership{Table: table, Field: field, Negated: op == OpNotIn, Values: values, Connect: conn}, nil
	case OpBetween:
		values, ok := operandList(f.Value)
		if !ok {
			return nil, NewConditionError(f.Key, fmt.Sprintf("between takes a sequence operand, got %T", f.Value))
		}
		if len(values) != 2 {
			return nil, NewConditionError(f.Key, fmt.Sprintf("between takes exactly two operands (low, high), got %d", len(values)))
		}
		return Range{Table: table, Field: field, Low: values[0], High: values[1], Connect: conn}, nil
	case OpIsNull, OpNotNull:
		return NullCheck{Table: table, Field: field, Negated: op == OpNotNull, Connect: conn}, nil
	default:
		return Comparison{Table: table, Field: field, Op: op, Value: f.Value, Connect: conn}, nil
	}
}

// operandList flattens a sequence operand into []any. Strings and byte
// slices do not count as sequences here.
func operandList(v any) ([]any, bool) {
	if vs, ok := v.([]any); ok {
		return vs, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// normalizeConditions merges the query's DSL entries and structured
// conditions into one ordered sequence: DSL entries first, structured
// conditions after, each block in its own order.
func (c *compilation) normalizeConditions(q *Query) error {
	for _, f := range q.Where {
		cond, err := normalizeFilter(f)
		if err != nil {
			return err
		}
		c.conds = append(c.conds, cond)
	}
	for _, cond := range q.Conditions {
		if cond == nil {
			return NewConditionError("", "nil condition")
		}
		c.conds = append(c.conds, cond)
	}
	return nil
}

// resolveColumn maps a condition's table.field onto alias.field. An
// empty table resolves against the query's sole table only.
func (c *compilation) resolveColumn(table, field string) (string, error) {
	ref := conditionRef(table, field)
	if field == "" {
		return "", NewConditionError(ref, "missing field name")
	}
	if table == "" {
		if len(c.tables) != 1 {
			return "", NewConditionError(ref, "field without a table in a multi-table query")
		}
		table = c.tables[0].Name
	}
	alias, ok := c.aliases.alias(table)
	if !ok {
		return "", NewConditionError(ref, fmt.Sprintf("unknown table %q", table))
	}
	return alias + "." + field, nil
}
