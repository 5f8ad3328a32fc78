package sqlgen

// Connector joins a condition to the one before it in emission order.
// The first condition's connector is ignored. The zero value joins
// with AND.
type Connector string

const (
	And Connector = "AND"
	Or  Connector = "OR"
)

// Op is a comparison operator of the condition DSL.
type Op string

const (
	OpEQ      Op = "eq"
	OpNE      Op = "ne"
	OpLT      Op = "lt"
	OpLE      Op = "le"
	OpGT      Op = "gt"
	OpGE      Op = "ge"
	OpLike    Op = "like"
	OpILike   Op = "ilike"
	OpIn      Op = "in"
	OpNotIn   Op = "not_in"
	OpIsNull  Op = "is_null"
	OpNotNull Op = "is_not_null"
	OpBetween Op = "between"
)

// SQL returns the operator's SQL spelling.
func (o Op) SQL() string {
	switch o {
	case OpEQ:
		return "="
	case OpNE:
		return "!="
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpGT:
		return ">"
	case OpGE:
		return ">="
	case OpLike:
		return "LIKE"
	case OpILike:
		return "ILIKE"
	case OpIn:
		return "IN"
	case OpNotIn:
		return "NOT IN"
	case OpIsNull:
		return "IS NULL"
	case OpNotNull:
		return "IS NOT NULL"
	case OpBetween:
		return "BETWEEN"
	}
	return string(o)
}

// comparison reports whether the operator compares one column against a
// single operand.
func (o Op) comparison() bool {
	switch o {
	case OpEQ, OpNE, OpLT, OpLE, OpGT, OpGE, OpLike, OpILike:
		return true
	}
	return false
}

// Condition is one structured WHERE clause element. Implementations are
// Comparison, SetMembership, Range and NullCheck.
type Condition interface {
	condition()
	connector() Connector
}

// Comparison compares one column against a single operand.
type Comparison struct {
	Table   string
	Field   string
	Op      Op // eq, ne, lt, le, gt, ge, like, ilike
	Value   any
	Connect Connector
}

// SetMembership tests a column against a finite, non-empty operand set.
type SetMembership struct {
	Table   string
	Field   string
	Negated bool // NOT IN
	Values  []any
	Connect Connector
}

// Range tests a column against an inclusive BETWEEN range.
type Range struct {
	Table   string
	Field   string
	Low     any
	High    any
	Connect Connector
}

// NullCheck tests a column for IS NULL, or IS NOT NULL when negated.
type NullCheck struct {
	Table   string
	Field   string
	Negated bool
	Connect Connector
}

func (Comparison) condition()    {}
func (SetMembership) condition() {}
func (Range) condition()         {}
func (NullCheck) condition()     {}

func (c Comparison) connector() Connector    { return c.Connect }
func (c SetMembership) connector() Connector { return c.Connect }
func (c Range) connector() Connector         { return c.Connect }
func (c NullCheck) connector() Connector     { return c.Connect }

var (
	_ Condition = Comparison{}
	_ Condition = SetMembership{}
	_ Condition = Range{}
	_ Condition = NullCheck{}
)

// conditionParams returns the positional parameters a condition binds,
// in emission order, validating operand arity on the way.
func conditionParams(cond Condition) ([]any, error) {
	switch v := cond.(type) {
	case Comparison:
		return []any{v.Value}, nil
	case SetMembership:
		if len(v.Values) == 0 {
			return nil, NewConditionError(conditionRef(v.Table, v.Field), "in and not_in take a non-empty sequence")
		}
		return v.Values, nil
	case Range:
		return []any{v.Low, v.High}, nil
	case NullCheck:
		return nil, nil
	}
	return nil, NewConditionError("", "unsupported condition type")
}

// conditionRef names a condition's column for error context.
func conditionRef(table, field string) string {
	if table == "" {
		return field
	}
	return table + "." + field
}
