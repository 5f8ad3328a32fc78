package sqlgen

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for compilation failures.
var (
	// ErrRelationNotFound is returned when a join references a relation
	// no table in the query declares.
	ErrRelationNotFound = errors.New("sqlgen: relation not found")

	// ErrAmbiguousRelation is returned when a relation name is declared
	// by more than one table and the request does not name a source.
	ErrAmbiguousRelation = errors.New("sqlgen: ambiguous relation")

	// ErrMalformedCondition is returned when a condition key cannot be
	// parsed or its operand has the wrong shape for the operator.
	ErrMalformedCondition = errors.New("sqlgen: malformed condition")

	// ErrNoTables is returned when a query declares no tables.
	ErrNoTables = errors.New("sqlgen: query has no tables")

	// ErrEmptySelect is returned when a query has an empty select list.
	ErrEmptySelect = errors.New("sqlgen: query has an empty select")

	// ErrInvalidLimit is returned when a query carries a negative limit.
	ErrInvalidLimit = errors.New("sqlgen: invalid limit")
)

// RelationNotFoundError reports a relation that could not be resolved.
type RelationNotFoundError struct {
	relation string
	source   string // table the lookup ran against, if scoped
	target   string // resolved target table missing from the query, if known
}

// Error returns the error string.
func (e *RelationNotFoundError) Error() string {
	switch {
	case e.target != "":
		return fmt.Sprintf("sqlgen: relation %q targets table %q, which is not in the query", e.relation, e.target)
	case e.source != "":
		return fmt.Sprintf("sqlgen: relation %q not found on table %q", e.relation, e.source)
	}
	return fmt.Sprintf("sqlgen: relation %q not found on any table in the query", e.relation)
}

// Is reports whether the target error matches RelationNotFoundError.
// This allows errors.Is(err, ErrRelationNotFound) to return true.
func (e *RelationNotFoundError) Is(err error) bool {
	return err == ErrRelationNotFound
}

// Relation returns the relation name that failed to resolve.
func (e *RelationNotFoundError) Relation() string {
	return e.relation
}

// Source returns the table the lookup ran against, if any.
func (e *RelationNotFoundError) Source() string {
	return e.source
}

// NewRelationNotFoundError returns a new RelationNotFoundError for the
// given relation name.
func NewRelationNotFoundError(relation string) *RelationNotFoundError {
	return &RelationNotFoundError{relation: relation}
}

// NewRelationNotFoundErrorWithSource returns a new RelationNotFoundError
// scoped to the table the lookup ran against.
func NewRelationNotFoundErrorWithSource(relation, source string) *RelationNotFoundError {
	return &RelationNotFoundError{relation: relation, source: source}
}

// NewRelationNotFoundErrorWithTarget returns a new RelationNotFoundError
// for a relation whose target table is not part of the query.
func NewRelationNotFoundErrorWithTarget(relation, target string) *RelationNotFoundError {
	return &RelationNotFoundError{relation: relation, target: target}
}

// IsRelationNotFound returns true if the error is a RelationNotFoundError.
func IsRelationNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *RelationNotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrRelationNotFound)
}

// AmbiguousRelationError reports a relation name declared by several
// tables at the same resolution point.
type AmbiguousRelationError struct {
	relation string
	tables   []string // declaring tables in query order
}

// Error returns the error string.
func (e *AmbiguousRelationError) Error() string {
	return fmt.Sprintf("sqlgen: relation %q is ambiguous: declared by %s", e.relation, strings.Join(e.tables, ", "))
}

// Is reports whether the target error matches AmbiguousRelationError.
// This allows errors.Is(err, ErrAmbiguousRelation) to return true.
func (e *AmbiguousRelationError) Is(err error) bool {
	return err == ErrAmbiguousRelation
}

// Relation returns the ambiguous relation name.
func (e *AmbiguousRelationError) Relation() string {
	return e.relation
}

// Tables returns the tables declaring the relation, in query order.
func (e *AmbiguousRelationError) Tables() []string {
	return e.tables
}

// NewAmbiguousRelationError returns a new AmbiguousRelationError listing
// the declaring tables.
func NewAmbiguousRelationError(relation string, tables []string) *AmbiguousRelationError {
	return &AmbiguousRelationError{relation: relation, tables: tables}
}

// IsAmbiguousRelation returns true if the error is an AmbiguousRelationError.
func IsAmbiguousRelation(err error) bool {
	if err == nil {
		return false
	}
	var e *AmbiguousRelationError
	return errors.As(err, &e) || errors.Is(err, ErrAmbiguousRelation)
}

// ConditionError reports a condition entry that could not be compiled:
// an unparseable key, an unresolvable table or field, or an operand
// whose shape does not fit the operator.
type ConditionError struct {
	key    string
	reason string
}

// Error returns the error string.
func (e *ConditionError) Error() string {
	if e.key != "" {
		return fmt.Sprintf("sqlgen: malformed condition %q: %s", e.key, e.reason)
	}
	return fmt.Sprintf("sqlgen: malformed condition: %s", e.reason)
}

// Is reports whether the target error matches ConditionError.
// This allows errors.Is(err, ErrMalformedCondition) to return true.
func (e *ConditionError) Is(err error) bool {
	return err == ErrMalformedCondition
}

// Key returns the offending condition key, if known.
func (e *ConditionError) Key() string {
	return e.key
}

// Reason returns the failure description.
func (e *ConditionError) Reason() string {
	return e.reason
}

// NewConditionError returns a new ConditionError for the given key.
func NewConditionError(key, reason string) *ConditionError {
	return &ConditionError{key: key, reason: reason}
}

// IsMalformedCondition returns true if the error is a ConditionError.
func IsMalformedCondition(err error) bool {
	if err == nil {
		return false
	}
	var e *ConditionError
	return errors.As(err, &e) || errors.Is(err, ErrMalformedCondition)
}

// LimitError reports a limit value that cannot be rendered.
type LimitError struct {
	limit int
}

// Error returns the error string.
func (e *LimitError) Error() string {
	return fmt.Sprintf("sqlgen: invalid limit %d: must be non-negative", e.limit)
}

// Is reports whether the target error matches LimitError.
// This allows errors.Is(err, ErrInvalidLimit) to return true.
func (e *LimitError) Is(err error) bool {
	return err == ErrInvalidLimit
}

// Limit returns the rejected limit value.
func (e *LimitError) Limit() int {
	return e.limit
}

// NewLimitError returns a new LimitError for the given value.
func NewLimitError(limit int) *LimitError {
	return &LimitError{limit: limit}
}

// IsInvalidLimit returns true if the error is a LimitError.
func IsInvalidLimit(err error) bool {
	if err == nil {
		return false
	}
	var e *LimitError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidLimit)
}

// IsEmptyInput returns true if the error reports a missing table list or
// an empty select list.
func IsEmptyInput(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNoTables) || errors.Is(err, ErrEmptySelect)
}
