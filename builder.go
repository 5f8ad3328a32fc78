package sqlgen

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/arthurm040/SQL-generator/dialect"
)

// Builder compiles queries for one target dialect. The zero
// configuration carries no cache, stats or logging; options opt in.
// A Builder is safe for concurrent use.
type Builder struct {
	dialect string
	cache   Cache
	stats   *BuildStats
	log     *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithCache attaches a statement cache consulted before assembly.
// Parameter values are never cached, only SQL text.
func WithCache(c Cache) Option {
	return func(b *Builder) { b.cache = c }
}

// WithStats attaches counters updated on every Build call.
func WithStats(s *BuildStats) Option {
	return func(b *Builder) { b.stats = s }
}

// WithDebug logs every successful compilation to l at debug level.
func WithDebug(l *slog.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// New returns a Builder targeting the named dialect; the dialect
// package declares the known names. Unknown names fall back to
// anonymous ? placeholders.
func New(d string, opts ...Option) *Builder {
	b := &Builder{dialect: d}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build compiles q with a default MySQL-style builder.
func Build(q *Query) (string, []any, error) {
	return New(dialect.MySQL).Build(q)
}

// Dialect returns the builder's target dialect name.
func (b *Builder) Dialect() string {
	return b.dialect
}

// Build compiles q into SQL text and the positional parameters its
// placeholders bind, in left-to-right order of appearance. Build never
// mutates q or its tables, and a failing call leaves no partial state.
func (b *Builder) Build(q *Query) (string, []any, error) {
	var start time.Time
	if b.log != nil {
		start = time.Now()
	}
	sql, params, hit, err := b.compile(q)
	if b.stats != nil {
		b.stats.record(hit, err)
	}
	if err != nil {
		return "", nil, err
	}
	if b.log != nil {
		b.log.Debug("sqlgen: compiled query",
			"sql", sql,
			"params", len(params),
			"cached", hit,
			"elapsed", time.Since(start),
		)
	}
	return sql, params, nil
}

// compilation is the per-Build working state: the alias map, the
// resolved joins, the normalized conditions, and the parameter list
// under construction. Each Build call allocates its own.
type compilation struct {
	b           *Builder
	tables      []*Table
	byName      map[string]*Table
	aliases     *aliasMap
	established map[string]string // joined tables -> alias of the joined occurrence
	joinKeys    map[joinKey]bool
	joins       []ResolvedJoin
	conds       []Condition
	params      []any
	nparams     int
}

func (b *Builder) compile(q *Query) (sql string, params []any, hit bool, err error) {
	if q == nil || len(q.Tables) == 0 {
		return "", nil, false, ErrNoTables
	}
	if len(q.Select) == 0 {
		return "", nil, false, ErrEmptySelect
	}
	if q.Limit != nil && *q.Limit < 0 {
		return "", nil, false, NewLimitError(*q.Limit)
	}
	c := &compilation{
		b:           b,
		tables:      q.Tables,
		byName:      make(map[string]*Table, len(q.Tables)),
		aliases:     newAliasMap(),
		established: make(map[string]string),
		joinKeys:    make(map[joinKey]bool),
	}
	for _, t := range q.Tables {
		if t == nil || t.Name == "" {
			return "", nil, false, fmt.Errorf("sqlgen: query contains a table without a name")
		}
		if _, ok := c.byName[t.Name]; !ok {
			c.byName[t.Name] = t
		}
		c.aliases.assign(t.Name, t.Alias)
	}
	base := q.Tables[0].Name
	baseAlias, _ := c.aliases.alias(base)
	c.established[base] = baseAlias

	if err := c.resolveJoins(q.Joins); err != nil {
		return "", nil, false, err
	}
	if err := c.normalizeConditions(q); err != nil {
		return "", nil, false, err
	}
	if b.cache != nil {
		if sql, ok := b.cachedSQL(q, c); ok {
			params, err := c.collectParams()
			if err != nil {
				return "", nil, false, err
			}
			return sql, params, true, nil
		}
	}
	sql, params, err = c.assemble(q)
	if err != nil {
		return "", nil, false, err
	}
	if b.cache != nil {
		b.storeSQL(q, c, sql, len(params))
	}
	return sql, params, false, nil
}

// collectParams walks the normalized conditions gathering their
// parameter values in emission order. It is the parameter half of the
// WHERE renderer, used on cache hits where no text is produced.
func (c *compilation) collectParams() ([]any, error) {
	var params []any
	for _, cond := range c.conds {
		vals, err := conditionParams(cond)
		if err != nil {
			return nil, err
		}
		params = append(params, vals...)
	}
	return params, nil
}

// assemble emits the clauses in their fixed order: SELECT, FROM, JOINs,
// WHERE, GROUP BY, ORDER BY, LIMIT.
func (c *compilation) assemble(q *Query) (string, []any, error) {
	var sb strings.Builder
	if err := c.writeSelect(&sb, q.Select); err != nil {
		return "", nil, err
	}
	c.writeFrom(&sb, q.Tables[0])
	c.writeJoins(&sb)
	if err := c.writeWhere(&sb); err != nil {
		return "", nil, err
	}
	if err := c.writeGroupBy(&sb, q.GroupBy); err != nil {
		return "", nil, err
	}
	if err := c.writeOrderBy(&sb, q.OrderBy); err != nil {
		return "", nil, err
	}
	if q.Limit != nil {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(*q.Limit))
	}
	return sb.String(), c.params, nil
}

func (c *compilation) writeSelect(sb *strings.Builder, items []SelectItem) error {
	sb.WriteString("SELECT ")
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		expr, err := c.renderSelectItem(item)
		if err != nil {
			return err
		}
		sb.WriteString(expr)
	}
	return nil
}

func (c *compilation) writeFrom(sb *strings.Builder, base *Table) {
	alias, _ := c.aliases.alias(base.Name)
	sb.WriteString(" FROM ")
	sb.WriteString(base.Name)
	sb.WriteString(" AS ")
	sb.WriteString(alias)
}

func (c *compilation) writeJoins(sb *strings.Builder) {
	for _, j := range c.joins {
		sb.WriteString(" ")
		sb.WriteString(j.Kind.String())
		sb.WriteString(" ")
		sb.WriteString(j.Table)
		sb.WriteString(" AS ")
		sb.WriteString(j.RightAlias)
		sb.WriteString(" ON ")
		sb.WriteString(j.LeftAlias)
		sb.WriteString(".")
		sb.WriteString(j.LeftCol)
		sb.WriteString(" = ")
		sb.WriteString(j.RightAlias)
		sb.WriteString(".")
		sb.WriteString(j.RightCol)
	}
}

func (c *compilation) writeWhere(sb *strings.Builder) error {
	for i, cond := range c.conds {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			conn := cond.connector()
			if conn == "" {
				conn = And
			}
			sb.WriteString(" ")
			sb.WriteString(string(conn))
			sb.WriteString(" ")
		}
		if err := c.writeCondition(sb, cond); err != nil {
			return err
		}
	}
	return nil
}

func (c *compilation) writeCondition(sb *strings.Builder, cond Condition) error {
	switch v := cond.(type) {
	case Comparison:
		if !v.Op.comparison() {
			return NewConditionError(conditionRef(v.Table, v.Field), fmt.Sprintf("operator %q takes a single operand", v.Op))
		}
		ref, err := c.resolveColumn(v.Table, v.Field)
		if err != nil {
			return err
		}
		sb.WriteString(ref)
		sb.WriteString(" ")
		sb.WriteString(v.Op.SQL())
		sb.WriteString(" ")
		sb.WriteString(c.placeholder())
		c.params = append(c.params, v.Value)
	case SetMembership:
		vals, err := conditionParams(cond)
		if err != nil {
			return err
		}
		ref, err := c.resolveColumn(v.Table, v.Field)
		if err != nil {
			return err
		}
		sb.WriteString(ref)
		if v.Negated {
			sb.WriteString(" NOT IN (")
		} else {
			sb.WriteString(" IN (")
		}
		for i := range vals {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(c.placeholder())
		}
		sb.WriteString(")")
		c.params = append(c.params, vals...)
	case Range:
		ref, err := c.resolveColumn(v.Table, v.Field)
		if err != nil {
			return err
		}
		sb.WriteString(ref)
		sb.WriteString(" BETWEEN ")
		sb.WriteString(c.placeholder())
		sb.WriteString(" AND ")
		sb.WriteString(c.placeholder())
		c.params = append(c.params, v.Low, v.High)
	case NullCheck:
		ref, err := c.resolveColumn(v.Table, v.Field)
		if err != nil {
			return err
		}
		sb.WriteString(ref)
		if v.Negated {
			sb.WriteString(" IS NOT NULL")
		} else {
			sb.WriteString(" IS NULL")
		}
	default:
		return NewConditionError("", fmt.Sprintf("unsupported condition type %T", cond))
	}
	return nil
}

func (c *compilation) writeGroupBy(sb *strings.Builder, items []GroupItem) error {
	for i, item := range items {
		if i == 0 {
			sb.WriteString(" GROUP BY ")
		} else {
			sb.WriteString(", ")
		}
		expr, err := c.renderGroupItem(item)
		if err != nil {
			return err
		}
		sb.WriteString(expr)
	}
	return nil
}

func (c *compilation) writeOrderBy(sb *strings.Builder, items []OrderItem) error {
	for i, item := range items {
		if i == 0 {
			sb.WriteString(" ORDER BY ")
		} else {
			sb.WriteString(", ")
		}
		expr, err := c.renderOrderItem(item)
		if err != nil {
			return err
		}
		sb.WriteString(expr)
	}
	return nil
}

// placeholder emits the next positional parameter marker for the
// builder's dialect.
func (c *compilation) placeholder() string {
	c.nparams++
	return dialect.Placeholder(c.b.dialect, c.nparams)
}

// cachedSQL looks the compilation up in the builder's cache, returning
// the stored SQL text on a hit.
func (b *Builder) cachedSQL(q *Query, c *compilation) (string, bool) {
	data, err := b.cache.Get(context.Background(), c.cacheKey(q).String())
	if err != nil {
		return "", false
	}
	stmt, err := DecodeStatement(data)
	if err != nil {
		return "", false
	}
	return stmt.SQL, true
}

// storeSQL writes the assembled statement to the builder's cache.
// Cache failures never fail the build.
func (b *Builder) storeSQL(q *Query, c *compilation, sql string, nparams int) {
	data, err := EncodeStatement(CachedStatement{SQL: sql, ParamCount: nparams})
	if err != nil {
		return
	}
	if err := b.cache.Set(context.Background(), c.cacheKey(q).String(), data, 0); err != nil && b.log != nil {
		b.log.Debug("sqlgen: statement cache write failed", "error", err)
	}
}
