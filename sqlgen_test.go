package sqlgen_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqlgen "github.com/arthurm040/SQL-generator"
)

// TestBuild tests the full pipeline on a joined, filtered query.
func TestBuild(t *testing.T) {
	t.Parallel()

	users := sqlgen.NewTable("users").Relation("orders", "id", "user_id")
	orders := sqlgen.NewTable("orders")

	sql, params, err := sqlgen.Build(&sqlgen.Query{
		Tables: []*sqlgen.Table{users, orders},
		Select: sqlgen.Columns("users.name", "orders.total"),
		Joins:  sqlgen.Relations("orders"),
		Where: sqlgen.Where{
			{Key: "users.active", Value: true},
			{Key: "or__orders.total__gte", Value: 100},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT use.name, ord.total FROM users AS use INNER JOIN orders AS ord ON use.id = ord.user_id WHERE use.active = ? OR ord.total >= ?", sql)
	assert.Equal(t, []any{true, 100}, params)
}

// TestBuildSingleTable tests the minimal single-table query.
func TestBuildSingleTable(t *testing.T) {
	t.Parallel()

	sql, params, err := sqlgen.Build(&sqlgen.Query{
		Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
		Select: sqlgen.Columns("users.id", "users.name"),
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT use.id, use.name FROM users AS use", sql)
	assert.Empty(t, params)
}

// TestBuildTablelessField tests that a bare field resolves against the
// query's sole table.
func TestBuildTablelessField(t *testing.T) {
	t.Parallel()

	sql, params, err := sqlgen.Build(&sqlgen.Query{
		Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
		Select: []sqlgen.SelectItem{sqlgen.Column("", "name")},
		Where:  sqlgen.Where{{Key: "active", Value: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT use.name FROM users AS use WHERE use.active = ?", sql)
	assert.Equal(t, []any{true}, params)
}

// TestBuildOperators tests each operator suffix of the condition DSL.
func TestBuildOperators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		where  sqlgen.Where
		frag   string
		params []any
	}{
		{"eq_default", sqlgen.Where{{Key: "users.age", Value: 30}}, "use.age = ?", []any{30}},
		{"ne", sqlgen.Where{{Key: "users.age__ne", Value: 30}}, "use.age != ?", []any{30}},
		{"lt", sqlgen.Where{{Key: "users.age__lt", Value: 30}}, "use.age < ?", []any{30}},
		{"le", sqlgen.Where{{Key: "users.age__le", Value: 30}}, "use.age <= ?", []any{30}},
		{"lte_alias", sqlgen.Where{{Key: "users.age__lte", Value: 30}}, "use.age <= ?", []any{30}},
		{"gt", sqlgen.Where{{Key: "users.age__gt", Value: 30}}, "use.age > ?", []any{30}},
		{"ge", sqlgen.Where{{Key: "users.age__ge", Value: 30}}, "use.age >= ?", []any{30}},
		{"gte_alias", sqlgen.Where{{Key: "users.age__gte", Value: 30}}, "use.age >= ?", []any{30}},
		{"like", sqlgen.Where{{Key: "users.name__like", Value: "Al%"}}, "use.name LIKE ?", []any{"Al%"}},
		{"ilike", sqlgen.Where{{Key: "users.name__ilike", Value: "al%"}}, "use.name ILIKE ?", []any{"al%"}},
		{"in", sqlgen.Where{{Key: "users.id__in", Value: []int{1, 2, 3}}}, "use.id IN (?, ?, ?)", []any{1, 2, 3}},
		{"not_in", sqlgen.Where{{Key: "users.id__not_in", Value: []string{"x", "y"}}}, "use.id NOT IN (?, ?)", []any{"x", "y"}},
		{"between", sqlgen.Where{{Key: "users.age__between", Value: []int{18, 65}}}, "use.age BETWEEN ? AND ?", []any{18, 65}},
		{"is_null", sqlgen.Where{{Key: "users.deleted_at__is_null", Value: nil}}, "use.deleted_at IS NULL", nil},
		{"is_not_null", sqlgen.Where{{Key: "users.deleted_at__is_not_null", Value: nil}}, "use.deleted_at IS NOT NULL", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sql, params, err := sqlgen.Build(&sqlgen.Query{
				Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
				Select: sqlgen.Columns("users.id"),
				Where:  tt.where,
			})
			require.NoError(t, err)
			assert.Equal(t, "SELECT use.id FROM users AS use WHERE "+tt.frag, sql)
			if tt.params == nil {
				assert.Empty(t, params)
			} else {
				assert.Equal(t, tt.params, params)
			}
		})
	}
}

// TestBuildConnectors tests connector handling between conditions.
func TestBuildConnectors(t *testing.T) {
	t.Parallel()

	t.Run("first_connector_ignored", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
			Select: sqlgen.Columns("users.id"),
			Where: sqlgen.Where{
				{Key: "or__users.a", Value: 1},
				{Key: "users.b", Value: 2},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.id FROM users AS use WHERE use.a = ? AND use.b = ?", sql)
	})

	t.Run("mixed", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
			Select: sqlgen.Columns("users.id"),
			Where: sqlgen.Where{
				{Key: "users.a", Value: 1},
				{Key: "and__users.b", Value: 2},
				{Key: "or__users.c", Value: 3},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.id FROM users AS use WHERE use.a = ? AND use.b = ? OR use.c = ?", sql)
	})
}

// TestBuildStructuredConditions tests the typed condition values as an
// alternative to DSL keys.
func TestBuildStructuredConditions(t *testing.T) {
	t.Parallel()

	sql, params, err := sqlgen.Build(&sqlgen.Query{
		Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
		Select: sqlgen.Columns("users.id"),
		Conditions: []sqlgen.Condition{
			sqlgen.Comparison{Table: "users", Field: "age", Op: sqlgen.OpGE, Value: 18},
			sqlgen.NullCheck{Table: "users", Field: "deleted_at"},
			sqlgen.SetMembership{Table: "users", Field: "role", Values: []any{"admin", "staff"}, Connect: sqlgen.Or},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT use.id FROM users AS use WHERE use.age >= ? AND use.deleted_at IS NULL OR use.role IN (?, ?)", sql)
	assert.Equal(t, []any{18, "admin", "staff"}, params)
}

// TestBuildWhereThenConditions tests that DSL entries render before
// structured conditions.
func TestBuildWhereThenConditions(t *testing.T) {
	t.Parallel()

	sql, params, err := sqlgen.Build(&sqlgen.Query{
		Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
		Select: sqlgen.Columns("users.id"),
		Where:  sqlgen.Where{{Key: "users.active", Value: true}},
		Conditions: []sqlgen.Condition{
			sqlgen.Comparison{Table: "users", Field: "age", Op: sqlgen.OpGE, Value: 21, Connect: sqlgen.Or},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT use.id FROM users AS use WHERE use.active = ? OR use.age >= ?", sql)
	assert.Equal(t, []any{true, 21}, params)
}

// TestBuildJoins tests join kinds, deduplication, via-chains and
// self-joins.
func TestBuildJoins(t *testing.T) {
	t.Parallel()

	newTables := func() []*sqlgen.Table {
		users := sqlgen.NewTable("users").Relation("orders", "id", "user_id")
		orders := sqlgen.NewTable("orders").RelationTo("items", "order_items", "id", "order_id")
		return []*sqlgen.Table{users, orders}
	}

	t.Run("left", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: newTables(),
			Select: sqlgen.Columns("users.id"),
			Joins:  []sqlgen.Join{{Relation: "orders", Kind: sqlgen.LeftJoin}},
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.id FROM users AS use LEFT JOIN orders AS ord ON use.id = ord.user_id", sql)
	})

	t.Run("right", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: newTables(),
			Select: sqlgen.Columns("users.id"),
			Joins:  []sqlgen.Join{{Relation: "orders", Kind: sqlgen.RightJoin}},
		})
		require.NoError(t, err)
		assert.Contains(t, sql, "RIGHT JOIN orders AS ord")
	})

	t.Run("full", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: newTables(),
			Select: sqlgen.Columns("users.id"),
			Joins:  []sqlgen.Join{{Relation: "orders", Kind: sqlgen.FullJoin}},
		})
		require.NoError(t, err)
		assert.Contains(t, sql, "FULL OUTER JOIN orders AS ord")
	})

	t.Run("duplicates_collapse", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: newTables(),
			Select: sqlgen.Columns("users.id"),
			Joins:  sqlgen.Relations("orders", "orders", "orders"),
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.id FROM users AS use INNER JOIN orders AS ord ON use.id = ord.user_id", sql)
	})

	t.Run("via_chain", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: newTables(),
			Select: sqlgen.Columns("users.id"),
			Joins: []sqlgen.Join{
				{Relation: "items", Via: []sqlgen.ViaStep{{Relation: "orders"}}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.id FROM users AS use INNER JOIN orders AS ord ON use.id = ord.user_id INNER JOIN order_items AS orde ON ord.id = orde.order_id", sql)
	})

	t.Run("via_chain_dedup", func(t *testing.T) {
		t.Parallel()

		via := sqlgen.Join{Relation: "items", Via: []sqlgen.ViaStep{{Relation: "orders"}}}
		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: newTables(),
			Select: sqlgen.Columns("users.id"),
			Joins:  []sqlgen.Join{via, via},
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.id FROM users AS use INNER JOIN orders AS ord ON use.id = ord.user_id INNER JOIN order_items AS orde ON ord.id = orde.order_id", sql)
	})

	t.Run("via_reuses_joined_intermediate", func(t *testing.T) {
		t.Parallel()

		joins := append(sqlgen.Relations("orders"),
			sqlgen.Join{Relation: "items", Via: []sqlgen.ViaStep{{Relation: "orders"}}})
		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: newTables(),
			Select: sqlgen.Columns("users.id"),
			Joins:  joins,
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.id FROM users AS use INNER JOIN orders AS ord ON use.id = ord.user_id INNER JOIN order_items AS orde ON ord.id = orde.order_id", sql)
	})

	t.Run("self_join_gets_fresh_alias", func(t *testing.T) {
		t.Parallel()

		users := sqlgen.NewTable("users").Relation("orders", "id", "user_id")
		orders := sqlgen.NewTable("orders").RelationTo("user", "users", "user_id", "id")
		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users, orders},
			Select: sqlgen.Columns("users.id"),
			Joins: []sqlgen.Join{
				{Relation: "user", Via: []sqlgen.ViaStep{{Relation: "orders"}}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.id FROM users AS use INNER JOIN orders AS ord ON use.id = ord.user_id INNER JOIN users AS user ON ord.user_id = user.id", sql)
	})

	t.Run("source_narrows_ambiguity", func(t *testing.T) {
		t.Parallel()

		users := sqlgen.NewTable("users").Relation("offers", "id", "user_id")
		vendors := sqlgen.NewTable("vendors").Relation("offers", "id", "vendor_id")
		offers := sqlgen.NewTable("offers")
		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users, vendors, offers},
			Select: sqlgen.Columns("users.id"),
			Joins:  []sqlgen.Join{{Relation: "offers", Source: "users"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.id FROM users AS use INNER JOIN offers AS off ON use.id = off.user_id", sql)
	})
}

// TestBuildJoinErrors tests unresolvable and ambiguous join requests.
func TestBuildJoinErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown_relation", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
			Select: sqlgen.Columns("users.id"),
			Joins:  sqlgen.Relations("ghosts"),
		})
		require.Error(t, err)
		assert.True(t, sqlgen.IsRelationNotFound(err))
		assert.ErrorContains(t, err, `relation "ghosts" not found on any table`)
	})

	t.Run("target_not_in_query", func(t *testing.T) {
		t.Parallel()

		users := sqlgen.NewTable("users").Relation("orders", "id", "user_id")
		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users},
			Select: sqlgen.Columns("users.id"),
			Joins:  sqlgen.Relations("orders"),
		})
		require.Error(t, err)
		assert.True(t, sqlgen.IsRelationNotFound(err))
		assert.ErrorContains(t, err, `targets table "orders", which is not in the query`)
	})

	t.Run("ambiguous_relation", func(t *testing.T) {
		t.Parallel()

		users := sqlgen.NewTable("users").Relation("items", "id", "user_id")
		vendors := sqlgen.NewTable("vendors").Relation("items", "id", "vendor_id")
		items := sqlgen.NewTable("items")
		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users, vendors, items},
			Select: sqlgen.Columns("items.id"),
			Joins:  sqlgen.Relations("items"),
		})
		require.Error(t, err)
		assert.True(t, sqlgen.IsAmbiguousRelation(err))
		assert.True(t, errors.Is(err, sqlgen.ErrAmbiguousRelation))
		assert.ErrorContains(t, err, `relation "items" is ambiguous: declared by users, vendors`)
	})

	t.Run("unknown_via_hop", func(t *testing.T) {
		t.Parallel()

		users := sqlgen.NewTable("users").Relation("orders", "id", "user_id")
		orders := sqlgen.NewTable("orders")
		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users, orders},
			Select: sqlgen.Columns("users.id"),
			Joins: []sqlgen.Join{
				{Relation: "ghosts", Via: []sqlgen.ViaStep{{Relation: "orders"}}},
			},
		})
		require.Error(t, err)
		assert.True(t, sqlgen.IsRelationNotFound(err))
		assert.ErrorContains(t, err, `relation "ghosts" not found on table "orders"`)
	})

	t.Run("source_without_relation", func(t *testing.T) {
		t.Parallel()

		users := sqlgen.NewTable("users").Relation("orders", "id", "user_id")
		orders := sqlgen.NewTable("orders")
		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users, orders},
			Select: sqlgen.Columns("users.id"),
			Joins:  []sqlgen.Join{{Relation: "orders", Source: "orders"}},
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, `relation "orders" not found on table "orders"`)
	})
}

// TestBuildSelectShapes tests projections: aggregates, DISTINCT,
// aliases, wildcards and raw pass-through.
func TestBuildSelectShapes(t *testing.T) {
	t.Parallel()

	users := func() *sqlgen.Table { return sqlgen.NewTable("users") }

	t.Run("aggregate_with_alias", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users()},
			Select: []sqlgen.SelectItem{sqlgen.Column("users", "age").Aggregate(sqlgen.Avg).Named("avg_age")},
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT AVG(use.age) AS avg_age FROM users AS use", sql)
	})

	t.Run("count_distinct", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users()},
			Select: []sqlgen.SelectItem{sqlgen.Column("users", "country").Aggregate(sqlgen.CountDistinct).Named("countries")},
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT COUNT(DISTINCT use.country) AS countries FROM users AS use", sql)
	})

	t.Run("distinct_column", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users()},
			Select: []sqlgen.SelectItem{{Table: "users", Field: "country", Distinct: true}},
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT DISTINCT use.country FROM users AS use", sql)
	})

	t.Run("wildcard", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users()},
			Select: sqlgen.Columns("users.*"),
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.* FROM users AS use", sql)
	})

	t.Run("raw_expressions_pass_through", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users()},
			Select: sqlgen.Columns("COUNT(*)", "NOW() AS now"),
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT COUNT(*), NOW() AS now FROM users AS use", sql)
	})

	t.Run("raw_unknown_table_passes_through", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users()},
			Select: sqlgen.Columns("audit.id"),
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT audit.id FROM users AS use", sql)
	})

	t.Run("structured_unknown_table_errors", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users()},
			Select: []sqlgen.SelectItem{sqlgen.Column("ghosts", "id")},
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, `unknown table "ghosts" in select column`)
	})

	t.Run("structured_tableless_in_multi_table_query_errors", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users(), sqlgen.NewTable("orders")},
			Select: []sqlgen.SelectItem{sqlgen.Column("", "name")},
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, "needs a table in a multi-table query")
	})

	t.Run("empty_item_errors", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users()},
			Select: []sqlgen.SelectItem{{}},
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, "empty select column")
	})
}

// TestBuildGroupOrderLimit tests the trailing clauses and their fixed
// order.
func TestBuildGroupOrderLimit(t *testing.T) {
	t.Parallel()

	t.Run("full_tail", func(t *testing.T) {
		t.Parallel()

		users := sqlgen.NewTable("users").Relation("orders", "id", "user_id")
		orders := sqlgen.NewTable("orders")
		sql, params, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{users, orders},
			Select: []sqlgen.SelectItem{
				sqlgen.Column("users", "name"),
				sqlgen.Column("orders", "total").Aggregate(sqlgen.Sum).Named("total_spent"),
			},
			Joins:   sqlgen.Relations("orders"),
			GroupBy: sqlgen.Groups("users.name"),
			OrderBy: sqlgen.Orders("total_spent DESC"),
			Limit:   sqlgen.Limit(10),
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.name, SUM(ord.total) AS total_spent FROM users AS use INNER JOIN orders AS ord ON use.id = ord.user_id GROUP BY use.name ORDER BY total_spent DESC LIMIT 10", sql)
		assert.Empty(t, params)
	})

	t.Run("multiple_columns", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables:  []*sqlgen.Table{sqlgen.NewTable("users")},
			Select:  sqlgen.Columns("users.id"),
			GroupBy: sqlgen.Groups("users.country", "users.city"),
			OrderBy: sqlgen.Orders("users.country ASC", "users.city DESC"),
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.id FROM users AS use GROUP BY use.country, use.city ORDER BY use.country ASC, use.city DESC", sql)
	})

	t.Run("structured_order", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables:  []*sqlgen.Table{sqlgen.NewTable("users")},
			Select:  sqlgen.Columns("users.id"),
			OrderBy: []sqlgen.OrderItem{{Table: "users", Field: "name", Dir: sqlgen.Desc}},
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.id FROM users AS use ORDER BY use.name DESC", sql)
	})

	t.Run("limit_zero", func(t *testing.T) {
		t.Parallel()

		sql, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
			Select: sqlgen.Columns("users.id"),
			Limit:  sqlgen.Limit(0),
		})
		require.NoError(t, err)
		assert.Equal(t, "SELECT use.id FROM users AS use LIMIT 0", sql)
	})

	t.Run("negative_limit", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
			Select: sqlgen.Columns("users.id"),
			Limit:  sqlgen.Limit(-5),
		})
		require.Error(t, err)
		assert.True(t, sqlgen.IsInvalidLimit(err))
		assert.ErrorContains(t, err, "invalid limit -5")
	})
}

// TestBuildEmptyInput tests rejection of queries missing tables or
// projections.
func TestBuildEmptyInput(t *testing.T) {
	t.Parallel()

	t.Run("nil_query", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, sqlgen.ErrNoTables))
		assert.True(t, sqlgen.IsEmptyInput(err))
	})

	t.Run("no_tables", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{Select: sqlgen.Columns("id")})
		require.Error(t, err)
		assert.True(t, errors.Is(err, sqlgen.ErrNoTables))
	})

	t.Run("empty_select", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{Tables: []*sqlgen.Table{sqlgen.NewTable("users")}})
		require.Error(t, err)
		assert.True(t, errors.Is(err, sqlgen.ErrEmptySelect))
		assert.True(t, sqlgen.IsEmptyInput(err))
	})

	t.Run("nil_table_entry", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{nil},
			Select: sqlgen.Columns("id"),
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, "table without a name")
	})

	t.Run("unnamed_table", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{sqlgen.NewTable("")},
			Select: sqlgen.Columns("id"),
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, "table without a name")
	})
}

// TestBuildConditionErrors tests condition failures surfacing from
// Build.
func TestBuildConditionErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown_table", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
			Select: sqlgen.Columns("users.id"),
			Where:  sqlgen.Where{{Key: "ghosts.id", Value: 1}},
		})
		require.Error(t, err)
		assert.True(t, sqlgen.IsMalformedCondition(err))
		assert.ErrorContains(t, err, `unknown table "ghosts"`)
	})

	t.Run("tableless_in_multi_table_query", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{sqlgen.NewTable("users"), sqlgen.NewTable("orders")},
			Select: sqlgen.Columns("users.id"),
			Where:  sqlgen.Where{{Key: "active", Value: true}},
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, "field without a table in a multi-table query")
	})

	t.Run("nil_condition", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables:     []*sqlgen.Table{sqlgen.NewTable("users")},
			Select:     sqlgen.Columns("users.id"),
			Conditions: []sqlgen.Condition{nil},
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, "nil condition")
	})

	t.Run("comparison_with_sequence_operator", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
			Select: sqlgen.Columns("users.id"),
			Conditions: []sqlgen.Condition{
				sqlgen.Comparison{Table: "users", Field: "id", Op: sqlgen.OpIn, Value: 1},
			},
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, `operator "in" takes a single operand`)
	})

	t.Run("missing_field", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
			Select: sqlgen.Columns("users.id"),
			Conditions: []sqlgen.Condition{
				sqlgen.Comparison{Table: "users", Op: sqlgen.OpEQ, Value: 1},
			},
		})
		require.Error(t, err)
		assert.ErrorContains(t, err, "missing field name")
	})

	t.Run("empty_structured_set", func(t *testing.T) {
		t.Parallel()

		_, _, err := sqlgen.Build(&sqlgen.Query{
			Tables: []*sqlgen.Table{sqlgen.NewTable("users")},
			Select: sqlgen.Columns("users.id"),
			Conditions: []sqlgen.Condition{
				sqlgen.SetMembership{Table: "users", Field: "id"},
			},
		})
		require.Error(t, err)
		assert.True(t, sqlgen.IsMalformedCondition(err))
		assert.ErrorContains(t, err, "non-empty sequence")
	})
}

// TestBuildDoesNotMutateInputs tests that compiling leaves the query
// and its tables untouched.
func TestBuildDoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	users := sqlgen.NewTable("users").Relation("orders", "id", "user_id")
	orders := sqlgen.NewTable("orders")
	q := &sqlgen.Query{
		Tables: []*sqlgen.Table{users, orders},
		Select: sqlgen.Columns("users.name", "orders.total"),
		Joins:  sqlgen.Relations("orders"),
		Where:  sqlgen.Where{{Key: "users.active", Value: true}},
	}

	sql1, params1, err := sqlgen.Build(q)
	require.NoError(t, err)
	sql2, params2, err := sqlgen.Build(q)
	require.NoError(t, err)

	assert.Equal(t, sql1, sql2)
	assert.Equal(t, params1, params2)
	assert.Empty(t, users.Alias)
	assert.Empty(t, orders.Alias)
	assert.Len(t, q.Joins, 1)
}
