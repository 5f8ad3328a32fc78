// Package sqlgen compiles declarative query descriptions into
// parameterized SQL.
//
// A query names its tables, projected columns, joins, filters, grouping,
// ordering and limit as plain values. Build turns them into one SQL
// string plus the positional parameters its placeholders bind, in
// left-to-right order of appearance. The compiler only emits text; it
// never connects to a database.
//
// # Tables and Relations
//
// Tables declare how they connect to each other once, then get reused
// read-only across compilations:
//
//	users := sqlgen.NewTable("users").
//	    Relation("orders", "id", "user_id").
//	    Relation("profiles", "id", "user_id")
//	orders := sqlgen.NewTable("orders").
//	    Relation("order_items", "id", "order_id")
//
// Every table occurrence in a query receives a short, deterministic
// alias derived from its name ("users" becomes "use"); collisions grow
// the alias one character at a time. A preferred alias can be set with
// As.
//
// # Building Queries
//
//	sql, params, err := sqlgen.Build(&sqlgen.Query{
//	    Tables: []*sqlgen.Table{users, orders},
//	    Select: sqlgen.Columns("users.name", "orders.total"),
//	    Joins:  sqlgen.Relations("orders"),
//	    Where: sqlgen.Where{
//	        {Key: "users.active__eq", Value: true},
//	        {Key: "or__orders.total__gte", Value: 100},
//	    },
//	})
//
// produces
//
//	SELECT use.name, ord.total FROM users AS use INNER JOIN orders AS ord
//	ON use.id = ord.user_id WHERE use.active = ? OR ord.total >= ?
//
// with params [true, 100].
//
// # The Condition DSL
//
// Where keys encode [and__|or__]table.field[__operator]. Recognized
// operators: eq, ne, lt, le (lte), gt, ge (gte), like, ilike, in,
// not_in, is_null, is_not_null, between. A missing operator defaults to
// eq; a missing prefix joins with AND. Entry order is preserved in the
// emitted WHERE clause. Structured conditions (Comparison,
// SetMembership, Range, NullCheck) may be used instead of, or after,
// the DSL form.
//
// # Joins
//
// A bare relation name joins a table already listed in the query. A
// Join with Via steps walks intermediate relations first, pulling in
// tables the query does not list:
//
//	sqlgen.Join{
//	    Relation: "order_items",
//	    Via:      []sqlgen.ViaStep{{Relation: "orders", Kind: sqlgen.LeftJoin}},
//	}
//
// Duplicate join requests are dropped, keeping the first occurrence's
// position. The same table reached through two different via-paths is
// joined twice under distinct aliases.
//
// # Dialects
//
// New takes a dialect name from the dialect package and fixes the
// placeholder marker style for every statement the builder compiles:
//
//	pg := sqlgen.New(dialect.Postgres)        // $1, $2, ...
//	my := sqlgen.New(dialect.MySQL)           // ?
//
// # Caching and Observability
//
// Builders optionally cache compiled SQL text keyed by the query's
// shape (never its parameter values), count compilations, and log
// compiled statements:
//
//	b := sqlgen.New(dialect.Postgres,
//	    sqlgen.WithCache(sqlgen.NewMemoryCache()),
//	    sqlgen.WithStats(stats),
//	    sqlgen.WithDebug(slog.Default()),
//	)
package sqlgen
