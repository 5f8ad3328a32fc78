package sqlgen

import "strings"

// JoinKind selects the JOIN keyword of a resolved join.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
)

// String returns the SQL keyword for the join kind.
func (k JoinKind) String() string {
	switch k {
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case FullJoin:
		return "FULL OUTER JOIN"
	default:
		return "INNER JOIN"
	}
}

// ViaStep is one intermediate hop of a via-chain: the relation to
// follow and the kind of the JOIN clause it materializes.
type ViaStep struct {
	Relation string
	Kind     JoinKind
}

// Join requests one join. Relation names the relation whose target
// becomes the joined table. Source optionally names the declaring table
// when the relation name alone would be ambiguous. Via lists
// intermediate hops walked before Relation resolves; a hop may
// introduce a table that is not part of the query's table list.
type Join struct {
	Relation string
	Source   string
	Kind     JoinKind
	Via      []ViaStep
}

// Relations builds direct join requests from bare relation names.
func Relations(names ...string) []Join {
	joins := make([]Join, len(names))
	for i, name := range names {
		joins[i] = Join{Relation: name}
	}
	return joins
}

// ResolvedJoin is one concrete JOIN clause: the target table, the join
// kind, and the two alias.column sides of its ON condition. Both
// aliases exist in the alias map before the join is appended.
type ResolvedJoin struct {
	Table      string
	Kind       JoinKind
	LeftAlias  string
	LeftCol    string
	RightAlias string
	RightCol   string
}

// joinKey identifies one join request for deduplication: the resolved
// target table plus the owner-qualified relation chain that reached it.
type joinKey struct {
	table string
	path  string
}

// resolveJoins expands the query's join requests, in request order,
// into the compilation's resolved join list.
func (c *compilation) resolveJoins(joins []Join) error {
	for _, j := range joins {
		if err := c.resolveJoin(j); err != nil {
			return err
		}
	}
	return nil
}

// resolveJoin walks one request: intermediate via hops first, then the
// final relation whose target becomes the joined table. Duplicate
// requests are dropped, keeping the first occurrence's position.
func (c *compilation) resolveJoin(j Join) error {
	hops := make([]ViaStep, 0, len(j.Via)+1)
	hops = append(hops, j.Via...)
	hops = append(hops, ViaStep{Relation: j.Relation, Kind: j.Kind})

	var (
		curName  string // table the next relation resolves against
		curAlias string
		owner    string   // declaring table of the first hop
		chain    []string // relation names walked, for the dedup key
	)
	for i, hop := range hops {
		var attr JoinAttribute
		if i == 0 {
			from, a, err := c.lookupRelation(hop.Relation, j.Source)
			if err != nil {
				return err
			}
			attr = a
			owner = from.Name
			curName = from.Name
			curAlias, _ = c.aliases.alias(from.Name)
		} else {
			t := c.byName[curName]
			if t == nil {
				return NewRelationNotFoundErrorWithSource(hop.Relation, curName)
			}
			a, ok := t.Relations[hop.Relation]
			if !ok {
				return NewRelationNotFoundErrorWithSource(hop.Relation, curName)
			}
			attr = a
		}
		target := attr.TargetTable(hop.Relation)
		chain = append(chain, hop.Relation)

		if i < len(hops)-1 {
			// Intermediate hop: reuse the table if it is already
			// joined, otherwise materialize its join now.
			if alias, ok := c.established[target]; ok {
				curName, curAlias = target, alias
				continue
			}
			alias := c.aliasFor(target)
			c.appendJoin(ResolvedJoin{
				Table:      target,
				Kind:       hop.Kind,
				LeftAlias:  curAlias,
				LeftCol:    attr.Local,
				RightAlias: alias,
				RightCol:   attr.Remote,
			})
			c.established[target] = alias
			curName, curAlias = target, alias
			continue
		}

		key := joinKey{table: target, path: owner + ":" + strings.Join(chain, ".")}
		if c.joinKeys[key] {
			return nil
		}
		if len(j.Via) == 0 {
			// Direct request: the target must already be a member of
			// the query, and joining the same table again is the same
			// join.
			if _, ok := c.established[target]; ok {
				c.joinKeys[key] = true
				return nil
			}
			alias, ok := c.aliases.alias(target)
			if !ok {
				return NewRelationNotFoundErrorWithTarget(j.Relation, target)
			}
			c.appendJoin(ResolvedJoin{
				Table:      target,
				Kind:       hop.Kind,
				LeftAlias:  curAlias,
				LeftCol:    attr.Local,
				RightAlias: alias,
				RightCol:   attr.Remote,
			})
			c.established[target] = alias
			c.joinKeys[key] = true
			return nil
		}
		// Via-chain final hop: a new path to an already-joined table is
		// a self-join with its own alias.
		alias := c.aliasFor(target)
		if _, ok := c.established[target]; !ok {
			c.established[target] = alias
		}
		c.appendJoin(ResolvedJoin{
			Table:      target,
			Kind:       hop.Kind,
			LeftAlias:  curAlias,
			LeftCol:    attr.Local,
			RightAlias: alias,
			RightCol:   attr.Remote,
		})
		c.joinKeys[key] = true
	}
	return nil
}

// lookupRelation scans the query's tables for the one declaring the
// relation. A non-empty source restricts the scan to that table.
func (c *compilation) lookupRelation(relation, source string) (*Table, JoinAttribute, error) {
	var (
		found      *Table
		attr       JoinAttribute
		candidates []string
		seen       map[string]bool
	)
	for _, t := range c.tables {
		if source != "" && t.Name != source {
			continue
		}
		if seen[t.Name] {
			continue
		}
		a, ok := t.Relations[relation]
		if !ok {
			continue
		}
		if seen == nil {
			seen = make(map[string]bool)
		}
		seen[t.Name] = true
		if found == nil {
			found, attr = t, a
		}
		candidates = append(candidates, t.Name)
	}
	switch {
	case found == nil && source != "":
		return nil, JoinAttribute{}, NewRelationNotFoundErrorWithSource(relation, source)
	case found == nil:
		return nil, JoinAttribute{}, NewRelationNotFoundError(relation)
	case len(candidates) > 1:
		return nil, JoinAttribute{}, NewAmbiguousRelationError(relation, candidates)
	}
	return found, attr, nil
}

// aliasFor returns the alias to join the target table under: the alias
// it already holds from the table list when it is not yet joined, or a
// fresh occurrence alias otherwise.
func (c *compilation) aliasFor(target string) string {
	if _, joined := c.established[target]; !joined {
		if alias, ok := c.aliases.alias(target); ok {
			return alias
		}
	}
	var preferred string
	if t := c.byName[target]; t != nil {
		preferred = t.Alias
	}
	return c.aliases.assign(target, preferred)
}

func (c *compilation) appendJoin(j ResolvedJoin) {
	c.joins = append(c.joins, j)
}
