package sqlgen

import "strconv"

// aliasMinLen is the number of leading characters a generated alias
// starts from. Shorter table names are used whole.
const aliasMinLen = 3

// aliasMap hands out the table aliases of one compilation. Aliases are
// assigned in first-reference order and never reused, so identical
// inputs always produce identical SQL.
type aliasMap struct {
	used    map[string]bool
	byTable map[string]string // table name -> alias of its first occurrence
}

func newAliasMap() *aliasMap {
	return &aliasMap{
		used:    make(map[string]bool),
		byTable: make(map[string]string),
	}
}

// assign reserves a unique alias for one occurrence of the named table.
// A non-empty preferred alias wins unless already taken. Generated
// candidates start with the leading characters of the name, grow by one
// character per collision, and fall back to a numeric suffix on the
// full name once it is exhausted.
func (m *aliasMap) assign(name, preferred string) string {
	alias := preferred
	if alias == "" || m.used[alias] {
		alias = aliasPrefix(name)
		for n := len(alias) + 1; m.used[alias] && n <= len(name); n++ {
			alias = name[:n]
		}
		for i := 1; m.used[alias]; i++ {
			alias = name + strconv.Itoa(i)
		}
	}
	m.used[alias] = true
	if _, ok := m.byTable[name]; !ok {
		m.byTable[name] = alias
	}
	return alias
}

// alias returns the alias of the table's first occurrence.
func (m *aliasMap) alias(table string) (string, bool) {
	a, ok := m.byTable[table]
	return a, ok
}

func aliasPrefix(name string) string {
	if len(name) <= aliasMinLen {
		return name
	}
	return name[:aliasMinLen]
}
