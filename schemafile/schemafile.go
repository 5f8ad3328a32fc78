// Package schemafile loads table declarations from YAML documents.
//
// A schema file declares tables, optional alias overrides, and the
// joins connecting them:
//
//	tables:
//	  - name: users
//	    alias: u
//	    joins:
//	      orders:
//	        local: id
//	        remote: user_id
//	      profiles: {}
//
// Join columns may be omitted. The loader falls back to the
// conventional "id" local column and a foreign key derived from the
// owner table name, so "users" yields "user_id". A join entry may also
// carry a "table" field when the physical target table differs from
// the join name.
package schemafile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/go-openapi/inflect"
	"gopkg.in/yaml.v3"

	sqlgen "github.com/arthurm040/SQL-generator"
	"github.com/arthurm040/SQL-generator/dialect"
)

// defaultLocalColumn is the local join column assumed when a join
// entry does not declare one.
const defaultLocalColumn = "id"

var rules = inflect.NewDefaultRuleset()

// ForeignKey returns the conventional foreign key column pointing at
// table: the singularized table name suffixed with "_id". For example,
// ForeignKey("users") returns "user_id".
func ForeignKey(table string) string {
	return rules.Singularize(table) + "_id"
}

// document is the top-level YAML shape.
type document struct {
	Tables []tableDecl `yaml:"tables"`
}

type tableDecl struct {
	Name  string              `yaml:"name"`
	Alias string              `yaml:"alias,omitempty"`
	Joins map[string]joinDecl `yaml:"joins,omitempty"`
}

type joinDecl struct {
	Local  string `yaml:"local,omitempty"`
	Remote string `yaml:"remote,omitempty"`
	Table  string `yaml:"table,omitempty"`
}

// Load reads a schema document from r and returns the declared tables
// in document order. Unknown YAML fields are rejected, so typos in
// field names fail loudly instead of being dropped.
func Load(r io.Reader) ([]*sqlgen.Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("schemafile: parsing schema: %w", err)
	}
	if len(doc.Tables) == 0 {
		return nil, errors.New("schemafile: document declares no tables")
	}

	seen := make(map[string]bool, len(doc.Tables))
	tables := make([]*sqlgen.Table, 0, len(doc.Tables))
	for i, decl := range doc.Tables {
		if decl.Name == "" {
			return nil, fmt.Errorf("schemafile: tables[%d]: name is required", i)
		}
		if !dialect.ValidIdentifier(decl.Name) {
			return nil, fmt.Errorf("schemafile: tables[%d]: invalid table name %q", i, decl.Name)
		}
		if seen[decl.Name] {
			return nil, fmt.Errorf("schemafile: tables[%d]: duplicate table %q", i, decl.Name)
		}
		seen[decl.Name] = true

		t := sqlgen.NewTable(decl.Name)
		if decl.Alias != "" {
			if !dialect.ValidIdentifier(decl.Alias) {
				return nil, fmt.Errorf("schemafile: table %s: invalid alias %q", decl.Name, decl.Alias)
			}
			t.As(decl.Alias)
		}
		for _, name := range sortedJoins(decl.Joins) {
			join := decl.Joins[name]
			if !dialect.ValidIdentifier(name) {
				return nil, fmt.Errorf("schemafile: table %s: invalid join name %q", decl.Name, name)
			}
			if join.Table != "" && !dialect.ValidIdentifier(join.Table) {
				return nil, fmt.Errorf("schemafile: table %s: join %s: invalid target table %q", decl.Name, name, join.Table)
			}
			local, remote := join.Local, join.Remote
			if local == "" {
				local = defaultLocalColumn
			}
			if remote == "" {
				remote = ForeignKey(decl.Name)
			}
			if !dialect.ValidIdentifier(local) {
				return nil, fmt.Errorf("schemafile: table %s: join %s: invalid local column %q", decl.Name, name, local)
			}
			if !dialect.ValidIdentifier(remote) {
				return nil, fmt.Errorf("schemafile: table %s: join %s: invalid remote column %q", decl.Name, name, remote)
			}
			t.RelationTo(name, join.Table, local, remote)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// LoadFile reads a schema document from the file at path.
func LoadFile(path string) ([]*sqlgen.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// sortedJoins returns the join names in a stable order so validation
// errors do not depend on map iteration.
func sortedJoins(m map[string]joinDecl) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
