package sqlgen

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("sqlgen: cache miss")

// Cache stores compiled statements keyed by a query fingerprint.
// Values are opaque encoded bytes, so external stores (Redis,
// Memcached, in-memory) can hold them without knowing the codec.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value stored under key, or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with an optional TTL.
	// If ttl is 0, the value does not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes the value stored under key.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes all values with the given key prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// Clear removes all values from the cache.
	Clear(ctx context.Context) error
}

// MemoryCache is a process-local Cache with optional per-entry expiry.
// The zero value is ready to use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

var _ Cache = (*MemoryCache)(nil)

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get implements Cache.
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return e.value, nil
}

// Set implements Cache.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	if m.entries == nil {
		m.entries = make(map[string]memoryEntry)
	}
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}

// Delete implements Cache.
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// DeletePrefix implements Cache.
func (m *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	m.mu.Unlock()
	return nil
}

// Clear implements Cache.
func (m *MemoryCache) Clear(_ context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

// Len returns the number of entries, including any not yet expired.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// CachedStatement is the encoded form of one compiled statement: the
// SQL text and the number of parameters its placeholders bind.
type CachedStatement struct {
	SQL        string `msgpack:"sql"`
	ParamCount int    `msgpack:"param_count"`
}

// EncodeStatement serializes a statement for cache storage.
func EncodeStatement(s CachedStatement) ([]byte, error) {
	return msgpack.Marshal(s)
}

// DecodeStatement deserializes cache bytes produced by EncodeStatement.
func DecodeStatement(data []byte) (CachedStatement, error) {
	var s CachedStatement
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return CachedStatement{}, err
	}
	return s, nil
}

// CacheKey identifies one compiled statement: every input that affects
// the emitted SQL text, in deterministic order. Parameter values are
// deliberately excluded; only operand arity matters, since it changes
// the placeholder count.
type CacheKey struct {
	Dialect string
	Tables  []string // name=alias pairs in first-reference order
	Select  []string
	Joins   []string // resolved join signatures
	Where   []string // condition shapes
	GroupBy []string
	OrderBy []string
	Limit   int // -1 when absent
}

// String returns the canonical string representation of the cache key.
func (k CacheKey) String() string {
	var sb strings.Builder
	sb.WriteString(k.Dialect)
	sb.WriteString("|t:")
	sb.WriteString(strings.Join(k.Tables, ","))
	sb.WriteString("|s:")
	sb.WriteString(strings.Join(k.Select, ","))
	sb.WriteString("|j:")
	sb.WriteString(strings.Join(k.Joins, ","))
	sb.WriteString("|w:")
	sb.WriteString(strings.Join(k.Where, ","))
	sb.WriteString("|g:")
	sb.WriteString(strings.Join(k.GroupBy, ","))
	sb.WriteString("|o:")
	sb.WriteString(strings.Join(k.OrderBy, ","))
	sb.WriteString("|l:")
	sb.WriteString(strconv.Itoa(k.Limit))
	return sb.String()
}

// cacheKey fingerprints the compilation after joins are resolved and
// conditions normalized, so the key reflects the aliases and condition
// shapes the SQL text depends on.
func (c *compilation) cacheKey(q *Query) CacheKey {
	key := CacheKey{Dialect: c.b.dialect, Limit: -1}
	for _, t := range q.Tables {
		alias, _ := c.aliases.alias(t.Name)
		key.Tables = append(key.Tables, t.Name+"="+alias)
	}
	for _, item := range q.Select {
		key.Select = append(key.Select, selectKey(item))
	}
	for _, j := range c.joins {
		key.Joins = append(key.Joins, joinSignature(j))
	}
	for _, cond := range c.conds {
		key.Where = append(key.Where, conditionSignature(cond))
	}
	for _, g := range q.GroupBy {
		if g.Raw != "" {
			key.GroupBy = append(key.GroupBy, g.Raw)
		} else {
			key.GroupBy = append(key.GroupBy, conditionRef(g.Table, g.Field))
		}
	}
	for _, o := range q.OrderBy {
		if o.Raw != "" {
			key.OrderBy = append(key.OrderBy, o.Raw)
		} else {
			key.OrderBy = append(key.OrderBy, conditionRef(o.Table, o.Field)+":"+string(o.Dir))
		}
	}
	if q.Limit != nil {
		key.Limit = *q.Limit
	}
	return key
}

func selectKey(item SelectItem) string {
	if item.Raw != "" {
		return "r:" + item.Raw
	}
	distinct := "-"
	if item.Distinct {
		distinct = "d"
	}
	return strings.Join([]string{"c", item.Table, item.Field, item.Agg.String(), distinct, item.As}, ":")
}

func joinSignature(j ResolvedJoin) string {
	return j.Kind.String() + ":" + j.Table + ":" + j.LeftAlias + "." + j.LeftCol + "=" + j.RightAlias + "." + j.RightCol
}

func conditionSignature(cond Condition) string {
	switch v := cond.(type) {
	case Comparison:
		return "cmp:" + conditionRef(v.Table, v.Field) + ":" + string(v.Op) + ":" + string(v.connector())
	case SetMembership:
		op := "in"
		if v.Negated {
			op = "not_in"
		}
		return "set:" + conditionRef(v.Table, v.Field) + ":" + op + ":" + strconv.Itoa(len(v.Values)) + ":" + string(v.connector())
	case Range:
		return "rng:" + conditionRef(v.Table, v.Field) + ":" + string(v.connector())
	case NullCheck:
		op := "null"
		if v.Negated {
			op = "not_null"
		}
		return "nul:" + conditionRef(v.Table, v.Field) + ":" + op + ":" + string(v.connector())
	}
	return "?"
}
