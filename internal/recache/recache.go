package recache

import (
	"math/rand"
	"regexp"
	"sync"
)

const defaultCapacity = 100

// Cache memoizes compiled regular expressions keyed by their source pattern.
// Failed compilations are cached too, error included, so a bad pattern is not
// re-attempted on every line and every lookup reports the same failure. Safe
// for concurrent use.
type Cache struct {
	mu        sync.Mutex
	regexps   map[string]regexEntry
	templates map[string]any
	capacity  int
}

type regexEntry struct {
	re  *regexp.Regexp
	err error
}

// New returns a cache that holds at most capacity compiled patterns. A
// non-positive capacity uses the default.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Cache{
		regexps:   make(map[string]regexEntry),
		templates: make(map[string]any),
		capacity:  capacity,
	}
}

// Get returns the compiled form of pattern, compiling it on first use. A
// pattern that does not compile returns a nil regexp and its compile error,
// from the cache on repeat lookups.
func (c *Cache) Get(pattern string) (*regexp.Regexp, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.regexps[pattern]; ok {
		return e.re, e.err
	}
	c.evictLocked()
	re, err := regexp.Compile(pattern)
	c.regexps[pattern] = regexEntry{re: re, err: err}
	return re, err
}

// Matches reports whether text matches pattern. An invalid pattern never
// matches.
func (c *Cache) Matches(pattern, text string) bool {
	re, _ := c.Get(pattern)
	if re == nil {
		return false
	}
	return re.MatchString(text)
}

// evictLocked drops random entries until the cache is under capacity. Random
// replacement keeps the hot per-rule patterns resident with no bookkeeping.
func (c *Cache) evictLocked() {
	for len(c.regexps) >= c.capacity {
		keys := make([]string, 0, len(c.regexps))
		for k := range c.regexps {
			keys = append(keys, k)
		}
		delete(c.regexps, keys[rand.Intn(len(keys))])
	}
}

// Template returns the compiled template cached under the source pattern src,
// or nil. The cache stores templates opaquely; the pattern compiler owns the
// concrete type.
func (c *Cache) Template(src string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.templates[src]
}

// PutTemplate caches a compiled template under its source pattern.
func (c *Cache) PutTemplate(src string, tpl any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.templates[src] = tpl
}

// Len returns the number of cached patterns, valid or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.regexps)
}
