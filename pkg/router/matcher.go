// matcher.go - WebBubble route matching
//
// Matches a request path against the routes declared in a parsed
// program, in declaration order, binding `:name` segment parameters
// along the way (spec.md §4.4). Route-match results are cached by
// path under an xxhash key, grounded in the hashed-cache style used for
// aofei/air's Coffer (cache lookups keyed by a hash of the asset path
// rather than the path string itself).
package router

import (
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/ihave17bucks/webbubble/pkg/lang"
)

// Match is a successful route lookup: the matched route and the
// parameters bound from its `:name` segments.
type Match struct {
	Route  *lang.Route
	Params map[string]string
}

// Matcher holds the ordered route table built from a parsed program and
// caches path lookups. Safe for concurrent use, though spec.md §5 only
// ever calls it from the single dispatcher goroutine.
type Matcher struct {
	routes []*lang.Route

	mu    sync.Mutex
	cache map[uint64]*cacheEntry
}

type cacheEntry struct {
	match *Match // nil means "no route matches"
}

// New builds a Matcher over program's routes, preserving declaration
// order since that order is match priority (spec.md §4.4).
func New(program *lang.Program) *Matcher {
	return &Matcher{
		routes: program.Routes,
		cache:  make(map[uint64]*cacheEntry),
	}
}

// Find returns the first route matching path, or nil if none does.
func (m *Matcher) Find(path string) *Match {
	key := xxhash.Sum64String(path)

	m.mu.Lock()
	if entry, ok := m.cache[key]; ok {
		m.mu.Unlock()
		return entry.match
	}
	m.mu.Unlock()

	match := m.find(path)

	m.mu.Lock()
	m.cache[key] = &cacheEntry{match: match}
	m.mu.Unlock()

	return match
}

func (m *Matcher) find(path string) *Match {
	requestSegments := splitSegments(path)

	for _, route := range m.routes {
		if route.Path == path {
			return &Match{Route: route, Params: map[string]string{}}
		}

		patternSegments := splitSegments(route.Path)
		if len(patternSegments) != len(requestSegments) {
			continue
		}

		params := map[string]string{}
		matched := true
		for i, pattern := range patternSegments {
			if strings.HasPrefix(pattern, ":") {
				name := pattern[1:]
				params[name] = requestSegments[i]
				continue
			}
			if pattern != requestSegments[i] {
				matched = false
				break
			}
		}

		if matched {
			return &Match{Route: route, Params: params}
		}
	}

	return nil
}

func splitSegments(path string) []string {
	raw := strings.Split(path, "/")
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
