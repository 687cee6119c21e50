// Package referrer classifies referrer URLs and strips identifying query
// parameters, preserving only the search-query term of known search engines.
package referrer

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/logveil/logveil/internal/logging"
)

// This search tool embeds its query behind the fragment marker, so the query
// cannot be safely extracted; such referrers pass through unchanged.
const fragmentQueryHost = "start.iminent.com/"

// Sanitizer rewrites referrer URLs according to compiled pattern tables. It
// is safe for concurrent use; Sanitize is a pure function of the URL and the
// tables.
type Sanitizer struct {
	engines    []*regexp.Regexp
	exclusions []*regexp.Regexp
	queryKeys  []string
	logger     *zap.Logger
}

// NewSanitizer compiles the pattern tables.
func NewSanitizer(t Tables, logger *zap.Logger) (*Sanitizer, error) {
	engines, err := compileAll(t.SearchEngines)
	if err != nil {
		return nil, fmt.Errorf("search-engine patterns: %w", err)
	}
	exclusions, err := compileAll(t.Exclusions)
	if err != nil {
		return nil, fmt.Errorf("exclusion patterns: %w", err)
	}
	return &Sanitizer{
		engines:    engines,
		exclusions: exclusions,
		queryKeys:  t.QueryKeys,
		logger:     logger,
	}, nil
}

// Sanitize strips the fragment and query string from a referrer URL. For
// confirmed search-engine referrers the single query parameter most likely
// to carry the search term is kept.
func (s *Sanitizer) Sanitize(ref string) string {
	pa := strings.Index(ref, "://")
	if pa < 0 {
		// No scheme: an opaque placeholder such as "-".
		return ref
	}
	pa += 3

	if strings.HasPrefix(ref[pa:], fragmentQueryHost) {
		return ref
	}

	if ph := strings.IndexByte(ref[pa:], '#'); ph >= 0 {
		ref = ref[:pa+ph]
	}

	pq := strings.IndexByte(ref[pa:], '?')
	if pq < 0 {
		return ref
	}
	pq += pa
	if pq+1 == len(ref) {
		return ref
	}

	base := ref[pa:pq]
	if !matchAny(s.engines, base) {
		// Not a search engine: discard the whole query string.
		return ref[:pq]
	}
	if matchAny(s.exclusions, base) {
		// Looks like a search engine's domain but is a non-search subdomain.
		return ref[:pq]
	}

	// Keep the parameter most likely to be the search query, discard others.
	args := strings.Split(ref[pq+1:], "&")
	firstArg := args[0] // fallback
	values := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, _ := strings.Cut(arg, "=")
		// A repeated key overwrites the earlier value, matching the
		// reference behavior (last occurrence wins).
		values[key] = value
	}
	for _, key := range s.queryKeys {
		if value, ok := values[key]; ok {
			return ref[:pq] + "?" + key + "=" + value
		}
	}

	s.logger.Warn("no recognized query key in search-engine referrer", logging.Referrer(ref))
	return ref[:pq] + "?" + firstArg
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		compiled[i] = re
	}
	return compiled, nil
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
