// Package pseudonym turns raw host tokens into stable salted-hash
// pseudonyms, merging all DNS representations of one endpoint into a single
// identity.
package pseudonym

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/logveil/logveil/internal/logging"
)

// ReverseRecord is the answer to a reverse lookup: the primary name an
// address points back to, any alias names, and the address list obtained by
// confirming the primary name.
type ReverseRecord struct {
	Name    string
	Aliases []string
	Addrs   []string
}

// Lookuper performs DNS lookups. The production implementation lives in
// internal/dnsclient; tests inject fakes.
type Lookuper interface {
	// LookupAddr performs a reverse lookup for a literal IP address.
	LookupAddr(ctx context.Context, ip string) (*ReverseRecord, error)
	// LookupHost performs a forward lookup and returns address literals.
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Resolver assigns pseudonyms of the form hash.TLD (hash.ip when no name can
// be resolved), where hash is the MD5 hex digest of the canonical name with
// the salt appended. Resolutions are serialized so that two lookups with
// overlapping equivalence classes cannot split one host across two
// pseudonyms.
type Resolver struct {
	mu     sync.Mutex
	cache  *Cache
	dns    Lookuper
	salt   string
	logger *zap.Logger
}

func NewResolver(dns Lookuper, salt string, logger *zap.Logger) *Resolver {
	return &Resolver{
		cache:  NewCache(),
		dns:    dns,
		salt:   salt,
		logger: logger,
	}
}

// Resolve returns the pseudonym for a raw host token. It never fails: any
// DNS error degrades to a hash-only pseudonym for the token alone. Repeated
// calls for a known representation perform no network I/O.
func (r *Resolver) Resolve(ctx context.Context, token string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.cache.Lookup(token); ok {
		return p
	}

	var class []string
	var canonical string

	if isIPLiteral(token) {
		rec, err := r.dns.LookupAddr(ctx, token)
		if err != nil {
			// No reverse record. Expected for plenty of client addresses,
			// so no warning.
			p := r.hash(token) + ".ip"
			r.cache.Insert(token, p)
			return p
		}
		canonical = rec.Name
		if canonical == "" {
			canonical = token
		}
		class = append(class, rec.Name)
		class = append(class, rec.Aliases...)
		class = append(class, rec.Addrs...)
		if !containsString(class, token) {
			class = append(class, token)
		}
	} else {
		addrs, err := r.dns.LookupHost(ctx, token)
		if err != nil {
			p := r.hash(token) + tldSuffix(token)
			r.cache.Insert(token, p)
			return p
		}
		canonical = token
		class = append(class, token)
		class = append(class, addrs...)
	}

	// Reuse the pseudonym of any representation seen earlier in the stream,
	// so identities discovered via different literal forms merge regardless
	// of order.
	var pseudonym string
	for _, member := range class {
		if member == token {
			continue
		}
		if p, ok := r.cache.Lookup(member); ok {
			pseudonym = p
			break
		}
	}
	if pseudonym == "" {
		pseudonym = r.hash(canonical) + tldSuffix(canonical)
	}

	for _, member := range class {
		r.cache.Insert(member, pseudonym)
	}
	r.logger.Debug("host resolved",
		logging.Host(token),
		logging.Pseudonym(pseudonym),
		zap.Int("class_size", len(class)),
	)
	return pseudonym
}

func (r *Resolver) hash(name string) string {
	sum := md5.Sum([]byte(name + r.salt))
	return hex.EncodeToString(sum[:])
}

// tldSuffix returns "." plus the last dot-separated label of name, or the
// empty string when name contains no dot.
func tldSuffix(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i:]
	}
	return ""
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
