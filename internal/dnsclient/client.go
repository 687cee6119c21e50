// Package dnsclient implements forward and reverse lookups against the
// system's configured nameservers.
package dnsclient

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/miekg/dns"
	"go.uber.org/zap"

	"github.com/logveil/logveil/internal/logging"
	"github.com/logveil/logveil/internal/pseudonym"
)

const (
	resolvConfPath = "/etc/resolv.conf"

	// Lookups are issued inline while records stream through, so an
	// unresponsive nameserver must not stall the run indefinitely.
	queryTimeout = 5 * time.Second
)

// Client resolves hosts via plain DNS queries. It satisfies
// pseudonym.Lookuper.
type Client struct {
	c       *dns.Client
	servers []string
	logger  *zap.Logger
}

// New reads the system resolver configuration and returns a ready client.
func New(logger *zap.Logger) (*Client, error) {
	conf, err := dns.ClientConfigFromFile(resolvConfPath)
	if err != nil {
		return nil, fmt.Errorf("read resolver config: %w", err)
	}
	if len(conf.Servers) == 0 {
		return nil, fmt.Errorf("no nameservers in %s", resolvConfPath)
	}
	servers := make([]string, len(conf.Servers))
	for i, s := range conf.Servers {
		servers[i] = net.JoinHostPort(s, conf.Port)
	}
	return &Client{
		c:       &dns.Client{Timeout: queryTimeout},
		servers: servers,
		logger:  logger,
	}, nil
}

// LookupHost returns the address literals a hostname resolves to, querying
// A and AAAA records and following CNAME chains in the answers.
func (c *Client) LookupHost(ctx context.Context, host string) ([]string, error) {
	var addrs []string
	var lastErr error
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		in, err := c.query(ctx, host, qtype)
		if err != nil {
			lastErr = err
			continue
		}
		addrs = append(addrs, addrsFromAnswer(in.Answer)...)
	}
	if len(addrs) == 0 {
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, fmt.Errorf("no address records for %s", host)
	}
	return addrs, nil
}

// LookupAddr performs a reverse lookup for a literal IP address. The first
// PTR target becomes the primary name, further PTR targets its aliases. The
// primary name is then forward-confirmed (best effort) to populate the
// address list.
func (c *Client) LookupAddr(ctx context.Context, ip string) (*pseudonym.ReverseRecord, error) {
	arpa, err := dns.ReverseAddr(ip)
	if err != nil {
		return nil, fmt.Errorf("reverse address for %s: %w", ip, err)
	}

	in, err := c.query(ctx, arpa, dns.TypePTR)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, rr := range in.Answer {
		if ptr, ok := rr.(*dns.PTR); ok {
			names = append(names, strings.TrimSuffix(ptr.Ptr, "."))
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no PTR records for %s", ip)
	}

	rec := &pseudonym.ReverseRecord{
		Name:    names[0],
		Aliases: names[1:],
	}
	if addrs, err := c.LookupHost(ctx, rec.Name); err == nil {
		rec.Addrs = addrs
	}
	return rec, nil
}

// query asks each configured nameserver in turn until one answers
// successfully.
func (c *Client) query(ctx context.Context, name string, qtype uint16) (*dns.Msg, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), qtype)
	m.RecursionDesired = true

	var lastErr error
	for _, server := range c.servers {
		in, _, err := c.c.ExchangeContext(ctx, m, server)
		if err != nil {
			c.logger.Debug("dns exchange failed",
				logging.Server(server),
				logging.Host(name),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		if in.Rcode != dns.RcodeSuccess {
			lastErr = fmt.Errorf("query %s %s: %s",
				name, dns.TypeToString[qtype], dns.RcodeToString[in.Rcode])
			continue
		}
		return in, nil
	}
	return nil, lastErr
}

func addrsFromAnswer(answer []dns.RR) []string {
	var addrs []string
	for _, rr := range answer {
		switch rr := rr.(type) {
		case *dns.A:
			addrs = append(addrs, rr.A.String())
		case *dns.AAAA:
			addrs = append(addrs, rr.AAAA.String())
		}
	}
	return addrs
}
