// Package pipeline drives the per-record transformation: parse, filter by
// date, rewrite the host and referrer fields, emit.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/logveil/logveil/internal/clf"
	"github.com/logveil/logveil/internal/logging"
)

// HostResolver rewrites a raw host token into its pseudonym.
type HostResolver interface {
	Resolve(ctx context.Context, token string) string
}

// ReferrerSanitizer rewrites a referrer URL into its sanitized form.
type ReferrerSanitizer interface {
	Sanitize(ref string) string
}

// Stats counts per-record outcomes of one run.
type Stats struct {
	Read      int // lines read from input
	Emitted   int // records written to output
	Malformed int // lines dropped for not matching the grammar
	Filtered  int // records silently skipped by the date filter
	BadDates  int // records dropped for an unparsable date field
}

// Pipeline processes records strictly one at a time; no state about a record
// survives its emission. The resolver's cache is the only carried-forward
// state.
type Pipeline struct {
	Resolver  HostResolver
	Sanitizer ReferrerSanitizer
	Filter    *clf.DateFilter // nil disables date filtering
	Logger    *zap.Logger
}

// Run drains the input to EOF, writing one transformed line per well-formed,
// date-accepted record. Per-record problems are reported and never abort the
// run; only input/output failures do.
func (p *Pipeline) Run(ctx context.Context, in io.Reader, out io.Writer) (Stats, error) {
	// Lines are accumulated without a length cap: an oversized record must
	// not abort the run, it must simply fail the grammar like any other
	// malformed line.
	reader := bufio.NewReader(in)
	w := bufio.NewWriter(out)

	var stats Stats
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return stats, fmt.Errorf("read input: %w", readErr)
		}
		if line == "" && readErr == io.EOF {
			break
		}
		stats.Read++
		line = strings.TrimSuffix(line, "\n")
		// CRLF-terminated logs are accepted rather than dropped as
		// malformed; they are re-emitted LF-terminated.
		line = strings.TrimSuffix(line, "\r")

		rec, err := clf.Parse(line)
		if err != nil {
			stats.Malformed++
			p.Logger.Warn("cannot parse log line", logging.Line(line))
			continue
		}

		if p.Filter != nil {
			keep, parseable := p.Filter.Match(rec.Timestamp)
			if !keep {
				if parseable {
					stats.Filtered++
				} else {
					stats.BadDates++
					p.Logger.Warn("cannot parse date", logging.Timestamp(rec.Timestamp))
				}
				continue
			}
		}

		rec.Host = p.Resolver.Resolve(ctx, rec.Host)
		rec.Referrer = p.Sanitizer.Sanitize(rec.Referrer)

		if _, err := fmt.Fprintln(w, rec.String()); err != nil {
			return stats, fmt.Errorf("write record: %w", err)
		}
		stats.Emitted++
	}
	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}

	p.Logger.Debug("input drained",
		zap.Int("read", stats.Read),
		zap.Int("emitted", stats.Emitted),
		zap.Int("malformed", stats.Malformed),
		zap.Int("filtered", stats.Filtered),
		zap.Int("bad_dates", stats.BadDates),
	)
	return stats, nil
}
