// Package clf parses and re-emits access-log lines in the Combined Log
// Format and filters records by date.
package clf

import (
	"errors"
	"fmt"
	"regexp"
)

// Combined Log Format example:
// 127.0.0.1 - frank [10/Oct/2000:13:55:36 -0700] "GET /apache_pb.gif HTTP/1.0" 200 2326 "http://example.com/start.html" "Mozilla/4.08"
var lineRe = regexp.MustCompile(`^([^ ]*) ([^ ]*) ([^ ]*) \[([^\]]*)\] "([^"]*)" ([^ ]*) ([^ ]*) "([^"]*)" "(.*)"$`)

// ErrMalformedLine is returned for lines that do not match the Combined Log
// Format over their entire length.
var ErrMalformedLine = errors.New("line does not match combined log format")

// Record holds the nine ordered fields of one access-log line. The host and
// referrer fields are rewritten in place before the record is emitted.
type Record struct {
	Host      string
	Ident     string
	AuthUser  string
	Timestamp string
	Request   string
	Status    string
	Bytes     string
	Referrer  string
	UserAgent string
}

// Parse matches one input line (without its trailing newline) against the
// Combined Log Format grammar.
func Parse(line string) (*Record, error) {
	m := lineRe.FindStringSubmatch(line)
	if m == nil {
		return nil, ErrMalformedLine
	}
	return &Record{
		Host:      m[1],
		Ident:     m[2],
		AuthUser:  m[3],
		Timestamp: m[4],
		Request:   m[5],
		Status:    m[6],
		Bytes:     m[7],
		Referrer:  m[8],
		UserAgent: m[9],
	}, nil
}

// String re-emits the record in the exact Combined Log Format layout.
func (r *Record) String() string {
	return fmt.Sprintf(`%s %s %s [%s] "%s" %s %s "%s" "%s"`,
		r.Host, r.Ident, r.AuthUser, r.Timestamp, r.Request,
		r.Status, r.Bytes, r.Referrer, r.UserAgent)
}
