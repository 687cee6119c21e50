package clf

import (
	"testing"
)

func TestParse(t *testing.T) {
	line := `203.0.113.7 - frank [10/Oct/2000:13:55:36 -0700] "GET /apache_pb.gif HTTP/1.0" 200 2326 "http://example.com/start.html" "Mozilla/4.08 [en] (Win98; I ;Nav)"`

	rec, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := Record{
		Host:      "203.0.113.7",
		Ident:     "-",
		AuthUser:  "frank",
		Timestamp: "10/Oct/2000:13:55:36 -0700",
		Request:   "GET /apache_pb.gif HTTP/1.0",
		Status:    "200",
		Bytes:     "2326",
		Referrer:  "http://example.com/start.html",
		UserAgent: "Mozilla/4.08 [en] (Win98; I ;Nav)",
	}
	if *rec != want {
		t.Errorf("Parse() = %+v, want %+v", *rec, want)
	}

	if got := rec.String(); got != line {
		t.Errorf("String() = %q, want %q", got, line)
	}
}

func TestParseEmptyFields(t *testing.T) {
	// Empty quoted fields and "-" placeholders are all valid.
	line := ` - - [] "" - - "" ""`
	rec, err := Parse(line)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if rec.Host != "" || rec.Referrer != "" {
		t.Errorf("unexpected fields: %+v", rec)
	}
	if got := rec.String(); got != line {
		t.Errorf("String() = %q, want %q", got, line)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty line", ""},
		{"too few fields", `203.0.113.7 - frank`},
		{"unterminated request quote", `203.0.113.7 - - [10/Oct/2000:13:55:36 -0700] "GET / HTTP/1.0 200 2326 "-" "-"`},
		{"missing timestamp brackets", `203.0.113.7 - - 10/Oct/2000:13:55:36 -0700 "GET / HTTP/1.0" 200 2326 "-" "-"`},
		{"missing user agent", `203.0.113.7 - - [10/Oct/2000:13:55:36 -0700] "GET / HTTP/1.0" 200 2326 "-"`},
		{"trailing garbage", `203.0.113.7 - - [10/Oct/2000:13:55:36 -0700] "GET / HTTP/1.0" 200 2326 "-" "-" extra`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.line); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.line)
			}
		})
	}
}
