package referrer

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type SanitizerSuite struct {
	suite.Suite
	sanitizer *Sanitizer
	logs      *observer.ObservedLogs
}

func (s *SanitizerSuite) SetupTest() {
	core, logs := observer.New(zap.WarnLevel)
	s.logs = logs

	var err error
	s.sanitizer, err = NewSanitizer(DefaultTables(), zap.New(core))
	s.Require().NoError(err)
}

func (s *SanitizerSuite) TestOpaquePlaceholderUnchanged() {
	s.Equal("-", s.sanitizer.Sanitize("-"))
	s.Equal("", s.sanitizer.Sanitize(""))
}

func (s *SanitizerSuite) TestNoQueryUnchanged() {
	s.Equal("http://example.com/path", s.sanitizer.Sanitize("http://example.com/path"))
}

func (s *SanitizerSuite) TestQueryMarkerLastCharUnchanged() {
	s.Equal("http://example.com/x?", s.sanitizer.Sanitize("http://example.com/x?"))
}

func (s *SanitizerSuite) TestNonSearchQueryDiscarded() {
	s.Equal("http://example.com/x", s.sanitizer.Sanitize("http://example.com/x?a=1&b=2"))
}

func (s *SanitizerSuite) TestFragmentStrippedBeforeQueryEvaluation() {
	s.Equal("http://example.com/x", s.sanitizer.Sanitize("http://example.com/x?a=1#frag"))
	// A query marker hidden behind the fragment is discarded with it.
	s.Equal("http://example.com/x", s.sanitizer.Sanitize("http://example.com/x#frag?a=1"))
}

func (s *SanitizerSuite) TestSearchEngineKeepsQueryTerm() {
	s.Equal(
		"http://www.google.com/search?q=cats",
		s.sanitizer.Sanitize("http://www.google.com/search?q=cats&foo=bar"),
	)
}

func (s *SanitizerSuite) TestSearchEngineFragmentStripped() {
	s.Equal(
		"http://www.google.com/search?q=cats",
		s.sanitizer.Sanitize("http://www.google.com/search?q=cats&foo=bar#results"),
	)
}

func (s *SanitizerSuite) TestQueryKeyPriorityOrder() {
	// "search" precedes "q" in the priority list.
	s.Equal(
		"http://www.google.com/search?search=dogs",
		s.sanitizer.Sanitize("http://www.google.com/search?q=cats&search=dogs"),
	)
}

func (s *SanitizerSuite) TestDuplicateKeyLastOccurrenceWins() {
	s.Equal(
		"http://www.google.com/search?q=second",
		s.sanitizer.Sanitize("http://www.google.com/search?q=first&q=second"),
	)
}

func (s *SanitizerSuite) TestMissingEqualsYieldsEmptyValue() {
	s.Equal(
		"http://www.google.com/search?q=",
		s.sanitizer.Sanitize("http://www.google.com/search?q"),
	)
}

func (s *SanitizerSuite) TestExclusionForcesTruncation() {
	s.Equal(
		"http://translate.google.com/translate",
		s.sanitizer.Sanitize("http://translate.google.com/translate?q=cats"),
	)
	s.Equal(
		"http://mail.yahoo.com/inbox",
		s.sanitizer.Sanitize("http://mail.yahoo.com/inbox?q=cats"),
	)
}

func (s *SanitizerSuite) TestFragmentQueryHostUnchanged() {
	ref := "http://start.iminent.com/?ref=toolbar#q=cats"
	s.Equal(ref, s.sanitizer.Sanitize(ref))
}

func (s *SanitizerSuite) TestFragmentQueryHostPlainQueryKept() {
	// Without the trailing slash the special case does not apply and the
	// host is classified as a search engine like any other.
	s.Equal(
		"http://start.iminent.com?q=cats",
		s.sanitizer.Sanitize("http://start.iminent.com?q=cats&foo=bar"),
	)
}

func (s *SanitizerSuite) TestUnrecognizedKeysFallBackToFirstRawSegment() {
	s.Equal(
		"http://www.google.com/search?foo=bar",
		s.sanitizer.Sanitize("http://www.google.com/search?foo=bar&baz=1"),
	)
	s.Equal(1, s.logs.Len(), "expected a warning for the fallback")
}

func (s *SanitizerSuite) TestNoWarningOnNormalPaths() {
	s.sanitizer.Sanitize("http://www.google.com/search?q=cats")
	s.sanitizer.Sanitize("http://example.com/x?a=1")
	s.Equal(0, s.logs.Len())
}

func TestSanitizerSuite(t *testing.T) {
	suite.Run(t, new(SanitizerSuite))
}

func TestNewSanitizerBadPattern(t *testing.T) {
	tables := Tables{
		SearchEngines: []string{`(`},
		QueryKeys:     []string{"q"},
	}
	if _, err := NewSanitizer(tables, zap.NewNop()); err == nil {
		t.Error("NewSanitizer accepted an invalid pattern")
	}
}
