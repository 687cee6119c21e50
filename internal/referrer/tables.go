package referrer

// Tables holds the ordered pattern data driving referrer classification.
// All three lists are scanned top to bottom with first-match-wins semantics,
// so more specific entries must precede broad catch-alls.
type Tables struct {
	// SearchEngines matches the authority+path of referrers whose query
	// string encodes a search query worth preserving.
	SearchEngines []string `yaml:"search_engines"`
	// Exclusions overrides SearchEngines for non-search subdomains of
	// search-engine domains (webmail, translation and the like).
	Exclusions []string `yaml:"exclusions"`
	// QueryKeys is the priority order in which query parameters are
	// considered to carry the search term.
	QueryKeys []string `yaml:"query_keys"`
}

// DefaultTables returns the built-in pattern tables, derived from the
// AWStats 7.7 search-engine database with Google Translate removed. The
// built-in engine list is abridged; a complete replacement can be supplied
// as a YAML file.
func DefaultTables() Tables {
	return Tables{
		SearchEngines: defaultSearchEngines,
		Exclusions:    defaultExclusions,
		QueryKeys:     defaultQueryKeys,
	}
}

var defaultSearchEngines = []string{
	`^www\.google\.co\.uk$`,
	`^images\.google\.co\.uk$`,
	`google\.co\.uk$`,
	`^www\.google\.com$`,
	`^images\.google\.com$`,
	`google\.com$`,
	`bing\.com`,
	`^(www\.|)yandex\.ru$`,
	`^(www\.|)yandex\.com\.tr$`,
	`^(www\.|)yandex\.ua$`,
	`^(www\.|)yandex\.kz$`,
	`^(www\.|)yandex\.com$`,
	`yandex\.`,
	`^www\.google\.de$`,
	`^images\.google\.de$`,
	`google\.de$`,
	`^www\.google\.fr$`,
	`^images\.google\.fr$`,
	`google\.fr$`,
	`^www\.google\.ca$`,
	`^images\.google\.ca$`,
	`google\.ca$`,
	`^www\.google\.es$`,
	`^images\.google\.es$`,
	`google\.es$`,
	`^www\.google\.com\.au$`,
	`^images\.google\.com\.au$`,
	`google\.com\.au$`,
	`^www\.google\.nl$`,
	`^images\.google\.nl$`,
	`google\.nl$`,
	`^www\.google\.it$`,
	`^images\.google\.it$`,
	`google\.it$`,
	`^www\.google\.pl$`,
	`^images\.google\.pl$`,
	`google\.pl$`,
	`^www\.google\.cz$`,
	`^images\.google\.cz$`,
	`google\.cz$`,
	`^www\.google\.ru$`,
	`^images\.google\.ru$`,
	`google\.ru$`,
	`^www\.google\.co\.in$`,
	`^images\.google\.co\.in$`,
	`google\.co\.in$`,
	`^www\.google\.co\.jp$`,
	`^images\.google\.co\.jp$`,
	`google\.co\.jp$`,
	`^www\.google\.com\.br$`,
	`^images\.google\.com\.br$`,
	`google\.com\.br$`,
	`babylon\.com`,
	`search\.conduit\.com`,
	`avg\.com`,
	`mywebsearch\.com`,
	`msn\.`,
	`live\.com`,
	`search\.aol\.co\.uk`,
	`searcht\.aol\.co\.uk`,
	`searcht\.aol\.com`,
	`search\.aol\.com`,
	`recherche\.aol\.fr`,
	`suche\.aol\.de`,
	`de\.aolsearch\.com`,
	`search\.aol\.`,
	`^uk\.ask\.com$`,
	`^de\.ask\.com$`,
	`tb\.ask\.com$`,
	`^images\.ask\.com$`,
	`base\.google\.`,
	`froogle\.google\.`,
	`google\.[\w.]+/products`,
	`googlecom\.com`,
	`groups\.google\.`,
	`googlee\.`,
	`maps\.google`,
	`google\.`,
	`^de\.search\.yahoo\.com$`,
	`^fr\.search\.yahoo\.com$`,
	`^uk\.search\.yahoo\.com$`,
	`^us\.search\.yahoo\.com$`,
	`^search\.yahoo\.co\.jp$`,
	`^search\.yahoo\.com$`,
	`^images\.search\.yahoo\.com$`,
	`^r\.search\.yahoo\.com$`,
	`mindset\.research\.yahoo`,
	`images\.search\.yahoo`,
	`yhs4\.search\.yahoo`,
	`search\.yahoo`,
	`yahoo`,
	`^www\.ask\.jp$`,
	`^es\.ask\.com$`,
	`^fr\.ask\.com$`,
	`^it\.ask\.com$`,
	`^nl\.ask\.com$`,
	`(^|\.)ask\.com$`,
	`zapmeta\.ch`,
	`zapmeta\.com`,
	`zapmeta\.de`,
	`zapmeta`,
	`(^|\.)go\.com`,
	`\.metasearch\.`,
	`\.wow\.com`,
	`163\.com`,
	`alltheweb\.com`,
	`altavista\.`,
	`amazon\.`,
	`aport\.ru`,
	`atlas\.cz`,
	`baidu\.com`,
	`blekko\.com`,
	`centrum\.cz`,
	`clusty\.com`,
	`daum\.net`,
	`dogpile\.com`,
	`duckduckgo`,
	`ecosia\.org`,
	`etools\.ch`,
	`excite\.`,
	`fireball\.de`,
	`go\.mail\.ru`,
	`hotbot\.`,
	`icerocket\.com`,
	`info\.co\.uk`,
	`infospace\.com`,
	`ixquick\.com`,
	`izito\.`,
	`jyxo\.(cz|com)`,
	`kvasir\.`,
	`looksmart\.`,
	`lycos\.`,
	`mamma\.`,
	`metacrawler\.`,
	`metager\.de`,
	`mysearch\.`,
	`myway\.com`,
	`najdi\.to`,
	`netscape\.`,
	`northernlight\.`,
	`o2\.pl`,
	`overture\.com`,
	`rambler\.ru`,
	`redbox\.cz`,
	`sapo\.pt`,
	`scroogle\.org`,
	`search[\w\-]+\.free\.fr`,
	`search\.bluewin\.ch`,
	`search\.bt\.com`,
	`search\.ch`,
	`search\.comcast\.net`,
	`search\.earthlink\.net`,
	`search\.goo\.ne\.jp`,
	`search\.orange\.co\.uk`,
	`search\.sky\.com`,
	`search\.terra\.`,
	`searchalot\.com`,
	`searchy\.co\.uk`,
	`semalt\.com`,
	`sensis\.com\.au`,
	`seznam\.cz`,
	`sify\.com`,
	`sogou\.com`,
	`soso\.com`,
	`start\.iminent\.com`,
	`startpage\.com`,
	`startsiden\.no`,
	`stumbleupon\.com`,
	`suche\.freenet\.de`,
	`suche\.gmx\.at`,
	`suche\.gmx\.net`,
	`suche\d?\.web\.de`,
	`szukaj\.onet\.pl`,
	`szukaj\.wp\.pl`,
	`teoma\.`,
	`tiscali\.`,
	`t-online\.de`,
	`t-online`,
	`virgilio\.it`,
	`vivisimo\.com`,
	`voila\.`,
	`webalta\.ru`,
	`webcrawler\.`,
	`websearch\.rakuten\.co\.jp`,
	`windowssearch\.com`,
	`wisenut\.com`,
	`www\.benefind\.de`,
	`www\.metasuche\.ch`,
	`www\.qwant\.com`,
	`www\.search\.com`,
	`youtube\.com`,
	`zhongsou\.com`,
	`zoeken\.nl`,
	`zoznam\.sk`,
}

var defaultExclusions = []string{
	`mail\.163\.com`,
	`babelfish\.altavista\.`,
	`mail\.google\.`,
	`translate\.google\.`,
	`code\.google\.`,
	`groups\.google\.`,
	`hotmail\.msn\.`,
	`mail\.tiscali\.`,
	`(?:picks|mail)\.yahoo\.|yahoo\.[^/]+/picks`,
	`direct\.yandex\.`,
}

// Query keys sorted roughly by likeliness of carrying the search term.
var defaultQueryKeys = []string{
	"search_for", "searchfor", "search_term", "searchstr", "searchtext", "searchWord", "search", "szukaj",
	"term", "txtsearch", "query", "find", "search_field", "Search_Keyword", "soegeord", "dotaz", "KERESES",
	"nusearch_terms", "srch", "OVKEY", "querytext", "question", "q", "stext", "string", "keyword", "keywords",
	"ask", "key", "kw", "text", "words", "word", "slowo", "s", "qry", "qkw", "qr", "q1", "qs", "qt", "as_q",
	"pattern", "p", "p1", "w", "wd", "all", "general", "highlight", "Gw", "heureka", "in", "k", "mt", "name",
	"r", "rdata", "sp-q", "st", "su",
}
