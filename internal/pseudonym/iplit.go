package pseudonym

import "strings"

// Validating parsers for literal IP addresses as they appear in the host
// field of an access log. The accepted grammar is deliberately narrower than
// net.ParseIP: IPv4 octets must not carry leading zeros, IPv6 groups are
// lowercase hex without leading zeros, and at most one "::" compression is
// allowed. Anything outside the grammar is treated as a hostname.

func isIPLiteral(s string) bool {
	return isIPv4Literal(s) || isIPv6Literal(s)
}

func isIPv4Literal(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if !validOctet(p) {
			return false
		}
	}
	return true
}

// validOctet accepts a decimal number 0-255 without leading zeros.
func validOctet(p string) bool {
	if len(p) == 0 || len(p) > 3 {
		return false
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return false
		}
	}
	if len(p) > 1 && p[0] == '0' {
		return false
	}
	if len(p) == 3 {
		if p > "255" {
			return false
		}
	}
	return true
}

func isIPv6Literal(s string) bool {
	if i := strings.Index(s, "::"); i >= 0 {
		// A single compression covering the omitted groups; 1-6 groups may
		// remain on either side.
		left, right := s[:i], s[i+2:]
		if strings.Contains(right, "::") {
			return false
		}
		return validGroupRun(left, 6) && validGroupRun(right, 6)
	}

	// Full form: exactly eight colon-separated groups.
	groups := strings.Split(s, ":")
	if len(groups) != 8 {
		return false
	}
	for _, g := range groups {
		if !validGroup(g) {
			return false
		}
	}
	return true
}

// validGroupRun accepts an empty string or up to maxGroups colon-separated
// valid groups.
func validGroupRun(s string, maxGroups int) bool {
	if s == "" {
		return true
	}
	groups := strings.Split(s, ":")
	if len(groups) > maxGroups {
		return false
	}
	for _, g := range groups {
		if !validGroup(g) {
			return false
		}
	}
	return true
}

// validGroup accepts "0" or 1-4 lowercase hex digits without a leading zero.
func validGroup(g string) bool {
	if len(g) == 0 || len(g) > 4 {
		return false
	}
	for i := 0; i < len(g); i++ {
		c := g[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			return false
		}
	}
	if len(g) > 1 && g[0] == '0' {
		return false
	}
	return true
}
