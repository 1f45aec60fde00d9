package assistant

import (
	"regexp"
	"strconv"
	"strings"
)

// itemLineRe captures a material token followed by a trailing integer
// quantity, optionally joined by x / qty / quantity. Whitespace before the
// number (or the x marker) is required so material ids ending in digits,
// like "cable-12", don't lose their tail.
var itemLineRe = regexp.MustCompile(`(?i)^(.+?)(?:\s+(?:x|qty|quantity)\s*|\s+)(\d+)\s*$`)

// parseItemLine extracts a (materialToken, quantity) pair from a free-text
// item line. ok is false when no trailing integer is found.
func parseItemLine(line string) (token string, qty int, ok bool) {
	m := itemLineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", 0, false
	}
	qty, err := strconv.Atoi(m[2])
	if err != nil || qty <= 0 {
		return "", 0, false
	}
	token = strings.TrimSpace(m[1])
	if token == "" {
		return "", 0, false
	}
	return token, qty, true
}
