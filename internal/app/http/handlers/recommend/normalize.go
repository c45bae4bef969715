package recommend

import (
	"fmt"
	"strconv"
	"strings"
)

// parsePrice extracts a price from whatever the metadata carries: a number,
// or a string possibly containing a currency symbol and thousands commas.
// Unparseable values come back nil, never an error; a missing price must
// not exclude a product.
func parsePrice(v interface{}) *float64 {
	switch t := v.(type) {
	case nil:
		return nil
	case float64:
		return &t
	case int:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	case string:
		s := strings.TrimSpace(t)
		s = strings.ReplaceAll(s, "$", "")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return parsePrice(fmt.Sprintf("%v", t))
	}
}

// cleanImages normalizes the images field, which may arrive as a real list,
// a Python-literal-style stringified list, or a comma-separated string. Only
// entries that look like URLs survive.
func cleanImages(v interface{}) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []string:
		return filterURLs(t)
	case []interface{}:
		items := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
		return filterURLs(items)
	case string:
		if items, ok := parseListLiteral(t); ok {
			return filterURLs(items)
		}
		parts := strings.Split(t, ",")
		out := []string{}
		for _, p := range parts {
			p = strings.Trim(p, " '")
			if strings.HasPrefix(p, "http") {
				out = append(out, p)
			}
		}
		return out
	default:
		return []string{}
	}
}

func filterURLs(items []string) []string {
	out := []string{}
	for _, s := range items {
		s = strings.TrimSpace(s)
		if strings.HasPrefix(s, "http") {
			out = append(out, s)
		}
	}
	return out
}

// parseListLiteral parses a Python-style list literal of strings, e.g.
// "['http://a', 'http://b']". Anything that is not a clean list of quoted
// strings fails.
func parseListLiteral(s string) ([]string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, false
	}
	inner := s[1 : len(s)-1]
	out := []string{}
	i := 0
	for i < len(inner) {
		for i < len(inner) && (inner[i] == ' ' || inner[i] == ',') {
			i++
		}
		if i >= len(inner) {
			break
		}
		quote := inner[i]
		if quote != '\'' && quote != '"' {
			return nil, false
		}
		end := strings.IndexByte(inner[i+1:], quote)
		if end < 0 {
			return nil, false
		}
		out = append(out, inner[i+1:i+1+end])
		i += end + 2
	}
	return out, true
}

// normalizeCategories joins list-shaped category metadata into a single
// comma-separated string, defaulting to "home" when absent.
func normalizeCategories(v interface{}) string {
	var categories string
	switch t := v.(type) {
	case []string:
		categories = strings.Join(t, ", ")
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, strings.TrimSpace(fmt.Sprintf("%v", item)))
		}
		categories = strings.Join(parts, ", ")
	case string:
		categories = t
		if strings.HasPrefix(strings.TrimSpace(t), "[") {
			if items, ok := parseListLiteral(t); ok {
				categories = strings.Join(items, ", ")
			}
		}
	}
	categories = strings.TrimSpace(categories)
	if categories == "" {
		return "home"
	}
	return categories
}

// metaString reads a metadata value as a trimmed string, "" when absent.
func metaString(md map[string]interface{}, key string) string {
	v, ok := md[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

// historyText flattens conversation turns into a "role: content" transcript.
func historyText(history []ChatTurn) string {
	lines := make([]string, 0, len(history))
	for _, t := range history {
		lines = append(lines, t.Role+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
