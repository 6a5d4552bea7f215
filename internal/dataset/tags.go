package dataset

import "strings"

// NormalizeTag trims whitespace and wrapping quote characters from a raw
// tag. The second return is false for tags that normalize away entirely:
// empty strings and the upstream "none"/"[none]" sentinels.
func NormalizeTag(raw string) (string, bool) {
	tag := strings.TrimSpace(raw)
	tag = strings.Trim(tag, `"'`)
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", false
	}
	switch strings.ToLower(tag) {
	case "none", "[none]":
		return "", false
	}
	return tag, true
}

// ParseTags parses the multi-valued tag field into a deduplicated slice of
// normalized tags. The cleaned dataset serializes the field either as a
// pipe-delimited string or as a bracketed quoted list; both forms parse to
// the same set. A field that fits neither form yields no tags, not an error.
func ParseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "[]" || strings.EqualFold(raw, "[none]") {
		return nil
	}

	var parts []string
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") {
		parts = splitBracketedList(raw[1 : len(raw)-1])
	} else {
		parts = strings.Split(raw, "|")
	}

	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		tag, ok := NormalizeTag(p)
		if !ok || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

// splitBracketedList splits the interior of a list literal on commas that
// are not inside quotes, so tags containing commas survive intact.
func splitBracketedList(inner string) []string {
	var parts []string
	var b strings.Builder
	var quote rune
	for _, r := range inner {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				b.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ',':
			parts = append(parts, b.String())
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() > 0 {
		parts = append(parts, b.String())
	}
	return parts
}
