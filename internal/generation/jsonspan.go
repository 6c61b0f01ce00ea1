package generation

// firstJSONSpan locates the first balanced {...} span in text. Vendors wrap
// JSON payloads in prose or code fences, so structured tasks scan for the
// span instead of parsing the whole response. Only the first balanced span is
// ever attempted; if it fails to parse, later spans are not tried.
func firstJSONSpan(text string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range text {
		if start < 0 {
			if r == '{' {
				start = i
				depth = 1
			}
			continue
		}
		if escaped {
			escaped = false
			continue
		}
		switch r {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}
	return "", false
}
