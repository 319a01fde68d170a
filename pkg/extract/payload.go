package extract

import (
	"strings"
	"unicode"
)

type payloadKind int

const (
	payloadNone payloadKind = iota
	payloadObject
	payloadArray
)

// stripWrapping removes leading/trailing whitespace and control characters
// plus markdown code-fence wrappers around the payload.
func stripWrapping(raw string) string {
	s := strings.TrimFunc(raw, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	})
	if strings.HasPrefix(s, "```") {
		if idx := strings.IndexByte(s, '\n'); idx >= 0 {
			s = s[idx+1:]
		} else {
			s = strings.TrimPrefix(s, "```json")
			s = strings.TrimPrefix(s, "```")
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// locatePayload finds the JSON container holding the turn result. Complete
// arrays encountered before an object are skipped: they are incidental
// tool-call artifacts (dice rolls) emitted ahead of the real payload. When
// only an array exists it is returned as a last resort.
func locatePayload(text string) (string, payloadKind) {
	firstArray := ""
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '{':
			end := matchContainer(text, i)
			if end < 0 {
				// Truncated object; hand the tail to the recovery path.
				return text[i:], payloadObject
			}
			return text[i:end], payloadObject
		case '[':
			end := matchContainer(text, i)
			if end < 0 {
				if firstArray == "" {
					firstArray = text[i:]
				}
				return firstArray, payloadArray
			}
			if firstArray == "" {
				firstArray = text[i:end]
			}
			i = end - 1
		}
	}
	if firstArray != "" {
		return firstArray, payloadArray
	}
	return "", payloadNone
}

// matchContainer returns the index just past the container closing at
// text[start] ('{' or '['), honoring nested containers and string literals,
// or -1 when the container never closes.
func matchContainer(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}
