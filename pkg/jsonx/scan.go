package jsonx

import "strings"

// First returns the first balanced top-level object or array in s.
func First(s string) (string, bool) {
	for start := 0; start < len(s); start++ {
		if s[start] != '{' && s[start] != '[' {
			continue
		}
		if end, ok := matchClose(s, start); ok {
			return s[start : end+1], true
		}
	}
	return "", false
}

// Candidates returns every balanced top-level region in order of appearance.
func Candidates(s string) []string {
	var out []string
	for start := 0; start < len(s); start++ {
		if s[start] != '{' && s[start] != '[' {
			continue
		}
		if end, ok := matchClose(s, start); ok {
			out = append(out, s[start:end+1])
			start = end
		}
	}
	return out
}

// matchClose walks from an opening bracket and returns the index of its partner.
// Quotes only open strings inside a region, so stray quotes in surrounding prose are harmless.
// Delimiters are ASCII and never occur inside multi-byte UTF-8 sequences, so bytes are safe to scan.
func matchClose(s string, start int) (int, bool) {
	var stack []byte
	inString := false
	escape := false

	for i := start; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			continue
		}
		if inString {
			switch b {
			case '\\':
				escape = true
			case '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != b {
				return 0, false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// StripTrailingCommas removes commas that directly precede a closing brace or bracket,
// ignoring whitespace in between. String contents are left untouched.
func StripTrailingCommas(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	inString := false
	escape := false

	for i := 0; i < len(s); i++ {
		b := s[i]

		if escape {
			escape = false
			sb.WriteByte(b)
			continue
		}
		if inString {
			switch b {
			case '\\':
				escape = true
			case '"':
				inString = false
			}
			sb.WriteByte(b)
			continue
		}

		if b == '"' {
			inString = true
			sb.WriteByte(b)
			continue
		}

		if b == ',' {
			j := i + 1
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		sb.WriteByte(b)
	}
	return sb.String()
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
