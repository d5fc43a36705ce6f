package adapter

import (
	"fmt"
	"strings"
)

// ScriptParser extracts the leading documentation block of a script file:
// the doc comment attached to the first statement, or, when the file has no
// statements at all, the doc comment at the very start of the file.
type ScriptParser interface {
	LeadingDoc(src []byte) (string, error)
}

// LeadingDocParser is a lightweight lexer implementation of ScriptParser. It
// understands shebang lines, line comments and block comments; everything
// else counts as the first statement.
type LeadingDocParser struct{}

// NewLeadingDocParser constructs a LeadingDocParser.
func NewLeadingDocParser() *LeadingDocParser {
	return &LeadingDocParser{}
}

// LeadingDoc scans src and returns the stripped body of the relevant doc
// block, or "" when the file carries none.
func (p *LeadingDocParser) LeadingDoc(src []byte) (string, error) {
	text := strings.TrimPrefix(string(src), "\uFEFF")

	if strings.HasPrefix(text, "#!") {
		if nl := strings.IndexByte(text, '\n'); nl >= 0 {
			text = text[nl+1:]
		} else {
			text = ""
		}
	}

	var firstDoc, lastDoc string

	sawStatement := false

	for i := 0; i < len(text); {
		c := text[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case strings.HasPrefix(text[i:], "//"):
			nl := strings.IndexByte(text[i:], '\n')
			if nl < 0 {
				i = len(text)
			} else {
				i += nl + 1
			}
		case strings.HasPrefix(text[i:], "/*"):
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return "", fmt.Errorf("unterminated block comment at offset %d", i)
			}

			block := text[i : i+2+end+2]
			if strings.HasPrefix(block, "/**") {
				body := stripDocBlock(block)
				if firstDoc == "" {
					firstDoc = body
				}

				lastDoc = body
			}

			i += 2 + end + 2
		default:
			sawStatement = true
			i = len(text)
		}
	}

	if sawStatement {
		return lastDoc, nil
	}

	return firstDoc, nil
}

// stripDocBlock removes the comment fences and the leading "*" gutter that
// doc blocks conventionally carry.
func stripDocBlock(block string) string {
	body := strings.TrimPrefix(block, "/**")
	body = strings.TrimSuffix(body, "*/")

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		lines[i] = strings.TrimSpace(line)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
