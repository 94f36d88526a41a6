package extract

import (
	"fmt"
	"strings"
	"sync"
)

// csvExtractor captures column headers from the first line it sees and maps
// subsequent lines onto them. The delimiter (comma or semicolon) is guessed
// from the first line. This is the one stateful extractor; bulk loading
// parses the first line before fanning out so the header capture is
// deterministic.
type csvExtractor struct {
	mu        sync.Mutex
	headers   []string
	delimiter rune
}

func newCSV() Extractor {
	return &csvExtractor{}
}

func (e *csvExtractor) Extract(line string, out Sink) {
	e.mu.Lock()
	defer e.mu.Unlock()

	parts := e.split(line)
	if e.headers == nil {
		e.headers = parts
		return
	}
	for i, part := range parts {
		key := fmt.Sprintf("header_%d", i)
		if i < len(e.headers) {
			key = e.headers[i]
		}
		out.Put(key, part)
	}
}

// split separates line on the delimiter, honoring double quotes (which group
// delimiters and are stripped) and backslash escapes outside quotes.
func (e *csvExtractor) split(line string) []string {
	if e.delimiter == 0 {
		e.delimiter = ','
		for _, c := range line {
			if c == ',' || c == ';' {
				e.delimiter = c
				break
			}
		}
	}

	var parts []string
	var current strings.Builder
	inQuotes := false
	escaped := false
	for _, c := range line {
		switch {
		case c == '"' && !escaped:
			inQuotes = !inQuotes
		case c == e.delimiter && !inQuotes && !escaped:
			parts = append(parts, current.String())
			current.Reset()
		case c == '\\' && !inQuotes && !escaped:
			escaped = true
		default:
			escaped = false
			current.WriteRune(c)
		}
	}
	parts = append(parts, current.String())
	return parts
}
