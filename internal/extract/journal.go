package extract

import (
	"fmt"
	"regexp"

	"github.com/tailspect/tailspect/internal/recache"
)

// journalPattern matches journalctl's default short output:
//
//	Aug 31 06:15:02 myhost systemd[1]: Started session.
//
// The pid bracket is optional (kernel messages have none).
const journalPattern = `^(?P<timestamp>[A-Z][a-z]{2} [ \d]\d \d{2}:\d{2}:\d{2}) (?P<hostname>\S+) (?P<unit>[^ \[:]+)(?:\[(?P<pid>\d+)\])?: (?P<message>.*)$`

type journalExtractor struct {
	re *regexp.Regexp
}

func newJournal(cache *recache.Cache) (Extractor, error) {
	re, err := cache.Get(journalPattern)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	return &journalExtractor{re: re}, nil
}

func (e *journalExtractor) Extract(line string, out Sink) {
	m := e.re.FindStringSubmatch(line)
	if m == nil {
		return
	}
	for i, name := range e.re.SubexpNames() {
		if name == "" || m[i] == "" {
			continue
		}
		out.Put(name, m[i])
	}
}
