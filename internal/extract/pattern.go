package extract

import (
	"fmt"
	"strings"

	"github.com/tailspect/tailspect/internal/recache"
)

// patternTemplate is a compiled line template such as
//
//	<ip> - <user> [<timestamp>] "<method> <url> <protocol>" <status> <bytes>
//
// compiled into an alternating sequence of exact literal separators and named
// capture slots. Matching walks the line: literals must match exactly, each
// slot captures up to the next literal. Slots named "_" (or unnamed) match
// but capture nothing.
type patternTemplate struct {
	lead  string
	slots []patternSlot
}

type patternSlot struct {
	name string // empty for <_>
	sep  string // literal following the slot, empty for the final slot
}

type patternExtractor struct {
	tpl *patternTemplate
}

func newPattern(src string, cache *recache.Cache) (Extractor, error) {
	if tpl, ok := cache.Template(src).(*patternTemplate); ok {
		return &patternExtractor{tpl: tpl}, nil
	}
	tpl, err := compilePattern(src)
	if err != nil {
		return nil, err
	}
	cache.PutTemplate(src, tpl)
	return &patternExtractor{tpl: tpl}, nil
}

func compilePattern(src string) (*patternTemplate, error) {
	tpl := &patternTemplate{}
	var lit strings.Builder
	rest := src
	for {
		open := strings.IndexByte(rest, '<')
		if open < 0 {
			lit.WriteString(rest)
			break
		}
		lit.WriteString(rest[:open])
		rest = rest[open+1:]
		close := strings.IndexByte(rest, '>')
		if close < 0 {
			return nil, fmt.Errorf("pattern %q: unterminated slot", src)
		}
		name := rest[:close]
		rest = rest[close+1:]
		if name == "_" {
			name = ""
		}
		if len(tpl.slots) == 0 {
			tpl.lead = lit.String()
		} else {
			tpl.slots[len(tpl.slots)-1].sep = lit.String()
		}
		lit.Reset()
		tpl.slots = append(tpl.slots, patternSlot{name: name})
	}
	if len(tpl.slots) == 0 {
		tpl.lead = lit.String()
	} else {
		tpl.slots[len(tpl.slots)-1].sep = lit.String()
	}
	return tpl, nil
}

func (e *patternExtractor) Extract(line string, out Sink) {
	fields, ok := e.tpl.match(line)
	if !ok {
		return
	}
	for _, f := range fields {
		out.Put(f.key, f.value)
	}
}

type patternField struct{ key, value string }

// match walks the template against line. Any literal mismatch aborts the
// whole match; a partial match contributes no fields.
func (t *patternTemplate) match(line string) ([]patternField, bool) {
	rest, ok := strings.CutPrefix(line, t.lead)
	if !ok {
		return nil, false
	}
	if len(t.slots) == 0 {
		return nil, rest == ""
	}

	var fields []patternField
	for i, slot := range t.slots {
		var value string
		switch {
		case slot.sep == "":
			// Final slot with no trailing literal takes the rest.
			value, rest = rest, ""
		case i == len(t.slots)-1:
			// Final literal is anchored to the end of the line.
			v, ok := strings.CutSuffix(rest, slot.sep)
			if !ok {
				return nil, false
			}
			value, rest = v, ""
		default:
			idx := strings.Index(rest, slot.sep)
			if idx < 0 {
				return nil, false
			}
			value = rest[:idx]
			rest = rest[idx+len(slot.sep):]
		}
		if slot.name != "" {
			fields = append(fields, patternField{key: slot.name, value: value})
		}
	}
	if rest != "" {
		return nil, false
	}
	return fields, true
}
