package extract

import (
	"strconv"

	"github.com/valyala/fastjson"
)

// jsonExtractor turns each top-level key of a JSON object line into a field.
// Scalars become their text form; nested objects and arrays keep their raw
// JSON encoding. Lines that are not JSON objects contribute nothing.
type jsonExtractor struct {
	pool fastjson.ParserPool
}

func newJSON() Extractor {
	return &jsonExtractor{}
}

func (e *jsonExtractor) Extract(line string, out Sink) {
	p := e.pool.Get()
	defer e.pool.Put(p)

	v, err := p.Parse(line)
	if err != nil || v.Type() != fastjson.TypeObject {
		return
	}
	obj, err := v.Object()
	if err != nil {
		return
	}
	obj.Visit(func(key []byte, v *fastjson.Value) {
		out.Put(string(key), jsonText(v))
	})
}

func jsonText(v *fastjson.Value) string {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		f := v.GetFloat64()
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	case fastjson.TypeTrue:
		return "true"
	case fastjson.TypeFalse:
		return "false"
	case fastjson.TypeNull:
		return ""
	default:
		return v.String()
	}
}
