package ingest

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/tailspect/tailspect/internal/extract"
	"github.com/tailspect/tailspect/internal/record"
)

// Appender receives extracted records in source order. The store satisfies it
// directly; the application wraps it to notify the filtered view on each
// append.
type Appender interface {
	Append(*record.Record) int
}

// Pipeline turns raw lines from one source into records. Bulk loading fans
// extraction out across workers; everything else runs strictly sequentially,
// one line at a time, so record order always matches input order.
type Pipeline struct {
	chain    *extract.Chain
	sink     Appender
	sourceID string
	filename string

	line     atomic.Int64
	encoding atomic.Int64
}

// NewPipeline builds a pipeline for one source. The filename is stamped onto
// every record as a field before extraction runs; for non-file sources it is
// a label such as "stdin" or "stderr".
func NewPipeline(chain *extract.Chain, sink Appender, filename string) *Pipeline {
	return &Pipeline{
		chain:    chain,
		sink:     sink,
		sourceID: uuid.NewString(),
		filename: filename,
	}
}

// SourceID returns the generated id stamped on this pipeline's records.
func (p *Pipeline) SourceID() string { return p.sourceID }

// EncodingIssues returns how many lines contained invalid UTF-8 and were
// decoded lossily.
func (p *Pipeline) EncodingIssues() int64 { return p.encoding.Load() }

// AppendLine extracts one raw line and appends the record to the sink,
// returning its store index.
func (p *Pipeline) AppendLine(raw string) int {
	return p.sink.Append(p.extract(raw, int(p.line.Add(1))))
}

// extract builds the record for one line. Safe for concurrent use by bulk
// workers; the line number is passed in rather than taken from the counter.
func (p *Pipeline) extract(raw string, lineNo int) *record.Record {
	clean := strings.ToValidUTF8(raw, "�")
	if clean != raw {
		p.encoding.Add(1)
	}
	rec := record.New(clean)
	rec.SourceID = p.sourceID
	rec.Set("filename", p.filename)
	rec.Set("line_number", strconv.Itoa(lineNo))
	p.chain.Run(clean, rec)
	return rec
}
