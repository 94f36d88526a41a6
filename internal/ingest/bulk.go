package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"

	"github.com/tailspect/tailspect/internal/record"
)

// BulkLoad extracts lines in parallel and appends the records in input order,
// returning their store indices. Extraction latency varies per line, so the
// fan-in is by index-addressed slot rather than an unordered merge. The first
// line is extracted before the workers start: stateful extractors (csv header
// detection) must see it first.
func (p *Pipeline) BulkLoad(ctx context.Context, lines []string) []int {
	if len(lines) == 0 {
		return nil
	}
	base := p.line.Add(int64(len(lines))) - int64(len(lines))

	slots := make([]*record.Record, len(lines))
	slots[0] = p.extract(lines[0], int(base)+1)

	workers := runtime.GOMAXPROCS(0)
	if workers > len(lines)-1 {
		workers = len(lines) - 1
	}
	var next atomic.Int64
	next.Store(1)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= len(lines) || ctx.Err() != nil {
					return
				}
				slots[i] = p.extract(lines[i], int(base)+i+1)
			}
		}()
	}
	wg.Wait()

	indices := make([]int, 0, len(lines))
	for _, rec := range slots {
		if rec == nil {
			break
		}
		indices = append(indices, p.sink.Append(rec))
	}
	return indices
}

// LoadFile bulk-loads an existing file and returns the byte offset a tailer
// should continue from. Files ending in .zst are decompressed transparently;
// their returned offset is -1 since a compressed stream cannot be tailed.
func (p *Pipeline) LoadFile(ctx context.Context, path string) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var src io.Reader = file
	offset := int64(-1)
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(file)
		if err != nil {
			return 0, fmt.Errorf("open %s: %w", path, err)
		}
		defer dec.Close()
		src = dec
	} else {
		info, err := file.Stat()
		if err != nil {
			return 0, fmt.Errorf("stat %s: %w", path, err)
		}
		offset = info.Size()
		src = io.LimitReader(file, offset)
	}

	var lines []string
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	p.BulkLoad(ctx, lines)
	return offset, nil
}
