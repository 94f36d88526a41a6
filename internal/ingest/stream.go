package ingest

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// Stream reads lines sequentially from r until EOF or cancellation. Used for
// stdin, piped input, and subprocess output, where ordering and low per-line
// latency matter more than throughput.
func (p *Pipeline) Stream(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.AppendLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return nil
}
