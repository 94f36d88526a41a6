package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"sync"

	"github.com/tailspect/tailspect/internal/record"
)

// RunCommand spawns argv and streams its stdout and stderr through two
// independent pipelines, so their records carry distinct source ids and
// filename fields. When the process exits, a synthetic "EXIT: <code>" record
// with a red mark is appended through the stdout pipeline. The process is
// killed when the context is cancelled.
func RunCommand(ctx context.Context, argv []string, stdout, stderr *Pipeline) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	outPipe, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("pipe stdout: %w", err)
	}
	errPipe, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("pipe stderr: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", argv[0], err)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := stdout.Stream(ctx, outPipe); err != nil && ctx.Err() == nil {
			log.Printf("stdout of %s: %v", argv[0], err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := stderr.Stream(ctx, errPipe); err != nil && ctx.Err() == nil {
			log.Printf("stderr of %s: %v", argv[0], err)
		}
	}()
	wg.Wait()

	code := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return fmt.Errorf("wait %s: %w", argv[0], err)
		}
		code = exitErr.ExitCode()
	}
	stdout.appendExit(code)
	return nil
}

func (p *Pipeline) appendExit(code int) {
	rec := record.New(fmt.Sprintf("EXIT: %d", code))
	rec.SourceID = p.sourceID
	rec.Mark = "red"
	p.sink.Append(rec)
}
