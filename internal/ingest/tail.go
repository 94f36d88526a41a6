package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrTruncated reports that a tailed file shrank below the last-read offset
// while reload_on_truncate is off. The source stops; other sources keep
// running.
var ErrTruncated = errors.New("file truncated")

// TailConfig controls one tail loop.
type TailConfig struct {
	Path string
	// Offset is where reading resumes, normally the value LoadFile returned.
	Offset int64
	// ReloadOnTruncate rereads from the start when the file shrinks below
	// the offset; otherwise the tail stops with ErrTruncated.
	ReloadOnTruncate bool
}

// pollInterval backs up fsnotify: some filesystems (network mounts) deliver
// no events, and rotation can recreate the watched path between events.
const pollInterval = time.Second

// Tail follows a growing file, appending each completed line as it arrives.
// It returns when the context is cancelled, on ErrTruncated, or when the
// source becomes unreadable. The watch is on the parent directory, not the
// file's inode, so rename-and-recreate rotation keeps delivering events; a
// transiently missing path waits for the recreate instead of stopping. A file
// shrinking below the offset is never followed by a stale seek: the offset is
// reset or the tail stops.
func (p *Pipeline) Tail(ctx context.Context, cfg TailConfig) error {
	path := filepath.Clean(cfg.Path)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	offset := cfg.Offset
	if offset < 0 {
		offset = 0
	}
	var partial []byte

	for {
		n, err := p.drain(path, offset, &partial)
		switch {
		case errors.Is(err, errShrunk):
			if !cfg.ReloadOnTruncate {
				return fmt.Errorf("%s: %w", path, ErrTruncated)
			}
			offset = 0
			partial = partial[:0]
			continue
		case errors.Is(err, errMissing):
			// Rotation window; the directory watch fires on recreate.
		case err != nil:
			return err
		default:
			offset = n
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path ||
				event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		case <-ticker.C:
		}
	}
}

var (
	errShrunk  = errors.New("shrunk below offset")
	errMissing = errors.New("file missing")
)

// drain reads everything past offset, appends completed lines, and returns
// the new offset. Bytes after the final newline stay in partial until more
// arrive.
func (p *Pipeline) drain(path string, offset int64, partial *[]byte) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return offset, errMissing
		}
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() < offset {
		return 0, errShrunk
	}
	if info.Size() == offset {
		return offset, nil
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("seek %s: %w", path, err)
	}

	buf, err := io.ReadAll(file)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	offset += int64(len(buf))

	data := append(*partial, buf...)
	for {
		line, rest, found := bytes.Cut(data, []byte("\n"))
		if !found {
			break
		}
		p.AppendLine(string(bytes.TrimSuffix(line, []byte("\r"))))
		data = rest
	}
	*partial = append((*partial)[:0], data...)
	return offset, nil
}
