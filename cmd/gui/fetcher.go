package main

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"go.uber.org/zap"

	gui "github.com/grindlemire/go-gui"
)

type fetch struct {
	token gui.Token
	id    string
	done  func([]byte, error)
}

// diskFetcher resolves asset identifiers as slash-separated paths in a
// file system. Requests queue until Drain, which completes them on the
// caller's goroutine.
type diskFetcher struct {
	fsys   fs.FS
	logger *zap.Logger
	last   gui.Token
	queue  []fetch
}

func newDiskFetcher(fsys fs.FS, logger *zap.Logger) *diskFetcher {
	return &diskFetcher{fsys: fsys, logger: logger}
}

// Request implements gui.AssetFetcher.
func (f *diskFetcher) Request(id string, done func([]byte, error)) gui.Token {
	f.last++
	f.queue = append(f.queue, fetch{token: f.last, id: id, done: done})
	return f.last
}

// Pending returns the number of queued requests.
func (f *diskFetcher) Pending() int {
	return len(f.queue)
}

// Drain completes every queued request, including requests queued by the
// completions themselves, and returns how many it completed.
func (f *diskFetcher) Drain() int {
	n := 0
	for len(f.queue) > 0 {
		r := f.queue[0]
		f.queue = f.queue[1:]

		data, err := f.read(r.id)
		if err != nil {
			f.logger.Debug("asset read failed", zap.String("id", r.id), zap.Error(err))
		} else {
			f.logger.Debug("asset read", zap.String("id", r.id), zap.Int("bytes", len(data)))
		}
		r.done(data, err)
		n++
	}
	return n
}

func (f *diskFetcher) read(id string) ([]byte, error) {
	name := strings.TrimPrefix(path.Clean("/"+id), "/")
	if name == "" {
		return nil, fmt.Errorf("asset %q: empty path", id)
	}
	return fs.ReadFile(f.fsys, name)
}
