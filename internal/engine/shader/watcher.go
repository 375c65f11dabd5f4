package shader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/logger"
)

// Watcher reports programs whose override sources changed on disk.
type Watcher struct {
	fs      *fsnotify.Watcher
	changes chan string
	done    chan struct{}
}

// Watch starts watching the library's override directory until ctx is
// done or Close is called.
func (l *Library) Watch(ctx context.Context) (*Watcher, error) {
	if l.dir == "" {
		return nil, fmt.Errorf("shader library has no override directory")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating shader watcher: %w", err)
	}
	if err := fw.Add(l.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", l.dir, err)
	}

	w := &Watcher{
		fs:      fw,
		changes: make(chan string),
		done:    make(chan struct{}),
	}
	go w.run(ctx)

	logger.Info("watching shader overrides", zap.String("dir", l.dir))
	return w, nil
}

// Changes delivers program names. A program is queued at most once until
// it is received, so one receive may stand for several writes.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)
	defer close(w.changes)

	var pending pendingSet
	for {
		// Sending on a nil channel blocks, which disables that case.
		var out chan string
		next, ok := pending.peek()
		if ok {
			out = w.changes
		}

		select {
		case <-ctx.Done():
			w.fs.Close()
			return
		case out <- next:
			pending.pop()
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if name, ok := programName(ev.Name); ok && !pending.push(name) {
				logger.Debug("shader reload already pending", zap.String("program", name))
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("shader watcher error", zap.Error(err))
		}
	}
}

// pendingSet is a FIFO of program names without duplicates.
type pendingSet struct {
	order  []string
	queued map[string]bool
}

// push queues name and reports whether it was not already queued.
func (p *pendingSet) push(name string) bool {
	if p.queued[name] {
		return false
	}
	if p.queued == nil {
		p.queued = make(map[string]bool)
	}
	p.queued[name] = true
	p.order = append(p.order, name)
	return true
}

func (p *pendingSet) peek() (string, bool) {
	if len(p.order) == 0 {
		return "", false
	}
	return p.order[0], true
}

func (p *pendingSet) pop() {
	delete(p.queued, p.order[0])
	p.order = p.order[1:]
}

// programName maps "dir/lit.frag" to "lit".
func programName(path string) (string, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext != ".vert" && ext != ".frag" {
		return "", false
	}
	return strings.TrimSuffix(base, ext), true
}
