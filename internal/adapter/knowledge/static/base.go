// Package staticknowledge serves the decision layer's knowledge lookups
// from a YAML document, either compiled into the binary or loaded from
// disk with hot reload.
package staticknowledge

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

//go:embed kb.yaml
var embeddedKB []byte

// reloadDebounce batches the burst of filesystem events an editor emits
// for a single save into one reload.
const reloadDebounce = 200 * time.Millisecond

// Base is the built-in ports.KnowledgeBase. Lookups read a parsed
// snapshot behind a read lock; file mode swaps the snapshot whenever
// the backing document changes on disk.
type Base struct {
	mu   sync.RWMutex
	snap *snapshot

	// File mode only.
	path    string
	log     *zap.Logger
	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewEmbedded serves the knowledge base compiled into the binary.
func NewEmbedded() (*Base, error) {
	snap, err := parse(embeddedKB)
	if err != nil {
		return nil, fmt.Errorf("embedded knowledge base: %w", err)
	}
	return &Base{snap: snap}, nil
}

// NewFromFile serves path and reloads it whenever it changes on disk.
// A reload that fails to parse keeps the previous snapshot. The caller
// owns the returned Base and must Close it.
func NewFromFile(path string, log *zap.Logger) (*Base, error) {
	if log == nil {
		log = zap.NewNop()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	snap, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("knowledge base %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch knowledge base: %w", err)
	}
	// Watch the directory rather than the file itself so atomic saves,
	// which replace the inode, keep being seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch knowledge base: %w", err)
	}

	b := &Base{
		snap:    snap,
		path:    path,
		log:     log,
		watcher: watcher,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go b.watch()
	return b, nil
}

// Close stops the reload watcher. Embedded bases have nothing to stop.
func (b *Base) Close() error {
	if b.watcher == nil {
		return nil
	}
	close(b.stopCh)
	err := b.watcher.Close()
	<-b.doneCh
	return err
}

func (b *Base) watch() {
	defer close(b.doneCh)
	var pending <-chan time.Time
	for {
		select {
		case <-b.stopCh:
			return
		case ev, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != filepath.Base(b.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(reloadDebounce)
		case <-pending:
			pending = nil
			if err := b.reload(); err != nil {
				b.log.Warn("knowledge base reload failed",
					zap.String("path", b.path), zap.Error(err))
				continue
			}
			b.log.Info("knowledge base reloaded", zap.String("path", b.path))
		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			b.log.Warn("knowledge base watcher error", zap.Error(err))
		}
	}
}

func (b *Base) reload() error {
	raw, err := os.ReadFile(b.path)
	if err != nil {
		return err
	}
	snap, err := parse(raw)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.snap = snap
	b.mu.Unlock()
	return nil
}

func (b *Base) current() *snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snap
}
