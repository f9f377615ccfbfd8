package specs

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a file must stay quiet before its edit is reported.
const settle = 100 * time.Millisecond

type ChangeKind int

const (
	ChangePhysics ChangeKind = iota + 1
	ChangeScene
	ChangeScript
)

func (k ChangeKind) String() string {
	switch k {
	case ChangePhysics:
		return "physics"
	case ChangeScene:
		return "scene"
	case ChangeScript:
		return "script"
	default:
		return "unknown"
	}
}

// Change is one settled edit of a physics, scene or script file.
type Change struct {
	Path string
	Kind ChangeKind
	// Name is the scene or script basename without its extension.
	Name string
}

// AffectsScene reports whether the change means scene has to be rebuilt.
// Any scene may run any script, so script edits always do.
func (c Change) AffectsScene(scene string) bool {
	switch c.Kind {
	case ChangeScene:
		return c.Name == baseName(scene)
	case ChangeScript:
		return true
	default:
		return false
	}
}

// Classify sorts a path into physics.yaml, a scene under scenes/ or a
// generator script. Anything else is not a spec change.
func Classify(path string) (Change, bool) {
	switch {
	case IsPhysicsFile(path):
		return Change{Path: path, Kind: ChangePhysics, Name: baseName(path)}, true
	case isScriptFile(path):
		return Change{Path: path, Kind: ChangeScript, Name: baseName(path)}, true
	case isSpecFile(path) && filepath.Base(filepath.Dir(path)) == "scenes":
		return Change{Path: path, Kind: ChangeScene, Name: baseName(path)}, true
	default:
		return Change{}, false
	}
}

func baseName(path string) string {
	base := filepath.Base(filepath.FromSlash(path))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Watcher reports settled edits under the watched directories. Pending
// changes are flushed once no event arrived for the settle period, so an
// editor's truncate-then-write burst becomes one Change per file, read
// after the final write.
type Watcher struct {
	watcher *fsnotify.Watcher
	Changes chan Change
	Errors  chan error
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Changes: make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// WatchDirs returns DiskDir and its scenes/ and scripts/ subdirectories.
func WatchDirs() []string {
	return []string{
		DiskDir,
		filepath.Join(DiskDir, "scenes"),
		filepath.Join(DiskDir, "scripts"),
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	pending := make(map[string]Change)
	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			change, ok := Classify(event.Name)
			if !ok {
				continue
			}
			pending[event.Name] = change
			timer.Reset(settle)
		case <-timer.C:
			for _, path := range slices.Sorted(maps.Keys(pending)) {
				select {
				case w.Changes <- pending[path]:
				case <-w.closeCh:
					return
				}
			}
			clear(pending)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}

// IsPhysicsFile reports whether path names physics.yaml.
func IsPhysicsFile(path string) bool {
	return filepath.Base(path) == PhysicsFile
}
