package formatter

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/siyuan-infoblox/js-imports-order/pkg/errors"
	"github.com/siyuan-infoblox/js-imports-order/pkg/utils"
)

// debounceDelay batches the bursts of events editors emit for one save.
const debounceDelay = 100 * time.Millisecond

// watchSet tracks what a watcher follows. Directories given on the command
// line are followed recursively; a file is followed through its parent.
type watchSet struct {
	watcher *fsnotify.Watcher
	dirs    map[string]bool
	files   map[string]bool
}

// Watch re-processes source files under paths whenever they are written or
// created, until ctx is cancelled.
func (g *formatter) Watch(ctx context.Context, paths []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWatch, err)
	}
	defer func() { _ = watcher.Close() }()

	set := &watchSet{watcher: watcher, dirs: map[string]bool{}, files: map[string]bool{}}
	for _, path := range paths {
		if err := set.add(path); err != nil {
			return fmt.Errorf("%s: %w", errors.ErrMsgFailedToWatch, err)
		}
	}
	g.logger.Info(errors.InfoMsgWatching, slog.Any("paths", paths))

	pending := map[string]bool{}
	timer := time.NewTimer(debounceDelay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if event.Op&fsnotify.Create != 0 && set.dirs[filepath.Dir(event.Name)] {
				if isDir, err := utils.IsDirectory(event.Name); err == nil && isDir {
					if utils.IsWatchedDir(event.Name) {
						if err := set.addDir(event.Name); err != nil {
							g.logger.Error(errors.ErrMsgFailedToWatch, slog.String("path", event.Name), slog.Any("error", err))
						}
					}
					continue
				}
			}

			if !set.follows(event.Name, g.config.Extensions) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(debounceDelay)

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for file := range pending {
				files = append(files, file)
			}
			clear(pending)
			sort.Strings(files)

			g.logger.Debug("change detected", slog.Any("files", files))
			if err := g.reprocess(files); err != nil {
				g.logger.Error(errors.InfoMsgErrorProcessing, slog.Any("error", err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.logger.Error("watcher error", slog.Any("error", err))
		}
	}
}

func (s *watchSet) add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	isDir, err := utils.IsDirectory(abs)
	if err != nil {
		return err
	}
	if isDir {
		return s.addDir(abs)
	}
	s.files[abs] = true
	return s.watcher.Add(filepath.Dir(abs))
}

// addDir adds a directory and its subdirectories to the watcher.
func (s *watchSet) addDir(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && !utils.IsWatchedDir(path) {
			return filepath.SkipDir
		}
		s.dirs[path] = true
		return s.watcher.Add(path)
	})
}

// follows reports whether an event on name should trigger processing.
func (s *watchSet) follows(name string, extensions []string) bool {
	if s.files[name] {
		return true
	}
	return s.dirs[filepath.Dir(name)] && utils.IsSourceFile(filepath.Base(name), extensions)
}

// reprocess runs one watch pass. Remaining violations are already in the
// report and do not count as a failure.
func (g *formatter) reprocess(files []string) error {
	if err := g.ProcessFiles(files); err != nil && !stderrors.Is(err, errors.ErrViolationsFound) {
		return err
	}
	return nil
}
