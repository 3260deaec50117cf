package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/graspable/uiaudit/pkg/audit"
	"github.com/sirupsen/logrus"
)

// runWatch audits the file once, then re-audits and reprints the report on
// every change until interrupted. Events are debounced so that editors which
// write in several steps trigger a single re-audit.
func runWatch(path, format string, opts audit.Options, w io.Writer) int {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: watch init failed: %v\n", err)
		return 2
	}
	defer watcher.Close()

	// Watch the parent directory: editors replace files on save, which
	// silently drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: watch failed: %v\n", err)
		return 2
	}

	if code := auditOnce(path, format, opts, w); code != 0 {
		return code
	}

	target, err := filepath.Abs(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		return 2
	}

	var timer *time.Timer
	debounce := 300 * time.Millisecond
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || name != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logrus.WithField("event", ev.Op.String()).Debug("file changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				fmt.Fprintln(w)
				auditOnce(path, format, opts, w)
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			logrus.WithError(err).Warn("watch error")
		}
	}
}
