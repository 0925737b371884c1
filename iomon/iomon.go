// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package iomon provides asynchronous monitoring of textual attribute
// files plus the blocking string I/O primitives the daemon uses against
// sysfs-style attributes.
package iomon

import (
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/linuxdeepin/go-lib/log"
	"golang.org/x/sys/unix"
)

var logger = log.NewLogger("daemon/iomon")

// ErrorPolicy controls what a monitor does when reading a watched file
// fails after a change notification.
type ErrorPolicy int

const (
	// ErrorPolicyIgnore logs the failure and keeps the watch alive.
	ErrorPolicyIgnore ErrorPolicy = iota
	// ErrorPolicyRemove drops the watch on the first read failure.
	ErrorPolicyRemove
)

// Callback receives the newline-stripped content of a watched file each
// time a change is detected.
type Callback func(data string)

// Watch identifies one active file watch. A nil *Watch means no watch.
type Watch struct {
	path   string
	policy ErrorPolicy
	cb     Callback
}

func (w *Watch) Path() string {
	if w == nil {
		return ""
	}
	return w.path
}

// Monitor is the capability the switch layer consumes. The production
// implementation is FileMonitor; tests substitute a fake that feeds
// synthetic payloads.
type Monitor interface {
	Watch(path string, policy ErrorPolicy, cb Callback) (*Watch, error)
	Unwatch(w *Watch)
	ReadString(path string) (string, error)
	WriteString(path, data string) error
	CanWrite(path string) bool
}

// FileMonitor watches attribute files with fsnotify and delivers their
// content serially from a single dispatch goroutine.
type FileMonitor struct {
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	watches map[string]*Watch

	closeOnce sync.Once
	done      chan struct{}
}

var _ Monitor = (*FileMonitor)(nil)

func NewFileMonitor() (*FileMonitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	m := &FileMonitor{
		watcher: watcher,
		watches: make(map[string]*Watch),
		done:    make(chan struct{}),
	}
	go m.dispatch()
	return m, nil
}

// Watch starts monitoring path. The file must exist and be readable at
// registration time; otherwise no watch is created and an error is
// returned.
func (m *FileMonitor) Watch(path string, policy ErrorPolicy, cb Callback) (*Watch, error) {
	if _, err := readString(path); err != nil {
		return nil, err
	}
	if err := m.watcher.Add(path); err != nil {
		return nil, err
	}

	w := &Watch{path: path, policy: policy, cb: cb}
	m.mu.Lock()
	m.watches[path] = w
	m.mu.Unlock()
	logger.Debug("watching", path)
	return w, nil
}

// Unwatch stops a watch. A nil watch is a no-op, as is a watch that has
// already been removed.
func (m *FileMonitor) Unwatch(w *Watch) {
	if w == nil {
		return
	}
	m.mu.Lock()
	cur := m.watches[w.path]
	if cur == w {
		delete(m.watches, w.path)
	}
	m.mu.Unlock()
	if cur != w {
		return
	}
	if err := m.watcher.Remove(w.path); err != nil {
		logger.Debug("remove watch:", err)
	}
}

func (m *FileMonitor) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		_ = m.watcher.Close()
	})
}

func (m *FileMonitor) dispatch() {
	for {
		select {
		case <-m.done:
			return
		case ev, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Chmod) == 0 {
				continue
			}
			m.handleChange(ev.Name)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			logger.Warning("watcher error:", err)
		}
	}
}

func (m *FileMonitor) handleChange(path string) {
	m.mu.Lock()
	w := m.watches[path]
	m.mu.Unlock()
	if w == nil {
		return
	}

	data, err := readString(path)
	if err != nil {
		if w.policy == ErrorPolicyRemove {
			logger.Warningf("read %s failed, dropping watch: %v", path, err)
			m.Unwatch(w)
		} else {
			logger.Debugf("read %s failed: %v", path, err)
		}
		return
	}
	w.cb(data)
}

func (m *FileMonitor) ReadString(path string) (string, error) {
	return readString(path)
}

func (m *FileMonitor) WriteString(path, data string) error {
	return writeString(path, data)
}

func (m *FileMonitor) CanWrite(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}

func readString(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(content), "\n"), nil
}

// writeString truncates and rewrites an attribute file without creating
// it, matching how control attributes behave.
func writeString(path, data string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	_, err = f.Write([]byte(data))
	if err1 := f.Close(); err1 != nil && err == nil {
		err = err1
	}
	return err
}
