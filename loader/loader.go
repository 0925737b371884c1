// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"fmt"
	"sync"

	"github.com/linuxdeepin/go-lib/log"
)

type Loader struct {
	lock    sync.Mutex
	modules map[string]Module
	order   []string
	log     *log.Logger
}

func (l *Loader) AddModule(m Module) {
	l.lock.Lock()
	defer l.lock.Unlock()

	name := m.Name()
	if _, exist := l.modules[name]; exist {
		l.log.Debug("module", name, "is already registered")
		return
	}
	l.log.Debug("register module:", name)
	l.modules[name] = m
	l.order = append(l.order, name)
}

func (l *Loader) GetModule(name string) Module {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.modules[name]
}

func (l *Loader) List() []Module {
	l.lock.Lock()
	defer l.lock.Unlock()

	modules := make([]Module, 0, len(l.order))
	for _, name := range l.order {
		modules = append(modules, l.modules[name])
	}
	return modules
}

func (l *Loader) SetLogLevel(pri log.Priority) {
	l.log.SetLogLevel(pri)

	l.lock.Lock()
	defer l.lock.Unlock()
	for _, module := range l.modules {
		module.SetLogLevel(pri)
	}
}

// EnableModules starts every registered module in registration order,
// starting declared dependencies first. A module failing to start does
// not prevent the others from starting.
func (l *Loader) EnableModules() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	started := make(map[string]bool)
	var firstErr error
	for _, name := range l.order {
		if err := l.enableModule(name, started, nil); err != nil {
			l.log.Errorf("enable module %s failed: %v", name, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (l *Loader) enableModule(name string, started map[string]bool, chain []string) error {
	if started[name] {
		return nil
	}
	module := l.modules[name]
	if module == nil {
		return fmt.Errorf("module %s is missing", name)
	}
	for _, prev := range chain {
		if prev == name {
			return fmt.Errorf("dependency circle at module %s", name)
		}
	}

	chain = append(chain, name)
	for _, dep := range module.GetDependencies() {
		if err := l.enableModule(dep, started, chain); err != nil {
			return err
		}
	}

	l.log.Info("enable module", name)
	started[name] = true
	return module.Enable(true)
}

// DisableModules stops modules in the reverse of registration order.
func (l *Loader) DisableModules() {
	l.lock.Lock()
	defer l.lock.Unlock()

	for i := len(l.order) - 1; i >= 0; i-- {
		module := l.modules[l.order[i]]
		if !module.IsEnable() {
			continue
		}
		l.log.Info("disable module", module.Name())
		if err := module.Enable(false); err != nil {
			l.log.Warningf("disable module %s failed: %v", module.Name(), err)
		}
	}
}
