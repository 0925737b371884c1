// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"sync"

	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
)

var loaderInitializer sync.Once
var _loader *Loader

var serviceMu sync.Mutex
var _service *dbusutil.Service

func getLoader() *Loader {
	loaderInitializer.Do(func() {
		_loader = &Loader{
			modules: make(map[string]Module),
			log:     log.NewLogger("daemon/loader"),
		}
	})
	return _loader
}

func SetService(s *dbusutil.Service) {
	serviceMu.Lock()
	_service = s
	serviceMu.Unlock()
}

func GetService() *dbusutil.Service {
	serviceMu.Lock()
	defer serviceMu.Unlock()
	return _service
}

func Register(m Module) {
	getLoader().AddModule(m)
}

func List() []Module {
	return getLoader().List()
}

func GetModule(name string) Module {
	return getLoader().GetModule(name)
}

func SetLogLevel(pri log.Priority) {
	getLoader().SetLogLevel(pri)
}

func StartAll() {
	_ = getLoader().EnableModules()
}

func StopAll() {
	getLoader().DisableModules()
}
