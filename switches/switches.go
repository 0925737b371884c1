// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package switches translates the hardware switch attributes (lock key,
// keyboard slide, covers, proximity sensor, USB cable, camera buttons)
// into typed states on the daemon's datapipes, and gates the proximity
// and camera focus interrupts from cross-signal state.
package switches

import (
	"github.com/linuxdeepin/go-lib/log"

	"github.com/modestate/mode-daemon/common/devstate"
	"github.com/modestate/mode-daemon/iomon"
	"github.com/modestate/mode-daemon/loader"
)

var logger = log.NewLogger("daemon/switches")

const (
	dbusServiceName = "org.modestate.ModeDaemon1.Switches"
	dbusPath        = "/org/modestate/ModeDaemon1/Switches"
	dbusInterface   = dbusServiceName
)

func init() {
	loader.Register(NewDaemon(logger))
}

type Daemon struct {
	*loader.ModuleBase
	manager *Manager
	monitor *iomon.FileMonitor
}

func NewDaemon(logger *log.Logger) *Daemon {
	d := new(Daemon)
	d.ModuleBase = loader.NewModuleBase("switches", d, logger)
	return d
}

func (*Daemon) GetDependencies() []string {
	return []string{}
}

func (d *Daemon) Start() error {
	if d.manager != nil {
		return nil
	}
	service := loader.GetService()

	monitor, err := iomon.NewFileMonitor()
	if err != nil {
		return err
	}
	d.monitor = monitor

	d.manager = newManager(service, monitor, devstate.GetPipes(), loadConfig(configFile))
	d.manager.start()

	if service != nil {
		err = service.Export(dbusPath, d.manager)
		if err != nil {
			logger.Warning("export failed:", err)
		} else if err = service.RequestName(dbusServiceName); err != nil {
			logger.Warning("request name failed:", err)
		}
	}
	return nil
}

func (d *Daemon) Stop() error {
	if d.manager == nil {
		return nil
	}

	service := loader.GetService()
	if service != nil {
		err := service.StopExport(d.manager)
		if err != nil {
			logger.Warning("StopExport error:", err)
		}
	}

	d.manager.stop()
	d.manager = nil
	d.monitor.Close()
	d.monitor = nil
	return nil
}
