// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"os"
	"os/signal"
	"syscall"

	sddaemon "github.com/coreos/go-systemd/v22/daemon"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"

	"github.com/modestate/mode-daemon/loader"

	// modules:
	_ "github.com/modestate/mode-daemon/switches"
)

const (
	dbusServiceName = "org.modestate.ModeDaemon1"
	dbusPath        = "/org/modestate/ModeDaemon1"
)

var logger = log.NewLogger("daemon/mode-daemon")

func main() {
	service, err := dbusutil.NewSystemService()
	if err != nil {
		logger.Fatal("failed to new system service:", err)
	}

	hasOwner, err := service.NameHasOwner(dbusServiceName)
	if err != nil {
		logger.Fatal("failed to call NameHasOwner:", err)
	}
	if hasOwner {
		logger.Warningf("name %q already has the owner", dbusServiceName)
		os.Exit(1)
	}

	err = service.RequestName(dbusServiceName)
	if err != nil {
		logger.Fatal("failed to request name:", err)
	}

	if os.Getenv("MODE_DAEMON_DEBUG") != "" {
		loader.SetLogLevel(log.LevelDebug)
	}

	loader.SetService(service)
	loader.StartAll()

	_, err = sddaemon.SdNotify(false, sddaemon.SdNotifyReady)
	if err != nil {
		logger.Warning("sd_notify failed:", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("got signal", sig, ", stopping modules")

	loader.StopAll()
}
