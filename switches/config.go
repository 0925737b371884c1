// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package switches

import (
	"os"

	"github.com/linuxdeepin/go-lib/keyfile"
)

const configFile = "/etc/mode-daemon/mode-daemon.conf"

const configSectionPaths = "SwitchPaths"

// Config holds the attribute paths of the monitored switches and of the
// two interrupt control files. Paths can be overridden per device from
// the daemon keyfile; everything else about a switch is fixed.
type Config struct {
	LockKeyPath          string
	KeyboardSlidePath    string
	CamFocusPath         string
	CamFocusDisablePath  string
	CamLaunchPath        string
	LidCoverPath         string
	ProximityPath        string
	ProximityDisablePath string
	UsbCablePath         string
	LensCoverPath        string
	Mmc0CoverPath        string
	MmcCoverPath         string
	BatteryCoverPath     string
}

func defaultConfig() *Config {
	return &Config{
		LockKeyPath:          "/sys/devices/platform/gpio-switch/kb_lock/state",
		KeyboardSlidePath:    "/sys/devices/platform/gpio-switch/slide/state",
		CamFocusPath:         "/sys/devices/platform/gpio-switch/cam_focus/state",
		CamFocusDisablePath:  "/sys/devices/platform/gpio-switch/cam_focus/disable",
		CamLaunchPath:        "/sys/devices/platform/gpio-switch/cam_launch/state",
		LidCoverPath:         "/sys/devices/platform/gpio-switch/prot_shell/cover_switch",
		ProximityPath:        "/sys/devices/platform/gpio-switch/proximity/state",
		ProximityDisablePath: "/sys/devices/platform/gpio-switch/proximity/disable",
		UsbCablePath:         "/sys/devices/platform/musb_hdrc/vbus",
		LensCoverPath:        "/sys/devices/platform/gpio-switch/cam_shutter/state",
		Mmc0CoverPath:        "/sys/devices/platform/gpio-switch/mmc0_cover/state",
		MmcCoverPath:         "/sys/devices/platform/gpio-switch/mmc_cover/state",
		BatteryCoverPath:     "/sys/devices/platform/gpio-switch/bat_cover/state",
	}
}

// loadConfig reads path overrides from file. A missing file or missing
// keys leave the built-in defaults in place.
func loadConfig(file string) *Config {
	cfg := defaultConfig()

	kf := keyfile.NewKeyFile()
	err := kf.LoadFromFile(file)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warningf("load config %s failed: %v", file, err)
		}
		return cfg
	}

	get := func(key string, dst *string) {
		value, err := kf.GetString(configSectionPaths, key)
		if err == nil && value != "" {
			*dst = value
		}
	}
	get("LockKey", &cfg.LockKeyPath)
	get("KeyboardSlide", &cfg.KeyboardSlidePath)
	get("CamFocus", &cfg.CamFocusPath)
	get("CamFocusDisable", &cfg.CamFocusDisablePath)
	get("CamLaunch", &cfg.CamLaunchPath)
	get("LidCover", &cfg.LidCoverPath)
	get("Proximity", &cfg.ProximityPath)
	get("ProximityDisable", &cfg.ProximityDisablePath)
	get("UsbCable", &cfg.UsbCablePath)
	get("LensCover", &cfg.LensCoverPath)
	get("Mmc0Cover", &cfg.Mmc0CoverPath)
	get("MmcCover", &cfg.MmcCoverPath)
	get("BatteryCover", &cfg.BatteryCoverPath)
	return cfg
}
