// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package switches

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg := loadConfig(filepath.Join(t.TempDir(), "nope.conf"))
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	file := filepath.Join(t.TempDir(), "mode-daemon.conf")
	content := `[SwitchPaths]
LockKey=/sys/devices/platform/test/kb_lock/state
ProximityDisable=/sys/devices/platform/test/proximity/disable
UsbCable=
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))

	cfg := loadConfig(file)
	assert.Equal(t, "/sys/devices/platform/test/kb_lock/state", cfg.LockKeyPath)
	assert.Equal(t, "/sys/devices/platform/test/proximity/disable", cfg.ProximityDisablePath)
	// empty values keep the default
	assert.Equal(t, defaultConfig().UsbCablePath, cfg.UsbCablePath)
	// untouched keys keep the default
	assert.Equal(t, defaultConfig().LidCoverPath, cfg.LidCoverPath)
}
