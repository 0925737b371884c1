// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package switches

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modestate/mode-daemon/common/devstate"
)

func Test_decodeCover(t *testing.T) {
	data := []struct {
		payload string
		result  devstate.CoverState
	}{
		{"open", devstate.CoverOpen},
		{"open\n", devstate.CoverOpen},
		{"opened", devstate.CoverOpen}, // prefix match, no trailing validation
		{"closed", devstate.CoverClosed},
		{"", devstate.CoverClosed},
		{"Open", devstate.CoverClosed}, // case sensitive
		{"garbage", devstate.CoverClosed},
		{"\x00\xff", devstate.CoverClosed},
	}
	for _, d := range data {
		assert.Equal(t, d.result, decodeCover(d.payload, "open"), "payload %q", d.payload)
	}
}

func Test_decodeCable(t *testing.T) {
	data := []struct {
		payload string
		result  devstate.CableState
	}{
		{"usb_connected", devstate.CableConnected},
		{"usb_connected extra", devstate.CableConnected},
		{"usb_disconnected", devstate.CableDisconnected},
		{"", devstate.CableDisconnected},
		{"connected", devstate.CableDisconnected},
	}
	for _, d := range data {
		assert.Equal(t, d.result, decodeCable(d.payload), "payload %q", d.payload)
	}
}

func Test_decodeCameraButton(t *testing.T) {
	data := []struct {
		payload string
		result  devstate.CameraButtonState
	}{
		{"active", devstate.CameraButtonLaunch},
		{"inactive", devstate.CameraButtonUnpressed},
		{"", devstate.CameraButtonUnpressed},
		{"act", devstate.CameraButtonUnpressed},
	}
	for _, d := range data {
		assert.Equal(t, d.result, decodeCameraButton(d.payload), "payload %q", d.payload)
	}
}

func Test_decodeLockKey(t *testing.T) {
	assert.True(t, decodeLockKey("active"))
	assert.True(t, decodeLockKey("active\n"))
	assert.False(t, decodeLockKey("inactive"))
	assert.False(t, decodeLockKey(""))
	assert.False(t, decodeLockKey("ACTIVE"))
}
