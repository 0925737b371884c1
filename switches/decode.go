// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package switches

import (
	"strings"

	"github.com/modestate/mode-daemon/common/devstate"
)

// Canonical active markers written by the switch drivers. A payload is
// matched by prefix; anything else, torn reads and malformed content
// included, decodes to the inactive default.
const (
	lockKeyActive       = "active"
	keyboardSlideOpen   = "open"
	lidCoverOpen        = "open"
	proximitySensorOpen = "open"
	usbCableConnected   = "usb_connected"
	lensCoverOpen       = "open"
	cameraLaunchActive  = "active"
)

func decodeCover(data, openMarker string) devstate.CoverState {
	if strings.HasPrefix(data, openMarker) {
		return devstate.CoverOpen
	}
	return devstate.CoverClosed
}

func decodeCable(data string) devstate.CableState {
	if strings.HasPrefix(data, usbCableConnected) {
		return devstate.CableConnected
	}
	return devstate.CableDisconnected
}

func decodeCameraButton(data string) devstate.CameraButtonState {
	if strings.HasPrefix(data, cameraLaunchActive) {
		return devstate.CameraButtonLaunch
	}
	return devstate.CameraButtonUnpressed
}

func decodeLockKey(data string) bool {
	return strings.HasPrefix(data, lockKeyActive)
}
