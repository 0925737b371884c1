// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package devstate holds the logical device states shared across daemon
// modules and the table of well-known datapipes they are distributed on.
package devstate

import (
	"sync"

	"github.com/modestate/mode-daemon/datapipe"
)

// CoverState is the position of a two-state mechanical cover or slide.
// For the proximity sensor, CoverOpen means the sensor is unobstructed.
type CoverState int

const (
	CoverClosed CoverState = iota
	CoverOpen
)

func (s CoverState) String() string {
	if s == CoverOpen {
		return "open"
	}
	return "closed"
}

// CableState is the presence of the USB cable.
type CableState int

const (
	CableDisconnected CableState = iota
	CableConnected
)

func (s CableState) String() string {
	if s == CableConnected {
		return "connected"
	}
	return "disconnected"
}

// CameraButtonState is the position of the camera launch button.
type CameraButtonState int

const (
	CameraButtonUnpressed CameraButtonState = iota
	CameraButtonLaunch
)

func (s CameraButtonState) String() string {
	if s == CameraButtonLaunch {
		return "launch"
	}
	return "unpressed"
}

// CallState mirrors the call module's published state.
type CallState int

const (
	CallStateInvalid CallState = iota
	CallStateNone
	CallStateRinging
	CallStateActive
	CallStateService
)

// AlarmUIState mirrors the alarm module's published UI state.
type AlarmUIState int

const (
	AlarmUIInvalid AlarmUIState = iota
	AlarmUIOff
	AlarmUIRinging
	AlarmUIVisible
	AlarmUISnoozed
)

// Submode is the daemon submode bitmask published by the mode policy.
type Submode uint32

// SubmodeNormal is the empty bitmask.
const SubmodeNormal Submode = 0

const (
	// SubmodeTouchLock is set while the touchscreen/keypad lock is active.
	SubmodeTouchLock Submode = 1 << iota
	SubmodeEventEater
	SubmodeBootup
	SubmodeTransition
)

// Pipes is the set of datapipes the switch input layer produces onto or
// consumes from. One instance is shared by every module of the daemon.
type Pipes struct {
	// DeviceInactive carries false whenever user interaction is detected.
	DeviceInactive *datapipe.Pipe

	LockKey         *datapipe.Pipe // bool, true while the lock key is pressed
	KeyboardSlide   *datapipe.Pipe // CoverState
	LidCover        *datapipe.Pipe // CoverState
	ProximitySensor *datapipe.Pipe // CoverState
	UsbCable        *datapipe.Pipe // CableState
	LensCover       *datapipe.Pipe // CoverState
	CameraButton    *datapipe.Pipe // CameraButtonState

	CallState    *datapipe.Pipe // CallState
	AlarmUIState *datapipe.Pipe // AlarmUIState
	Submode      *datapipe.Pipe // Submode
}

func NewPipes() *Pipes {
	return &Pipes{
		DeviceInactive:  datapipe.New("device-inactive"),
		LockKey:         datapipe.New("lock-key"),
		KeyboardSlide:   datapipe.New("keyboard-slide"),
		LidCover:        datapipe.New("lid-cover"),
		ProximitySensor: datapipe.New("proximity-sensor"),
		UsbCable:        datapipe.New("usb-cable"),
		LensCover:       datapipe.New("lens-cover"),
		CameraButton:    datapipe.New("camera-button"),
		CallState:       datapipe.New("call-state"),
		AlarmUIState:    datapipe.New("alarm-ui-state"),
		Submode:         datapipe.New("submode"),
	}
}

var pipesInitializer sync.Once
var _pipes *Pipes

// GetPipes returns the process-wide pipe table. Modules receive it from
// their lifecycle glue; core code takes it as an explicit dependency.
func GetPipes() *Pipes {
	pipesInitializer.Do(func() {
		_pipes = NewPipes()
	})
	return _pipes
}
