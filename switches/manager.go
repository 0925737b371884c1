// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package switches

import (
	"sync"

	"github.com/linuxdeepin/go-lib/dbusutil"

	"github.com/modestate/mode-daemon/common/devstate"
	"github.com/modestate/mode-daemon/datapipe"
	"github.com/modestate/mode-daemon/iomon"
)

// Manager owns the per-switch watches and the cross-signal state of the
// switch input layer. All watch callbacks and pipe triggers run serially
// on the daemon's event goroutine; the unexported fields are only touched
// there. Only the exported D-Bus properties need PropsMu.
type Manager struct {
	service *dbusutil.Service
	mon     iomon.Monitor
	pipes   *devstate.Pipes
	cfg     *Config

	// Watches in registration order. A nil watch means the attribute was
	// absent at startup and the switch stays unmonitored.
	lockKeyWatch   *iomon.Watch
	kbdSlideWatch  *iomon.Watch
	camFocusWatch  *iomon.Watch
	camLaunchWatch *iomon.Watch
	lidCoverWatch  *iomon.Watch
	proximityWatch *iomon.Watch
	usbCableWatch  *iomon.Watch
	lensCoverWatch *iomon.Watch
	mmc0CoverWatch *iomon.Watch
	mmcCoverWatch  *iomon.Watch
	batCoverWatch  *iomon.Watch

	// Capability flags, probed once in start() and read-only afterwards.
	proximityDisableExists bool
	camFocusDisableExists  bool

	// Cached cross-signal state, overwritten by the matching trigger.
	callState    devstate.CallState
	alarmUIState devstate.AlarmUIState
	// oldSubmode backs the touch-lock edge detection; it must be updated
	// after the edge comparison, not before.
	oldSubmode devstate.Submode

	callStateTrigger    *datapipe.TriggerHandle
	alarmUIStateTrigger *datapipe.TriggerHandle
	submodeTrigger      *datapipe.TriggerHandle

	PropsMu           sync.RWMutex
	HasLockKey        bool
	LidClosed         bool
	SlideOpen         bool
	UsbCablePluggedIn bool

	// nolint
	signals *struct {
		SwitchChanged struct {
			name  string
			state string
		}
	}
}

func newManager(service *dbusutil.Service, mon iomon.Monitor, pipes *devstate.Pipes, cfg *Config) *Manager {
	return &Manager{
		service:      service,
		mon:          mon,
		pipes:        pipes,
		cfg:          cfg,
		callState:    devstate.CallStateInvalid,
		alarmUIState: devstate.AlarmUIInvalid,
		oldSubmode:   devstate.SubmodeNormal,
	}
}

func (*Manager) GetInterfaceName() string {
	return dbusInterface
}

// start wires the pipe triggers, seeds defaults, registers one watch per
// switch and probes the interrupt-disable capabilities. Per-switch
// registration failure is tolerated: a device without a given switch
// still runs the daemon, that switch just never produces events.
func (m *Manager) start() {
	p := m.pipes
	m.callStateTrigger = p.CallState.AppendInputTrigger(m.handleCallStateChanged)
	m.alarmUIStateTrigger = p.AlarmUIState.AppendInputTrigger(m.handleAlarmUIStateChanged)
	m.submodeTrigger = p.Submode.AppendOutputTrigger(m.handleSubmodeChanged)

	// Seed the lid cover so consumers never observe an unset value before
	// the first real reading.
	p.LidCover.Execute(devstate.CoverOpen, true)

	m.lockKeyWatch = m.watch(m.cfg.LockKeyPath, m.lockKeyCb)
	m.kbdSlideWatch = m.watch(m.cfg.KeyboardSlidePath, m.kbdSlideCb)
	m.camFocusWatch = m.watch(m.cfg.CamFocusPath, m.genericActivityCb)
	m.camLaunchWatch = m.watch(m.cfg.CamLaunchPath, m.cameraLaunchCb)
	m.lidCoverWatch = m.watch(m.cfg.LidCoverPath, m.lidCoverCb)
	m.proximityWatch = m.watch(m.cfg.ProximityPath, m.proximityCb)
	m.usbCableWatch = m.watch(m.cfg.UsbCablePath, m.usbCableCb)
	m.lensCoverWatch = m.watch(m.cfg.LensCoverPath, m.lensCoverCb)
	m.mmc0CoverWatch = m.watch(m.cfg.Mmc0CoverPath, m.genericActivityCb)
	m.mmcCoverWatch = m.watch(m.cfg.MmcCoverPath, m.genericActivityCb)
	m.batCoverWatch = m.watch(m.cfg.BatteryCoverPath, m.genericActivityCb)

	m.updateProximityMonitor()

	m.setPropHasLockKey(m.lockKeyWatch != nil)

	m.proximityDisableExists = m.mon.CanWrite(m.cfg.ProximityDisablePath)
	m.camFocusDisableExists = m.mon.CanWrite(m.cfg.CamFocusDisablePath)
}

// stop unwinds start: triggers first, then the watches in reverse
// registration order. Absent watches are no-ops.
func (m *Manager) stop() {
	p := m.pipes
	p.Submode.RemoveOutputTrigger(m.submodeTrigger)
	p.AlarmUIState.RemoveInputTrigger(m.alarmUIStateTrigger)
	p.CallState.RemoveInputTrigger(m.callStateTrigger)
	m.submodeTrigger = nil
	m.alarmUIStateTrigger = nil
	m.callStateTrigger = nil

	m.mon.Unwatch(m.batCoverWatch)
	m.mon.Unwatch(m.mmcCoverWatch)
	m.mon.Unwatch(m.mmc0CoverWatch)
	m.mon.Unwatch(m.lensCoverWatch)
	m.mon.Unwatch(m.usbCableWatch)
	m.mon.Unwatch(m.proximityWatch)
	m.mon.Unwatch(m.lidCoverWatch)
	m.mon.Unwatch(m.camLaunchWatch)
	m.mon.Unwatch(m.camFocusWatch)
	m.mon.Unwatch(m.kbdSlideWatch)
	m.mon.Unwatch(m.lockKeyWatch)
	m.batCoverWatch = nil
	m.mmcCoverWatch = nil
	m.mmc0CoverWatch = nil
	m.lensCoverWatch = nil
	m.usbCableWatch = nil
	m.proximityWatch = nil
	m.lidCoverWatch = nil
	m.camLaunchWatch = nil
	m.camFocusWatch = nil
	m.kbdSlideWatch = nil
	m.lockKeyWatch = nil
}

func (m *Manager) watch(path string, cb iomon.Callback) *iomon.Watch {
	w, err := m.mon.Watch(path, iomon.ErrorPolicyIgnore, cb)
	if err != nil {
		logger.Debugf("switch attribute %s not monitored: %v", path, err)
		return nil
	}
	return w
}

// notifyActivity marks the device as not inactive on the bus.
func (m *Manager) notifyActivity() {
	m.pipes.DeviceInactive.Execute(false, true)
}

// genericActivityCb serves the switches whose samples only indicate user
// interaction: camera focus and the memory/battery covers publish no
// typed state of their own.
func (m *Manager) genericActivityCb(data string) {
	m.notifyActivity()
}

func (m *Manager) lockKeyCb(data string) {
	pressed := decodeLockKey(data)
	if pressed {
		m.notifyActivity()
	}
	m.pipes.LockKey.Execute(pressed, true)
	m.emitSwitchChanged("lock-key", lockKeyStateName(pressed))
}

func (m *Manager) kbdSlideCb(data string) {
	state := decodeCover(data, keyboardSlideOpen)
	if state == devstate.CoverOpen {
		m.notifyActivity()
	}
	m.pipes.KeyboardSlide.Execute(state, true)
	m.setPropSlideOpen(state == devstate.CoverOpen)
	m.emitSwitchChanged("keyboard-slide", state.String())
}

func (m *Manager) lidCoverCb(data string) {
	state := decodeCover(data, lidCoverOpen)
	if state == devstate.CoverOpen {
		m.notifyActivity()
	}
	m.pipes.LidCover.Execute(state, true)
	m.setPropLidClosed(state == devstate.CoverClosed)
	m.emitSwitchChanged("lid-cover", state.String())
}

func (m *Manager) proximityCb(data string) {
	state := decodeCover(data, proximitySensorOpen)
	m.pipes.ProximitySensor.Execute(state, true)
	m.emitSwitchChanged("proximity-sensor", state.String())
}

func (m *Manager) usbCableCb(data string) {
	state := decodeCable(data)
	m.notifyActivity()
	m.pipes.UsbCable.Execute(state, true)
	m.setPropUsbCablePluggedIn(state == devstate.CableConnected)
	m.emitSwitchChanged("usb-cable", state.String())
}

func (m *Manager) lensCoverCb(data string) {
	state := decodeCover(data, lensCoverOpen)
	if state == devstate.CoverOpen {
		m.notifyActivity()
	}
	m.pipes.LensCover.Execute(state, true)
	m.emitSwitchChanged("lens-cover", state.String())
}

func (m *Manager) cameraLaunchCb(data string) {
	state := decodeCameraButton(data)
	if state == devstate.CameraButtonLaunch {
		m.notifyActivity()
	}
	m.pipes.CameraButton.Execute(state, true)
	m.emitSwitchChanged("camera-button", state.String())
}

// updateProximitySensorState re-reads the sensor attribute and republishes
// the decoded state. Only gives reasonable readings while the sensor
// interrupt is armed.
func (m *Manager) updateProximitySensorState() {
	data, err := m.mon.ReadString(m.cfg.ProximityPath)
	if err != nil {
		logger.Debug("read proximity sensor:", err)
		return
	}
	m.pipes.ProximitySensor.Execute(decodeCover(data, proximitySensorOpen), true)
}

// updateProximityMonitor recomputes the proximity interrupt gating from
// the cached call and alarm states. The interrupt is disabled while a
// call is ringing or active, or the alarm UI is visible or ringing;
// otherwise it is re-armed and the sensor state refreshed, since the
// cached reading may predate the re-arm. Without the disable capability
// the whole policy is a no-op.
func (m *Manager) updateProximityMonitor() {
	if !m.proximityDisableExists {
		return
	}

	if m.callState == devstate.CallStateRinging ||
		m.callState == devstate.CallStateActive ||
		m.alarmUIState == devstate.AlarmUIVisible ||
		m.alarmUIState == devstate.AlarmUIRinging {
		m.writeControl(m.cfg.ProximityDisablePath, "1")
	} else {
		m.writeControl(m.cfg.ProximityDisablePath, "0")
		m.updateProximitySensorState()
	}
}

func (m *Manager) handleCallStateChanged(value interface{}) {
	state, ok := value.(devstate.CallState)
	if !ok {
		logger.Warning("unexpected call state payload:", value)
		return
	}
	m.callState = state
	m.updateProximityMonitor()
}

func (m *Manager) handleAlarmUIStateChanged(value interface{}) {
	state, ok := value.(devstate.AlarmUIState)
	if !ok {
		logger.Warning("unexpected alarm UI state payload:", value)
		return
	}
	m.alarmUIState = state
	m.updateProximityMonitor()
}

// handleSubmodeChanged gates the camera focus interrupt on the edges of
// the touch-lock bit. Focus interrupts are meaningless while the touch
// lock holds, so they are suppressed on the rising edge and re-armed on
// the falling edge. Repeated observations of the same bit value do
// nothing.
func (m *Manager) handleSubmodeChanged(value interface{}) {
	submode, ok := value.(devstate.Submode)
	if !ok {
		logger.Warning("unexpected submode payload:", value)
		return
	}

	if submode&devstate.SubmodeTouchLock != 0 {
		if m.oldSubmode&devstate.SubmodeTouchLock == 0 {
			if m.camFocusDisableExists && m.camFocusWatch != nil {
				m.writeControl(m.cfg.CamFocusDisablePath, "1")
			}
		}
	} else if m.oldSubmode&devstate.SubmodeTouchLock != 0 {
		if m.camFocusDisableExists {
			m.writeControl(m.cfg.CamFocusDisablePath, "0")
		}
	}

	m.oldSubmode = submode
}

func (m *Manager) writeControl(path, value string) {
	if err := m.mon.WriteString(path, value); err != nil {
		logger.Warningf("write %q to %s failed: %v", value, path, err)
	}
}

func lockKeyStateName(pressed bool) string {
	if pressed {
		return "pressed"
	}
	return "released"
}
