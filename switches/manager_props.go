// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package switches

func (m *Manager) setPropHasLockKey(value bool) {
	m.PropsMu.Lock()
	changed := m.HasLockKey != value
	if changed {
		m.HasLockKey = value
	}
	m.PropsMu.Unlock()
	if changed {
		m.emitPropChanged("HasLockKey", value)
	}
}

func (m *Manager) setPropLidClosed(value bool) {
	m.PropsMu.Lock()
	changed := m.LidClosed != value
	if changed {
		m.LidClosed = value
	}
	m.PropsMu.Unlock()
	if changed {
		m.emitPropChanged("LidClosed", value)
	}
}

func (m *Manager) setPropSlideOpen(value bool) {
	m.PropsMu.Lock()
	changed := m.SlideOpen != value
	if changed {
		m.SlideOpen = value
	}
	m.PropsMu.Unlock()
	if changed {
		m.emitPropChanged("SlideOpen", value)
	}
}

func (m *Manager) setPropUsbCablePluggedIn(value bool) {
	m.PropsMu.Lock()
	changed := m.UsbCablePluggedIn != value
	if changed {
		m.UsbCablePluggedIn = value
	}
	m.PropsMu.Unlock()
	if changed {
		m.emitPropChanged("UsbCablePluggedIn", value)
	}
}

func (m *Manager) emitPropChanged(name string, value interface{}) {
	if m.service == nil {
		return
	}
	err := m.service.EmitPropertyChanged(m, name, value)
	if err != nil {
		logger.Warning("EmitPropertyChanged error:", err)
	}
}

func (m *Manager) emitSwitchChanged(name, state string) {
	if m.service == nil {
		return
	}
	err := m.service.Emit(m, "SwitchChanged", name, state)
	if err != nil {
		logger.Warning("Emit SwitchChanged error:", err)
	}
}
