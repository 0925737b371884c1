// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"testing"

	"github.com/linuxdeepin/go-lib/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testModule struct {
	*ModuleBase
	deps  []string
	trace *[]string
}

func newTestModule(name string, deps []string, trace *[]string) *testModule {
	m := &testModule{deps: deps, trace: trace}
	m.ModuleBase = NewModuleBase(name, m, log.NewLogger("test/"+name))
	return m
}

func (m *testModule) GetDependencies() []string {
	return m.deps
}

func (m *testModule) Start() error {
	*m.trace = append(*m.trace, "start "+m.Name())
	return nil
}

func (m *testModule) Stop() error {
	*m.trace = append(*m.trace, "stop "+m.Name())
	return nil
}

func newTestLoader() *Loader {
	return &Loader{
		modules: make(map[string]Module),
		log:     log.NewLogger("test/loader"),
	}
}

func TestEnableModulesDependencyOrder(t *testing.T) {
	l := newTestLoader()
	var trace []string

	// registered out of dependency order on purpose
	l.AddModule(newTestModule("b", []string{"a"}, &trace))
	l.AddModule(newTestModule("c", []string{"b"}, &trace))
	l.AddModule(newTestModule("a", nil, &trace))

	require.NoError(t, l.EnableModules())
	assert.Equal(t, []string{"start a", "start b", "start c"}, trace)
}

func TestDisableModulesReverseOrder(t *testing.T) {
	l := newTestLoader()
	var trace []string
	l.AddModule(newTestModule("a", nil, &trace))
	l.AddModule(newTestModule("b", nil, &trace))

	require.NoError(t, l.EnableModules())
	trace = nil
	l.DisableModules()
	assert.Equal(t, []string{"stop b", "stop a"}, trace)
}

func TestEnableModulesMissingDependency(t *testing.T) {
	l := newTestLoader()
	var trace []string
	l.AddModule(newTestModule("b", []string{"nope"}, &trace))
	l.AddModule(newTestModule("a", nil, &trace))

	err := l.EnableModules()
	assert.Error(t, err)
	// the broken module must not stop the others
	assert.Contains(t, trace, "start a")
	assert.NotContains(t, trace, "start b")
}

func TestEnableModulesCircle(t *testing.T) {
	l := newTestLoader()
	var trace []string
	l.AddModule(newTestModule("a", []string{"b"}, &trace))
	l.AddModule(newTestModule("b", []string{"a"}, &trace))

	err := l.EnableModules()
	assert.Error(t, err)
}

func TestDuplicateRegistration(t *testing.T) {
	l := newTestLoader()
	var trace []string
	m := newTestModule("a", nil, &trace)
	l.AddModule(m)
	l.AddModule(newTestModule("a", nil, &trace))

	assert.Len(t, l.List(), 1)
	assert.Equal(t, Module(m), l.GetModule("a"))
}

func TestModuleBaseEnable(t *testing.T) {
	var trace []string
	m := newTestModule("a", nil, &trace)

	require.NoError(t, m.Enable(true))
	assert.True(t, m.IsEnable())
	assert.Error(t, m.Enable(true), "double enable must fail")

	require.NoError(t, m.Enable(false))
	assert.False(t, m.IsEnable())
	assert.Equal(t, []string{"start a", "stop a"}, trace)
}
