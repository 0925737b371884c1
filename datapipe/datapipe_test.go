// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package datapipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecuteOrdering(t *testing.T) {
	p := New("test")
	var got []string

	p.AppendOutputTrigger(func(value interface{}) {
		got = append(got, "out1")
	})
	p.AppendInputTrigger(func(value interface{}) {
		got = append(got, "in1")
	})
	p.AppendInputTrigger(func(value interface{}) {
		got = append(got, "in2")
	})
	p.AppendOutputTrigger(func(value interface{}) {
		got = append(got, "out2")
	})

	p.Execute(1, true)
	assert.Equal(t, []string{"in1", "in2", "out1", "out2"}, got)
}

func TestCache(t *testing.T) {
	p := New("test")
	assert.Equal(t, "default", p.Cached("default"))

	p.Execute(42, true)
	assert.Equal(t, 42, p.Cached(nil))

	// useCache=false delivers without touching the cache
	var seen interface{}
	p.AppendOutputTrigger(func(value interface{}) {
		seen = value
	})
	p.Execute(7, false)
	assert.Equal(t, 7, seen)
	assert.Equal(t, 42, p.Cached(nil))
}

func TestCacheVisibleToTriggers(t *testing.T) {
	p := New("test")
	var cachedDuringTrigger interface{}
	p.AppendInputTrigger(func(value interface{}) {
		cachedDuringTrigger = p.Cached(nil)
	})
	p.Execute("x", true)
	assert.Equal(t, "x", cachedDuringTrigger)
}

func TestRemoveTrigger(t *testing.T) {
	p := New("test")
	var n1, n2 int
	h1 := p.AppendInputTrigger(func(interface{}) { n1++ })
	p.AppendInputTrigger(func(interface{}) { n2++ })

	p.Execute(nil, false)
	p.RemoveInputTrigger(h1)
	p.Execute(nil, false)

	assert.Equal(t, 1, n1)
	assert.Equal(t, 2, n2)

	// removing again, or removing nil, is harmless
	p.RemoveInputTrigger(h1)
	p.RemoveInputTrigger(nil)
	p.Execute(nil, false)
	assert.Equal(t, 1, n1)
	assert.Equal(t, 3, n2)
}

func TestRemoveOutputTrigger(t *testing.T) {
	p := New("test")
	var n int
	h := p.AppendOutputTrigger(func(interface{}) { n++ })
	p.Execute(nil, false)
	p.RemoveOutputTrigger(h)
	p.Execute(nil, false)
	assert.Equal(t, 1, n)
}

func TestReentrantExecute(t *testing.T) {
	// a trigger may execute another pipe, or the same one, without
	// deadlocking
	p1 := New("p1")
	p2 := New("p2")
	var got []interface{}
	p1.AppendInputTrigger(func(value interface{}) {
		p2.Execute(value, true)
	})
	p2.AppendOutputTrigger(func(value interface{}) {
		got = append(got, value)
	})

	p1.Execute("v", true)
	assert.Equal(t, []interface{}{"v"}, got)
	assert.Equal(t, "v", p2.Cached(nil))
}
