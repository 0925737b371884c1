// SPDX-FileCopyrightText: 2024 - 2026 The mode-daemon Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package datapipe is the daemon's value-distribution bus. A Pipe carries
// untyped values from producers to any number of triggers; the most recent
// value can be cached on the pipe so late subscribers and policy code can
// consult it without waiting for the next sample.
//
// Input triggers observe a value as it enters the pipe, output triggers
// observe it on the way out. Both run synchronously inside Execute, in
// append order, on the caller's goroutine. Nothing here spawns work: the
// serial delivery model the switch layer relies on is provided by keeping
// all Execute calls on one event-processing goroutine.
package datapipe

import (
	"sync"
)

// Trigger receives every value executed on a pipe.
type Trigger func(value interface{})

// TriggerHandle identifies one appended trigger for later removal.
type TriggerHandle struct {
	fn Trigger
}

type Pipe struct {
	name string

	mu             sync.Mutex
	inputTriggers  []*TriggerHandle
	outputTriggers []*TriggerHandle
	cached         interface{}
	hasCached      bool
}

func New(name string) *Pipe {
	return &Pipe{name: name}
}

func (p *Pipe) Name() string {
	return p.name
}

// Execute pushes value through the pipe: input triggers first, then output
// triggers. When useCache is true the value replaces the pipe's cached
// datum before any trigger runs, so triggers reading back the cache of
// their own pipe observe the value being delivered.
func (p *Pipe) Execute(value interface{}, useCache bool) {
	p.mu.Lock()
	if useCache {
		p.cached = value
		p.hasCached = true
	}
	input := make([]*TriggerHandle, len(p.inputTriggers))
	copy(input, p.inputTriggers)
	output := make([]*TriggerHandle, len(p.outputTriggers))
	copy(output, p.outputTriggers)
	p.mu.Unlock()

	for _, h := range input {
		h.fn(value)
	}
	for _, h := range output {
		h.fn(value)
	}
}

// Cached returns the most recently cached value, or def if nothing has
// been cached on this pipe yet.
func (p *Pipe) Cached(def interface{}) interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.hasCached {
		return def
	}
	return p.cached
}

func (p *Pipe) AppendInputTrigger(fn Trigger) *TriggerHandle {
	h := &TriggerHandle{fn: fn}
	p.mu.Lock()
	p.inputTriggers = append(p.inputTriggers, h)
	p.mu.Unlock()
	return h
}

func (p *Pipe) AppendOutputTrigger(fn Trigger) *TriggerHandle {
	h := &TriggerHandle{fn: fn}
	p.mu.Lock()
	p.outputTriggers = append(p.outputTriggers, h)
	p.mu.Unlock()
	return h
}

// RemoveInputTrigger detaches a previously appended input trigger. Removing
// a nil or already removed handle is a no-op.
func (p *Pipe) RemoveInputTrigger(h *TriggerHandle) {
	p.mu.Lock()
	p.inputTriggers = removeHandle(p.inputTriggers, h)
	p.mu.Unlock()
}

func (p *Pipe) RemoveOutputTrigger(h *TriggerHandle) {
	p.mu.Lock()
	p.outputTriggers = removeHandle(p.outputTriggers, h)
	p.mu.Unlock()
}

func removeHandle(handles []*TriggerHandle, h *TriggerHandle) []*TriggerHandle {
	if h == nil {
		return handles
	}
	for i, cur := range handles {
		if cur == h {
			return append(handles[:i], handles[i+1:]...)
		}
	}
	return handles
}
