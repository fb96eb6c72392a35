// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co provides small helpers for goroutine lifecycle management.
package co

import "sync"

// Goes tracks goroutines spawned through Go so callers can wait for all
// of them to wind down during shutdown.
type Goes struct {
	wg sync.WaitGroup
}

// Go starts f on a new goroutine and tracks its completion.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f()
	}()
}

// Wait blocks until every goroutine started via Go has returned.
func (g *Goes) Wait() {
	g.wg.Wait()
}
