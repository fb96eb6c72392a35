// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"sync"
	"time"
)

// Watcher reports the cycle watcher's polling activity.
type Watcher struct {
	LastPollTimestamp *time.Time `json:"lastPollTimestamp"`
	CyclesClosed      uint64     `json:"cyclesClosed"`
}

type Status struct {
	Healthy      bool     `json:"healthy"`
	Watcher      *Watcher `json:"watcher"`
	Bootstrapped bool     `json:"bootstrapped"`
}

// Health tracks the liveness of the daemon's cycle watcher. The watcher is
// expected to poll the primary pool at a fixed interval; falling silent for
// longer than the allowed window marks the daemon unhealthy.
type Health struct {
	lock            sync.RWMutex
	lastPoll        time.Time
	cyclesClosed    uint64
	bootstrapped    bool
	maxPollInterval time.Duration
}

func New(maxPollInterval time.Duration) *Health {
	return &Health{
		maxPollInterval: maxPollInterval,
	}
}

// NewPoll records one completed watcher poll and the cycles it closed.
func (h *Health) NewPoll(closed int) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastPoll = time.Now()
	h.cyclesClosed += uint64(closed)
}

// BootstrapStatus marks whether startup, store opening included, completed.
func (h *Health) BootstrapStatus(bootstrapped bool) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.bootstrapped = bootstrapped
}

func (h *Health) Status() (*Status, error) {
	h.lock.RLock()
	defer h.lock.RUnlock()

	var lastPoll *time.Time
	if !h.lastPoll.IsZero() {
		t := h.lastPoll
		lastPoll = &t
	}

	healthy := h.bootstrapped &&
		lastPoll != nil &&
		time.Since(h.lastPoll) <= h.maxPollInterval

	return &Status{
		Healthy: healthy,
		Watcher: &Watcher{
			LastPollTimestamp: lastPoll,
			CyclesClosed:      h.cyclesClosed,
		},
		Bootstrapped: h.bootstrapped,
	}, nil
}
