// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package node runs the cycle watcher: a loop sweeping the primary pool and
// closing every cycle whose end time has passed. Closing is permissionless on
// the ledger, the watcher merely makes sure it happens on the clock.
package node

import (
	"context"
	"time"

	"github.com/goldxyz/auctiond/engine"
	"github.com/goldxyz/auctiond/gold"
	"github.com/goldxyz/auctiond/health"
	"github.com/goldxyz/auctiond/log"
	"github.com/goldxyz/auctiond/metrics"
)

var logger = log.WithContext("pkg", "node")

var metricSweeps = metrics.LazyLoadCounter("node_sweeps_count")

// Node periodically closes due auction cycles on behalf of the operator.
type Node struct {
	eng          *engine.Engine
	operator     gold.Address
	interval     time.Duration
	healthStatus *health.Health
}

// New create a cycle watcher instance.
func New(eng *engine.Engine, operator gold.Address, interval time.Duration, healthStatus *health.Health) *Node {
	return &Node{
		eng:          eng,
		operator:     operator,
		interval:     interval,
		healthStatus: healthStatus,
	}
}

// Run sweeps until the context is canceled.
func (n *Node) Run(ctx context.Context) error {
	logger.Info("watcher started", "operator", n.operator, "interval", n.interval)
	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()

	n.sweep()
	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher stopped")
			return nil
		case <-ticker.C:
			n.sweep()
		}
	}
}

// sweep closes every due cycle in the primary pool and reports liveness.
func (n *Node) sweep() {
	closed := 0
	defer func() {
		n.healthStatus.NewPoll(closed)
		metricSweeps().Add(1)
	}()

	ids, err := n.eng.PoolIDs(false)
	if err != nil {
		logger.Error("load primary pool", "err", err)
		return
	}

	now := uint64(time.Now().Unix())
	for _, id := range ids {
		cs, err := n.eng.Cycle(id, 0)
		if err != nil {
			logger.Warn("load current cycle", "id", id, "err", err)
			continue
		}
		if now < cs.EndTime {
			continue
		}

		err = n.eng.Execute(&engine.Call{
			Caller: n.operator,
			Signed: true,
			Now:    now,
			Args:   &engine.CloseAuctionCycleArgs{Id: id},
		})
		if err != nil {
			// encore extensions and racing closers land here, next sweep retries
			logger.Debug("close cycle skipped", "id", id, "err", err)
			continue
		}
		if err := n.eng.State().Commit(); err != nil {
			logger.Error("commit state", "id", id, "err", err)
			return
		}
		closed++
	}

	if closed > 0 {
		logger.Info("cycles closed", "count", closed)
	}
}
