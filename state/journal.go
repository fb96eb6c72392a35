// Copyright (c) 2025 The Gold developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/goldxyz/auctiond/gold"

// journal maintains account revisions in a stack of levels. Each level
// inherits the accounts of levels below it, giving save-restore semantics:
// a failing invocation pops back to its checkpoint and none of its writes
// survive. Accounts read from the backing store are memoized in a separate
// cache so reverting never drops clean reads.
type journal struct {
	src       func(gold.Address) (*Account, error)
	readCache map[gold.Address]*Account
	levels    []*level
}

type level struct {
	accounts map[gold.Address]*Account
}

func newLevel() *level {
	return &level{accounts: make(map[gold.Address]*Account)}
}

// newJournal create a journal with src as the data source.
func newJournal(src func(gold.Address) (*Account, error)) *journal {
	return &journal{
		src:       src,
		readCache: make(map[gold.Address]*Account),
		levels:    []*level{newLevel()},
	}
}

// push pushes a new level on the stack.
// It returns stack depth before push.
func (j *journal) push() int {
	j.levels = append(j.levels, newLevel())
	return len(j.levels) - 1
}

// popTo pops levels until stack depth reaches depth.
// All writes above the depth are reverted.
func (j *journal) popTo(depth int) {
	if depth < 1 {
		depth = 1
	}
	for len(j.levels) > depth {
		j.levels = j.levels[:len(j.levels)-1]
	}
}

// get gets the account for the given address, falling back to src on miss.
func (j *journal) get(addr gold.Address) (*Account, error) {
	for i := len(j.levels) - 1; i >= 0; i-- {
		if a, ok := j.levels[i].accounts[addr]; ok {
			return a, nil
		}
	}
	if a, ok := j.readCache[addr]; ok {
		return a, nil
	}
	a, err := j.src(addr)
	if err != nil {
		return nil, err
	}
	j.readCache[addr] = a
	return a, nil
}

// put puts the account into the level at stack top.
func (j *journal) put(addr gold.Address, a *Account) {
	j.levels[len(j.levels)-1].accounts[addr] = a
}

// changes folds all levels into the final set of dirty accounts, bottom-up
// so upper levels win.
func (j *journal) changes() map[gold.Address]*Account {
	merged := make(map[gold.Address]*Account)
	for _, lvl := range j.levels {
		for addr, a := range lvl.accounts {
			merged[addr] = a
		}
	}
	return merged
}

// reset drops all levels and cached reads and starts over.
func (j *journal) reset() {
	j.readCache = make(map[gold.Address]*Account)
	j.levels = []*level{newLevel()}
}
