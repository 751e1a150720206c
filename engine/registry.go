package engine

import (
	"fmt"
	"sync"

	"rats-server/models"
)

// Registry holds the tables that are still filling. Every operation is
// a short critical section under one lock; no network I/O happens
// while the lock is held. A table leaves the registry the instant its
// fourth seat is taken.
type Registry struct {
	mu      sync.Mutex
	pending []*Table
}

func NewRegistry() *Registry {
	return &Registry{pending: make([]*Table, 0)}
}

// GetOrCreate returns the pending table with the given name, creating
// and inserting an empty one at the front if no match exists.
func (r *Registry) GetOrCreate(name string) *Table {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, table := range r.pending {
		if table.Name == name {
			return table
		}
	}
	table := NewTable(name)
	r.pending = append([]*Table{table}, r.pending...)
	return table
}

// AddPlayer appends a seat in join order and returns its index.
// Rejected if the table already seated four players, which can happen
// when a joiner raced the fourth seat; the caller should retry with a
// fresh GetOrCreate.
func (r *Registry) AddPlayer(table *Table, seat *Seat) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(table.Seats) >= models.NumSeats {
		return -1, fmt.Errorf("table %q is full", table.Name)
	}
	table.Seats = append(table.Seats, seat)
	return len(table.Seats) - 1, nil
}

// Unlink removes a table from the pending collection. No-op if the
// table is already gone. Called exactly once per table, by whichever
// join filled the fourth seat.
func (r *Registry) Unlink(table *Table) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.pending {
		if t == table {
			r.pending = append(r.pending[:i], r.pending[i+1:]...)
			return
		}
	}
}

// PendingCount reports how many tables are still filling.
func (r *Registry) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// SweepDead probes every seat of every pending table and reclaims
// connections whose peers hung up before the table filled. Remaining
// seats are compacted to keep join-order indices contiguous. The
// callback runs under the lock for each reclaimed seat and must not
// block; empty tables stay registered so a later join can still find
// them by name.
func (r *Registry) SweepDead(onReclaim func(*Seat)) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	reclaimed := 0
	for _, table := range r.pending {
		kept := table.Seats[:0]
		for _, seat := range table.Seats {
			if seat.Alive() {
				kept = append(kept, seat)
				continue
			}
			seat.Close()
			reclaimed++
			if onReclaim != nil {
				onReclaim(seat)
			}
		}
		table.Seats = kept
	}
	return reclaimed
}
