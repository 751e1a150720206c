package engine

import (
	"bufio"
	"fmt"
	"net"
	"sync"
	"testing"
)

func pipeSeat(name string) (*Seat, net.Conn) {
	serverEnd, clientEnd := net.Pipe()
	return NewSeat(name, serverEnd, bufio.NewReader(serverEnd)), clientEnd
}

func TestGetOrCreateReusesPendingTable(t *testing.T) {
	registry := NewRegistry()

	first := registry.GetOrCreate("alpha")
	if first == nil {
		t.Fatal("expected a table")
	}
	if registry.GetOrCreate("alpha") != first {
		t.Error("second lookup should return the same pending table")
	}
	if registry.GetOrCreate("beta") == first {
		t.Error("different name should get a different table")
	}
	if registry.PendingCount() != 2 {
		t.Errorf("pending count = %d, want 2", registry.PendingCount())
	}
}

func TestAddPlayerAssignsJoinOrder(t *testing.T) {
	registry := NewRegistry()
	table := registry.GetOrCreate("alpha")

	for i := 0; i < 4; i++ {
		seat, client := pipeSeat(fmt.Sprintf("p%d", i))
		defer client.Close()
		idx, err := registry.AddPlayer(table, seat)
		if err != nil {
			t.Fatalf("AddPlayer %d failed: %v", i, err)
		}
		if idx != i {
			t.Errorf("seat index = %d, want %d", idx, i)
		}
	}

	seat, client := pipeSeat("p4")
	defer client.Close()
	if _, err := registry.AddPlayer(table, seat); err == nil {
		t.Error("fifth player should be rejected")
	}
}

func TestUnlinkMakesNameReusable(t *testing.T) {
	registry := NewRegistry()
	table := registry.GetOrCreate("alpha")

	registry.Unlink(table)
	if registry.PendingCount() != 0 {
		t.Errorf("pending count = %d after unlink, want 0", registry.PendingCount())
	}
	if registry.GetOrCreate("alpha") == table {
		t.Error("lookup after unlink should create a fresh table")
	}

	// Unlink of an absent table is a no-op.
	registry.Unlink(table)
}

func TestConcurrentJoinsFillDistinctTables(t *testing.T) {
	registry := NewRegistry()
	full := make(chan *Table, 4)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("game%d", i%4)
			seat, _ := pipeSeat(fmt.Sprintf("p%d", i))
			for {
				table := registry.GetOrCreate(name)
				idx, err := registry.AddPlayer(table, seat)
				if err != nil {
					continue
				}
				if idx == 3 {
					registry.Unlink(table)
					full <- table
				}
				return
			}
		}(i)
	}
	wg.Wait()
	close(full)

	count := 0
	for table := range full {
		count++
		if len(table.Seats) != 4 {
			t.Errorf("full table %q has %d seats", table.Name, len(table.Seats))
		}
	}
	if count != 4 {
		t.Errorf("%d tables filled, want 4", count)
	}
	if registry.PendingCount() != 0 {
		t.Errorf("pending count = %d after all tables filled, want 0", registry.PendingCount())
	}
}

func TestSweepDeadReclaimsAndCompacts(t *testing.T) {
	registry := NewRegistry()
	table := registry.GetOrCreate("alpha")

	gone, goneClient := pipeSeat("gone")
	stays, staysClient := pipeSeat("stays")
	defer staysClient.Close()

	if _, err := registry.AddPlayer(table, gone); err != nil {
		t.Fatal(err)
	}
	if _, err := registry.AddPlayer(table, stays); err != nil {
		t.Fatal(err)
	}

	// Peer hangs up before the table fills.
	goneClient.Close()

	var reclaimed []*Seat
	n := registry.SweepDead(func(s *Seat) { reclaimed = append(reclaimed, s) })
	if n != 1 {
		t.Fatalf("sweep reclaimed %d seats, want 1", n)
	}
	if len(reclaimed) != 1 || reclaimed[0] != gone {
		t.Error("callback should see the dead seat")
	}
	if len(table.Seats) != 1 || table.Seats[0] != stays {
		t.Error("surviving seat should be compacted to index 0")
	}

	// The table stays registered so later joins still find it.
	if registry.GetOrCreate("alpha") != table {
		t.Error("swept table should remain pending")
	}

	if n := registry.SweepDead(nil); n != 0 {
		t.Errorf("second sweep reclaimed %d seats, want 0", n)
	}
}
