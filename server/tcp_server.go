package server

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"rats-server/engine"
	"rats-server/models"
)

// sweepInterval is how often the pending-table sweep probes for peers
// that hung up before their table filled.
const sweepInterval = 100 * time.Millisecond

// ExitDealFailure is the process exit status for a shuffler failure.
// There is no safe way to deal cards once the shuffler is gone.
const ExitDealFailure = 4

type Config struct {
	// MaxConns caps simultaneously held connections; 0 means unlimited.
	MaxConns int
	// Greeting is sent to every client immediately after connecting.
	Greeting string
	// Shuffle provides fresh decks. Defaults to models.ShuffledDeck.
	Shuffle models.ShuffleFunc
	Logger  *log.Logger
}

type TCPServer struct {
	greeting  string
	shuffle   models.ShuffleFunc
	listener  net.Listener
	registry  *engine.Registry
	admission *Admission
	stats     *Stats
	log       *log.Logger
	stopChan  chan struct{}

	// fatalf reports an unrecoverable system error and exits.
	// Replaceable in tests.
	fatalf func(format string, args ...interface{})
}

func NewTCPServer(cfg Config) *TCPServer {
	if cfg.Shuffle == nil {
		cfg.Shuffle = models.ShuffledDeck
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr)
	}
	s := &TCPServer{
		greeting:  cfg.Greeting,
		shuffle:   cfg.Shuffle,
		registry:  engine.NewRegistry(),
		admission: NewAdmission(cfg.MaxConns),
		stats:     &Stats{},
		log:       cfg.Logger,
		stopChan:  make(chan struct{}),
	}
	s.fatalf = func(format string, args ...interface{}) {
		s.log.Errorf(format, args...)
		os.Exit(ExitDealFailure)
	}
	return s
}

func (s *TCPServer) Stats() *Stats {
	return s.stats
}

// Listen binds the listening socket and returns the actual bound port,
// so an ephemeral port request (0) can be reported to the operator.
func (s *TCPServer) Listen(port string) (int, error) {
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return 0, fmt.Errorf("failed to listen: %v", err)
	}
	s.listener = listener
	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Serve runs the accept loop until Stop is called. A slot is reserved
// with the admission controller before each accept, so the held count
// never exceeds the ceiling.
func (s *TCPServer) Serve() error {
	if s.listener == nil {
		return fmt.Errorf("server is not listening")
	}

	go s.sweepLoop()

	for {
		s.admission.Acquire()

		select {
		case <-s.stopChan:
			s.admission.Release()
			return nil
		default:
		}

		conn, err := s.listener.Accept()
		if err != nil {
			s.admission.Release()
			select {
			case <-s.stopChan:
				return nil
			default:
				s.log.Errorf("accept failed: %v", err)
				continue
			}
		}

		s.stats.ConnectionsTotal.Add(1)
		s.stats.ConnectionsLive.Add(1)
		go s.handleConnection(conn)
	}
}

// handleConnection greets the client, reads the two-line join
// handshake, and seats the player. The goroutine that fills a table's
// fourth seat becomes that table's game worker; the other three
// joiners hand their connections over and return.
func (s *TCPServer) handleConnection(conn net.Conn) {
	connID := uuid.NewString()[:8]
	s.log.Debugf("conn %s: accepted from %s", connID, conn.RemoteAddr())

	fmt.Fprintf(conn, "%s\n", models.FormatMessage(s.greeting))

	reader := bufio.NewReader(conn)
	name, err := readHandshakeLine(reader)
	if err == nil {
		var game string
		game, err = readHandshakeLine(reader)
		if err == nil {
			seat := engine.NewSeat(name, conn, reader)
			s.joinTable(connID, game, seat)
			return
		}
	}

	// Incomplete handshake: drop the connection and free its slot.
	s.log.Debugf("conn %s: handshake failed: %v", connID, err)
	conn.Close()
	s.stats.ConnectionsLive.Add(-1)
	s.admission.Release()
}

// joinTable seats a player, retrying if the chosen table filled and
// unlinked between lookup and seating.
func (s *TCPServer) joinTable(connID, game string, seat *engine.Seat) {
	for {
		table := s.registry.GetOrCreate(game)
		idx, err := s.registry.AddPlayer(table, seat)
		if err != nil {
			continue
		}
		s.log.Infof("conn %s: %q seated at table %q (seat %d)", connID, seat.Name, game, idx)

		if idx == models.NumSeats-1 {
			s.registry.Unlink(table)
			s.runTable(table)
		}
		return
	}
}

// runTable drives one table from dealing through the last trick, then
// tears it down and releases all four admission slots together.
func (s *TCPServer) runTable(table *engine.Table) {
	table.Reseat()
	table.AnnounceTeams()
	if err := table.Deal(s.shuffle); err != nil {
		s.fatalf("table %q: %v", table.Name, err)
		return
	}

	s.stats.TablesRunning.Add(1)
	s.log.Infof("table %q: game started", table.Name)

	game := engine.NewGame(table, s.handleGameEvent)
	err := game.Run()
	s.stats.TablesRunning.Add(-1)

	team1, team2 := game.TeamTricks()
	if err != nil {
		s.log.Infof("table %q: game terminated early (%d-%d)", table.Name, team1, team2)
	} else {
		s.log.Infof("table %q: game complete (%d-%d)", table.Name, team1, team2)
	}

	table.Close()
	for range table.Seats {
		s.stats.ConnectionsLive.Add(-1)
		s.admission.Release()
	}
}

func (s *TCPServer) handleGameEvent(event models.Event) {
	switch event.Event {
	case models.EventTrickComplete:
		s.stats.TricksPlayed.Add(1)
	case models.EventGameComplete:
		s.stats.TablesCompleted.Add(1)
	case models.EventGameTerminated:
		s.stats.TablesTerminated.Add(1)
	}
}

// sweepLoop reclaims connections of players who joined a table and
// vanished before it filled, so they cannot hold a slot forever or
// corrupt seat indices for the players who complete the table later.
func (s *TCPServer) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			n := s.registry.SweepDead(func(seat *engine.Seat) {
				s.stats.ConnectionsLive.Add(-1)
				s.admission.Release()
			})
			if n > 0 {
				s.log.Debugf("sweep reclaimed %d pending connection(s)", n)
			}
		}
	}
}

func (s *TCPServer) Stop() {
	close(s.stopChan)
	if s.listener != nil {
		s.listener.Close()
	}
}

// readHandshakeLine reads one line of the join handshake; a blank line
// is treated the same as a failed read.
func readHandshakeLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = trimLineEnding(line)
	if line == "" {
		return "", fmt.Errorf("empty handshake line")
	}
	return line, nil
}

func trimLineEnding(line string) string {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}
