package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/game"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
	keyGameSeq     = "seq/game"
	prefixGame     = "game/"
)

// ErrGameNotFound is returned by LoadGame for an unknown ID.
var ErrGameNotFound = errors.New("game not found")

// UserPreferences stores the defaults for cmd/chessplay flags.
type UserPreferences struct {
	White      string    `json:"white"`
	Black      string    `json:"black"`
	Seed       uint64    `json:"seed"`
	Verbosity  int       `json:"verbosity"`
	LastPlayed time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		White:      "stdin",
		Black:      "random",
		LastPlayed: time.Now(),
	}
}

// GameStats stores totals over all recorded games.
type GameStats struct {
	GamesPlayed   int            `json:"games_played"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Draws         int            `json:"draws"`
	Errors        int            `json:"errors"`
	ByResult      map[string]int `json:"by_result"`
	TotalPlies    int            `json:"total_plies"`
	LongestGame   int            `json:"longest_game"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		ByResult: make(map[string]int),
	}
}

// WhiteScore returns white's score as a percentage, counting draws as half.
func (s *GameStats) WhiteScore() float64 {
	decided := s.GamesPlayed - s.Errors
	if decided <= 0 {
		return 0
	}
	return (float64(s.WhiteWins) + float64(s.Draws)/2) / float64(decided) * 100
}

func (s *GameStats) String() string {
	return fmt.Sprintf("%s games (white %d, black %d, drawn %d), %s plies, %s played",
		humanize.Comma(int64(s.GamesPlayed)), s.WhiteWins, s.BlackWins, s.Draws,
		humanize.Comma(int64(s.TotalPlies)), s.TotalPlayTime.Round(time.Second))
}

func (s *GameStats) add(rec *GameRecord) {
	s.GamesPlayed++
	s.TotalPlies += len(rec.Moves)
	s.TotalPlayTime += rec.Duration
	s.LongestGame = max(s.LongestGame, len(rec.Moves))
	s.ByResult[rec.Result.String()]++

	switch c, ok := rec.Result.Winner(); {
	case ok && c == board.White:
		s.WhiteWins++
	case ok:
		s.BlackWins++
	case rec.Result.IsDraw():
		s.Draws++
	default:
		s.Errors++
	}
}

// GameRecord is an archived game.
type GameRecord struct {
	ID       uint64        `json:"id"`
	White    string        `json:"white"`
	Black    string        `json:"black"`
	Result   game.Result   `json:"result"`
	Moves    []string      `json:"moves"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	FinalKey uint64        `json:"final_key"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db  *badger.DB
	seq *badger.Sequence
	log logr.Logger
}

// Option configures Open.
type Option func(*badger.Options, *Storage)

// WithLogger routes badger's own logging to log at V(1) and above.
func WithLogger(log logr.Logger) Option {
	return func(o *badger.Options, s *Storage) {
		s.log = log
		o.Logger = badgerLogger{log.WithName("badger")}
	}
}

// NewStorage opens the database in the platform data directory.
func NewStorage(opts ...Option) (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir, opts...)
}

// Open opens or creates the database in dir.
func Open(dir string, opts ...Option) (*Storage, error) {
	return open(badger.DefaultOptions(dir), opts)
}

// OpenInMemory opens a database that lives until Close.
func OpenInMemory(opts ...Option) (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), opts)
}

func open(bopts badger.Options, opts []Option) (*Storage, error) {
	s := &Storage{log: logr.Discard()}
	bopts.Logger = nil // Disable logging
	for _, opt := range opts {
		opt(&bopts, s)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, err
	}
	seq, err := db.GetSequence([]byte(keyGameSeq), 16)
	if err != nil {
		db.Close()
		return nil, err
	}

	s.db, s.seq = db, seq
	s.log.V(1).Info("storage opened", "dir", bopts.Dir, "inMemory", bopts.InMemory)
	return s, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.seq.Release()
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	s.db = nil
	return err
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.db.Update(func(txn *badger.Txn) error {
		return setJSON(txn, []byte(keyPreferences), prefs)
	})
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := getJSON(txn, []byte(keyPreferences), prefs)
		return err
	})
	return prefs, err
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := getJSON(txn, []byte(keyStats), stats)
		return err
	})
	return stats, err
}

// SaveGame assigns rec an ID and archives it.
func (s *Storage) SaveGame(rec *GameRecord) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return s.putGame(txn, rec)
	})
}

// RecordGame archives rec and adds it to the statistics in one transaction.
func (s *Storage) RecordGame(rec *GameRecord) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if err := s.putGame(txn, rec); err != nil {
			return err
		}
		stats := NewGameStats()
		if _, err := getJSON(txn, []byte(keyStats), stats); err != nil {
			return err
		}
		stats.add(rec)
		return setJSON(txn, []byte(keyStats), stats)
	})
	if err != nil {
		return err
	}
	s.log.V(1).Info("game recorded", "id", rec.ID, "result", rec.Result, "plies", len(rec.Moves))
	return nil
}

func (s *Storage) putGame(txn *badger.Txn, rec *GameRecord) error {
	n, err := s.seq.Next()
	if err != nil {
		return err
	}
	rec.ID = n + 1
	return setJSON(txn, gameKey(rec.ID), rec)
}

// LoadGame returns the archived game with the given ID.
func (s *Storage) LoadGame(id uint64) (*GameRecord, error) {
	rec := &GameRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		found, err := getJSON(txn, gameKey(id), rec)
		if err == nil && !found {
			return fmt.Errorf("%w: %d", ErrGameNotFound, id)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListGames returns up to limit archived games, newest first. A limit of
// zero or less returns all of them.
func (s *Storage) ListGames(limit int) ([]*GameRecord, error) {
	var games []*GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(prefixGame)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(gameKey(^uint64(0))); it.ValidForPrefix(opts.Prefix); it.Next() {
			if limit > 0 && len(games) == limit {
				break
			}
			rec := &GameRecord{}
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, rec)
			}); err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})
	return games, err
}

// gameKey sorts by ID under byte-wise key order.
func gameKey(id uint64) []byte {
	return binary.BigEndian.AppendUint64([]byte(prefixGame), id)
}

func setJSON(txn *badger.Txn, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

// getJSON decodes the value at key into v. A missing key leaves v
// untouched and reports found as false.
func getJSON(txn *badger.Txn, key []byte, v any) (found bool, err error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// badgerLogger adapts logr to badger.Logger.
type badgerLogger struct {
	log logr.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(nil, fmt.Sprintf(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Info(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.V(1).Info(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.V(2).Info(fmt.Sprintf(format, args...))
}
