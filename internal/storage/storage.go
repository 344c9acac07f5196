package storage

import (
	"encoding/json"
	"time"

	"github.com/benbeisheim/variantchess-backend/internal/model"
	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

const (
	keyStats        = "stats"
	keyResultPrefix = "result/"
)

// ErrResultNotFound is returned by Result for an unknown game.
var ErrResultNotFound = errors.New("result not found")

// GameResult is what gets recorded once a game ends.
type GameResult struct {
	GameID  string       `json:"gameId"`
	Layout  string       `json:"layout"`
	White   string       `json:"white"`
	Black   string       `json:"black"`
	Winner  model.Color  `json:"winner"`
	Method  model.Method `json:"method"`
	Plies   int          `json:"plies"`
	EndedAt time.Time    `json:"endedAt"`
}

// Stats aggregates every recorded result.
type Stats struct {
	GamesPlayed int                  `json:"gamesPlayed"`
	WhiteWins   int                  `json:"whiteWins"`
	BlackWins   int                  `json:"blackWins"`
	Draws       int                  `json:"draws"`
	ByMethod    map[model.Method]int `json:"byMethod"`
	ByLayout    map[string]int       `json:"byLayout"`
	TotalPlies  int                  `json:"totalPlies"`
	LongestGame int                  `json:"longestGame"`
}

func NewStats() *Stats {
	return &Stats{
		ByMethod: make(map[model.Method]int),
		ByLayout: make(map[string]int),
	}
}

func (s *Stats) add(result GameResult) {
	s.GamesPlayed++
	switch result.Winner {
	case model.White:
		s.WhiteWins++
	case model.Black:
		s.BlackWins++
	default:
		s.Draws++
	}
	s.ByMethod[result.Method]++
	s.ByLayout[result.Layout]++
	s.TotalPlies += result.Plies
	if result.Plies > s.LongestGame {
		s.LongestGame = result.Plies
	}
}

// Store keeps finished game results in BadgerDB.
type Store struct {
	db *badger.DB
}

// Open opens a store under dir. An empty dir keeps everything in memory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open results store at %q", dir)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordResult saves the result and folds it into the stats in one transaction.
func (s *Store) RecordResult(result GameResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return errors.Wrap(err, "encode result")
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats.add(result)
		encoded, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(keyResultPrefix+result.GameID), data); err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), encoded)
	})
	return errors.Wrapf(err, "record result for game %s", result.GameID)
}

// Result loads the recorded result of a game.
func (s *Store) Result(gameID string) (GameResult, error) {
	var result GameResult
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyResultPrefix + gameID))
		if err == badger.ErrKeyNotFound {
			return ErrResultNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &result)
		})
	})
	if err != nil {
		return GameResult{}, errors.Wrapf(err, "load result for game %s", gameID)
	}
	return result, nil
}

// Results lists every recorded result, ordered by game id.
func (s *Store) Results() ([]GameResult, error) {
	results := []GameResult{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyResultPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var result GameResult
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &result)
			}); err != nil {
				return err
			}
			results = append(results, result)
		}
		return nil
	})
	return results, errors.Wrap(err, "list results")
}

// Stats returns the aggregate, empty when nothing has been recorded.
func (s *Store) Stats() (*Stats, error) {
	var stats *Stats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "load stats")
	}
	return stats, nil
}

func loadStats(txn *badger.Txn) (*Stats, error) {
	stats := NewStats()
	item, err := txn.Get([]byte(keyStats))
	if err == badger.ErrKeyNotFound {
		return stats, nil
	}
	if err != nil {
		return nil, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, stats)
	})
	return stats, err
}
