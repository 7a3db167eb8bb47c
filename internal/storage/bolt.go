// Package storage persists puzzles in a single-file bbolt database.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/gofrs/uuid/v5"
	bolt "go.etcd.io/bbolt"

	"github.com/metal-pony/bucket-go/internal/domain"
)

var bucketPuzzles = []byte("puzzles")

type Bolt struct {
	db *bolt.DB
}

// NewBolt opens (or creates) the database at path.
func NewBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o666, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPuzzles)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Bolt{db: db}, nil
}

func (s *Bolt) Close() error { return s.db.Close() }

func (s *Bolt) Save(ctx context.Context, p *domain.Puzzle) error {
	if p == nil || p.Clues == "" {
		return errors.New("invalid puzzle: missing clues")
	}
	if p.ID == "" {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		p.ID = id.String()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = time.Now().UnixNano()
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPuzzles).Put([]byte(p.ID), data)
	})
}

func (s *Bolt) Load(ctx context.Context, id string) (*domain.Puzzle, error) {
	var out *domain.Puzzle
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketPuzzles).Get([]byte(id))
		if data == nil {
			return os.ErrNotExist
		}
		var p domain.Puzzle
		if err := json.Unmarshal(data, &p); err != nil {
			return err
		}
		out = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Bolt) List(ctx context.Context) ([]domain.PuzzleMeta, error) {
	var out []domain.PuzzleMeta
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketPuzzles).ForEach(func(k, v []byte) error {
			var p domain.Puzzle
			if err := json.Unmarshal(v, &p); err != nil || p.ID == "" {
				return nil // skip unreadable entries
			}
			out = append(out, domain.PuzzleMeta{
				ID:        p.ID,
				Name:      p.Name,
				NumClues:  p.NumClues,
				CreatedAt: p.CreatedAt,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
