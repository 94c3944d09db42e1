package notice

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var (
	bucketBoard = []byte("board")
	keyState    = []byte("state")
)

// BoltStore persists board snapshots in a bbolt database.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBoltStore opens or creates the bbolt database at dbPath.
// The parent directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("notice: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("notice: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketBoard)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("notice: create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// PutState stores a board snapshot, replacing any previous one.
func (s *BoltStore) PutState(state *BoardState) error {
	if err := validateState(state); err != nil {
		return err
	}
	data, err := encodeGob(state)
	if err != nil {
		return fmt.Errorf("notice: encode state: %w", err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketBoard).Put(keyState, data)
	})
	if err != nil {
		return fmt.Errorf("notice: put state: %w", err)
	}
	return nil
}

// GetState returns the stored board snapshot, or ErrStateNotFound if none
// has been saved.
func (s *BoltStore) GetState() (*BoardState, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(bucketBoard).Get(keyState); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("notice: get state: %w", err)
	}
	if data == nil {
		return nil, ErrStateNotFound
	}

	var state BoardState
	if err := decodeGob(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	return &state, nil
}

// SaveBoard snapshots the board into the store.
func (s *BoltStore) SaveBoard(b *Board) error {
	return s.PutState(b.State())
}

// LoadBoard restores the board from the stored snapshot.
func (s *BoltStore) LoadBoard(b *Board) error {
	state, err := s.GetState()
	if err != nil {
		return err
	}
	return b.Restore(state)
}

// encodeGob serializes a value using gob encoding.
func encodeGob(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a value.
func decodeGob(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
