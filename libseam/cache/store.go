// Package cache keeps analysis results keyed by mesh identity in a badger store, so a
// caller can skip re-analysing a mesh it has already seen.
package cache

import (
	"encoding/binary"
	"runtime"

	"github.com/dgraph-io/badger/v3"
	"github.com/gogo/protobuf/proto"
	"github.com/pkg/errors"
)

var (
	ErrBadStoreParam = errors.New("bad cache store parameter")
	ErrNoRecord      = errors.New("no cached record")
)

var recordPrefix = []byte{0x00, 0x01}

// Opts configures Open.  An empty DbPathName opens an in-memory store.
type Opts struct {
	DbPathName string
	ReadOnly   bool
}

// Store maps analysis keys to AnalysisRecords.
type Store struct {
	db *badger.DB
}

func Open(opts Opts) (*Store, error) {
	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(ErrBadStoreParam, "DbPathName must be specified for a read-only store")
		}
		dbOpts.InMemory = true
	}

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func recordKey(key uint64) []byte {
	buf := make([]byte, len(recordPrefix)+8)
	copy(buf, recordPrefix)
	binary.BigEndian.PutUint64(buf[len(recordPrefix):], key)
	return buf
}

// Put stores rec under rec.Key, replacing any previous record.
func (s *Store) Put(rec *AnalysisRecord) error {
	buf, err := proto.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(rec.Key), buf)
	})
}

// Get returns the record stored under key or ErrNoRecord.
func (s *Store) Get(key uint64) (*AnalysisRecord, error) {
	rec := &AnalysisRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(recordKey(key))
		if err == badger.ErrKeyNotFound {
			return errors.Wrapf(ErrNoRecord, "key %016x", key)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return proto.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) Delete(key uint64) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(recordKey(key))
	})
}

// Keys returns the keys of every stored record in ascending order.
func (s *Store) Keys() ([]uint64, error) {
	var keys []uint64
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{
			PrefetchValues: false,
			Prefix:         recordPrefix,
		})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			k := it.Item().Key()
			keys = append(keys, binary.BigEndian.Uint64(k[len(recordPrefix):]))
		}
		return nil
	})
	return keys, err
}
