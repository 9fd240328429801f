package storage

import (
	"github.com/dgraph-io/badger/v4"
)

// DB wraps a BadgerDB handle opened at a directory returned by one of the
// Dir helpers in paths.go. It carries no schema of its own; callers (the
// opening-book index in internal/book) own their key layout and encoding.
type DB struct {
	db *badger.DB
}

// Open opens (creating if absent) a Badger database at dir.
func Open(dir string) (*DB, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	bdb, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &DB{db: bdb}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	if d.db == nil {
		return nil
	}
	return d.db.Close()
}

// Get looks up key, returning (nil, false) on a miss rather than an error.
func (d *DB) Get(key []byte) ([]byte, bool, error) {
	var val []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			val = append([]byte(nil), v...)
			return nil
		})
	})
	if err != nil {
		return nil, false, err
	}
	return val, val != nil, nil
}

// Set writes key=value.
func (d *DB) Set(key, value []byte) error {
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

// BatchSet writes many key/value pairs in a single write batch, used when
// indexing an entire Polyglot book file.
func (d *DB) BatchSet(entries map[string][]byte) error {
	wb := d.db.NewWriteBatch()
	defer wb.Cancel()
	for k, v := range entries {
		if err := wb.Set([]byte(k), v); err != nil {
			return err
		}
	}
	return wb.Flush()
}

// Has reports whether the database already has any keys, used to decide
// whether a book file still needs indexing.
func (d *DB) Has() bool {
	has := false
	_ = d.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		it.Rewind()
		has = it.Valid()
		return nil
	})
	return has
}

// Count iterates the keyspace and returns the number of entries. Badger has
// no O(1) key count, so this is for diagnostics only, not hot paths.
func (d *DB) Count() int {
	n := 0
	_ = d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n
}
