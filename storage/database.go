package storage

import "github.com/pkg/errors"

// ErrKeyNotFound is returned by Transaction.Get when the key is absent.
var ErrKeyNotFound = errors.New("storage: key not found")

// Database is a small key-value interface in the shape of the BadgerDB API. Callers get
// read-write access through Update() and read-only access through View(), both taking a
// callback that receives a Transaction. Setup() opens the database, Close() closes it and
// Erase() removes its files.
type Database interface {
	Setup() error
	Update(func(Transaction) error) error
	View(func(Transaction) error) error
	Close() error
	Erase() error
}

// Transaction is valid only inside the Update or View callback that produced it.
type Transaction interface {
	Set(key []byte, value []byte) error
	Delete(key []byte) error
	Get(key []byte) ([]byte, error)
	GetIterator(prefix []byte) (Iterator, error)
}

// Iterator walks the keys under a prefix in ascending order. A new Iterator points at nothing;
// the first Next() moves it to the first key. Next() returns false once the prefix is exhausted
// and Close() must always be called:
//
//	defer it.Close()
//	for it.Next() {
//		key := it.Key()
//		value, err := it.Value()
//		...
//	}
type Iterator interface {
	Value() ([]byte, error)
	Key() []byte
	Next() bool
	Close()
}
