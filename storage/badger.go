package storage

import (
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/pkg/errors"
)

type BadgerDatabase struct {
	db   *badger.DB
	opts badger.Options
}

func NewBadgerDatabase(opts badger.Options) *BadgerDatabase {
	return &BadgerDatabase{
		db:   nil,
		opts: opts,
	}
}

func (bdb *BadgerDatabase) Setup() error {
	db, err := badger.Open(bdb.opts)
	if err != nil {
		return errors.Wrapf(err, "Setup: Problem opening badger in dir %s", bdb.opts.Dir)
	}
	bdb.db = db
	return nil
}

func (bdb *BadgerDatabase) Update(fn func(Transaction) error) error {
	err := bdb.db.Update(func(txn *badger.Txn) error {
		return fn(NewBadgerTransaction(txn))
	})
	if err != nil {
		return errors.Wrapf(err, "Update:")
	}
	return nil
}

func (bdb *BadgerDatabase) View(fn func(Transaction) error) error {
	return bdb.db.View(func(txn *badger.Txn) error {
		return fn(NewBadgerTransaction(txn))
	})
}

func (bdb *BadgerDatabase) Close() error {
	if bdb.db == nil {
		return nil
	}
	return bdb.db.Close()
}

// Erase removes the database directory. It is a no-op for in-memory databases.
func (bdb *BadgerDatabase) Erase() error {
	if bdb.opts.InMemory || bdb.opts.Dir == "" {
		return nil
	}
	return os.RemoveAll(bdb.opts.Dir)
}

// ==========================
// BadgerTransaction
// ==========================

type BadgerTransaction struct {
	txn *badger.Txn
}

func NewBadgerTransaction(txn *badger.Txn) *BadgerTransaction {
	return &BadgerTransaction{txn: txn}
}

func (btx *BadgerTransaction) Set(key []byte, value []byte) error {
	if err := btx.txn.Set(key, value); err != nil {
		return errors.Wrapf(err, "Set:")
	}
	return nil
}

func (btx *BadgerTransaction) Delete(key []byte) error {
	if err := btx.txn.Delete(key); err != nil {
		return errors.Wrapf(err, "Delete:")
	}
	return nil
}

func (btx *BadgerTransaction) Get(key []byte) ([]byte, error) {
	item, err := btx.txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Get:")
	}
	return item.ValueCopy(nil)
}

func (btx *BadgerTransaction) GetIterator(prefix []byte) (Iterator, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix
	it := btx.txn.NewIterator(opts)
	it.Seek(prefix)
	return NewBadgerIterator(it, prefix), nil
}

// ==========================
// BadgerIterator
// ==========================

type BadgerIterator struct {
	it          *badger.Iterator
	prefix      []byte
	initialized bool
}

func NewBadgerIterator(it *badger.Iterator, prefix []byte) *BadgerIterator {
	return &BadgerIterator{
		it:          it,
		prefix:      prefix,
		initialized: false,
	}
}

func (bit *BadgerIterator) Value() ([]byte, error) {
	return bit.it.Item().ValueCopy(nil)
}

func (bit *BadgerIterator) Key() []byte {
	return bit.it.Item().KeyCopy(nil)
}

func (bit *BadgerIterator) Next() bool {
	if !bit.initialized {
		bit.initialized = true
		return bit.it.ValidForPrefix(bit.prefix)
	}

	bit.it.Next()
	return bit.it.ValidForPrefix(bit.prefix)
}

func (bit *BadgerIterator) Close() {
	bit.it.Close()
}

// DefaultBadgerOptions are badger's defaults for dir with badger's own logging turned off.
func DefaultBadgerOptions(dir string) badger.Options {
	opts := badger.DefaultOptions(dir)

	opts.Logger = nil
	return opts
}

// InMemoryBadgerOptions keep everything in memory. Nothing is written to disk.
func InMemoryBadgerOptions() badger.Options {
	return DefaultBadgerOptions("").WithInMemory(true)
}
