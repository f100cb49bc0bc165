package lib

import (
	"bytes"
	"fmt"
	"io"

	"github.com/deso-protocol/keccakcheck/encoding"
	"github.com/deso-protocol/keccakcheck/keccak"
	"github.com/deso-protocol/keccakcheck/storage"
	"github.com/golang/glog"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// Corpus key prefixes.
var (
	// <prefix, digest [32]byte> -> <CorpusEntry>
	PrefixCorpusEntry = []byte{0x01}
)

// CorpusEntry is an input that has been validated once, with the digest recorded at the time.
type CorpusEntry struct {
	Label  string
	Input  []byte
	Digest [keccak.DigestSize]byte
}

func (entry *CorpusEntry) ToBytes() []byte {
	var data []byte
	data = append(data, encoding.EncodeByteArray(entry.Input)...)
	data = append(data, entry.Digest[:]...)
	data = append(data, encoding.EncodeByteArray([]byte(entry.Label))...)
	return data
}

func (entry *CorpusEntry) FromBytes(rr *bytes.Reader) error {
	input, err := encoding.DecodeByteArrayFromBytes(rr)
	if err != nil {
		return errors.Wrapf(err, "CorpusEntry.FromBytes: Problem reading input")
	}
	var digest [keccak.DigestSize]byte
	if _, err = io.ReadFull(rr, digest[:]); err != nil {
		return errors.Wrapf(err, "CorpusEntry.FromBytes: Problem reading digest")
	}
	label, err := encoding.DecodeByteArrayFromBytes(rr)
	if err != nil {
		return errors.Wrapf(err, "CorpusEntry.FromBytes: Problem reading label")
	}

	entry.Input = input
	entry.Digest = digest
	entry.Label = string(label)
	return nil
}

func corpusKey(digest [keccak.DigestSize]byte) []byte {
	key := append([]byte{}, PrefixCorpusEntry...)
	return append(key, digest[:]...)
}

// CorpusWriteCacheSize is how many recently written digests a Corpus remembers.
const CorpusWriteCacheSize = 4096

// Corpus stores validated inputs keyed by their digest so they can be replayed later.
type Corpus struct {
	db storage.Database

	// Digests written through this Corpus. A digest fixes its input, so writing it again would
	// only rewrite the same record.
	written *lru.Cache[[keccak.DigestSize]byte, struct{}]
}

// NewCorpus wraps a database that has already been set up.
func NewCorpus(db storage.Database) *Corpus {
	written, _ := lru.New[[keccak.DigestSize]byte, struct{}](CorpusWriteCacheSize)
	return &Corpus{db: db, written: written}
}

// OpenCorpus opens (creating if needed) a badger-backed corpus in dir.
func OpenCorpus(dir string) (*Corpus, error) {
	db := storage.NewBadgerDatabase(storage.DefaultBadgerOptions(dir))
	if err := db.Setup(); err != nil {
		return nil, errors.Wrapf(err, "OpenCorpus: Problem opening corpus in %s", dir)
	}
	glog.V(1).Infof("OpenCorpus: Opened corpus in %s", dir)
	return NewCorpus(db), nil
}

// Put stores entry under its digest unless an entry is already stored there, so the first label
// stored for an input is kept. Digests this Corpus wrote recently skip the database entirely.
func (c *Corpus) Put(entry *CorpusEntry) error {
	if c.written.Contains(entry.Digest) {
		return nil
	}
	err := c.db.Update(func(txn storage.Transaction) error {
		key := corpusKey(entry.Digest)
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if !errors.Is(err, storage.ErrKeyNotFound) {
			return err
		}
		return txn.Set(key, entry.ToBytes())
	})
	if err != nil {
		return errors.Wrapf(err, "Corpus.Put: Problem writing entry %s", entry.Label)
	}
	c.written.Add(entry.Digest, struct{}{})
	return nil
}

// PutResult stores the input of a validated result under the reference digest.
func (c *Corpus) PutResult(label string, input []byte, result *ValidationResult) error {
	if !result.Matched() {
		return fmt.Errorf("Corpus.PutResult: Refusing to store input of mismatched run %v", result.RunID)
	}
	return c.Put(&CorpusEntry{
		Label:  label,
		Input:  input,
		Digest: result.Reference().Digest,
	})
}

// Get returns the entry stored under digest, or storage.ErrKeyNotFound.
func (c *Corpus) Get(digest [keccak.DigestSize]byte) (*CorpusEntry, error) {
	var entry *CorpusEntry
	err := c.db.View(func(txn storage.Transaction) error {
		data, err := txn.Get(corpusKey(digest))
		if err != nil {
			return err
		}
		entry = &CorpusEntry{}
		return entry.FromBytes(bytes.NewReader(data))
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ForEach calls fn for every entry in digest order, stopping at the first error.
func (c *Corpus) ForEach(fn func(entry *CorpusEntry) error) error {
	return c.db.View(func(txn storage.Transaction) error {
		it, err := txn.GetIterator(PrefixCorpusEntry)
		if err != nil {
			return errors.Wrapf(err, "Corpus.ForEach: Problem creating iterator")
		}
		defer it.Close()

		for it.Next() {
			data, err := it.Value()
			if err != nil {
				return errors.Wrapf(err, "Corpus.ForEach: Problem reading value")
			}
			entry := &CorpusEntry{}
			if err = entry.FromBytes(bytes.NewReader(data)); err != nil {
				return errors.Wrapf(err, "Corpus.ForEach: Problem decoding entry for key %x", it.Key())
			}
			if err = fn(entry); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *Corpus) Count() (int, error) {
	count := 0
	err := c.ForEach(func(*CorpusEntry) error {
		count++
		return nil
	})
	return count, err
}

func (c *Corpus) Close() error {
	return c.db.Close()
}
