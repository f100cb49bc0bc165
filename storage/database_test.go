package storage

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"sort"
	"testing"

	"github.com/deso-protocol/keccakcheck/keccak"
	"github.com/stretchr/testify/require"
)

// digestKey is the key of the ii-th test record: the digest of its index, the same shape the
// corpus uses.
func digestKey(ii int) []byte {
	var index [8]byte
	binary.BigEndian.PutUint64(index[:], uint64(ii))
	digest := keccak.Sum256(index[:])
	return digest[:]
}

// collect returns every key under prefix in iteration order, stopping after limit keys when
// limit is positive.
func collect(t *testing.T, db Database, prefix []byte, limit int) (_keys [][]byte, _values [][]byte) {
	require := require.New(t)
	var keys, values [][]byte
	require.NoError(db.View(func(tx Transaction) error {
		it, err := tx.GetIterator(prefix)
		require.NoError(err)
		defer it.Close()
		for it.Next() {
			value, err := it.Value()
			require.NoError(err)
			keys = append(keys, append([]byte{}, it.Key()...))
			values = append(values, value)
			if limit > 0 && len(keys) >= limit {
				break
			}
		}
		return nil
	}))
	return keys, values
}

// exerciseDatabase writes records items, deletes removed of them, then checks point reads,
// ErrKeyNotFound for deleted keys, and ordered iteration with and without a limit.
func exerciseDatabase(t *testing.T, db Database, records int, removed int) {
	require := require.New(t)
	r := rand.New(rand.NewSource(int64(records)))

	expected := make(map[string][]byte)
	require.NoError(db.Update(func(tx Transaction) error {
		for ii := 0; ii < records; ii++ {
			value := make([]byte, 1+r.Intn(200))
			r.Read(value)
			expected[string(digestKey(ii))] = value
			if err := tx.Set(digestKey(ii), value); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(db.Update(func(tx Transaction) error {
		for ii := 0; ii < removed; ii++ {
			if err := tx.Delete(digestKey(ii)); err != nil {
				return err
			}
			delete(expected, string(digestKey(ii)))
		}
		return nil
	}))

	require.NoError(db.View(func(tx Transaction) error {
		for ii := 0; ii < records; ii++ {
			value, err := tx.Get(digestKey(ii))
			if ii < removed {
				require.ErrorIs(err, ErrKeyNotFound)
				continue
			}
			require.NoError(err)
			require.Equal(expected[string(digestKey(ii))], value)
		}
		return nil
	}))

	keys, values := collect(t, db, []byte{}, 0)
	require.Equal(records-removed, len(keys))
	require.True(sort.SliceIsSorted(keys, func(ii, jj int) bool {
		return bytes.Compare(keys[ii], keys[jj]) < 0
	}))
	for ii, key := range keys {
		require.Equal(expected[string(key)], values[ii])
	}

	limited, _ := collect(t, db, []byte{}, 10)
	require.Equal(keys[:10], limited)
}
