package lib

import (
	"fmt"
	"sort"

	"github.com/deso-protocol/keccakcheck/keccak"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	flowhash "github.com/onflow/crypto/hash"
	"golang.org/x/crypto/sha3"
)

// Hasher computes a Keccak-256 digest of a byte sequence. The sponge and every reference oracle
// implement it so the Validator can treat them uniformly.
type Hasher interface {
	Name() string
	Sum256(input []byte) [keccak.DigestSize]byte
}

// SpongeHasher is the hand-rolled sponge from the keccak package.
type SpongeHasher struct {
	sponge *keccak.Sponge
}

func NewSpongeHasher(permutation keccak.Permutation) *SpongeHasher {
	return &SpongeHasher{sponge: keccak.NewSponge(permutation)}
}

func (sh *SpongeHasher) Name() string {
	return SpongeHasherName
}

func (sh *SpongeHasher) Sum256(input []byte) [keccak.DigestSize]byte {
	return sh.sponge.Sum256(input)
}

// XCryptoHasher is golang.org/x/crypto's legacy Keccak-256.
type XCryptoHasher struct{}

func (XCryptoHasher) Name() string {
	return XCryptoHasherName
}

func (XCryptoHasher) Sum256(input []byte) [keccak.DigestSize]byte {
	var digest [keccak.DigestSize]byte
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(input)
	hasher.Sum(digest[:0])
	return digest
}

// GethHasher is go-ethereum's crypto.Keccak256Hash.
type GethHasher struct{}

func (GethHasher) Name() string {
	return GethHasherName
}

func (GethHasher) Sum256(input []byte) [keccak.DigestSize]byte {
	return ethcrypto.Keccak256Hash(input)
}

// FlowHasher is the legacy Keccak-256 from onflow/crypto.
type FlowHasher struct{}

func (FlowHasher) Name() string {
	return FlowHasherName
}

func (FlowHasher) Sum256(input []byte) [keccak.DigestSize]byte {
	var digest [keccak.DigestSize]byte
	copy(digest[:], flowhash.NewKeccak_256().ComputeHash(input))
	return digest
}

var oracleConstructors = map[string]func() Hasher{
	OracleXCrypto: func() Hasher { return XCryptoHasher{} },
	OracleGeth:    func() Hasher { return GethHasher{} },
	OracleFlow:    func() Hasher { return FlowHasher{} },
}

// OracleKeys lists the keys NewOracle accepts, sorted.
func OracleKeys() []string {
	keys := make([]string, 0, len(oracleConstructors))
	for key := range oracleConstructors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// NewOracle returns the reference hasher registered under key.
func NewOracle(key string) (Hasher, error) {
	constructor, exists := oracleConstructors[key]
	if !exists {
		return nil, fmt.Errorf("NewOracle: Unknown oracle %q, expected one of %v", key, OracleKeys())
	}
	return constructor(), nil
}

// NewOracles resolves every key, failing on the first unknown one.
func NewOracles(keys []string) ([]Hasher, error) {
	var oracles []Hasher
	for _, key := range keys {
		oracle, err := NewOracle(key)
		if err != nil {
			return nil, err
		}
		oracles = append(oracles, oracle)
	}
	return oracles, nil
}
