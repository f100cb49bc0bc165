package lib

import (
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"github.com/shibukawa/configdir"
)

const (
	// ConfigDirVendorName is the enclosing folder for user data.
	// It's required to created a ConfigDir.
	ConfigDirVendorName = "deso"
	// ConfigDirAppName is the folder where we keep user data.
	ConfigDirAppName = "keccakcheck"

	// CorpusDirName is the subdirectory of the data dir holding the input corpus.
	CorpusDirName = "corpus"

	// MaxInputLength bounds the size of a single framed input read from the host environment.
	MaxInputLength = 1 << 30
	// MaxHexInputLength bounds hex-framed text: two digits per byte, a 0x prefix and a newline.
	MaxHexInputLength = 2*MaxInputLength + 3

	// Enables or disables the event Timer.
	EnableTimer  = true
	DisableTimer = false
)

// Event names, used as cycle-marker labels and metric/span names.
const (
	SpongeHasherName  = "raw keccak"
	XCryptoHasherName = "x/crypto sha3"
	GethHasherName    = "go-ethereum"
	FlowHasherName    = "onflow keccak"
)

// Oracle keys accepted by --oracles.
const (
	OracleXCrypto = "x-crypto"
	OracleGeth    = "go-ethereum"
	OracleFlow    = "onflow"
)

// DefaultOracles are the two reference implementations every digest is checked against.
var DefaultOracles = []string{OracleXCrypto, OracleGeth}

// SweepBoundaryLengths are the input lengths around the rate that every sweep covers.
var SweepBoundaryLengths = []int{0, 1, 135, 136, 137, 272}

// GetDataDir returns the user's global config folder for keccakcheck, creating it if needed.
func GetDataDir() string {
	configDirs := configdir.New(
		ConfigDirVendorName, ConfigDirAppName)
	dirString := configDirs.QueryFolders(configdir.Global)[0].Path
	if err := os.MkdirAll(dirString, os.ModePerm); err != nil {
		glog.Fatalf("GetDataDir: Could not create data directories (%s): %v", dirString, err)
	}
	return dirString
}

// GetCorpusDir returns the corpus directory under dataDir.
func GetCorpusDir(dataDir string) string {
	return filepath.Join(dataDir, CorpusDirName)
}
