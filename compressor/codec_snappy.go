package compressor

import (
	"github.com/golang/snappy"
)

// snappyCodec wraps golang/snappy, a direct dependency of
// ethereum-go-ethereum's trie snapshot compression. Snappy has no
// level concept; it ignores the engine's level setting silently.
type snappyCodec struct{}

func (snappyCodec) levelAware() bool        { return false }
func (snappyCodec) supportsDecompress() bool { return true }

func (snappyCodec) compress(level int, data []byte) (int, error) {
	return len(snappyEncode(data)), nil
}

func snappyEncode(data []byte) []byte {
	return snappy.Encode(nil, data)
}

func (snappyCodec) decompress(data []byte) ([]byte, bool, error) {
	out, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, true, err
	}
	return out, true, nil
}
