package compressor

import (
	"bytes"

	"github.com/ulikunitz/xz"
)

// xzCodec wraps ulikunitz/xz, the .xz container over the same LZMA2
// filter as lzmaCodec. XZ has no per-call "level" knob in this
// library's default writer config, so it silently ignores the
// engine's level setting, matching spec §4.1.
type xzCodec struct{}

func (xzCodec) levelAware() bool        { return false }
func (xzCodec) supportsDecompress() bool { return true }

func (xzCodec) compress(level int, data []byte) (int, error) {
	out, err := xzEncode(data)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

func xzEncode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (xzCodec) decompress(data []byte) ([]byte, bool, error) {
	r, err := xz.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, true, err
	}

	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		return nil, true, err
	}
	return out.Bytes(), true, nil
}
