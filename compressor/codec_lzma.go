package compressor

import (
	"bytes"

	"github.com/ulikunitz/xz/lzma"
)

// lzmaCodec wraps ulikunitz/xz/lzma, directly grounded on its use in
// other_examples (a raw-LZMA codec reader/writer) and the sibling xz
// container codec below.
type lzmaCodec struct{}

func (lzmaCodec) levelAware() bool        { return true }
func (lzmaCodec) supportsDecompress() bool { return true }

// dictCapForLevel maps the engine's 1-9 level onto the dictionary
// size the classic LZMA SDK would pick for its own -1..-9 presets:
// bigger dictionaries trade memory for a better match at the high end.
func dictCapForLevel(level int) int {
	cap := 1 << uint(16+level) // level 1 -> 128 KiB .. level 9 -> 32 MiB
	if cap < lzma.MinDictCap {
		cap = lzma.MinDictCap
	}
	return cap
}

func (lzmaCodec) compress(level int, data []byte) (int, error) {
	out, err := lzmaEncode(level, data)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

func lzmaEncode(level int, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	cfg := lzma.WriterConfig{DictCap: dictCapForLevel(level)}
	w, err := cfg.NewWriter(&buf)
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

func (lzmaCodec) decompress(data []byte) ([]byte, bool, error) {
	r, err := lzma.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, true, err
	}

	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		return nil, true, err
	}
	return out.Bytes(), true, nil
}
