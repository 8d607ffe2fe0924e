package compressor

import (
	"bytes"

	"github.com/klauspost/compress/zlib"
)

// zlibCodec wraps klauspost/compress/zlib, a drop-in, allocation-light
// replacement for compress/zlib that the rest of the retrieved corpus
// already depends on transitively.
type zlibCodec struct{}

func (zlibCodec) levelAware() bool        { return true }
func (zlibCodec) supportsDecompress() bool { return true }

func (zlibCodec) compress(level int, data []byte) (int, error) {
	out, err := zlibEncode(level, data)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

func zlibEncode(level int, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
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

func (zlibCodec) decompress(data []byte) ([]byte, bool, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, true, err
	}
	defer r.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		return nil, true, err
	}
	return out.Bytes(), true, nil
}
