package compressor

import (
	"bytes"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// bzip2Codec wraps dsnet/compress/bzip2, the only pack-visible Go
// package offering both a bzip2 writer and reader (the standard
// library's compress/bzip2 can only decompress).
type bzip2Codec struct{}

func (bzip2Codec) levelAware() bool        { return true }
func (bzip2Codec) supportsDecompress() bool { return true }

func (bzip2Codec) compress(level int, data []byte) (int, error) {
	out, err := bzip2Encode(level, data)
	if err != nil {
		return 0, err
	}
	return len(out), nil
}

func bzip2Encode(level int, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: level})
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

func (bzip2Codec) decompress(data []byte) ([]byte, bool, error) {
	r, err := bzip2.NewReader(bytes.NewReader(data), nil)
	if err != nil {
		return nil, true, err
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, true, err
	}
	return out, true, nil
}
