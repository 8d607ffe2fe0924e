package compressor

import (
	"time"

	"github.com/gosimilarity/elsim/elsimerr"
)

// LogicalDepth approximates Bennett's logical depth: compress once,
// then decompress n times (n >= 1000 recommended, per spec §4.1), and
// return the mean wall-clock time per decompression. This is purely
// advisory and machine-dependent; it guards against the unsupported
// case at the façade level rather than inside a codec, per spec §9's
// "Guard against segfaults by rejecting codecs without a decompressor
// at the façade level."
func (f *Facade) LogicalDepth(data []byte, iterations int) (time.Duration, error) {
	if iterations < 1 {
		iterations = 1000
	}

	c, t, level := f.current()
	if !c.supportsDecompress() {
		return 0, elsimerr.Newf(elsimerr.UnsupportedOperation, "codec %s has no decompressor", t)
	}

	compressed, err := encodeForDepth(c, level, data)
	if err != nil {
		return 0, elsimerr.WrapCodec(elsimerr.CodecFailure, t.String(), err)
	}

	start := time.Now()
	for i := 0; i < iterations; i++ {
		if _, _, err := c.decompress(compressed); err != nil {
			return 0, elsimerr.WrapCodec(elsimerr.CodecFailure, t.String(), err)
		}
	}
	elapsed := time.Since(start)

	return elapsed / time.Duration(iterations), nil
}

// encodeForDepth produces the actual compressed bytes LogicalDepth
// needs to feed back into decompress; Facade.Compress only returns a
// length, so the codecs that support round-tripping expose an
// internal encode path here instead of duplicating every codec's
// compress implementation.
func encodeForDepth(c codec, level int, data []byte) ([]byte, error) {
	switch v := c.(type) {
	case zlibCodec:
		return zlibEncode(level, data)
	case bzip2Codec:
		return bzip2Encode(level, data)
	case lzmaCodec:
		return lzmaEncode(level, data)
	case xzCodec:
		return xzEncode(data)
	case snappyCodec:
		return snappyEncode(data), nil
	case smazCodec:
		return smazEncode(data), nil
	case blockSortCodec:
		return blockSortEncode(data), nil
	default:
		_ = v
		return nil, elsimerr.New(elsimerr.UnsupportedOperation, "codec has no encode path for logical depth")
	}
}
