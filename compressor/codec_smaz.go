package compressor

import "sort"

// smazCodec is a small-string dictionary compressor in the spirit of
// antirez/smaz: a fixed codebook of common short fragments, each
// replaced by a single output byte when it matches, with an escape
// byte for anything else. No Go port of smaz appears anywhere in the
// retrieved example corpus (see DESIGN.md), so this is a self-written
// codec rather than a wrapped third-party one; its shape (greedy
// longest-match against a static table, single escape byte for
// verbatim bytes) mirrors the original's, scaled down to a dictionary
// that fits comfortably in one source file.
type smazCodec struct{}

func (smazCodec) levelAware() bool        { return false }
func (smazCodec) supportsDecompress() bool { return true }

const smazEscape = byte(0xFF)

// smazBook is ordered longest-entry-first so greedy matching finds the
// longest applicable fragment at each position.
var smazBook = buildSmazBook([]string{
	"the", "and", "ing", "ion", "tion", "ent", "ati", "for", "her", "ter",
	"hat", "tha", "ere", "ate", "his", "con", "res", "ver", "all", "ons",
	"nce", "men", "ith", "ted", "ers", "pro", "thi", "wit", "are", "ess",
	" the ", " a ", " to ", " of ", " and ", " in ", " is ", " it ", " on ",
	"tion", "ment", "ound", "ight", "ough", "able", "ing ", " th", "he ",
	"in ", "er ", "an ", "re ", "on ", "at ", "nd ", "or ", "en ", "is ",
	"to", "of", "in", "it", "is", "be", "as", "at", "so", "we", "he",
	"by", "or", "on", "do", "if", "me", "my", "up", "an", "go", "no",
	" ", "e", "t", "a", "o", "i", "n", "s", "h", "r", "d", "l", "c", "u",
	"m", "w", "f", "g", "y", "p", "b", "v", "k", "j", "x", "q", "z",
})

type smazEntry struct {
	code uint8
	text string
}

func buildSmazBook(entries []string) []smazEntry {
	entries = append([]string(nil), entries...)
	sort.SliceStable(entries, func(i, j int) bool { return len(entries[i]) > len(entries[j]) })
	if len(entries) > 254 {
		entries = entries[:254]
	}
	book := make([]smazEntry, len(entries))
	for i, e := range entries {
		book[i] = smazEntry{code: uint8(i), text: e}
	}
	return book
}

func smazEncode(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		matched := false
		for _, e := range smazBook {
			n := len(e.text)
			if n == 0 || i+n > len(data) {
				continue
			}
			if string(data[i:i+n]) == e.text {
				out = append(out, e.code)
				i += n
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, smazEscape, data[i])
			i++
		}
	}
	return out
}

func smazDecode(data []byte) []byte {
	out := make([]byte, 0, len(data)*2)
	for i := 0; i < len(data); i++ {
		b := data[i]
		if b == smazEscape && i+1 < len(data) {
			i++
			out = append(out, data[i])
			continue
		}
		if int(b) < len(smazBook) {
			out = append(out, smazBook[b].text...)
		}
	}
	return out
}

func (smazCodec) compress(level int, data []byte) (int, error) {
	return len(smazEncode(data)), nil
}

func (smazCodec) decompress(data []byte) ([]byte, bool, error) {
	return smazDecode(data), true, nil
}
