// Package fingerprintdb is a SUPPLEMENT restoring the on-disk
// fingerprint database spec.md §1 places out of scope as an external
// collaborator (the "already-seen" lookup tool). It is grounded on
// original_source/elsim/db.py's DBFormat/ElsimDB classes: a
// name -> subname -> classname -> {simhash -> size} tree, persisted
// as JSON, queried by computing how much of a subname's recorded size
// is covered by a set of freshly-seen simhashes.
//
// The on-disk shape here separates a subname's aggregate size into
// its own field rather than mixing it into the same JSON object as
// the class buckets (db.py's "SIZE" sentinel key living alongside
// dict-valued class keys) since Go's static typing can't express that
// union cleanly; the tree's three addressing levels and lookup
// semantics are otherwise unchanged.
package fingerprintdb

import (
	"encoding/json"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/gosimilarity/elsim/elsimerr"
)

// Subname is the second level of the tree: an aggregate size plus the
// classes contributing to it.
type Subname struct {
	Size    int                       `json:"size"`
	Classes map[string]map[string]int `json:"classes"`
}

// Store is a JSON-backed name -> subname -> Subname fingerprint tree.
// Safe for concurrent use.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]map[string]*Subname
}

// New returns an empty, unsaved store bound to path.
func New(path string) *Store {
	return &Store{path: path, data: make(map[string]map[string]*Subname)}
}

// Load reads a store from path. A missing file yields an empty store,
// mirroring db.py's DBFormat falling back to an empty dict on IOError.
func Load(path string) (*Store, error) {
	s := New(path)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, &elsimerr.Error{Kind: elsimerr.IOFailure, Msg: "read " + path, Cause: err}
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, &elsimerr.Error{Kind: elsimerr.IOFailure, Msg: "decode " + path, Cause: err}
	}
	for name, subs := range s.data {
		for subname, sub := range subs {
			if sub == nil {
				delete(subs, subname)
				continue
			}
			if sub.Classes == nil {
				sub.Classes = make(map[string]map[string]int)
			}
		}
		if len(subs) == 0 {
			delete(s.data, name)
		}
	}
	return s, nil
}

// Save writes the store to its bound path as JSON (db.py's
// DBFormat.save).
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(s.data)
	if err != nil {
		return &elsimerr.Error{Kind: elsimerr.IOFailure, Msg: "encode", Cause: err}
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return &elsimerr.Error{Kind: elsimerr.IOFailure, Msg: "write " + s.path, Cause: err}
	}
	return nil
}

// AddElement records one method's fingerprint under the tree
// (db.py's DBFormat.add_element), skipping a simhash already present
// under the same class so SIZE is never double-counted.
func (s *Store) AddElement(name, subname, class string, size int, simhash uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs, ok := s.data[name]
	if !ok {
		subs = make(map[string]*Subname)
		s.data[name] = subs
	}
	sub, ok := subs[subname]
	if !ok {
		sub = &Subname{Classes: make(map[string]map[string]int)}
		subs[subname] = sub
	}
	classBucket, ok := sub.Classes[class]
	if !ok {
		classBucket = make(map[string]int)
		sub.Classes[class] = classBucket
	}

	key := strconv.FormatUint(simhash, 10)
	if _, exists := classBucket[key]; exists {
		return
	}
	classBucket[key] = size
	sub.Size += size
}

// Match is one subname's coverage percentage for a lookup set of
// fresh fingerprints (db.py's ElsimDB._eval_res result rows).
type Match struct {
	Subname    string
	Percentage float64
}

// Lookup reports, per top-level name, every subname whose recorded
// size is covered by more than thresholdPercent of the given
// fingerprints, sorted by descending coverage (db.py's
// ElsimDB.percentages, simplified to operate directly on a caller-
// supplied fingerprint set instead of a live disassembler session).
func (s *Store) Lookup(fingerprints []uint64, thresholdPercent float64) map[string][]Match {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[uint64]bool, len(fingerprints))
	for _, h := range fingerprints {
		seen[h] = true
	}

	result := make(map[string][]Match)
	for name, subs := range s.data {
		for subname, sub := range subs {
			if sub.Size == 0 {
				continue
			}
			var matched int
			for _, class := range sub.Classes {
				for key, size := range class {
					h, err := strconv.ParseUint(key, 10, 64)
					if err != nil {
						continue
					}
					if seen[h] {
						matched += size
					}
				}
			}
			pct := float64(matched) / float64(sub.Size) * 100
			if pct > thresholdPercent {
				result[name] = append(result[name], Match{Subname: subname, Percentage: pct})
			}
		}
	}

	for name := range result {
		matches := result[name]
		sort.Slice(matches, func(i, j int) bool { return matches[i].Percentage > matches[j].Percentage })
		result[name] = matches
	}
	return result
}
