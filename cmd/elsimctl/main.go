// Command elsimctl compares two directories of text files, split into
// sentences, and reports their structural similarity. It is a thin
// demonstration front-end (spec.md §1 places all CLI front-ends out
// of scope; no behavior here is a contract) wiring elsimcfg ->
// elsimlog -> compressor -> kernel -> filter.Text -> compare ->
// report, grounded on main.go's wiring style (config load, logger
// construction, structured startup/shutdown logging). Each comparison
// is a single synchronous run, since spec §5 states there is no
// cancellation for a comparison once it starts; the -http flag serves
// the same comparison from a small demo HTTP endpoint instead.
package main

import (
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gosimilarity/elsim/compare"
	"github.com/gosimilarity/elsim/compressor"
	"github.com/gosimilarity/elsim/elsimcfg"
	"github.com/gosimilarity/elsim/elsimlog"
	"github.com/gosimilarity/elsim/filter"
	"github.com/gosimilarity/elsim/fingerprintdb"
	"github.com/gosimilarity/elsim/kernel"
	"github.com/gosimilarity/elsim/report"
)

var sentenceSplit = regexp.MustCompile(`(?:[.!?]+\s+|\n+)`)

func main() {
	var (
		dirA     = flag.String("a", "", "first directory of text files")
		dirB     = flag.String("b", "", "second directory of text files")
		listings = flag.Bool("listings", false, "print per-category element listings")
		dbPath   = flag.String("db", "", "optional fingerprint database JSON file")
		dbBucket = flag.String("db-name", "elsimctl", "top-level name to record new fingerprints under")
		httpAddr = flag.String("http", "", "serve the demo HTTP report endpoint on this address instead of a one-shot run")
	)
	flag.Parse()

	cfg, err := elsimcfg.Load()
	if err != nil {
		fatal("config", err)
	}
	log := elsimlog.New(cfg)

	if *httpAddr != "" {
		log.Info().Str("addr", *httpAddr).Msg("elsimctl serving /compare and /healthz")
		if err := http.ListenAndServe(*httpAddr, newServer(cfg, log)); err != nil {
			fatal("http server", err)
		}
		return
	}

	log.Info().Str("a", *dirA).Str("b", *dirB).Msg("elsimctl starting")

	if *dirA == "" || *dirB == "" {
		log.Error().Msg("both -a and -b directories are required")
		os.Exit(2)
	}

	sentencesA, err := sentencesInDir(*dirA)
	if err != nil {
		fatal("reading -a", err)
	}
	sentencesB, err := sentencesInDir(*dirB)
	if err != nil {
		fatal("reading -b", err)
	}
	log.Info().Int("a_sentences", len(sentencesA)).Int("b_sentences", len(sentencesB)).Msg("split into sentences")

	facade := compressor.New()
	if ctype, ok := compressor.ByName(cfg.DefaultCompressor); ok {
		facade.SetType(ctype)
	} else {
		log.Warn().Str("compressor", cfg.DefaultCompressor).Msg("unknown compressor name, keeping default")
	}
	if err := facade.SetLevel(cfg.Level); err != nil {
		fatal("compressor level", err)
	}
	k := kernel.New(facade)

	session, err := compare.New(toAny(sentencesA), toAny(sentencesB), filter.Text(cfg), k, cfg)
	if err != nil {
		fatal("compare", err)
	}

	var opts []report.Option
	if *listings {
		opts = append(opts, report.WithListings())
	}
	if err := report.Write(os.Stdout, session, opts...); err != nil {
		fatal("report", err)
	}

	if *dbPath != "" {
		if err := demoFingerprintDB(*dbPath, *dbBucket, sentencesB, log); err != nil {
			log.Warn().Err(err).Msg("fingerprint database step failed, continuing")
		}
	}

	log.Info().Float64("score", session.Score()).Msg("elsimctl finished")
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

// sentencesInDir reads every regular file directly under dir and
// splits its contents into non-blank sentences.
func sentencesInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		for _, piece := range sentenceSplit.Split(string(raw), -1) {
			if s := strings.TrimSpace(piece); s != "" {
				out = append(out, s)
			}
		}
	}
	return out, nil
}

// demoFingerprintDB exercises fingerprintdb alongside a real
// comparison run: every side-B sentence is recorded under one bucket
// keyed by a 64-bit simhash of its own words, then a lookup reports
// how much of that bucket the same sentences cover (trivially ~100%
// against a freshly-populated database — the point is to wire
// add/save/load/lookup end to end, not to model a real corpus).
func demoFingerprintDB(path, name string, sentences []string, log zerolog.Logger) error {
	store, err := fingerprintdb.Load(path)
	if err != nil {
		return err
	}

	fingerprints := make([]uint64, 0, len(sentences))
	for _, s := range sentences {
		h := fingerprintdb.SimHash64(strings.Fields(s))
		fingerprints = append(fingerprints, h)
		store.AddElement(name, "sentences", "text", len(s), h)
	}

	for dbName, rows := range store.Lookup(fingerprints, 0) {
		for _, m := range rows {
			log.Info().Str("name", dbName).Str("subname", m.Subname).Float64("coverage_pct", m.Percentage).Msg("fingerprint coverage")
		}
	}

	return store.Save()
}

func fatal(stage string, err error) {
	os.Stderr.WriteString(stage + ": " + err.Error() + "\n")
	os.Exit(1)
}
