package matcher

import (
	"fmt"
	"io"
	"strings"

	"rkmatch/pkg/rollhash"
)

// Diagnostic output limits: how many rolling target hashes single-chunk
// mode echoes, and how many leading filter bits batch mode dumps.
const (
	printHashCount = 5
	printBloomBits = 160
)

// Options configures one matching invocation.
type Options struct {
	Algorithm    Algorithm
	ChunkSize    int
	Hash         rollhash.Config
	BitsPerChunk int
}

// Run executes one matching invocation over the already-normalized query
// and target buffers, writing diagnostics and the match statistic to out.
// Configuration errors are reported before any scanning; no partial output
// is produced on that path.
func Run(opts Options, q, t []byte, out io.Writer) error {
	if opts.Algorithm == Exact {
		if ExactMatch(q, t) {
			fmt.Fprintln(out, "Exact match")
		} else {
			fmt.Fprintln(out, "Not an exact match")
		}
		return nil
	}

	k := opts.ChunkSize
	if k <= 0 || k > len(q) || k > len(t) {
		return ErrChunkSize
	}

	switch opts.Algorithm {
	case Naive:
		res := Result{Total: len(q) / k}
		for i := 0; i+k <= len(q); i += k {
			if NaiveSubstring(q[i:i+k], t) {
				res.Matched++
			}
		}
		fmt.Fprintln(out, res)
		return nil

	case Single:
		h, err := rollhash.New(opts.Hash, k)
		if err != nil {
			return err
		}
		res := Result{Total: len(q) / k}
		for i := 0; i+k <= len(q); i += k {
			found, first := SingleChunk(h, q[i:i+k], t)
			fmt.Fprintln(out, h.Sum(q[i:i+k]))
			fmt.Fprintln(out, formatHashes(first))
			if found {
				res.Matched++
			}
		}
		fmt.Fprintln(out, res)
		return nil

	case Batch:
		h, err := rollhash.New(opts.Hash, k)
		if err != nil {
			return err
		}
		res, f, err := BatchMatch(h, q, t, opts.BitsPerChunk)
		if err != nil {
			return err
		}
		dump, err := f.Dump(printBloomBits)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, dump)
		fmt.Fprintln(out, res)
		return nil

	default:
		return ErrAlgorithm
	}
}

func formatHashes(hs []uint64) string {
	parts := make([]string, len(hs))
	for i, v := range hs {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, " ")
}
