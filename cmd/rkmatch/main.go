package main

import (
	"fmt"
	"os"

	"rkmatch/internal/config"
	"rkmatch/internal/document"
	"rkmatch/internal/matcher"
	"rkmatch/pkg/logger"
	"rkmatch/pkg/rollhash"

	"github.com/spf13/cobra"
)

func main() {
	var (
		cfgFile   string
		algoNum   int
		chunkSize int
		modulus   uint64
	)

	rootCmd := &cobra.Command{
		Use:   "rkmatch [flags] query target",
		Short: "Match fixed-size chunks of a query document against a target document",
		Long: `rkmatch checks whether fixed-size chunks of the query document occur as
substrings of the target document. Both documents are whitespace- and
case-normalized before matching. Strategies: 0 exact whole-document
comparison, 1 naive substring search per chunk, 2 Rabin-Karp rolling-hash
search per chunk with byte verification, 3 probabilistic batch matching of
all chunks at once through a Bloom filter.`,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("chunk-size") {
				cfg.Matching.ChunkSize = chunkSize
			}
			if cmd.Flags().Changed("modulus") {
				cfg.Matching.Modulus = modulus
			}

			log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

			algo, err := matcher.ParseAlgorithm(algoNum)
			if err != nil {
				return err
			}

			query, err := document.Load(args[0])
			if err != nil {
				log.Error("failed to load query document", "path", args[0], "error", err)
				return err
			}
			target, err := document.Load(args[1])
			if err != nil {
				log.Error("failed to load target document", "path", args[1], "error", err)
				return err
			}

			query = document.Normalize(query)
			target = document.Normalize(target)
			log.Debug("documents normalized",
				"query_bytes", len(query), "target_bytes", len(target),
				"algorithm", algoNum, "chunk_size", cfg.Matching.ChunkSize)

			opts := matcher.Options{
				Algorithm: algo,
				ChunkSize: cfg.Matching.ChunkSize,
				Hash: rollhash.Config{
					Base:    cfg.Matching.Base,
					Modulus: cfg.Matching.Modulus,
				},
				BitsPerChunk: cfg.Matching.BitsPerChunk,
			}
			return matcher.Run(opts, query, target, os.Stdout)
		},
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (optional)")
	rootCmd.Flags().IntVarP(&algoNum, "algo", "t", 1, "algorithm: 0 exact, 1 naive, 2 single-chunk, 3 batch")
	rootCmd.Flags().IntVarP(&chunkSize, "chunk-size", "k", 20, "chunk size in bytes")
	rootCmd.Flags().Uint64VarP(&modulus, "modulus", "q", rollhash.DefaultModulus, "rolling hash modulus override")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
