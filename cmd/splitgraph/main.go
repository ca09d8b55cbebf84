// Command splitgraph ingests FASTA/FASTQ genomes, indexes their k-mers,
// and emits a compatible split system as Newick. Grounded on
// davidebolo1993-kfilt's cobra subcommand structure (build/filter/version)
// and pb/v3 progress-bar usage, adapted from that tool's read-filtering
// domain to this one's ingest-weight-filter pipeline; the flag-parsing
// failure/exit convention (return a wrapped error from RunE, let cobra
// print it and exit non-zero) follows camus.go's parserError/log.Fatalf
// discipline without camus.go's own flag package, since cobra already
// owns usage printing.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"

	"splitgraph"
	"splitgraph/internal/reducer"
	"splitgraph/internal/seqio"
	"splitgraph/internal/treeio"
)

const version = "v0.1.0"

// reducerFlag is a pflag.Value wrapping a reducer name, validated against
// reducer.ByName on every Set rather than left as a free-form string.
type reducerFlag string

func (f *reducerFlag) Set(s string) error {
	if _, ok := reducer.ByName[s]; !ok {
		return fmt.Errorf("%q is not a valid reducer", s)
	}
	*f = reducerFlag(s)
	return nil
}

func (f reducerFlag) String() string { return string(f) }
func (f reducerFlag) Type() string   { return "reducer" }

type ingestOptions struct {
	k         int
	t         int
	canonical bool
	maxIUPAC  uint
	reducer   reducerFlag
	verbose   bool
}

// buildEngine implements the ingest + add_weights portion shared by every
// filter subcommand: open each input in order (each file is one color),
// stream its records through AddKmersIUPAC (with a pb/v3 progress bar
// keyed off the file when verbose), then fold the index into a weighted
// split list.
func buildEngine(inputs []string, opts ingestOptions) (*splitgraph.Engine, error) {
	reduce, ok := reducer.ByName[string(opts.reducer)]
	if !ok {
		return nil, fmt.Errorf("unknown reducer %q", opts.reducer)
	}
	e, err := splitgraph.Init(opts.k, len(inputs), opts.t)
	if err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}
	for color, path := range inputs {
		if err := ingestFile(e, path, color, opts); err != nil {
			return nil, fmt.Errorf("ingesting %s: %w", path, err)
		}
	}
	e.AddWeights(reduce, opts.verbose)
	return e, nil
}

func ingestFile(e *splitgraph.Engine, path string, color int, opts ingestOptions) error {
	r, err := seqio.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	var bar *pb.ProgressBar
	if opts.verbose {
		log.Printf("ingesting %s as color %d (%s)", path, color, r.Format())
		bar = pb.Full.Start64(0)
		defer bar.Finish()
	}
	for {
		rec, ok, err := r.Next()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		if err := e.AddKmersIUPAC(rec.Sequence, color, opts.canonical, opts.maxIUPAC); err != nil {
			return fmt.Errorf("record %q: %w", rec.Name, err)
		}
		if bar != nil {
			bar.Increment()
		}
	}
	return nil
}

func addIngestFlags(cmd *cobra.Command, opts *ingestOptions) {
	cmd.Flags().IntVarP(&opts.k, "kmer-size", "k", 21, "k-mer length")
	cmd.Flags().IntVarP(&opts.t, "top", "t", 10000, "split list capacity (<=0 for unbounded)")
	cmd.Flags().BoolVar(&opts.canonical, "canonical", true, "canonicalise k-mers to min(K, reverse_complement(K))")
	cmd.Flags().UintVar(&opts.maxIUPAC, "max-iupac", 1, "multiplicative cap on IUPAC ambiguity expansion per window")
	opts.reducer = "arithmetic"
	cmd.Flags().Var(&opts.reducer, "reducer", "weight reducer [arithmetic|geometric|occurrences]")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log ingest and filter progress")
}

func writeOutput(nwk, outPath string) error {
	if outPath == "" || outPath == "-" {
		fmt.Println(nwk)
		return nil
	}
	return os.WriteFile(outPath, []byte(nwk+"\n"), 0o644)
}

func strictCommand() *cobra.Command {
	var (
		opts    ingestOptions
		out     string
		plot    string
		checked bool
	)
	cmd := &cobra.Command{
		Use:   "strict [inputs...]",
		Short: "Ingest genomes and emit the strict-compatible split tree",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEngine(args, opts)
			if err != nil {
				return err
			}
			accepted, nwk, err := e.FilterStrict(nil, opts.verbose)
			if err != nil {
				return fmt.Errorf("filter_strict: %w", err)
			}
			if checked {
				names := make([]string, e.N())
				for i := range names {
					names[i] = fmt.Sprintf("%d", i)
				}
				if err := treeio.Validate(nwk, names); err != nil {
					return fmt.Errorf("round-trip validation: %w", err)
				}
			}
			if plot != "" {
				if err := e.WriteWeightSpectrum(plot); err != nil {
					return fmt.Errorf("writing weight spectrum: %w", err)
				}
			}
			log.Printf("filter_strict accepted %d splits", len(accepted))
			return writeOutput(nwk, out)
		},
	}
	addIngestFlags(cmd, &opts)
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&plot, "plot", "", "write a weight-spectrum plot to <prefix>.png")
	cmd.Flags().BoolVar(&checked, "check", false, "round-trip validate the emitted Newick via gotree")
	return cmd
}

func weaklyCommand() *cobra.Command {
	var opts ingestOptions
	cmd := &cobra.Command{
		Use:   "weakly [inputs...]",
		Short: "Ingest genomes and emit the weakly-compatible split system",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEngine(args, opts)
			if err != nil {
				return err
			}
			accepted := e.FilterWeakly(opts.verbose)
			for _, r := range accepted {
				fmt.Printf("%v\t%s\n", r.Weight, r.Color.Key())
			}
			return nil
		},
	}
	addIngestFlags(cmd, &opts)
	return cmd
}

func ntreeCommand() *cobra.Command {
	var (
		opts ingestOptions
		n    int
		out  string
	)
	cmd := &cobra.Command{
		Use:   "ntree [inputs...]",
		Short: "Ingest genomes and emit n disjoint strictly-compatible trees",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEngine(args, opts)
			if err != nil {
				return err
			}
			_, nwk, err := e.FilterNTree(n, nil, opts.verbose)
			if err != nil {
				return fmt.Errorf("filter_n_tree: %w", err)
			}
			return writeOutput(nwk, out)
		},
	}
	addIngestFlags(cmd, &opts)
	cmd.Flags().IntVarP(&n, "trees", "n", 2, "number of disjoint trees")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("splitgraph version %s\n", version)
		},
	}
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	rootCmd := &cobra.Command{
		Use:   "splitgraph",
		Short: "Index genome k-mers into a weighted split system",
		Long: `splitgraph indexes short DNA k-mers across a set of input genomes,
weighs the resulting color-set splits, and greedily selects a compatible
subset — a single tree (strict), a split system (weakly compatible), or
n disjoint trees (ntree) — serialised to Newick.`,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(strictCommand())
	rootCmd.AddCommand(weaklyCommand())
	rootCmd.AddCommand(ntreeCommand())
	rootCmd.AddCommand(versionCommand())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
