package main

import (
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/heapkit/heapkit/mem"
	"github.com/heapkit/heapkit/mem/alloc"
	"github.com/spf13/cobra"
)

var classesConfig string

func init() {
	cmd := newClassesCmd()
	cmd.Flags().StringVar(&classesConfig, "config", "standard", "Allocator configuration (standard, compact, largechunk)")
	rootCmd.AddCommand(cmd)
}

func newClassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Show the size class partition for a configuration",
		Long: `The classes command prints the block size at which each
segregated free-list class begins, for the chosen configuration.

Example:
  memctl classes
  memctl classes --config compact`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses()
		},
	}
	return cmd
}

func runClasses() error {
	cfg, err := configByName(classesConfig)
	if err != nil {
		return err
	}

	a, err := alloc.New(mem.NewRegion(mem.NewSliceProvider(0)), &cfg)
	if err != nil {
		return err
	}

	// Probe ascending block sizes for the first member of each class. The
	// last class is open-ended.
	starts := make([]int, cfg.ClassCount)
	seen := 0
	for size := 16; seen < cfg.ClassCount && size <= 1<<30; size += 8 {
		sc := a.Classify(size)
		if starts[sc] == 0 && !(sc == 0 && size > 16) {
			starts[sc] = size
			seen++
		}
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stdout, "Configuration: %s (%d classes, %d byte chunks)\n\n",
		cfg.Name, cfg.ClassCount, cfg.ChunkSize)
	for sc, start := range starts {
		if start == 0 {
			continue
		}
		if sc == cfg.ClassCount-1 {
			p.Fprintf(os.Stdout, "  class %2d: %d bytes and up\n", sc, start)
			continue
		}
		end := starts[sc+1]
		if end == 0 {
			p.Fprintf(os.Stdout, "  class %2d: %d bytes and up\n", sc, start)
			continue
		}
		p.Fprintf(os.Stdout, "  class %2d: %d - %d bytes\n", sc, start, end-8)
	}
	return nil
}
