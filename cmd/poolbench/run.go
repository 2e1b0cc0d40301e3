package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolalloc/backing"
	"github.com/joshuapare/poolalloc/sizeclass"
)

var (
	runElements   int
	runLoops      int
	runRatio      float64
	runSeed       int64
	runBacking    string
	runConfig     string
	runAllocators []string
	runWorkload   string
	runReps       int
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().IntVarP(&runElements, "elements", "n", 100000, "Elements inserted per loop")
	cmd.Flags().IntVar(&runLoops, "loops", 3, "Insert/delete rounds (list workload)")
	cmd.Flags().Float64Var(&runRatio, "ratio", 0.2, "Fraction of elements kept by each random delete")
	cmd.Flags().Int64Var(&runSeed, "seed", 0, "Seed for the random delete")
	cmd.Flags().StringVar(&runBacking, "backing", "heap", "Chunk backing: "+strings.Join(backing.Names, ", "))
	cmd.Flags().StringVar(&runConfig, "config", sizeclass.DefaultConfig.Name, "Size-class preset")
	cmd.Flags().StringSliceVar(&runAllocators, "allocators", allocatorNames, "Allocators to compare")
	cmd.Flags().StringVar(&runWorkload, "workload", "list", "Workload: list or stack")
	cmd.Flags().IntVar(&runReps, "reps", 50, "Push/pop repetitions (stack workload)")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Time container workloads against each allocator",
		Long: `The run command times container workloads against the pool allocator
and the Go heap.

The list workload inserts --elements records and then deletes each one with
probability 1-ratio, --loops times, carrying survivors between loops. The
stack workload pushes --elements records and pops them all, --reps times.

Example:
  poolbench run
  poolbench run --elements 1000000 --loops 5 --backing mmap
  poolbench run --workload stack --allocators pool,go --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun()
		},
	}
	return cmd
}

// RunReport is the result of one allocator.
type RunReport struct {
	Allocator string        `json:"allocator"`
	Workload  string        `json:"workload"`
	Loops     []LoopResult  `json:"loops,omitempty"`
	Total     time.Duration `json:"total_ns"`
	Chunks    int           `json:"chunks,omitempty"`
	Reserved  int64         `json:"reserved_bytes,omitempty"`
}

func runRun() error {
	if runElements <= 0 {
		return fmt.Errorf("--elements must be positive, got %d", runElements)
	}
	if runRatio < 0 || runRatio > 1 {
		return fmt.Errorf("--ratio must be within [0, 1], got %g", runRatio)
	}
	cfg, err := sizeclass.Lookup(runConfig)
	if err != nil {
		return err
	}
	b, err := backing.Parse(runBacking)
	if err != nil {
		return err
	}

	var reports []RunReport
	for _, name := range runAllocators {
		printVerbose("Running %s workload on %s (%s, %s backing)\n", runWorkload, name, cfg.Name, runBacking)
		rep, err := runOne(name, cfg, b)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		reports = append(reports, rep)
	}

	if jsonOut {
		return printJSON(reports)
	}
	for _, rep := range reports {
		printReport(rep)
	}
	return nil
}

func runOne(name string, cfg sizeclass.Config, b backing.Backing) (RunReport, error) {
	a, err := newBenchAllocator(name, cfg, b)
	if err != nil {
		return RunReport{}, err
	}
	defer a.Close()

	bag, err := NewBag[record](a.alloc)
	if err != nil {
		return RunReport{}, err
	}

	rep := RunReport{Allocator: a.name, Workload: runWorkload}
	switch runWorkload {
	case "list":
		loops, err := runList(bag, listParams{
			Elements: runElements,
			Loops:    runLoops,
			Ratio:    runRatio,
			Seed:     runSeed,
		})
		if err != nil {
			return RunReport{}, err
		}
		rep.Loops = loops
		for _, l := range loops {
			rep.Total += l.Insert + l.Delete
		}
	case "stack":
		rep.Total, err = runStack(bag, runElements, runReps)
		if err != nil {
			return RunReport{}, err
		}
	default:
		return RunReport{}, fmt.Errorf("unknown workload %q (want list or stack)", runWorkload)
	}

	if a.router != nil {
		for _, s := range a.router.Stats() {
			rep.Chunks += s.Chunks
			rep.Reserved += s.BytesReserved
		}
	}
	if err := bag.Clear(); err != nil {
		return RunReport{}, err
	}
	return rep, nil
}

func printReport(rep RunReport) {
	printInfo("============ %s ============\n", rep.Allocator)
	if len(rep.Loops) > 0 {
		var ins, del strings.Builder
		for _, l := range rep.Loops {
			fmt.Fprintf(&ins, "\t%.6f", l.Insert.Seconds())
			fmt.Fprintf(&del, "\t%.6f", l.Delete.Seconds())
		}
		printInfo("Insertion time:%s\n", ins.String())
		printInfo("Deletion time:%s\n", del.String())
	}
	printInfo("Total time:\t%.6f\n", rep.Total.Seconds())
	if rep.Chunks > 0 {
		printVerbose("Chunks:\t%d (%d bytes reserved)\n", rep.Chunks, rep.Reserved)
	}
}
