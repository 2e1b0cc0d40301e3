package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolalloc/pool"
	"github.com/joshuapare/poolalloc/sizeclass"
)

var classesConfig string

func init() {
	cmd := newClassesCmd()
	cmd.Flags().StringVar(&classesConfig, "config", sizeclass.DefaultConfig.Name, "Size-class preset")
	rootCmd.AddCommand(cmd)
}

func newClassesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes",
		Short: "Show the size-class table of a preset",
		Long: `The classes command prints every size class of a preset with the
request range it serves and the slot and chunk sizes of its pool.

Example:
  poolbench classes
  poolbench classes --config wide --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses()
		},
	}
	return cmd
}

// ClassRow describes one size class.
type ClassRow struct {
	Class     int `json:"class"`
	MinBytes  int `json:"min_bytes"`
	MaxBytes  int `json:"max_bytes"`
	SlotSize  int `json:"slot_size"`
	ChunkSize int `json:"chunk_size"`
}

func classRows(cfg sizeclass.Config) []ClassRow {
	rows := make([]ClassRow, cfg.Classes)
	for i := range rows {
		p := pool.New(cfg.NodeSize(i), pool.WithNodesPerChunk(cfg.NodesPerChunk))
		rows[i] = ClassRow{
			Class:     i,
			MinBytes:  i*cfg.Step + 1,
			MaxBytes:  cfg.NodeSize(i),
			SlotSize:  p.SlotSize(),
			ChunkSize: p.ChunkSize(),
		}
	}
	return rows
}

func runClasses() error {
	cfg, err := sizeclass.Lookup(classesConfig)
	if err != nil {
		return err
	}
	rows := classRows(cfg)

	if jsonOut {
		return printJSON(struct {
			Config  string     `json:"config"`
			Step    int        `json:"step"`
			MaxSize int        `json:"max_size"`
			Classes []ClassRow `json:"classes"`
		}{cfg.Name, cfg.Step, cfg.MaxSize(), rows})
	}

	printInfo("Config: %s (step %d, %d classes, pooled up to %d bytes)\n",
		cfg.Name, cfg.Step, cfg.Classes, cfg.MaxSize())
	printInfo("%-6s %-12s %-10s %s\n", "CLASS", "REQUEST", "SLOT", "CHUNK")
	for _, r := range rows {
		printInfo("%-6d %-12s %-10d %d\n", r.Class, rangeString(r.MinBytes, r.MaxBytes), r.SlotSize, r.ChunkSize)
	}
	printInfo("%-6s >%d bytes use the fallback allocator\n", "-", cfg.MaxSize())
	return nil
}

func rangeString(lo, hi int) string {
	if lo == hi {
		return strconv.Itoa(lo)
	}
	return strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
}
