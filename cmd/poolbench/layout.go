package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/poolalloc/internal/format"
	"github.com/joshuapare/poolalloc/pool"
)

var layoutNodes int

func init() {
	cmd := newLayoutCmd()
	cmd.Flags().IntVar(&layoutNodes, "nodes", format.DefaultNodesPerChunk, "Slots per chunk")
	rootCmd.AddCommand(cmd)
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout <node-size>",
		Short: "Show the slot and chunk layout for a node size",
		Long: `The layout command prints the slot and chunk arithmetic a pool uses for
nodes of the given size.

Example:
  poolbench layout 24
  poolbench layout 3 --nodes 4 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(args)
		},
	}
	return cmd
}

// Layout is the slot and chunk geometry of one pool.
type Layout struct {
	NodeSize        int `json:"node_size"`
	SlotSize        int `json:"slot_size"`
	LinkOffset      int `json:"link_offset"`
	ChunkHeaderSize int `json:"chunk_header_size"`
	NodesPerChunk   int `json:"nodes_per_chunk"`
	ChunkSize       int `json:"chunk_size"`
	Overhead        int `json:"overhead_bytes"`
}

func layoutOf(nodeSize, nodes int) Layout {
	p := pool.New(nodeSize, pool.WithNodesPerChunk(nodes))
	return Layout{
		NodeSize:        p.NodeSize(),
		SlotSize:        p.SlotSize(),
		LinkOffset:      format.LinkOffset,
		ChunkHeaderSize: format.ChunkHeaderSize,
		NodesPerChunk:   p.NodesPerChunk(),
		ChunkSize:       p.ChunkSize(),
		Overhead:        p.ChunkSize() - p.NodeSize()*p.NodesPerChunk(),
	}
}

func runLayout(args []string) error {
	nodeSize, err := strconv.Atoi(args[0])
	if err != nil || nodeSize < 0 {
		return fmt.Errorf("invalid node size %q", args[0])
	}
	l := layoutOf(nodeSize, layoutNodes)

	if jsonOut {
		return printJSON(l)
	}
	printInfo("Node size:         %d\n", l.NodeSize)
	printInfo("Slot size:         %d (header %d + user %d)\n", l.SlotSize, l.LinkOffset, l.SlotSize-l.LinkOffset)
	printInfo("Chunk header:      %d\n", l.ChunkHeaderSize)
	printInfo("Nodes per chunk:   %d\n", l.NodesPerChunk)
	printInfo("Chunk size:        %d\n", l.ChunkSize)
	printInfo("Overhead:          %d bytes per chunk\n", l.Overhead)
	return nil
}
