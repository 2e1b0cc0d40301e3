package main

import (
	"testing"
)

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name        string
		workload    string
		allocators  []string
		backingName string
		wantContain []string
	}{
		{
			name:        "list on every allocator",
			workload:    "list",
			allocators:  allocatorNames,
			backingName: "heap",
			wantContain: []string{"== pool ==", "== pool-locked ==", "== go ==", "Insertion time:", "Deletion time:"},
		},
		{
			name:        "stack on mmap",
			workload:    "stack",
			allocators:  []string{"pool"},
			backingName: "mmap",
			wantContain: []string{"== pool ==", "Total time:"},
		},
		{
			name:        "list on mapped regions",
			workload:    "list",
			allocators:  []string{"pool-locked"},
			backingName: "region",
			wantContain: []string{"== pool-locked ==", "Insertion time:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			runWorkload = tt.workload
			runAllocators = tt.allocators
			runBacking = tt.backingName

			output, err := captureOutput(t, runRun)
			if err != nil {
				t.Fatalf("runRun() error = %v", err)
			}
			assertContains(t, output, tt.wantContain)
		})
	}
}

func TestRunCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	runAllocators = []string{"pool", "go"}

	output, err := captureOutput(t, runRun)
	if err != nil {
		t.Fatalf("runRun() error = %v", err)
	}

	var reports []RunReport
	assertJSON(t, output, &reports)
	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[0].Allocator != "pool" || len(reports[0].Loops) != runLoops {
		t.Errorf("unexpected pool report: %+v", reports[0])
	}
	if reports[0].Chunks == 0 {
		t.Errorf("pool report has no chunks")
	}
	if reports[1].Chunks != 0 {
		t.Errorf("go heap report has %d chunks", reports[1].Chunks)
	}
}

func TestRunCommand_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func()
	}{
		{"bad allocator", func() { runAllocators = []string{"tcmalloc"} }},
		{"bad backing", func() { runBacking = "disk" }},
		{"bad config", func() { runConfig = "huge" }},
		{"bad workload", func() { runWorkload = "queue" }},
		{"bad ratio", func() { runRatio = 1.5 }},
		{"no elements", func() { runElements = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			tt.setup()
			if _, err := captureOutput(t, runRun); err == nil {
				t.Error("runRun() succeeded, want error")
			}
		})
	}
}

func TestClassesCommand(t *testing.T) {
	resetFlags()
	classesConfig = "compact"

	output, err := captureOutput(t, runClasses)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, output, []string{"Config: Compact", "1-8", "121-128", ">128 bytes"})

	jsonOut = true
	output, err = captureOutput(t, runClasses)
	if err != nil {
		t.Fatal(err)
	}
	var table struct {
		MaxSize int        `json:"max_size"`
		Classes []ClassRow `json:"classes"`
	}
	assertJSON(t, output, &table)
	if table.MaxSize != 128 || len(table.Classes) != 16 {
		t.Errorf("unexpected table: max %d, %d classes", table.MaxSize, len(table.Classes))
	}
	if table.Classes[2].SlotSize != 32 {
		t.Errorf("class 2 slot size = %d, want 32", table.Classes[2].SlotSize)
	}
}

func TestLayoutCommand(t *testing.T) {
	resetFlags()
	layoutNodes = 4
	jsonOut = true

	output, err := captureOutput(t, func() error { return runLayout([]string{"3"}) })
	if err != nil {
		t.Fatal(err)
	}
	var l Layout
	assertJSON(t, output, &l)
	want := Layout{
		NodeSize:        3,
		SlotSize:        16,
		LinkOffset:      8,
		ChunkHeaderSize: 16,
		NodesPerChunk:   4,
		ChunkSize:       80,
		Overhead:        68,
	}
	if l != want {
		t.Errorf("layout = %+v, want %+v", l, want)
	}

	if _, err := captureOutput(t, func() error { return runLayout([]string{"-1"}) }); err == nil {
		t.Error("negative node size accepted")
	}
}
