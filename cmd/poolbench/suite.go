package main

import (
	"math/rand"
	"time"
)

// record is the element type the workloads store: a 24-byte node.
type record struct {
	Key   uint64
	Value uint64
	Seq   uint32
	_     uint32
}

// LoopResult is the timing of one insert/delete round.
type LoopResult struct {
	Insert    time.Duration `json:"insert_ns"`
	Delete    time.Duration `json:"delete_ns"`
	Remaining int           `json:"remaining"`
}

// listParams configures the list workload.
type listParams struct {
	Elements int
	Loops    int
	Ratio    float64 // Fraction of elements kept by each random delete
	Seed     int64
}

// insertRecords appends n records to bag.
func insertRecords(bag *Bag[record], n int) error {
	base := uint64(bag.Len())
	for i := 0; i < n; i++ {
		if err := bag.Push(record{Key: base + uint64(i), Seq: uint32(i)}); err != nil {
			return err
		}
	}
	return nil
}

// randomDelete walks bag front to back and keeps each element with
// probability ratio. The same seed deletes the same positions.
func randomDelete(bag *Bag[record], seed int64, ratio float64) error {
	rng := rand.New(rand.NewSource(seed))
	threshold := int(1024 * ratio)
	return bag.Filter(func(*record) bool {
		return rng.Intn(1024) < threshold
	})
}

// runList times, per loop, a bulk insertion followed by a random deletion.
// The bag carries its survivors into the next loop.
func runList(bag *Bag[record], p listParams) ([]LoopResult, error) {
	results := make([]LoopResult, p.Loops)
	for i := range results {
		start := time.Now()
		if err := insertRecords(bag, p.Elements); err != nil {
			return nil, err
		}
		results[i].Insert = time.Since(start)

		start = time.Now()
		if err := randomDelete(bag, p.Seed, p.Ratio); err != nil {
			return nil, err
		}
		results[i].Delete = time.Since(start)
		results[i].Remaining = bag.Len()
	}
	return results, nil
}

// runStack pushes and then pops elements reps times and returns the total
// time taken.
func runStack(bag *Bag[record], elements, reps int) (time.Duration, error) {
	start := time.Now()
	for iter := 0; iter < reps; iter++ {
		if err := insertRecords(bag, elements); err != nil {
			return 0, err
		}
		for bag.Len() > 0 {
			if _, err := bag.Pop(); err != nil {
				return 0, err
			}
		}
	}
	return time.Since(start), nil
}
