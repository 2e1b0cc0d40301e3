package main

import (
	"testing"

	"github.com/joshuapare/poolalloc/backing"
	"github.com/joshuapare/poolalloc/sizeclass"
)

func newTestBag(t *testing.T) (*Bag[record], *sizeclass.Router, *backing.Counting) {
	t.Helper()
	cb := backing.NewCounting(nil)
	r, err := sizeclass.New(sizeclass.ConfigDefault, sizeclass.WithBacking(cb), sizeclass.WithDebug())
	if err != nil {
		t.Fatal(err)
	}
	bag, err := NewBag[record](r)
	if err != nil {
		t.Fatal(err)
	}
	return bag, r, cb
}

func TestBag_PushPop(t *testing.T) {
	bag, r, _ := newTestBag(t)
	defer r.Close()

	for i := 0; i < 10; i++ {
		if err := bag.Push(record{Key: uint64(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if bag.Len() != 10 {
		t.Fatalf("Len = %d, want 10", bag.Len())
	}
	if got := bag.At(3).Key; got != 3 {
		t.Errorf("At(3).Key = %d, want 3", got)
	}

	for i := 9; i >= 0; i-- {
		v, err := bag.Pop()
		if err != nil {
			t.Fatal(err)
		}
		if v.Key != uint64(i) {
			t.Errorf("Pop() key = %d, want %d", v.Key, i)
		}
	}
	if r.Stats()[2].SlotsInUse != 0 {
		t.Errorf("records still allocated after popping everything")
	}
}

func TestBag_FilterKeepsOrder(t *testing.T) {
	bag, r, _ := newTestBag(t)
	defer r.Close()

	if err := insertRecords(bag, 100); err != nil {
		t.Fatal(err)
	}
	if err := bag.Filter(func(rec *record) bool { return rec.Key%3 == 0 }); err != nil {
		t.Fatal(err)
	}
	if bag.Len() != 34 {
		t.Fatalf("Len = %d, want 34", bag.Len())
	}
	for i := 0; i < bag.Len(); i++ {
		if want := uint64(i * 3); bag.At(i).Key != want {
			t.Errorf("At(%d).Key = %d, want %d", i, bag.At(i).Key, want)
		}
	}
	if got := r.Stats()[2].SlotsInUse; got != 34 {
		t.Errorf("SlotsInUse = %d, want 34", got)
	}

	if err := bag.Clear(); err != nil {
		t.Fatal(err)
	}
	if got := r.Stats()[2].SlotsInUse; got != 0 {
		t.Errorf("SlotsInUse after Clear = %d, want 0", got)
	}
}

func TestRandomDelete_Deterministic(t *testing.T) {
	a, ra, _ := newTestBag(t)
	defer ra.Close()
	b, err := NewBag[record](goHeap{})
	if err != nil {
		t.Fatal(err)
	}

	for _, bag := range []*Bag[record]{a, b} {
		if err := insertRecords(bag, 5000); err != nil {
			t.Fatal(err)
		}
		if err := randomDelete(bag, 42, 0.2); err != nil {
			t.Fatal(err)
		}
	}

	if a.Len() != b.Len() {
		t.Fatalf("same seed kept %d and %d elements", a.Len(), b.Len())
	}
	for i := 0; i < a.Len(); i++ {
		if a.At(i).Key != b.At(i).Key {
			t.Fatalf("element %d differs: %d vs %d", i, a.At(i).Key, b.At(i).Key)
		}
	}
	// Roughly a fifth survives.
	if a.Len() < 800 || a.Len() > 1200 {
		t.Errorf("kept %d of 5000, want about 1000", a.Len())
	}
}

func TestRunList(t *testing.T) {
	bag, r, cb := newTestBag(t)

	results, err := runList(bag, listParams{Elements: 2000, Loops: 3, Ratio: 0.5, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d loop results, want 3", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Remaining <= 0 {
			t.Errorf("loop %d left no elements", i)
		}
	}
	if got := r.Stats()[2].SlotsInUse; got != bag.Len() {
		t.Errorf("SlotsInUse = %d, bag holds %d", got, bag.Len())
	}

	if err := bag.Clear(); err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if st := cb.Stats(); st.Live != 0 {
		t.Errorf("%d chunks not released", st.Live)
	}
}

func TestRunStack(t *testing.T) {
	bag, r, cb := newTestBag(t)
	defer r.Close()

	if _, err := runStack(bag, 1000, 3); err != nil {
		t.Fatal(err)
	}
	if bag.Len() != 0 {
		t.Errorf("Len = %d after stack workload, want 0", bag.Len())
	}
	// 1000 records of 24 bytes fit in ceil(1000/128) chunks, reused every rep.
	if got := cb.Stats().Acquired; got != 8 {
		t.Errorf("acquired %d chunks, want 8", got)
	}
}
