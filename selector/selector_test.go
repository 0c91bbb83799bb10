package selector

import (
	"sync"
	"testing"
)

type fakeItem struct {
	name          string
	disabled      bool
	configWeight  int
	currentWeight int
	mu            sync.Mutex
}

func (f *fakeItem) GetName() string     { return f.name }
func (f *fakeItem) IsDisabled() bool    { return f.disabled }
func (f *fakeItem) GetConfigWeight() int { return f.configWeight }

func (f *fakeItem) GetCurrentWeight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.currentWeight
}

func (f *fakeItem) SetCurrentWeight(w int) {
	f.mu.Lock()
	f.currentWeight = w
	f.mu.Unlock()
}

func TestWRRDistribution(t *testing.T) {
	s := NewWeightedRoundRobinSelector[*fakeItem]()
	a := &fakeItem{name: "a", configWeight: 3}
	b := &fakeItem{name: "b", configWeight: 1}
	s.AddItem(a)
	s.AddItem(b)

	if s.TotalConfigWeight() != 4 {
		t.Fatalf("unexpected total weight: %d", s.TotalConfigWeight())
	}

	counts := map[string]int{}
	for i := 0; i < 8; i++ {
		item, err := s.Select()
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		counts[item.GetName()]++
	}
	if counts["a"] != 6 || counts["b"] != 2 {
		t.Fatalf("unexpected distribution: %+v", counts)
	}
}

func TestWRRSkipsDisabled(t *testing.T) {
	s := NewWeightedRoundRobinSelector[*fakeItem]()
	a := &fakeItem{name: "a", configWeight: 3, disabled: true}
	b := &fakeItem{name: "b", configWeight: 1}
	s.AddItem(a)
	s.AddItem(b)

	for i := 0; i < 4; i++ {
		item, err := s.Select()
		if err != nil {
			t.Fatalf("select: %v", err)
		}
		if item.GetName() != "b" {
			t.Fatalf("selected disabled item %q", item.GetName())
		}
	}
}

func TestWRRAllDisabled(t *testing.T) {
	s := NewWeightedRoundRobinSelector[*fakeItem]()
	s.AddItem(&fakeItem{name: "a", configWeight: 1, disabled: true})

	if _, err := s.Select(); err == nil {
		t.Fatal("expected error when all items are disabled")
	}
}

func TestWRREmpty(t *testing.T) {
	s := NewWeightedRoundRobinSelector[*fakeItem]()
	if _, err := s.Select(); err == nil {
		t.Fatal("expected error on empty selector")
	}
}

func TestFallbackOrder(t *testing.T) {
	s := NewFallbackSelector[*fakeItem]()
	primary := &fakeItem{name: "primary", configWeight: 1}
	secondary := &fakeItem{name: "secondary", configWeight: 1}
	s.AddItem(primary)
	s.AddItem(secondary)

	item, err := s.Select()
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if item.GetName() != "primary" {
		t.Fatalf("expected primary, got %q", item.GetName())
	}

	primary.disabled = true
	item, err = s.Select()
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if item.GetName() != "secondary" {
		t.Fatalf("expected secondary, got %q", item.GetName())
	}

	secondary.disabled = true
	if _, err = s.Select(); err == nil {
		t.Fatal("expected error when all items are disabled")
	}
}
