package selector

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// WeightedRoundRobinSelector implements Nginx's smooth weighted round-robin
// algorithm over the registered items.
type WeightedRoundRobinSelector[T WeightedItem] struct {
	items             []T
	totalConfigWeight int
	mu                sync.Mutex
	logger            *logrus.Entry
}

func NewWeightedRoundRobinSelector[T WeightedItem]() *WeightedRoundRobinSelector[T] {
	return &WeightedRoundRobinSelector[T]{
		items:  make([]T, 0),
		logger: logrus.WithField("selector", WRR),
	}
}

// AddItem adds an item to the selector.
func (s *WeightedRoundRobinSelector[T]) AddItem(item T) {
	s.mu.Lock()
	s.items = append(s.items, item)
	s.totalConfigWeight += item.GetConfigWeight()
	s.logger.Infof("added item '%s', weight: %d", item.GetName(), item.GetConfigWeight())
	s.mu.Unlock()
}

// Select chooses an item based on the smooth weighted round-robin algorithm.
// It returns an error if no item is available or all are disabled.
func (s *WeightedRoundRobinSelector[T]) Select() (item T, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		return item, fmt.Errorf("wrr selector: no items configured")
	}

	selectedIndex := -1
	maxCurrentWeight := 0

	// sWRR: raise every enabled item's current weight by its configured
	// weight, pick the highest, then drop the winner by the total weight.
	for i := range s.items {
		entry := s.items[i]
		if entry.IsDisabled() {
			continue
		}

		entry.SetCurrentWeight(entry.GetCurrentWeight() + entry.GetConfigWeight())

		if selectedIndex == -1 || entry.GetCurrentWeight() > maxCurrentWeight {
			maxCurrentWeight = entry.GetCurrentWeight()
			selectedIndex = i
		}
	}

	if selectedIndex == -1 {
		return item, fmt.Errorf("wrr selector: all configured items are disabled")
	}

	selected := s.items[selectedIndex]
	selected.SetCurrentWeight(selected.GetCurrentWeight() - s.totalConfigWeight)

	s.logger.Debugf("selected item '%s'", selected.GetName())
	return selected, nil
}

// TotalConfigWeight returns the sum of configured weights of all items.
func (s *WeightedRoundRobinSelector[T]) TotalConfigWeight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalConfigWeight
}

func (s *WeightedRoundRobinSelector[T]) GetType() string {
	return WRR
}
