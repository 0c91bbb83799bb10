package selector

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// FallbackSelector tries items in the order they were added and selects the
// first one that is not disabled. Weights are ignored.
type FallbackSelector[T WeightedItem] struct {
	items  []T
	mu     sync.Mutex
	logger *logrus.Entry
}

func NewFallbackSelector[T WeightedItem]() *FallbackSelector[T] {
	return &FallbackSelector[T]{
		items:  make([]T, 0),
		logger: logrus.WithField("selector", FALLBACK),
	}
}

// AddItem adds an item to the selector.
// Items will be tried in the order they are added.
func (s *FallbackSelector[T]) AddItem(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, item)
	s.logger.Infof("added item '%s'", item.GetName())
}

// Select returns the first enabled item, or an error when none remains.
func (s *FallbackSelector[T]) Select() (item T, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		err = fmt.Errorf("fallback selector: no items configured")
		return
	}

	for _, currentItem := range s.items {
		if !currentItem.IsDisabled() {
			s.logger.Debugf("selected item '%s'", currentItem.GetName())
			return currentItem, nil
		}
		s.logger.Debugf("item '%s' is disabled, trying next", currentItem.GetName())
	}
	err = fmt.Errorf("fallback selector: all configured items are disabled")
	return
}

// TotalConfigWeight returns 0 for FallbackSelector as weights are not applicable.
func (s *FallbackSelector[T]) TotalConfigWeight() int {
	return 0
}

func (s *FallbackSelector[T]) GetType() string {
	return FALLBACK
}
