// Package selector picks one provider instance among the configured ones,
// either by smooth weighted round-robin or by ordered fallback. Disabled
// instances (failover cooldown) are skipped by both strategies.
package selector

const (
	WRR      = "wrr"
	FALLBACK = "fallback"
)

// Item is the minimal contract an instance must satisfy to be selectable.
type Item interface {
	// IsDisabled checks if the item is currently disabled.
	IsDisabled() bool
	// GetName returns the name of the item (for logging/debugging).
	GetName() string
}

// WeightedItem extends Item with the mutable weight state used by the
// smooth weighted round-robin algorithm.
type WeightedItem interface {
	Item

	// GetConfigWeight returns the configured weight of the item.
	GetConfigWeight() int
	// GetCurrentWeight returns the current weight of the item.
	GetCurrentWeight() int
	// SetCurrentWeight sets the current weight of the item.
	SetCurrentWeight(int)
}

type Selector[T WeightedItem] interface {
	AddItem(T)
	Select() (T, error)
	TotalConfigWeight() int
	GetType() string
}
