package dashboard

import "sync"

// LowStockAlert is the sticky restock warning. Any snapshot with a positive
// low-stock count raises it; recovering stock never lowers it. Only an
// explicit user dismissal clears the flag.
type LowStockAlert struct {
	mu      sync.Mutex
	visible bool
}

func NewLowStockAlert() *LowStockAlert {
	return &LowStockAlert{}
}

// Observe evaluates a freshly computed snapshot against the alert policy.
func (a *LowStockAlert) Observe(snap Snapshot) {
	if snap.LowStockCount <= 0 {
		return
	}
	a.mu.Lock()
	a.visible = true
	a.mu.Unlock()
}

func (a *LowStockAlert) Visible() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.visible
}

func (a *LowStockAlert) Dismiss() {
	a.mu.Lock()
	a.visible = false
	a.mu.Unlock()
}
