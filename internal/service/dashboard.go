package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Pakayi/pos-kasir/internal/dashboard"
	"github.com/Pakayi/pos-kasir/internal/domain"
	"github.com/Pakayi/pos-kasir/internal/event"
)

// Dashboard hosts the aggregation engine: it holds the latest snapshot,
// recomputes it on every transactions-changed signal and tracks the sticky
// low-stock alert. Recomputation is wholesale; the held snapshot is
// replaced, never patched.
type Dashboard struct {
	store RecordStore
	bus   *event.Bus
	label dashboard.WeekdayLabelFunc
	now   func() time.Time

	// refreshMu serializes recomputation. Signals arrive on concurrent
	// writer goroutines; holding this across read+compute+install keeps
	// each refresh a single consistent view and stops a slower refresh
	// from overwriting a newer snapshot with staler data.
	refreshMu sync.Mutex

	mu           sync.RWMutex
	snap         dashboard.Snapshot
	profile      domain.UserProfile
	unsubTx      func()
	unsubProfile func()

	alert *dashboard.LowStockAlert
}

func NewDashboard(store RecordStore, bus *event.Bus, label dashboard.WeekdayLabelFunc, now func() time.Time) *Dashboard {
	if now == nil {
		now = time.Now
	}
	return &Dashboard{
		store: store,
		bus:   bus,
		label: label,
		now:   now,
		alert: dashboard.NewLowStockAlert(),
	}
}

// Start computes the initial snapshot and subscribes to both bus signals.
// Stop must be called before the host goes away so signals never reach a
// torn-down dashboard.
func (d *Dashboard) Start(ctx context.Context) error {
	if err := d.Refresh(ctx); err != nil {
		return err
	}
	if err := d.refreshProfile(ctx); err != nil {
		return err
	}

	unsubTx := d.bus.Subscribe(event.TransactionsChanged, func() {
		// Signals arrive on the writer's goroutine after its commit.
		if err := d.Refresh(context.Background()); err != nil {
			log.Printf("dashboard refresh failed: %v", err)
		}
	})
	unsubProfile := d.bus.Subscribe(event.ProfileChanged, func() {
		if err := d.refreshProfile(context.Background()); err != nil {
			log.Printf("profile refresh failed: %v", err)
		}
	})

	d.mu.Lock()
	d.unsubTx = unsubTx
	d.unsubProfile = unsubProfile
	d.mu.Unlock()
	return nil
}

func (d *Dashboard) Stop() {
	d.mu.Lock()
	unsubTx, unsubProfile := d.unsubTx, d.unsubProfile
	d.unsubTx, d.unsubProfile = nil, nil
	d.mu.Unlock()

	if unsubTx != nil {
		unsubTx()
	}
	if unsubProfile != nil {
		unsubProfile()
	}
}

// Refresh materializes transactions and products before computing, so one
// compute never sees a half-updated store. Concurrent calls serialize:
// whichever refresh reads last also installs last.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.refreshMu.Lock()
	defer d.refreshMu.Unlock()

	txs, err := d.store.ListTransactions(ctx)
	if err != nil {
		return fmt.Errorf("refresh dashboard: %w", err)
	}
	products, err := d.store.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("refresh dashboard: %w", err)
	}

	snap := dashboard.ComputeSnapshot(d.now(), txs, products, d.label)
	d.alert.Observe(snap)

	d.mu.Lock()
	d.snap = snap
	d.mu.Unlock()
	return nil
}

func (d *Dashboard) refreshProfile(ctx context.Context) error {
	profile, err := d.store.GetProfile(ctx)
	if err != nil {
		return fmt.Errorf("refresh profile: %w", err)
	}
	d.mu.Lock()
	d.profile = profile
	d.mu.Unlock()
	return nil
}

func (d *Dashboard) Snapshot() dashboard.Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snap
}

func (d *Dashboard) Profile() domain.UserProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.profile
}

func (d *Dashboard) AlertVisible() bool {
	return d.alert.Visible()
}

func (d *Dashboard) DismissAlert() {
	d.alert.Dismiss()
}
