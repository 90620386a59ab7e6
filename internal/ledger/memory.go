package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"agroverse/internal/auctionerrors"
	model "agroverse/internal/models"
)

// maxSubmitAttempts bounds the compare-and-swap retry loop in SubmitBid.
const maxSubmitAttempts = 5

type versionedProduct struct {
	product model.Product
	version uint64
}

// MemoryLedger is a concurrency-safe in-process implementation of Ledger.
// Each product aggregate carries a version counter; SubmitBid validates
// against a snapshot outside the lock and only applies its writes if the
// version is unchanged, mirroring the optimistic transaction of the
// redis-backed store.
type MemoryLedger struct {
	mu       sync.RWMutex
	products map[string]versionedProduct // key: productID
	bids     map[string][]model.Bid      // key: productID -> bids in commit order
	profiles map[string]model.UserProfile
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		products: make(map[string]versionedProduct),
		bids:     make(map[string][]model.Bid),
		profiles: make(map[string]model.UserProfile),
	}
}

// CreateProduct stores a new product aggregate.
func (l *MemoryLedger) CreateProduct(_ context.Context, product model.Product) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.products[product.ID]; exists {
		return fmt.Errorf("create product %s: %w", product.ID, auctionerrors.ErrInvalidListing)
	}
	l.products[product.ID] = versionedProduct{product: cloneProduct(product), version: 1}
	return nil
}

// GetProduct returns a copy of the product aggregate.
func (l *MemoryLedger) GetProduct(_ context.Context, productID string) (model.Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entry, ok := l.products[productID]
	if !ok {
		return model.Product{}, fmt.Errorf("get product %s: %w", productID, auctionerrors.ErrProductNotFound)
	}
	return cloneProduct(entry.product), nil
}

// ListProducts returns all products, newest first.
func (l *MemoryLedger) ListProducts(_ context.Context) ([]model.Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	products := make([]model.Product, 0, len(l.products))
	for _, entry := range l.products {
		products = append(products, cloneProduct(entry.product))
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

// BidHistory returns the product's bids, newest first.
func (l *MemoryLedger) BidHistory(_ context.Context, productID string) ([]model.Bid, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if _, ok := l.products[productID]; !ok {
		return nil, fmt.Errorf("bid history for product %s: %w", productID, auctionerrors.ErrProductNotFound)
	}

	stored := l.bids[productID]
	history := make([]model.Bid, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		history = append(history, stored[i])
	}
	return history, nil
}

// SaveProfile stores or replaces a user profile.
func (l *MemoryLedger) SaveProfile(_ context.Context, profile model.UserProfile) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.profiles[profile.UserID] = profile
	return nil
}

// GetProfile returns a user profile.
func (l *MemoryLedger) GetProfile(_ context.Context, userID string) (model.UserProfile, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	profile, ok := l.profiles[userID]
	if !ok {
		return model.UserProfile{}, fmt.Errorf("get profile %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return profile, nil
}

// SubmitBid runs the optimistic read-decide-write transaction. The decide
// callback sees the snapshot as of the read; if another submission commits
// in between, the version check fails and the whole sequence restarts, so
// a later committer always validates against the earlier one's result.
func (l *MemoryLedger) SubmitBid(_ context.Context, productID string, decide DecideBid) (model.Bid, model.Product, error) {
	for attempt := 0; attempt < maxSubmitAttempts; attempt++ {
		l.mu.RLock()
		entry, ok := l.products[productID]
		l.mu.RUnlock()
		if !ok {
			return model.Bid{}, model.Product{}, fmt.Errorf("submit bid for product %s: %w", productID, auctionerrors.ErrProductNotFound)
		}

		bid, err := decide(cloneProduct(entry.product))
		if err != nil {
			// Terminal decision, nothing written.
			return model.Bid{}, model.Product{}, err
		}

		l.mu.Lock()
		current, ok := l.products[productID]
		if !ok {
			l.mu.Unlock()
			return model.Bid{}, model.Product{}, fmt.Errorf("submit bid for product %s: %w", productID, auctionerrors.ErrProductNotFound)
		}
		if current.version != entry.version {
			l.mu.Unlock()
			continue // lost the race, re-read and re-decide
		}

		updated := applyAdmission(current.product, bid)
		l.products[productID] = versionedProduct{product: updated, version: current.version + 1}
		l.bids[productID] = append(l.bids[productID], bid)
		l.mu.Unlock()

		return bid, cloneProduct(updated), nil
	}

	return model.Bid{}, model.Product{}, fmt.Errorf("submit bid for product %s: contention retries exhausted: %w", productID, auctionerrors.ErrLedgerUnavailable)
}
