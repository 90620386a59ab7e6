package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"agroverse/internal/auctionerrors"
	model "agroverse/internal/models"
	"agroverse/utils"
)

const productIndexKey = "products:by_created_at"

// RedisLedger implements Ledger on top of redis. Product aggregates are
// JSON documents, bid histories are lists (LPUSH keeps them newest first),
// and the product index is a sorted set scored by creation time. SubmitBid
// relies on WATCH for its optimistic transaction: any concurrent write to
// the aggregate key between the read and the commit fails the MULTI/EXEC
// and restarts the attempt.
type RedisLedger struct {
	client *redis.Client
}

// RedisOptions carries the connection settings for NewRedisLedger.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisLedger connects to redis and verifies the connection.
func NewRedisLedger(ctx context.Context, opts RedisOptions) (*RedisLedger, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	utils.Info("redis ledger initialized", map[string]any{"addr": opts.Addr, "db": opts.DB})
	return &RedisLedger{client: client}, nil
}

// Close releases the underlying connection pool.
func (l *RedisLedger) Close() error {
	return l.client.Close()
}

func productKey(productID string) string {
	return "product:" + productID
}

func bidsKey(productID string) string {
	return "product:" + productID + ":bids"
}

func profileKey(userID string) string {
	return "user:" + userID
}

// CreateProduct stores the aggregate document and indexes it by creation time.
func (l *RedisLedger) CreateProduct(ctx context.Context, product model.Product) error {
	doc, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product %s: %w", product.ID, err)
	}

	_, err = l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, productKey(product.ID), doc, 0)
		pipe.ZAdd(ctx, productIndexKey, redis.Z{
			Score:  float64(product.CreatedAt.UnixNano()),
			Member: product.ID,
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("create product %s: %v: %w", product.ID, err, auctionerrors.ErrLedgerUnavailable)
	}
	return nil
}

// GetProduct reads and decodes the aggregate document.
func (l *RedisLedger) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	raw, err := l.client.Get(ctx, productKey(productID)).Result()
	if errors.Is(err, redis.Nil) {
		return model.Product{}, fmt.Errorf("get product %s: %w", productID, auctionerrors.ErrProductNotFound)
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("get product %s: %v: %w", productID, err, auctionerrors.ErrLedgerUnavailable)
	}

	var product model.Product
	if err := json.Unmarshal([]byte(raw), &product); err != nil {
		return model.Product{}, fmt.Errorf("decode product %s: %w", productID, err)
	}
	return product, nil
}

// ListProducts returns all products, newest first, via the creation-time index.
func (l *RedisLedger) ListProducts(ctx context.Context) ([]model.Product, error) {
	ids, err := l.client.ZRevRange(ctx, productIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list products: %v: %w", err, auctionerrors.ErrLedgerUnavailable)
	}
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = productKey(id)
	}
	docs, err := l.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list products: %v: %w", err, auctionerrors.ErrLedgerUnavailable)
	}

	products := make([]model.Product, 0, len(docs))
	for _, doc := range docs {
		raw, ok := doc.(string)
		if !ok {
			continue // index entry without a document, skip
		}
		var product model.Product
		if err := json.Unmarshal([]byte(raw), &product); err != nil {
			return nil, fmt.Errorf("decode product list entry: %w", err)
		}
		products = append(products, product)
	}
	return products, nil
}

// BidHistory returns the product's bids, newest first.
func (l *RedisLedger) BidHistory(ctx context.Context, productID string) ([]model.Bid, error) {
	exists, err := l.client.Exists(ctx, productKey(productID)).Result()
	if err != nil {
		return nil, fmt.Errorf("bid history for product %s: %v: %w", productID, err, auctionerrors.ErrLedgerUnavailable)
	}
	if exists == 0 {
		return nil, fmt.Errorf("bid history for product %s: %w", productID, auctionerrors.ErrProductNotFound)
	}

	entries, err := l.client.LRange(ctx, bidsKey(productID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("bid history for product %s: %v: %w", productID, err, auctionerrors.ErrLedgerUnavailable)
	}

	bids := make([]model.Bid, 0, len(entries))
	for _, entry := range entries {
		var bid model.Bid
		if err := json.Unmarshal([]byte(entry), &bid); err != nil {
			return nil, fmt.Errorf("decode bid for product %s: %w", productID, err)
		}
		bids = append(bids, bid)
	}
	return bids, nil
}

// SaveProfile stores or replaces a user profile document.
func (l *RedisLedger) SaveProfile(ctx context.Context, profile model.UserProfile) error {
	doc, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile %s: %w", profile.UserID, err)
	}
	if err := l.client.Set(ctx, profileKey(profile.UserID), doc, 0).Err(); err != nil {
		return fmt.Errorf("save profile %s: %v: %w", profile.UserID, err, auctionerrors.ErrLedgerUnavailable)
	}
	return nil
}

// GetProfile reads and decodes a user profile document.
func (l *RedisLedger) GetProfile(ctx context.Context, userID string) (model.UserProfile, error) {
	raw, err := l.client.Get(ctx, profileKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return model.UserProfile{}, fmt.Errorf("get profile %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.UserProfile{}, fmt.Errorf("get profile %s: %v: %w", userID, err, auctionerrors.ErrLedgerUnavailable)
	}

	var profile model.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return model.UserProfile{}, fmt.Errorf("decode profile %s: %w", userID, err)
	}
	return profile, nil
}

// SubmitBid runs the optimistic bid transaction. The aggregate key is
// WATCHed, the snapshot is read and decided on inside that watch, and the
// bid append plus aggregate update are queued in one MULTI/EXEC. A racer
// that touches the aggregate key first fails the EXEC with TxFailedErr and
// this attempt restarts against the fresh state.
func (l *RedisLedger) SubmitBid(ctx context.Context, productID string, decide DecideBid) (model.Bid, model.Product, error) {
	var admitted model.Bid
	var updated model.Product
	key := productKey(productID)

	txn := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("submit bid for product %s: %w", productID, auctionerrors.ErrProductNotFound)
		}
		if err != nil {
			return err
		}

		var snapshot model.Product
		if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
			return fmt.Errorf("decode product %s: %w", productID, err)
		}

		bid, err := decide(snapshot)
		if err != nil {
			return err
		}

		next := applyAdmission(snapshot, bid)
		doc, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("marshal product %s: %w", productID, err)
		}
		entry, err := json.Marshal(bid)
		if err != nil {
			return fmt.Errorf("marshal bid for product %s: %w", productID, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, doc, 0)
			pipe.LPush(ctx, bidsKey(productID), entry)
			return nil
		})
		if err == nil {
			admitted, updated = bid, next
		}
		return err
	}

	for attempt := 0; attempt < maxSubmitAttempts; attempt++ {
		err := l.client.Watch(ctx, txn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue // concurrent commit won, restart against fresh state
		}
		if err != nil {
			if auctionerrors.IsTerminal(err) {
				return model.Bid{}, model.Product{}, err
			}
			return model.Bid{}, model.Product{}, fmt.Errorf("submit bid for product %s: %v: %w", productID, err, auctionerrors.ErrLedgerUnavailable)
		}
		return admitted, updated, nil
	}

	return model.Bid{}, model.Product{}, fmt.Errorf("submit bid for product %s: contention retries exhausted: %w", productID, auctionerrors.ErrLedgerUnavailable)
}
