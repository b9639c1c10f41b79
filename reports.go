package stockbook

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
)

// Reports bundles the reports of a single ledger snapshot.
type Reports struct {
	Inventory *InventoryReport
	Realized  *RealizedReport
	Balances  Balances
}

// ComputeReports computes inventory, realized gains and balances of txs. The
// FIFO replay runs once and feeds both gain reports while balances are summed
// concurrently. txs is only read, so every report works on the same snapshot.
func ComputeReports(ctx context.Context, a *Accountant, txs []Transaction, prices map[string]Money) (*Reports, error) {
	res := &Reports{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		book, err := a.Replay(txs)
		if err != nil {
			return err
		}
		res.Inventory = a.newInventoryReport(book, prices)
		res.Realized = newRealizedReport(book)
		return nil
	})
	g.Go(func() error {
		res.Balances = AccountBalances(txs)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// Overview returns the overview of the bundle as of on.
func (r *Reports) Overview(on Date) *Overview {
	return NewOverview(r.Inventory, r.Balances, r.Realized, on)
}

// Fingerprint returns a digest of a snapshot: identical transactions and
// prices always yield the same fingerprint.
func Fingerprint(txs []Transaction, prices map[string]Money) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, t := range txs {
		// Transactions and money always encode.
		_ = enc.Encode(t)
	}
	ids := make([]string, 0, len(prices))
	for id := range prices {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		_ = enc.Encode([]any{id, prices[id]})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ReportCache keeps computed bundles keyed by snapshot fingerprint. The key
// does not cover the accountant settings: use one cache per accountant.
type ReportCache struct {
	c *cache.Cache
}

// NewReportCache returns a cache whose entries expire after ttl.
func NewReportCache(ttl time.Duration) *ReportCache {
	return &ReportCache{c: cache.New(ttl, 2*ttl)}
}

// Compute returns the cached bundle of the snapshot, computing it on a miss.
// Errors are not cached.
func (rc *ReportCache) Compute(ctx context.Context, a *Accountant, txs []Transaction, prices map[string]Money) (*Reports, error) {
	key := Fingerprint(txs, prices)
	if r, ok := rc.c.Get(key); ok {
		return r.(*Reports), nil
	}
	r, err := ComputeReports(ctx, a, txs, prices)
	if err != nil {
		return nil, err
	}
	rc.c.Set(key, r, cache.DefaultExpiration)
	return r, nil
}

// Len returns the number of cached bundles.
func (rc *ReportCache) Len() int { return rc.c.ItemCount() }
