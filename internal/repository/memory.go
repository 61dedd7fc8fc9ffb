package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
)

// MemoryRepo is a concurrency-safe in-memory implementation of UserDB
// and AuctionDB, used by tests in place of a live MongoDB. Its
// AppendBid honors the same conditional-append contract as the mongo
// implementation.
type MemoryRepo struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]model.User
	auctions map[primitive.ObjectID]model.Auction
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		users:    make(map[primitive.ObjectID]model.User),
		auctions: make(map[primitive.ObjectID]model.Auction),
	}
}

// InsertUser stores a user and returns a generated identifier
func (r *MemoryRepo) InsertUser(_ context.Context, user model.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = primitive.NewObjectID()
	r.users[user.ID] = user
	return user.ID, nil
}

// FindUserByEmail returns the first user with the given email
func (r *MemoryRepo) FindUserByEmail(_ context.Context, email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// First match in creation order, like a natural-order collection scan
	var candidates []model.User
	for _, u := range r.users {
		if u.Email == email {
			candidates = append(candidates, u)
		}
	}
	if len(candidates) == 0 {
		return model.User{}, fmt.Errorf("find user by email: %w", auctionerrors.ErrUserNotFound)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})
	return candidates[0], nil
}

// FindUserByID returns the user with the given identifier
func (r *MemoryRepo) FindUserByID(_ context.Context, id primitive.ObjectID) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return model.User{}, fmt.Errorf("find user %s: %w", id.Hex(), auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// InsertAuction stores an auction and returns a generated identifier
func (r *MemoryRepo) InsertAuction(_ context.Context, auction model.Auction) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction.ID = primitive.NewObjectID()
	if auction.Bids == nil {
		auction.Bids = []model.Bid{}
	}
	r.auctions[auction.ID] = auction
	return auction.ID, nil
}

// FindAuctionByID returns the auction with the given identifier
func (r *MemoryRepo) FindAuctionByID(_ context.Context, id primitive.ObjectID) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[id]
	if !ok {
		return model.Auction{}, fmt.Errorf("find auction %s: %w", id.Hex(), auctionerrors.ErrAuctionNotFound)
	}
	auction.Bids = append([]model.Bid(nil), auction.Bids...)
	return auction, nil
}

// ListAuctions returns a window of auctions ordered by creation time ascending
func (r *MemoryRepo) ListAuctions(_ context.Context, skip, limit int64) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]model.Auction, 0, len(r.auctions))
	for _, a := range r.auctions {
		a.Bids = append([]model.Bid(nil), a.Bids...)
		all = append(all, a)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	if skip >= int64(len(all)) {
		return []model.Auction{}, nil
	}
	all = all[skip:]
	if limit < int64(len(all)) {
		all = all[:limit]
	}
	return all, nil
}

// CountAuctions returns the total number of stored auctions
func (r *MemoryRepo) CountAuctions(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.auctions)), nil
}

// AppendBid appends a bid only if its amount still exceeds the
// committed current price, all under the write lock.
func (r *MemoryRepo) AppendBid(_ context.Context, auctionID primitive.ObjectID, bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("append bid to auction %s: %w", auctionID.Hex(), auctionerrors.ErrAuctionNotFound)
	}
	if bid.Amount <= auction.CurrentPrice() {
		return fmt.Errorf("append bid to auction %s: %w", auctionID.Hex(), auctionerrors.ErrBidTooLow)
	}

	auction.Bids = append(auction.Bids, bid)
	r.auctions[auctionID] = auction
	return nil
}
