package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// Listing bounds; per_page outside [1, MaxPerPage] is rejected rather
// than silently clamped.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// AuctionService defines the business logic for auctions and bidding
type AuctionService struct {
	auctions repository.AuctionDB
	users    repository.UserDB
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(auctions repository.AuctionDB, users repository.UserDB) *AuctionService {
	return &AuctionService{
		auctions: auctions,
		users:    users,
	}
}

// SellerSummary is the seller projection embedded in a listing entry
type SellerSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuctionView is one listing entry with its computed fields
type AuctionView struct {
	AuctionID    string         `json:"auction_id"`
	ItemName     string         `json:"item_name"`
	CurrentPrice float64        `json:"current_price"`
	BasePrice    float64        `json:"base_price"`
	Status       string         `json:"status"`
	CreatedAt    string         `json:"created_at"`
	Seller       *SellerSummary `json:"seller"`
	BidCount     int            `json:"bid_count"`
}

// Pagination describes the listing window and totals
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
	TotalPages int64 `json:"total_pages"`
}

// ListResult is the full listing response payload
type ListResult struct {
	Auctions   []AuctionView `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// CreateAuction stores a new auction for the given seller. The seller
// identity always comes from the session, never from the request body.
func (s *AuctionService) CreateAuction(ctx context.Context, sellerID, itemName string, basePrice float64) (string, error) {
	if itemName == "" {
		return "", fmt.Errorf("service: %w - missing auction item name", auctionerrors.ErrInvalidInput)
	}
	seller, err := primitive.ObjectIDFromHex(sellerID)
	if err != nil {
		return "", fmt.Errorf("service: %w - malformed seller ID %q", auctionerrors.ErrInvalidInput, sellerID)
	}

	auction := models.Auction{
		AuctionItemName: itemName,
		BasePrice:       basePrice,
		SellerID:        seller,
		Active:          true,
		CreatedAt:       time.Now().UTC(),
		Bids:            []models.Bid{},
	}

	id, err := s.auctions.InsertAuction(ctx, auction)
	if err != nil {
		return "", fmt.Errorf("service: failed to create auction for seller %s: %w", sellerID, err)
	}
	return id.Hex(), nil
}

// ListAuctions returns one page of auctions ordered by creation time
// ascending, each with its current price, bid count and seller summary.
func (s *AuctionService) ListAuctions(ctx context.Context, page, perPage int) (ListResult, error) {
	if page < 1 {
		return ListResult{}, fmt.Errorf("service: %w - page must be >= 1", auctionerrors.ErrInvalidInput)
	}
	if perPage < 1 || perPage > MaxPerPage {
		return ListResult{}, fmt.Errorf("service: %w - per_page must be between 1 and %d", auctionerrors.ErrInvalidInput, MaxPerPage)
	}

	skip := int64(page-1) * int64(perPage)
	auctions, err := s.auctions.ListAuctions(ctx, skip, int64(perPage))
	if err != nil {
		return ListResult{}, fmt.Errorf("service: failed to list auctions: %w", err)
	}

	views := make([]AuctionView, 0, len(auctions))
	for _, a := range auctions {
		views = append(views, AuctionView{
			AuctionID:    a.ID.Hex(),
			ItemName:     a.AuctionItemName,
			CurrentPrice: a.CurrentPrice(),
			BasePrice:    a.BasePrice,
			Status:       auctionStatus(a),
			CreatedAt:    a.CreatedAt.UTC().Format(time.RFC3339),
			Seller:       s.resolveSeller(ctx, a.SellerID),
			BidCount:     len(a.Bids),
		})
	}

	total, err := s.auctions.CountAuctions(ctx)
	if err != nil {
		return ListResult{}, fmt.Errorf("service: failed to count auctions: %w", err)
	}

	return ListResult{
		Auctions: views,
		Pagination: Pagination{
			Page:       page,
			PerPage:    perPage,
			TotalItems: total,
			TotalPages: (total + int64(perPage) - 1) / int64(perPage),
		},
	}, nil
}

// resolveSeller looks up the seller for a listing entry. A failed
// lookup yields a nil summary, never an error: a dangling seller
// reference must not break the whole listing.
func (s *AuctionService) resolveSeller(ctx context.Context, sellerID primitive.ObjectID) *SellerSummary {
	if sellerID.IsZero() {
		return nil
	}
	seller, err := s.users.FindUserByID(ctx, sellerID)
	if err != nil {
		if !errors.Is(err, auctionerrors.ErrUserNotFound) {
			utils.Warn("Seller lookup failed", map[string]any{
				"seller_id": sellerID.Hex(),
				"error":     err.Error(),
			})
		}
		return nil
	}
	return &SellerSummary{
		ID:       seller.ID.Hex(),
		Username: seller.Username,
		Email:    seller.Email,
	}
}

func auctionStatus(a models.Auction) string {
	if a.Active {
		return "active"
	}
	return "closed"
}

// PlaceBid validates and appends a bid, returning the stored bid and
// the auction's new current price. The repository append is conditional
// on the amount still beating the committed price, so a bid that loses
// a race with a concurrent higher bid is rejected even after the
// pre-check below passed.
func (s *AuctionService) PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (models.Bid, float64, error) {
	oid, err := primitive.ObjectIDFromHex(auctionID)
	if err != nil {
		return models.Bid{}, 0, fmt.Errorf("service: %w - %q", auctionerrors.ErrInvalidAuctionID, auctionID)
	}
	bidder, err := primitive.ObjectIDFromHex(bidderID)
	if err != nil {
		return models.Bid{}, 0, fmt.Errorf("service: %w - malformed bidder ID %q", auctionerrors.ErrInvalidInput, bidderID)
	}

	auction, err := s.auctions.FindAuctionByID(ctx, oid)
	if err != nil {
		return models.Bid{}, 0, fmt.Errorf("service: failed to load auction: %w", err)
	}

	current := auction.CurrentPrice()
	if amount <= current {
		return models.Bid{}, 0, fmt.Errorf("service: %w", &auctionerrors.BidTooLowError{CurrentPrice: current})
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		Amount:    amount,
		UserID:    bidder,
		Timestamp: time.Now().UTC(),
		Status:    models.BidStatusActive,
	}

	if err := s.auctions.AppendBid(ctx, oid, bid); err != nil {
		if errors.Is(err, auctionerrors.ErrBidTooLow) {
			// Lost a race; report the committed price the bid must beat
			return models.Bid{}, 0, fmt.Errorf("service: %w", &auctionerrors.BidTooLowError{CurrentPrice: s.committedPrice(ctx, oid, amount)})
		}
		return models.Bid{}, 0, fmt.Errorf("service: failed to record bid on auction %s: %w", auctionID, err)
	}

	return bid, bid.Amount, nil
}

// committedPrice re-reads the auction after a losing append. Falls back
// to the rejected amount when the re-read fails, which still yields a
// truthful "must be higher than" message.
func (s *AuctionService) committedPrice(ctx context.Context, id primitive.ObjectID, rejected float64) float64 {
	auction, err := s.auctions.FindAuctionByID(ctx, id)
	if err != nil {
		return rejected
	}
	return auction.CurrentPrice()
}
