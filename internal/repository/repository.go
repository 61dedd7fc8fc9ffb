package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	model "auction-house/internal/models"
)

// UserDB defines the user storage interface
type UserDB interface {
	InsertUser(ctx context.Context, user model.User) (primitive.ObjectID, error)
	FindUserByEmail(ctx context.Context, email string) (model.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (model.User, error)
}

// AuctionDB defines the auction storage interface.
//
// AppendBid is the serialization point for bidding: the bid is appended
// only if its amount still exceeds the auction's committed current
// price (base price or highest stored bid) at the moment of the write.
// A losing race reports ErrBidTooLow, a missing auction
// ErrAuctionNotFound.
type AuctionDB interface {
	InsertAuction(ctx context.Context, auction model.Auction) (primitive.ObjectID, error)
	FindAuctionByID(ctx context.Context, id primitive.ObjectID) (model.Auction, error)
	ListAuctions(ctx context.Context, skip, limit int64) ([]model.Auction, error)
	CountAuctions(ctx context.Context) (int64, error)
	AppendBid(ctx context.Context, auctionID primitive.ObjectID, bid model.Bid) error
}
