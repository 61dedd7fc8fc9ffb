package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
)

// MongoRepo implements UserDB and AuctionDB on top of a MongoDB
// database with "users" and "auctions" collections.
type MongoRepo struct {
	users    *mongo.Collection
	auctions *mongo.Collection
	timeout  time.Duration
}

// NewMongoRepo creates a repository bound to the given database. Every
// operation runs under queryTimeout.
func NewMongoRepo(db *mongo.Database, queryTimeout time.Duration) *MongoRepo {
	return &MongoRepo{
		users:    db.Collection("users"),
		auctions: db.Collection("auctions"),
		timeout:  queryTimeout,
	}
}

func (r *MongoRepo) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// InsertUser stores a new user document and returns its generated ID
func (r *MongoRepo) InsertUser(ctx context.Context, user model.User) (primitive.ObjectID, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.users.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert user: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindUserByEmail returns the first user with the given email
func (r *MongoRepo) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	var user model.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, fmt.Errorf("find user by email: %w", auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user by email: %w", err)
	}
	return user, nil
}

// FindUserByID returns the user with the given identifier
func (r *MongoRepo) FindUserByID(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	var user model.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.User{}, fmt.Errorf("find user %s: %w", id.Hex(), auctionerrors.ErrUserNotFound)
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user %s: %w", id.Hex(), err)
	}
	return user, nil
}

// InsertAuction stores a new auction document and returns its generated ID
func (r *MongoRepo) InsertAuction(ctx context.Context, auction model.Auction) (primitive.ObjectID, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	res, err := r.auctions.InsertOne(ctx, auction)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert auction: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// FindAuctionByID returns the auction with the given identifier
func (r *MongoRepo) FindAuctionByID(ctx context.Context, id primitive.ObjectID) (model.Auction, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	var auction model.Auction
	err := r.auctions.FindOne(ctx, bson.M{"_id": id}).Decode(&auction)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Auction{}, fmt.Errorf("find auction %s: %w", id.Hex(), auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("find auction %s: %w", id.Hex(), err)
	}
	return auction, nil
}

// ListAuctions returns a window of auctions ordered by creation time ascending
func (r *MongoRepo) ListAuctions(ctx context.Context, skip, limit int64) ([]model.Auction, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.auctions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	defer cursor.Close(ctx)

	auctions := []model.Auction{}
	if err := cursor.All(ctx, &auctions); err != nil {
		return nil, fmt.Errorf("decode auctions: %w", err)
	}
	return auctions, nil
}

// CountAuctions returns the total number of auction documents
func (r *MongoRepo) CountAuctions(ctx context.Context) (int64, error) {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	total, err := r.auctions.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count auctions: %w", err)
	}
	return total, nil
}

// AppendBid appends a bid in a single conditional update. The filter
// requires the amount to beat both the base price and every stored bid,
// so two racing bids can never both commit unless the later one exceeds
// the earlier's committed amount.
func (r *MongoRepo) AppendBid(ctx context.Context, auctionID primitive.ObjectID, bid model.Bid) error {
	ctx, cancel := r.opCtx(ctx)
	defer cancel()

	filter := bson.M{
		"_id":        auctionID,
		"base_price": bson.M{"$lt": bid.Amount},
		"bids": bson.M{
			"$not": bson.M{"$elemMatch": bson.M{"amount": bson.M{"$gte": bid.Amount}}},
		},
	}
	update := bson.M{"$push": bson.M{"bids": bid}}

	res, err := r.auctions.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("append bid to auction %s: %w", auctionID.Hex(), err)
	}
	if res.ModifiedCount == 1 {
		return nil
	}

	// Zero modified: either the auction is gone or the bid lost a race
	err = r.auctions.FindOne(ctx, bson.M{"_id": auctionID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("append bid to auction %s: %w", auctionID.Hex(), auctionerrors.ErrAuctionNotFound)
	}
	if err != nil {
		return fmt.Errorf("append bid to auction %s: %w", auctionID.Hex(), err)
	}
	return fmt.Errorf("append bid to auction %s: %w", auctionID.Hex(), auctionerrors.ErrBidTooLow)
}
