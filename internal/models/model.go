package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Auction represents an auction listing with its embedded bids
type Auction struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AuctionItemName string             `bson:"auction_item_name" json:"auction_item_name"`
	BasePrice       float64            `bson:"base_price" json:"base_price"`
	SellerID        primitive.ObjectID `bson:"seller_id" json:"seller_id"`
	Active          bool               `bson:"active" json:"active"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	Bids            []Bid              `bson:"bids" json:"bids"`
}

// Bid represents a single bid embedded in an auction document
type Bid struct {
	BidID     string             `bson:"bid_id" json:"bid_id"`
	Amount    float64            `bson:"amount" json:"amount"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	Status    string             `bson:"status" json:"status"`
}

// BidStatusActive is the only status bids carry for now; bids are
// appended, never mutated or removed.
const BidStatusActive = "active"

// CurrentPrice returns the highest bid amount, or the base price when
// no bids exist.
func (a Auction) CurrentPrice() float64 {
	price := a.BasePrice
	for _, b := range a.Bids {
		if b.Amount > price {
			price = b.Amount
		}
	}
	return price
}
