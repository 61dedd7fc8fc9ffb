package helpers

// Request/Response DTOs
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// BasePrice is a pointer so a present-but-zero price binds and a
// missing one fails required.
type CreateAuctionRequest struct {
	AuctionItemName string   `json:"auction_item_name" binding:"required"`
	BasePrice       *float64 `json:"base_price" binding:"required"`
}

type PlaceBidRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type BidSummary struct {
	ID        string  `json:"id"`
	Amount    float64 `json:"amount"`
	Timestamp string  `json:"timestamp"`
}

type BidResult struct {
	NewPrice float64    `json:"new_price"`
	Bid      BidSummary `json:"bid"`
}
