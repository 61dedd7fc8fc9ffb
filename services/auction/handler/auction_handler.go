package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	auction "auction-house/internal/auctionService"
	model "auction-house/internal/models"
	"auction-house/services/auction/helpers"
	"auction-house/utils"
)

type AuctionServiceInterface interface {
	CreateAuction(ctx context.Context, sellerID, itemName string, basePrice float64) (string, error)
	ListAuctions(ctx context.Context, page, perPage int) (auction.ListResult, error)
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (model.Bid, float64, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /create-auction
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if helpers.BindFieldTypeError(err, "base_price") {
			helpers.HandleBindError(c, "CreateAuctionHandler", "Invalid price format", err)
			return
		}
		helpers.HandleBindError(c, "CreateAuctionHandler", "Missing required fields", err)
		return
	}

	sellerID := helpers.CurrentUserID(c)
	auctionID, err := h.service.CreateAuction(c.Request.Context(), sellerID, req.AuctionItemName, *req.BasePrice)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"seller_id": sellerID,
			"error":     err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, gin.H{"auction_id": auctionID}, "Auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created", map[string]any{
		"auction_id": auctionID,
		"seller_id":  sellerID,
		"item_name":  req.AuctionItemName,
	})
}

// ListAuctionsHandler handles GET /get-all-auctions
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	page, perPage, ok := paginationParams(c)
	if !ok {
		return
	}

	result, err := h.service.ListAuctions(c.Request.Context(), page, perPage)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Error("ListAuctionsHandler: failed to list auctions", map[string]any{
			"page":     page,
			"per_page": perPage,
			"error":    err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     http.StatusOK,
		"message":    "Auctions retrieved successfully",
		"data":       result.Auctions,
		"pagination": result.Pagination,
	})
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved", map[string]any{
		"page":  page,
		"count": len(result.Auctions),
	})
}

// paginationParams reads and validates the listing window. Defaults:
// page 1, per_page 10. Out-of-range values are rejected rather than
// clamped so the division in total_pages can never see a zero.
func paginationParams(c *gin.Context) (page, perPage int, ok bool) {
	var err error

	page = auction.DefaultPage
	if raw := c.Query("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil || page < 1 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid pagination parameters")
			return 0, 0, false
		}
	}

	perPage = auction.DefaultPerPage
	if raw := c.Query("per_page"); raw != "" {
		if perPage, err = strconv.Atoi(raw); err != nil || perPage < 1 || perPage > auction.MaxPerPage {
			utils.JSONError(c, http.StatusBadRequest, "Invalid pagination parameters")
			return 0, 0, false
		}
	}

	return page, perPage, true
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	if c.ContentType() != "application/json" {
		utils.JSONError(c, http.StatusBadRequest, "Request must be JSON")
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if helpers.BindFieldTypeError(err, "amount") {
			helpers.HandleBindError(c, "PlaceBidHandler", "Bid amount must be a number", err)
			return
		}
		helpers.HandleBindError(c, "PlaceBidHandler", "Missing bid amount", err)
		return
	}

	auctionID := c.Param("auction_id")
	bidderID := helpers.CurrentUserID(c)

	bid, newPrice, err := h.service.PlaceBid(c.Request.Context(), auctionID, bidderID, *req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		logFields := map[string]any{
			"auction_id": auctionID,
			"bidder_id":  bidderID,
			"amount":     *req.Amount,
			"error":      err.Error(),
		}
		if status == http.StatusInternalServerError {
			utils.Error("PlaceBidHandler: failed to place bid", logFields)
		} else {
			utils.Warn("PlaceBidHandler: bid rejected", logFields)
		}
		return
	}

	resp := helpers.BidResult{
		NewPrice: newPrice,
		Bid: helpers.BidSummary{
			ID:        bid.BidID,
			Amount:    bid.Amount,
			Timestamp: bid.Timestamp.UTC().Format(time.RFC3339),
		},
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "Bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed", map[string]any{
		"auction_id": auctionID,
		"bid_id":     bid.BidID,
		"bidder_id":  bidderID,
		"amount":     bid.Amount,
	})
}
