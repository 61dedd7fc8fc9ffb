package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	auction "auction-house/internal/auctionService"
	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/services/auction/helpers"
)

// authAs stubs the auth middleware, injecting the user ID the way
// LoginRequired does after a session check.
func authAs(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(helpers.ContextUserKey, userID)
		c.Next()
	}
}

// Test CreateAuctionHandler
func TestCreateAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService)

	sellerID := primitive.NewObjectID().Hex()

	router := newSessionRouter()
	router.POST("/create-auction", authAs(sellerID), handler.CreateAuctionHandler)

	newID := primitive.NewObjectID().Hex()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validate       func(t *testing.T, resp map[string]any)
	}{
		{
			name:        "success",
			requestBody: map[string]any{"auction_item_name": "Vase", "base_price": 100},
			mockSetup: func() {
				mockService.EXPECT().
					CreateAuction(gomock.Any(), sellerID, "Vase", 100.0).
					Return(newID, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Auction created successfully",
			validate: func(t *testing.T, resp map[string]any) {
				data := resp["data"].(map[string]any)
				require.Equal(t, newID, data["auction_id"])
			},
		},
		{
			name:           "missing_item_name",
			requestBody:    map[string]any{"base_price": 100},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Missing required fields",
		},
		{
			name:           "missing_base_price",
			requestBody:    map[string]any{"auction_item_name": "Vase"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Missing required fields",
		},
		{
			name:           "non_numeric_base_price",
			requestBody:    map[string]any{"auction_item_name": "Vase", "base_price": "cheap"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid price format",
		},
		{
			name:        "store_failure",
			requestBody: map[string]any{"auction_item_name": "Vase", "base_price": 100},
			mockSetup: func() {
				mockService.EXPECT().
					CreateAuction(gomock.Any(), sellerID, "Vase", 100.0).
					Return("", errors.New("store unavailable"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Internal server error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w, resp := doJSON(t, router, http.MethodPost, "/create-auction", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if tc.validate != nil && w.Code == http.StatusCreated {
				tc.validate(t, resp)
			}
		})
	}
}

// Test ListAuctionsHandler
func TestListAuctionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService)

	userID := primitive.NewObjectID().Hex()

	router := newSessionRouter()
	router.GET("/get-all-auctions", authAs(userID), handler.ListAuctionsHandler)

	sampleResult := auction.ListResult{
		Auctions: []auction.AuctionView{
			{
				AuctionID:    primitive.NewObjectID().Hex(),
				ItemName:     "Vase",
				CurrentPrice: 150,
				BasePrice:    100,
				Status:       "active",
				BidCount:     1,
			},
		},
		Pagination: auction.Pagination{Page: 1, PerPage: 10, TotalItems: 1, TotalPages: 1},
	}

	t.Run("defaults", func(t *testing.T) {
		mockService.EXPECT().ListAuctions(gomock.Any(), 1, 10).Return(sampleResult, nil)

		w, resp := doJSON(t, router, http.MethodGet, "/get-all-auctions", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].([]any)
		require.Len(t, data, 1)
		entry := data[0].(map[string]any)
		require.Equal(t, "Vase", entry["item_name"])
		require.Equal(t, 150.0, entry["current_price"])
		require.Equal(t, 1.0, entry["bid_count"])

		pagination := resp["pagination"].(map[string]any)
		require.Equal(t, 1.0, pagination["page"])
		require.Equal(t, 10.0, pagination["per_page"])
	})

	t.Run("explicit_window", func(t *testing.T) {
		mockService.EXPECT().ListAuctions(gomock.Any(), 2, 5).Return(auction.ListResult{
			Auctions:   []auction.AuctionView{},
			Pagination: auction.Pagination{Page: 2, PerPage: 5, TotalItems: 0, TotalPages: 0},
		}, nil)

		w, _ := doJSON(t, router, http.MethodGet, "/get-all-auctions?page=2&per_page=5", nil)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non_numeric_page", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodGet, "/get-all-auctions?page=abc", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, resp["message"], "Invalid pagination parameters")
	})

	t.Run("zero_per_page", func(t *testing.T) {
		w, resp := doJSON(t, router, http.MethodGet, "/get-all-auctions?per_page=0", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, resp["message"], "Invalid pagination parameters")
	})

	t.Run("negative_page", func(t *testing.T) {
		w, _ := doJSON(t, router, http.MethodGet, "/get-all-auctions?page=-1", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store_failure_does_not_leak", func(t *testing.T) {
		mockService.EXPECT().ListAuctions(gomock.Any(), 1, 10).Return(auction.ListResult{}, errors.New("connection refused to 10.0.0.5"))

		w, resp := doJSON(t, router, http.MethodGet, "/get-all-auctions", nil)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Contains(t, resp["message"], "Internal server error")
		require.NotContains(t, resp["message"], "10.0.0.5")
	})
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService)

	bidderID := primitive.NewObjectID().Hex()
	auctionID := primitive.NewObjectID().Hex()

	router := newSessionRouter()
	router.POST("/auctions/:auction_id/bids", authAs(bidderID), handler.PlaceBidHandler)

	now := time.Now().UTC()

	tests := []struct {
		name           string
		url            string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
		validate       func(t *testing.T, resp map[string]any)
	}{
		{
			name:        "success",
			url:         "/auctions/" + auctionID + "/bids",
			requestBody: map[string]any{"amount": 150},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), auctionID, bidderID, 150.0).
					Return(model.Bid{BidID: "bid-1", Amount: 150, Timestamp: now, Status: model.BidStatusActive}, 150.0, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Bid placed successfully",
			validate: func(t *testing.T, resp map[string]any) {
				data := resp["data"].(map[string]any)
				require.Equal(t, 150.0, data["new_price"])
				bid := data["bid"].(map[string]any)
				require.Equal(t, "bid-1", bid["id"])
				require.Equal(t, 150.0, bid["amount"])
			},
		},
		{
			name:           "missing_amount",
			url:            "/auctions/" + auctionID + "/bids",
			requestBody:    map[string]any{},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Missing bid amount",
		},
		{
			name:           "non_numeric_amount",
			url:            "/auctions/" + auctionID + "/bids",
			requestBody:    map[string]any{"amount": "lots"},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Bid amount must be a number",
		},
		{
			name:        "malformed_auction_id",
			url:         "/auctions/not-hex/bids",
			requestBody: map[string]any{"amount": 150},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), "not-hex", bidderID, 150.0).
					Return(model.Bid{}, 0.0, auctionerrors.ErrInvalidAuctionID)
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Invalid auction ID",
		},
		{
			name:        "auction_not_found",
			url:         "/auctions/" + auctionID + "/bids",
			requestBody: map[string]any{"amount": 150},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), auctionID, bidderID, 150.0).
					Return(model.Bid{}, 0.0, auctionerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Auction not found",
		},
		{
			name:        "bid_too_low",
			url:         "/auctions/" + auctionID + "/bids",
			requestBody: map[string]any{"amount": 50},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), auctionID, bidderID, 50.0).
					Return(model.Bid{}, 0.0, &auctionerrors.BidTooLowError{CurrentPrice: 100})
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "Bid must be higher than 100",
		},
		{
			name:        "store_failure",
			url:         "/auctions/" + auctionID + "/bids",
			requestBody: map[string]any{"amount": 150},
			mockSetup: func() {
				mockService.EXPECT().
					PlaceBid(gomock.Any(), auctionID, bidderID, 150.0).
					Return(model.Bid{}, 0.0, errors.New("store unavailable"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "Internal server error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w, resp := doJSON(t, router, http.MethodPost, tc.url, tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Contains(t, resp["message"], tc.expectedMsg)
			if tc.validate != nil && w.Code == http.StatusCreated {
				tc.validate(t, resp)
			}
		})
	}

	t.Run("non_json_content_type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/auctions/"+auctionID+"/bids", strings.NewReader("amount=150"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "Request must be JSON")
	})
}
