package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	auction "auction-house/internal/auctionService"
	"auction-house/internal/config"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	user "auction-house/internal/userService"
)

// SetupTestEnv initializes the full router over the in-memory
// repository for integration testing.
func SetupTestEnv() (*gin.Engine, *repository.MemoryRepo) {
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	userService := user.NewUserService(repo)
	auctionService := auction.NewAuctionService(repo, repo)

	router := server.SetupRouter(config.SessionConfig{
		Secret:     []byte("integration-test-secret"),
		CookieName: "auction_session",
	}, userService, auctionService)

	return router, repo
}

// TestClient executes requests against the router, carrying session
// cookies across calls like a browser would.
type TestClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func NewTestClient(t *testing.T, router *gin.Engine) *TestClient {
	return &TestClient{
		t:       t,
		router:  router,
		cookies: make(map[string]*http.Cookie),
	}
}

// Do executes an HTTP request and parses the JSON response
func (c *TestClient) Do(method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	c.t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			c.t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range c.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		c.cookies[cookie.Name] = cookie
	}

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			c.t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// RegisterAndLogin creates an account and signs it in, leaving the
// session cookie on the client.
func (c *TestClient) RegisterAndLogin(username, email, password string) {
	c.t.Helper()

	_, w := c.Do(http.MethodPost, "/create-user", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		c.t.Fatalf("registration failed with status %d: %s", w.Code, w.Body.String())
	}

	_, w = c.Do(http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		c.t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}
}
