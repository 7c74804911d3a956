//go:build integration

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rev-shortener/config"
	"rev-shortener/handlers"
	"rev-shortener/services"
	"rev-shortener/storage"
	"rev-shortener/types"
	"rev-shortener/urlgen"
)

func sendRequest(t *testing.T, client *http.Client, server *httptest.Server, method, path string, body interface{}) (*http.Response, []byte) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Failed to marshal request body")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, server.URL+path, reqBody)
	require.NoError(t, err, "Failed to create request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err, "Failed to send request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")
	resp.Body.Close()

	return resp, respBody
}

// noRedirect keeps the client from following 301 responses.
var noRedirect = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

func setupTestEnvironment(t *testing.T, modify func(cfg *config.Config)) (*httptest.Server, *config.Config) {
	cfg := config.DefaultConfig()
	cfg.DisableRateLimit = true
	if modify != nil {
		modify(cfg)
	}

	logger := zap.NewNop()
	store := storage.NewInMemoryStorage(cfg.Limit, logger)
	shortener, err := services.NewShortener(store, urlgen.NewSequential(), services.Options{
		Domain: cfg.Domain,
		Limit:  cfg.Limit,
		Logger: logger,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	urlHandler, err := handlers.NewURLHandler(ctx, shortener, cfg, logger)
	require.NoError(t, err, "Failed to create URLHandler")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers.RequestIDMiddleware())
	handlers.RegisterRoutes(router, urlHandler, cfg)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, cfg
}

func TestIntegration(t *testing.T) {
	t.Run("BasicOperations", func(t *testing.T) {
		server, cfg := setupTestEnvironment(t, nil)
		var created types.URLResponse

		t.Run("CreateShortURL", func(t *testing.T) {
			resp, body := sendRequest(t, noRedirect, server, "POST", "/api/v1/short", types.URLRequest{URL: "https://example.com"})
			assert.Equal(t, http.StatusCreated, resp.StatusCode)
			require.NoError(t, json.Unmarshal(body, &created))
			assert.Equal(t, cfg.Domain+"/1", created.ShortURL)
			assert.Equal(t, "1", created.Identifier)
		})

		t.Run("Duplicate URL returns the same short URL", func(t *testing.T) {
			resp, body := sendRequest(t, noRedirect, server, "POST", "/api/v1/short", types.URLRequest{URL: "https://example.com"})
			assert.Equal(t, http.StatusCreated, resp.StatusCode)
			var again types.URLResponse
			require.NoError(t, json.Unmarshal(body, &again))
			assert.Equal(t, created.ShortURL, again.ShortURL)
		})

		t.Run("Second URL gets the next identifier", func(t *testing.T) {
			resp, body := sendRequest(t, noRedirect, server, "POST", "/api/v1/short", types.URLRequest{URL: "https://example.org"})
			assert.Equal(t, http.StatusCreated, resp.StatusCode)
			var second types.URLResponse
			require.NoError(t, json.Unmarshal(body, &second))
			assert.Equal(t, cfg.Domain+"/2", second.ShortURL)
		})

		t.Run("GetOriginalURL", func(t *testing.T) {
			resp, body := sendRequest(t, noRedirect, server, "GET", "/api/v1/short/"+created.Identifier, nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			var response types.URLResponse
			require.NoError(t, json.Unmarshal(body, &response))
			assert.Equal(t, "https://example.com", response.OriginalURL)
		})

		t.Run("Redirect", func(t *testing.T) {
			resp, _ := sendRequest(t, noRedirect, server, "GET", "/"+created.Identifier, nil)
			assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
			assert.Equal(t, "https://example.com", resp.Header.Get("Location"))
		})

		t.Run("Stats", func(t *testing.T) {
			resp, body := sendRequest(t, noRedirect, server, "GET", "/api/v1/stats", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			var stats types.Stats
			require.NoError(t, json.Unmarshal(body, &stats))
			assert.Equal(t, 2, stats.Stored)
			assert.Equal(t, cfg.Limit-2, stats.Remaining)
			assert.Equal(t, config.StrategySequential, stats.Strategy)
		})
	})

	t.Run("HealthCheck", func(t *testing.T) {
		server, _ := setupTestEnvironment(t, nil)
		resp, body := sendRequest(t, noRedirect, server, "GET", "/health", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "OK", string(body))
	})

	t.Run("Error Handling", func(t *testing.T) {
		server, _ := setupTestEnvironment(t, nil)

		resp, _ := sendRequest(t, noRedirect, server, "POST", "/api/v1/short", types.URLRequest{URL: "not-a-valid-url"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, _ = sendRequest(t, noRedirect, server, "POST", "/api/v1/short", types.URLRequest{URL: ""})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, _ = sendRequest(t, noRedirect, server, "GET", "/api/v1/short/nonexistent", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, _ = sendRequest(t, noRedirect, server, "GET", "/nonexistent", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Storage Full", func(t *testing.T) {
		server, _ := setupTestEnvironment(t, func(cfg *config.Config) { cfg.Limit = 3 })

		for i := 0; i < 3; i++ {
			resp, _ := sendRequest(t, noRedirect, server, "POST", "/api/v1/short", types.URLRequest{URL: fmt.Sprintf("https://example.com/%d", i)})
			assert.Equal(t, http.StatusCreated, resp.StatusCode)
		}

		resp, body := sendRequest(t, noRedirect, server, "POST", "/api/v1/short", types.URLRequest{URL: "https://example.com/full"})
		assert.Equal(t, http.StatusInsufficientStorage, resp.StatusCode)
		assert.Contains(t, string(body), "Storage capacity reached")

		// Already stored URLs are still answered once full.
		resp, _ = sendRequest(t, noRedirect, server, "POST", "/api/v1/short", types.URLRequest{URL: "https://example.com/0"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		// Capacity is checked before validity.
		resp, _ = sendRequest(t, noRedirect, server, "POST", "/api/v1/short", types.URLRequest{URL: "garbage"})
		assert.Equal(t, http.StatusInsufficientStorage, resp.StatusCode)
	})

	t.Run("Rate Limiting", func(t *testing.T) {
		server, cfg := setupTestEnvironment(t, func(cfg *config.Config) { cfg.DisableRateLimit = false })

		for i := 0; i < cfg.RateLimit; i++ {
			resp, _ := sendRequest(t, noRedirect, server, "GET", "/health", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		}
		resp, _ := sendRequest(t, noRedirect, server, "GET", "/health", nil)
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

		time.Sleep(cfg.RatePeriod)

		resp, _ = sendRequest(t, noRedirect, server, "GET", "/health", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("CORS Headers", func(t *testing.T) {
		server, _ := setupTestEnvironment(t, nil)

		resp, _ := sendRequest(t, noRedirect, server, "OPTIONS", "/api/v1/short", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "POST, GET, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	})

	t.Run("Concurrent Access", func(t *testing.T) {
		const (
			limit       = 30
			numRequests = 50
		)
		server, _ := setupTestEnvironment(t, func(cfg *config.Config) { cfg.Limit = limit })

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			created  = make(map[string]string)
			rejected int
		)
		for i := 0; i < numRequests; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				longURL := fmt.Sprintf("https://example.com/concurrent%d", i)
				body, _ := json.Marshal(types.URLRequest{URL: longURL})
				resp, err := http.Post(server.URL+"/api/v1/short", "application/json", bytes.NewBuffer(body))
				if !assert.NoError(t, err) {
					return
				}
				defer resp.Body.Close()

				mu.Lock()
				defer mu.Unlock()
				switch resp.StatusCode {
				case http.StatusCreated:
					var response types.URLResponse
					assert.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
					_, dup := created[response.ShortURL]
					assert.False(t, dup, "short URL %s issued twice", response.ShortURL)
					created[response.ShortURL] = longURL
				case http.StatusInsufficientStorage:
					rejected++
				default:
					t.Errorf("unexpected status %d", resp.StatusCode)
				}
			}(i)
		}
		wg.Wait()

		assert.Len(t, created, limit)
		assert.Equal(t, numRequests-limit, rejected)

		for shortURL, longURL := range created {
			id := shortURL[strings.LastIndex(shortURL, "/")+1:]
			resp, body := sendRequest(t, noRedirect, server, "GET", "/api/v1/short/"+id, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var response types.URLResponse
			require.NoError(t, json.Unmarshal(body, &response))
			assert.Equal(t, longURL, response.OriginalURL)
		}
	})
}
