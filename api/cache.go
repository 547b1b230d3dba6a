package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cache keys for derived aggregates served at the boundary. The services
// always compute fresh values; only rendered responses are cached, for a
// bounded TTL, and writes below invalidate the keys they touch.

func balanceKey(walletID int64) string {
	return fmt.Sprintf("wallet:%d:balance", walletID)
}

func balancesKey(userID int64) string {
	return fmt.Sprintf("user:%d:balances", userID)
}

func summaryKey(walletID int64, year int, month time.Month) string {
	return fmt.Sprintf("wallet:%d:summary:%d-%02d", walletID, year, int(month))
}

// serveCached writes the cached response body if present.
func (s *Server) serveCached(ctx *gin.Context, key string) bool {
	if s.cache == nil {
		return false
	}
	payload, ok := s.cache.Get(ctx, key)
	if !ok {
		return false
	}
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", payload)
	return true
}

// respondAndCache renders the envelope, stores it under key and writes it.
func (s *Server) respondAndCache(ctx *gin.Context, key string, envelope interface{}) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		ctx.JSON(http.StatusOK, envelope)
		return
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, payload, s.cacheTTL)
	}
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

func (s *Server) invalidate(ctx *gin.Context, keys ...string) {
	if s.cache != nil {
		s.cache.Delete(ctx, keys...)
	}
}
