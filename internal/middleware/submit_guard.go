package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/lecturer-admin-api/pkg/errors"
	"github.com/noah-isme/lecturer-admin-api/pkg/response"
)

// ClientSessionHeader identifies one browser tab of the admin UI. Clients are expected
// to send it on every mutation; without it submissions are keyed by client IP, which
// users behind one NAT share.
const ClientSessionHeader = "X-Client-Session"

// SubmitGuard rejects a mutation while an identical one from the same client is still
// being processed. Two submissions are identical when method, path and body all match.
// Reads pass through untouched.
type SubmitGuard struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
	logger   *zap.Logger
}

// NewSubmitGuard constructs an empty guard.
func NewSubmitGuard(logger *zap.Logger) *SubmitGuard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmitGuard{inFlight: make(map[string]struct{}), logger: logger}
}

// Middleware returns the gin handler.
func (g *SubmitGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}
		key, err := submissionKey(c)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unable to read request body"))
			c.Abort()
			return
		}
		if !g.acquire(key) {
			g.logger.Debug("duplicate submission rejected", zap.String("method", c.Request.Method), zap.String("path", c.Request.URL.Path))
			response.Error(c, appErrors.ErrSubmitInFlight)
			c.Abort()
			return
		}
		defer g.release(key)
		c.Next()
	}
}

// Pending reports how many submissions are currently being processed.
func (g *SubmitGuard) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.inFlight)
}

func (g *SubmitGuard) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[key]; busy {
		return false
	}
	g.inFlight[key] = struct{}{}
	return true
}

func (g *SubmitGuard) release(key string) {
	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()
}

// submissionKey identifies a submission by client, method, path and a body digest. The
// body is restored for the handlers downstream.
func submissionKey(c *gin.Context) (string, error) {
	client := strings.TrimSpace(c.GetHeader(ClientSessionHeader))
	if client == "" {
		client = c.ClientIP()
	}
	digest := sha256.New()
	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		_ = c.Request.Body.Close()
		if err != nil {
			return "", err
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		digest.Write(body)
	}
	return client + " " + c.Request.Method + " " + c.Request.URL.Path + " " + hex.EncodeToString(digest.Sum(nil)), nil
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
