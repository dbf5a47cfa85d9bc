package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSubmitGuardRejectsConcurrentDuplicate(t *testing.T) {
	guard := NewSubmitGuard(zap.NewNop())
	entered := make(chan struct{})
	release := make(chan struct{})

	r := gin.New()
	r.Use(guard.Middleware())
	r.POST("/lecturers", func(c *gin.Context) {
		entered <- struct{}{}
		<-release
		c.Status(http.StatusCreated)
	})

	var wg sync.WaitGroup
	first := httptest.NewRecorder()
	wg.Add(1)
	go func() {
		defer wg.Done()
		req := httptest.NewRequest(http.MethodPost, "/lecturers", nil)
		req.Header.Set(ClientSessionHeader, "tab-1")
		r.ServeHTTP(first, req)
	}()
	<-entered
	require.Equal(t, 1, guard.Pending())

	dup := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/lecturers", nil)
	req.Header.Set(ClientSessionHeader, "tab-1")
	r.ServeHTTP(dup, req)
	assert.Equal(t, http.StatusConflict, dup.Code)
	assert.Contains(t, dup.Body.String(), "SUBMIT_IN_FLIGHT")

	close(release)
	wg.Wait()
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, 0, guard.Pending())
}

func TestSubmitGuardSeparatesClientsAndSkipsReads(t *testing.T) {
	guard := NewSubmitGuard(nil)
	assert.True(t, guard.acquire("tab-1 POST /courses"))
	assert.True(t, guard.acquire("tab-2 POST /courses"))
	assert.False(t, guard.acquire("tab-1 POST /courses"))

	r := gin.New()
	r.Use(guard.Middleware())
	r.GET("/courses", func(c *gin.Context) { c.Status(http.StatusOK) })
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSubmitGuardKeysOnBody(t *testing.T) {
	guard := NewSubmitGuard(zap.NewNop())
	entered := make(chan struct{})
	release := make(chan struct{})
	var bodies []string
	var mu sync.Mutex

	r := gin.New()
	r.Use(guard.Middleware())
	r.POST("/assignments", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		mu.Lock()
		bodies = append(bodies, string(body))
		mu.Unlock()
		if strings.Contains(string(body), "C1") {
			entered <- struct{}{}
			<-release
		}
		c.Status(http.StatusCreated)
	})

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/assignments", strings.NewReader(body))
		req.Header.Set(ClientSessionHeader, "tab-1")
		r.ServeHTTP(rec, req)
		return rec
	}

	var wg sync.WaitGroup
	var first *httptest.ResponseRecorder
	wg.Add(1)
	go func() {
		defer wg.Done()
		first = post(`{"lecturerId":"L1","courseId":"C1"}`)
	}()
	<-entered

	other := post(`{"lecturerId":"L1","courseId":"C2"}`)
	assert.Equal(t, http.StatusCreated, other.Code)

	dup := post(`{"lecturerId":"L1","courseId":"C1"}`)
	assert.Equal(t, http.StatusConflict, dup.Code)

	close(release)
	wg.Wait()
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.ElementsMatch(t, []string{`{"lecturerId":"L1","courseId":"C1"}`, `{"lecturerId":"L1","courseId":"C2"}`}, bodies)
}

func TestExtractMetaStampsProcessingTime(t *testing.T) {
	r := gin.New()
	r.Use(WithResponseMeta())
	var meta map[string]interface{}
	r.GET("/x", func(c *gin.Context) {
		SetCacheHit(c, true)
		meta = ExtractMeta(c)
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, true, meta[cacheHitKey])
	assert.Contains(t, meta, processingTimeMs)
}
