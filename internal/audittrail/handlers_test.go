package audittrail

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := NewMemoryStore()
	router := gin.New()
	NewHandler(store).RegisterRoutes(router.Group("/v1"))
	return router, store
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestQueryTrailEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	record(t, store, "aml")
	record(t, store, "financial")

	w := doGet(router, "/v1/audit-trail")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entries []Entry `json:"entries"`
		Count   int     `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, int64(2), resp.Entries[0].ID, "newest first")

	w = doGet(router, "/v1/audit-trail?report_type=aml")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "aml", resp.Entries[0].ReportType)

	w = doGet(router, "/v1/audit-trail?from=not-a-date")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetEntryEndpoint(t *testing.T) {
	router, store := newTestRouter(t)
	saved := record(t, store, "aml")

	w := doGet(router, "/v1/audit-trail/1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Entry  Entry           `json:"entry"`
		Report json.RawMessage `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, saved.ID, resp.Entry.ID)
	assert.Equal(t, "NON_COMPLIANT", resp.Entry.OverallStatus)
	assert.JSONEq(t, `{"reportType":"aml"}`, string(resp.Report), "archived snapshot is returned verbatim")

	w = doGet(router, "/v1/audit-trail/999")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doGet(router, "/v1/audit-trail/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
