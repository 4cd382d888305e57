package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestErrorWritesEnvelopeAndAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	reached := false
	router.GET("/x", func(c *gin.Context) {
		Error(c, http.StatusUnprocessableEntity, "extraction_failed", "Could not read the uploaded PDF.", nil)
	}, func(c *gin.Context) {
		reached = true
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	if reached {
		t.Fatalf("expected handler chain to abort")
	}
	var body map[string]map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"]["code"] != "extraction_failed" || body["error"]["message"] != "Could not read the uploaded PDF." {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["error"]["details"]; ok {
		t.Fatalf("expected details omitted when nil")
	}
}
