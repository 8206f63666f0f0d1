package helper

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-cms/models"
)

func sendDomainError(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	require.NoError(t, NewHTTPHelper().SendDomainError(c, err))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestSendDomainErrorStatus(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{models.ValidationError("file type not allowed"), http.StatusBadRequest, "file type not allowed"},
		{models.ForbiddenError("admin role required"), http.StatusForbidden, "admin role required"},
		{models.ConflictError("tag already exists"), http.StatusConflict, "tag already exists"},
		{models.NotFoundError("article not found"), http.StatusNotFound, "article not found"},
		{models.ConversionError("could not open pdf", errors.New("bad xref")), http.StatusBadRequest, "could not open pdf: bad xref"},
		{models.IOError("could not stage upload", errors.New("disk full")), http.StatusInternalServerError, "upload failed"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			status, body := sendDomainError(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, body["code_message"])
		})
	}
}

func TestSendBindErrorStatusMatchesBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req struct {
		Title string `json:"title" binding:"required"`
	}
	err := c.ShouldBindJSON(&req)
	require.Error(t, err)
	require.NoError(t, NewHTTPHelper().SendBindError(c, err))

	var body struct {
		Code        int                 `json:"code"`
		CodeType    string              `json:"code_type"`
		CodeMessage map[string][]string `json:"code_message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, rec.Code, body.Code)
	assert.Equal(t, "validationError", body.CodeType)
	assert.Contains(t, body.CodeMessage, "title")
}

func TestGeneratePaging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/public/articles?page=2", nil)

	paging := (&HTTPHelper{}).GeneratePaging(c, 10, 2, 25)

	assert.Equal(t, 3, paging["total_pages"])
	links := paging["links"].(map[string]interface{})
	assert.Equal(t, "http://example.com/api/v1/public/articles?page=1&limit=10", links["previous"])
	assert.Equal(t, "http://example.com/api/v1/public/articles?page=3&limit=10", links["next"])
}
