package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventhire_backend/internal/models"
	"eventhire_backend/internal/services/dto"
	"eventhire_backend/internal/validator"
	"eventhire_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestBase() *BaseHandler {
	return NewBaseHandler(validator.New(), func(c *gin.Context) { c.Next() })
}

func TestParseParamID(t *testing.T) {
	r := gin.New()
	r.GET("/jobs/:id", func(c *gin.Context) {
		id, err := ParseParamID(c, "id")
		if err != nil {
			newTestBase().HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	tests := []struct {
		path string
		code int
	}{
		{"/jobs/42", http.StatusOK},
		{"/jobs/abc", http.StatusBadRequest},
		{"/jobs/0", http.StatusBadRequest},
		{"/jobs/-1", http.StatusBadRequest},
		{"/jobs/1.5", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.code, rec.Code, tt.path)
	}
}

func TestParseQueryID(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		want    *uint
		wantErr bool
	}{
		{"absent", "/jobs", nil, false},
		{"valid", "/jobs?clientId=7", uintPtr(7), false},
		{"not a number", "/jobs?clientId=seven", nil, true},
		{"zero", "/jobs?clientId=0", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// gin кеширует query string в контексте, поэтому контекст на каждый случай свой
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tt.target, nil)

			id, err := ParseQueryID(c, "clientId")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func uintPtr(v uint) *uint {
	return &v
}

func TestGetActor(t *testing.T) {
	h := newTestBase()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/user", nil)
	_, ok := h.GetActor(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	c, _ = gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/user", nil)
	c.Set(string(contextkeys.UserIDKey), uint(5))
	c.Set(string(contextkeys.RoleKey), models.UserRoleVendor)
	actor, ok := h.GetActor(c)
	require.True(t, ok)
	assert.Equal(t, dto.Actor{UserID: 5, Role: models.UserRoleVendor}, actor)
}

func TestBindAndValidate_JSON(t *testing.T) {
	h := newTestBase()

	send := func(body string) (*httptest.ResponseRecorder, bool) {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		var req dto.CreateJobRequest
		return rec, h.BindAndValidate_JSON(c, &req)
	}

	rec, ok := send(`{"title":`)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, ok = send(`{"title":"Gala","description":"Waiters","budget":0,"category":"Funeral"}`)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"budget"`)
	assert.Contains(t, rec.Body.String(), `"category"`)

	_, ok = send(`{"title":"Gala","description":"Waiters","budget":900,"category":"Concert"}`)
	assert.True(t, ok)
}
