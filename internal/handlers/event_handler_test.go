package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/larswik/gigdex/internal/models"
	"github.com/larswik/gigdex/internal/server"
	"github.com/larswik/gigdex/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.EventStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Event{}))

	events := store.NewEventStore(db)
	r := gin.New()
	server.SetupRoutes(r, events)
	return r, events
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListEventsEmpty(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/events", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCreateThenGetByLocation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/events", `{"name":"Jazz Night","event_date":"2025-03-01"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	location := w.Header().Get("Location")
	require.NotEmpty(t, location)
	assert.True(t, strings.HasPrefix(location, "/events/"))

	var created models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Jazz Night", created.Name)
	assert.Equal(t, "2025-03-01", created.EventDate)
	assert.Equal(t, "", created.Venue)
	assert.Equal(t, "", created.City)
	assert.Equal(t, "", created.Country)

	got := doRequest(r, http.MethodGet, location, "")
	require.Equal(t, http.StatusOK, got.Code)
	assert.JSONEq(t, w.Body.String(), got.Body.String())
}

func TestCreateWithoutNameRejected(t *testing.T) {
	r, events := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/events", `{"event_date":"2025-03-01"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errBody map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.NotEmpty(t, errBody["description"])

	all, err := events.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCreateWithNonJSONBodyRejected(t *testing.T) {
	r, events := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/events", "name=Jazz+Night")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	all, err := events.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetMissingEvent(t *testing.T) {
	r, events := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/events/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var errBody map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.Equal(t, "Resource not found.", errBody["description"])

	all, err := events.List()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetNonNumericID(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodGet, "/events/abc", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteNotIdempotentInStatus(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(r, http.MethodPost, "/events", `{"name":"Jazz Night"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	location := w.Header().Get("Location")

	first := doRequest(r, http.MethodDelete, location, "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.JSONEq(t, `{"result": true}`, first.Body.String())

	second := doRequest(r, http.MethodDelete, location, "")
	assert.Equal(t, http.StatusNotFound, second.Code)
}

func TestListReturnsAllCreated(t *testing.T) {
	r, _ := newTestRouter(t)

	for i := 1; i <= 3; i++ {
		w := doRequest(r, http.MethodPost, "/events", fmt.Sprintf(`{"name":"Event %d"}`, i))
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(r, http.MethodGet, "/events", "")
	require.Equal(t, http.StatusOK, w.Code)

	var all []models.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 3)
	assert.Equal(t, "Event 1", all[0].Name)
	assert.Equal(t, "Event 3", all[2].Name)
}
