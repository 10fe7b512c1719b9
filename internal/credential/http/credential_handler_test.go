package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	credentialDomain "github.com/allisson/cardguard/internal/credential/domain"
	"github.com/allisson/cardguard/internal/credential/http/dto"
	"github.com/allisson/cardguard/internal/credential/usecase/mocks"
	apperrors "github.com/allisson/cardguard/internal/errors"
	"github.com/allisson/cardguard/internal/testutil"
)

// setupTestRouter wires a handler with a mocked store into a gin engine.
func setupTestRouter(t *testing.T) (*gin.Engine, *mocks.MockCredentialStore) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	store := &mocks.MockCredentialStore{}
	t.Cleanup(func() { store.AssertExpectations(t) })

	handler := NewCredentialHandler(store, testutil.DiscardLogger())

	router := gin.New()
	router.POST("/v1/cards", handler.RegisterCardHandler)
	router.GET("/v1/cards", handler.ListCardsHandler)
	router.DELETE("/v1/cards/:cardID", handler.UnregisterCardHandler)
	router.PUT("/v1/pin", handler.SetPinHandler)
	router.DELETE("/v1/pin", handler.DisablePinHandler)
	router.GET("/v1/pin", handler.PinStatusHandler)

	return router, store
}

func doRequest(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCredentialHandler_RegisterCard(t *testing.T) {
	t.Run("Success_NewCard", func(t *testing.T) {
		router, store := setupTestRouter(t)

		store.On("RegisterCard", mock.Anything, "04A1B2C3", "Office").Return(true, nil).Once()

		w := doRequest(router, http.MethodPost, "/v1/cards", dto.RegisterCardRequest{CardID: "04A1B2C3", Name: "Office"})

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"registered":true}`, w.Body.String())
	})

	t.Run("Success_AlreadyRegistered", func(t *testing.T) {
		router, store := setupTestRouter(t)

		store.On("RegisterCard", mock.Anything, "04A1B2C3", "").Return(false, nil).Once()

		w := doRequest(router, http.MethodPost, "/v1/cards", dto.RegisterCardRequest{CardID: "04A1B2C3"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"registered":false}`, w.Body.String())
	})

	t.Run("Error_BlankCardID", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := doRequest(router, http.MethodPost, "/v1/cards", dto.RegisterCardRequest{CardID: "  "})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MalformedJSON", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/cards", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_Storage", func(t *testing.T) {
		router, store := setupTestRouter(t)

		storageErr := apperrors.Storage(errors.New("read-only file system"), "failed to save cards")
		store.On("RegisterCard", mock.Anything, "04A1B2C3", "").Return(true, storageErr).Once()

		w := doRequest(router, http.MethodPost, "/v1/cards", dto.RegisterCardRequest{CardID: "04A1B2C3"})

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestCredentialHandler_ListCards(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, store := setupTestRouter(t)

		registeredAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		store.On("ListCards", mock.Anything).Return([]*credentialDomain.Card{
			{ID: "C1", Name: "Card 1", RegisteredAt: registeredAt},
			{ID: "C2", Name: "Card 2", RegisteredAt: registeredAt},
			{ID: "C3", Name: "Card 3", RegisteredAt: registeredAt},
		}, nil).Once()

		w := doRequest(router, http.MethodGet, "/v1/cards?offset=1&limit=1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		var response dto.ListCardsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, "C2", response.Data[0].CardID)
	})

	t.Run("Error_InvalidLimit", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := doRequest(router, http.MethodGet, "/v1/cards?limit=0", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestCredentialHandler_UnregisterCard(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, store := setupTestRouter(t)

		store.On("UnregisterCard", mock.Anything, "C1").Return(true, nil).Once()

		w := doRequest(router, http.MethodDelete, "/v1/cards/C1", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Error_NotRegistered", func(t *testing.T) {
		router, store := setupTestRouter(t)

		store.On("UnregisterCard", mock.Anything, "C9").Return(false, nil).Once()

		w := doRequest(router, http.MethodDelete, "/v1/cards/C9", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCredentialHandler_Pin(t *testing.T) {
	t.Run("SetPin_Success", func(t *testing.T) {
		router, store := setupTestRouter(t)

		store.On("SetPin", mock.Anything, "1234").Return(nil).Once()

		w := doRequest(router, http.MethodPut, "/v1/pin", dto.SetPinRequest{Pin: "1234"})

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("SetPin_TooShort", func(t *testing.T) {
		router, store := setupTestRouter(t)

		store.On("SetPin", mock.Anything, "12").Return(credentialDomain.ErrInvalidPin).Once()

		w := doRequest(router, http.MethodPut, "/v1/pin", dto.SetPinRequest{Pin: "12"})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("SetPin_Missing", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := doRequest(router, http.MethodPut, "/v1/pin", map[string]string{})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("DisablePin_Success", func(t *testing.T) {
		router, store := setupTestRouter(t)

		store.On("DisablePin", mock.Anything).Return(nil).Once()

		w := doRequest(router, http.MethodDelete, "/v1/pin", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("PinStatus_Success", func(t *testing.T) {
		router, store := setupTestRouter(t)

		store.On("HasPin", mock.Anything).Return(true, nil).Once()

		w := doRequest(router, http.MethodGet, "/v1/pin", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"enabled":true}`, w.Body.String())
	})
}
