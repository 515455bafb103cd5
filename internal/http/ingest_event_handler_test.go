package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	colmocks "access-analytics/internal/collectors/mocks"
	"access-analytics/internal/models"
	"access-analytics/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestIngestEventHandler_Handle_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockCollector := colmocks.NewMockCollector(ctrl)
	handler := NewIngestEventHandler(mockCollector)

	body := `{
		"remoteAddr": "203.0.113.7",
		"sessionId": "s1",
		"path": "/pricing",
		"method": "GET",
		"statusCode": 200,
		"responseTimeMs": 42,
		"userAgent": "curl/8.0"
	}`
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte(body)))
	rr := httptest.NewRecorder()

	mockCollector.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		Do(func(_ any, raw *models.RawAccessEvent) {
			assert.Equal(t, "203.0.113.7", raw.RemoteAddr)
			assert.Equal(t, "s1", raw.SessionID)
			assert.Equal(t, "/pricing", raw.Path)
			assert.Equal(t, int64(42), raw.ResponseTimeMS)
		}).
		Return(nil)

	err := handler.Handle(rr, req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestIngestEventHandler_Handle_DefaultsFromRequest(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockCollector := colmocks.NewMockCollector(ctrl)
	handler := NewIngestEventHandler(mockCollector)

	body := `{"path": "/docs", "method": "GET", "statusCode": 200}`
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte(body)))
	req.Header.Set(headerForwardedFor, "198.51.100.4, 10.0.0.1")
	req.Header.Set("User-Agent", "Mozilla/5.0")
	rr := httptest.NewRecorder()

	mockCollector.EXPECT().
		Submit(gomock.Any(), gomock.Any()).
		Do(func(_ any, raw *models.RawAccessEvent) {
			assert.Equal(t, "198.51.100.4", raw.RemoteAddr)
			assert.Equal(t, "Mozilla/5.0", raw.UserAgent)
		}).
		Return(nil)

	err := handler.Handle(rr, req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestIngestEventHandler_Handle_MalformedBody(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockCollector := colmocks.NewMockCollector(ctrl)
	handler := NewIngestEventHandler(mockCollector)

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte(`{not json`)))
	rr := httptest.NewRecorder()

	err := handler.Handle(rr, req)

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, codeMalformedBody, svcErr.Code)
	assert.Equal(t, http.StatusBadRequest, svcErr.HttpStatusCode)
}

func TestIngestEventHandler_Handle_CollectorRejection(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockCollector := colmocks.NewMockCollector(ctrl)
	handler := NewIngestEventHandler(mockCollector)

	body := `{"remoteAddr": "203.0.113.7", "path": "/docs", "method": "GET", "statusCode": 200}`
	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte(body)))
	rr := httptest.NewRecorder()

	expectedErr := svcerrors.NewResourceExhaustedError("COL_2000", "event queue full", nil)
	mockCollector.EXPECT().Submit(gomock.Any(), gomock.Any()).Return(expectedErr)

	err := handler.Handle(rr, req)

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "COL_2000", svcErr.Code)
	// Status should not be set when error occurs
	assert.Equal(t, http.StatusOK, rr.Code)
}
