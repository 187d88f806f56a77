package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"place-resolver/internal/models"
	"place-resolver/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockResolveService is a mock implementation of the ResolveService interface
type MockResolveService struct {
	mock.Mock
}

func (m *MockResolveService) Resolve(ctx context.Context, query string) ([]models.ResolvedPlace, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.ResolvedPlace), args.Error(1)
}

var bandra = models.ResolvedPlace{
	Latitude:      "19.0596",
	Longitude:     "72.8347",
	LocationName:  "Candies Cafe",
	Adm0:          "India",
	Adm1:          "Maharashtra",
	StreetAddress: "Linking Road",
	Locality:      "Bandra West",
	Landmark:      "Near Elco Market",
}

func TestGeoCodeHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		path           string
		param          string
		query          string
		mockPlaces     []models.ResolvedPlace
		mockError      error
		expectedStatus int
		expectedPlaces []models.ResolvedPlace
		expectedError  string
	}{
		{
			name:           "missing query parameter",
			path:           "/geocode",
			param:          "q",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "missing required query parameter 'q'",
		},
		{
			name:           "missing text_input parameter",
			path:           "/get_geocoding",
			param:          "text_input",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "missing required query parameter 'text_input'",
		},
		{
			name:           "successful resolution with results",
			path:           "/get_geocoding",
			param:          "text_input",
			query:          "candies bandra",
			mockPlaces:     []models.ResolvedPlace{bandra},
			expectedStatus: http.StatusOK,
			expectedPlaces: []models.ResolvedPlace{bandra},
		},
		{
			name:           "successful resolution with no results",
			path:           "/geocode",
			param:          "q",
			query:          "nonexistent place",
			mockPlaces:     []models.ResolvedPlace{},
			expectedStatus: http.StatusOK,
			expectedPlaces: []models.ResolvedPlace{},
		},
		{
			name:           "invalid input",
			path:           "/geocode",
			param:          "q",
			query:          "   ",
			mockError:      fmt.Errorf("%w: query is empty", service.ErrInvalidInput),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "service: invalid input: query is empty",
		},
		{
			name:           "resolution failure",
			path:           "/get_geocoding",
			param:          "text_input",
			query:          "candies bandra",
			mockError:      &service.ResolutionError{Cause: assert.AnError},
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			mockSvc := new(MockResolveService)
			handler := NewGeoCodeHandler(mockSvc)

			if tt.query != "" {
				mockSvc.On("Resolve", mock.Anything, tt.query).Return(tt.mockPlaces, tt.mockError)
			}

			router := gin.New()
			router.GET("/geocode", handler.GeoCode)
			router.GET("/get_geocoding", handler.GetGeocoding)

			// Create request
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.query != "" {
				q := req.URL.Query()
				q.Add(tt.param, tt.query)
				req.URL.RawQuery = q.Encode()
			}
			w := httptest.NewRecorder()

			// Execute
			router.ServeHTTP(w, req)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedError, body["error"])
			} else {
				var places []models.ResolvedPlace
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &places))
				assert.Equal(t, tt.expectedPlaces, places)
			}

			mockSvc.AssertExpectations(t)
		})
	}
}

func TestGeoCodeHandler_ResponseShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockSvc := new(MockResolveService)
	mockSvc.On("Resolve", mock.Anything, "19.0596,72.8347").Return([]models.ResolvedPlace{bandra}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/get_geocoding?text_input=19.0596,72.8347", nil)

	NewGeoCodeHandler(mockSvc).GetGeocoding(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{
		"latitude": "19.0596",
		"longitude": "72.8347",
		"location_name": "Candies Cafe",
		"adm0": "India",
		"adm1": "Maharashtra",
		"adm2": "",
		"adm3": "",
		"adm4": "",
		"adm5": "",
		"street_address": "Linking Road",
		"locality": "Bandra West",
		"landmark": "Near Elco Market"
	}]`, w.Body.String())
}
