package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutritrack/internal/model"
	"nutritrack/internal/service"
	serviceMocks "nutritrack/internal/service/mocks"
)

func TestUserStatistics(t *testing.T) {
	uid := primitive.NewObjectID().Hex()
	mockSvc := new(serviceMocks.MockStatisticsService)
	app := fiber.New()
	app.Get("/api/statistics/:id", UserStatistics(mockSvc))

	mockSvc.On("ForUser", mock.Anything, uid, "Week").Return(&service.Statistics{Range: "Week", Meals: []model.Meal{}}, nil).Once()
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/statistics/"+uid, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	mockSvc.On("ForUser", mock.Anything, uid, "30 Days").Return(&service.Statistics{Range: "30 Days"}, nil).Once()
	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/api/statistics/"+uid+"?range=30%20Days", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var st service.Statistics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Equal(t, "30 Days", st.Range)

	mockSvc.AssertExpectations(t)
}
