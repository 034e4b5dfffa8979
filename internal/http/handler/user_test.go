package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutritrack/internal/model"
	"nutritrack/internal/service"
	serviceMocks "nutritrack/internal/service/mocks"
)

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		setupMocks func(m *serviceMocks.MockUserService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "created",
			body: map[string]string{"username": "jane", "email": "jane@example.com", "password": "secret1"},
			setupMocks: func(m *serviceMocks.MockUserService) {
				m.On("Register", mock.Anything, service.RegisterInput{Username: "jane", Email: "jane@example.com", Password: "secret1"}).
					Return(&model.User{ID: primitive.NewObjectID(), Username: "jane", PasswordHash: "hash"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "email taken",
			body: map[string]string{"username": "jane", "email": "jane@example.com", "password": "secret1"},
			setupMocks: func(m *serviceMocks.MockUserService) {
				m.On("Register", mock.Anything, mock.Anything).Return(nil, service.ErrEmailTaken)
			},
			wantStatus: http.StatusConflict,
			wantCode:   "ALREADY_EXISTS",
		},
		{
			name:       "invalid email",
			body:       map[string]string{"username": "jane", "email": "jane", "password": "secret1"},
			setupMocks: func(m *serviceMocks.MockUserService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(serviceMocks.MockUserService)
			tt.setupMocks(mockSvc)
			app := fiber.New()
			app.Post("/register", Register(mockSvc))

			resp, _ := app.Test(jsonRequest(http.MethodPost, "/register", tt.body))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp).Error.Code)
			} else {
				var body struct {
					User map[string]any `json:"user"`
				}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, "jane", body.User["username"])
				assert.NotContains(t, body.User, "password")
			}
			mockSvc.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Post("/login", Login(mockSvc))

	t.Run("token", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, "jane@example.com", "secret1").
			Return(&service.LoginResult{Token: "jwt", ExpiresAt: time.Now().Add(time.Hour), User: &model.User{Username: "jane"}}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/login", map[string]string{"email": "jane@example.com", "password": "secret1"}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "jwt", body["token"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		mockSvc.On("Login", mock.Anything, "jane@example.com", "wrong").Return(nil, service.ErrInvalidCredentials).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/login", map[string]string{"email": "jane@example.com", "password": "wrong"}))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "INVALID_CREDENTIALS", decodeError(t, resp).Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := jsonRequest(http.MethodPost, "/login", nil)
		resp, _ := app.Test(req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
	mockSvc.AssertExpectations(t)
}

func TestGetUser(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Get("/api/user/:id", GetUser(mockSvc))

	id := primitive.NewObjectID()
	mockSvc.On("Get", mock.Anything, id.Hex()).Return(&model.User{ID: id, Username: "jane"}, nil).Once()
	resp, _ := app.Test(jsonRequest(http.MethodGet, "/api/user/"+id.Hex(), nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	mockSvc.On("Get", mock.Anything, "missing").Return(nil, service.ErrInvalidID).Once()
	resp, _ = app.Test(jsonRequest(http.MethodGet, "/api/user/missing", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	mockSvc.AssertExpectations(t)
}

func TestUpdateUser(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	t.Run("passes only supplied fields", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockUserService)
		mockSvc.On("UpdateProfile", mock.Anything, id, mock.MatchedBy(func(p model.ProfileUpdate) bool {
			return p.Age != nil && *p.Age == 30 && p.Weight != nil && *p.Weight == 70.5 &&
				p.Height == nil && p.Goal != nil && *p.Goal == "lose" && p.TDEE == nil
		})).Return(true, nil).Once()

		app := fiber.New()
		app.Put("/api/update_user", UpdateUser(mockSvc))
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/api/update_user", map[string]any{
			"_id": id, "age": 30, "weight": 70.5, "goal": "lose",
		}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "User updated successfully.", body["message"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("unchanged", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockUserService)
		mockSvc.On("UpdateProfile", mock.Anything, id, mock.Anything).Return(false, nil).Once()

		app := fiber.New()
		app.Put("/api/update_user", UpdateUser(mockSvc))
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/api/update_user", map[string]any{"_id": id, "age": 30}))

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "No changes were made to the user record.", body["message"])
	})

	t.Run("invalid id", func(t *testing.T) {
		app := fiber.New()
		app.Put("/api/update_user", UpdateUser(new(serviceMocks.MockUserService)))
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/api/update_user", map[string]any{"_id": "123"}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		assert.Contains(t, body.Error.Message, "_id")
	})
}

func TestUpdateBasicInfo(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	t.Run("with image", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockUserService)
		mockSvc.On("UpdateBasicInfo", mock.Anything, mock.MatchedBy(func(in service.BasicInfoInput) bool {
			return in.UserID == id && in.Fullname == "Jane Doe" && in.Image != nil &&
				in.Image.Filename == "me.jpg" && in.Image.Size == 4
		})).Return(&model.User{Fullname: "Jane Doe", Image: "https://cdn.local/profile/me.jpg"}, nil).Once()

		app := fiber.New()
		app.Post("/api/update_basic_info", UpdateBasicInfo(mockSvc))
		req := multipartRequest(t, "/api/update_basic_info",
			map[string]string{"userID": id, "fullname": "Jane Doe", "email": "jane@example.com"},
			"image", "me.jpg", []byte("jpeg"))
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("without image", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockUserService)
		mockSvc.On("UpdateBasicInfo", mock.Anything, mock.MatchedBy(func(in service.BasicInfoInput) bool {
			return in.Image == nil
		})).Return(nil, service.ErrEmailTaken).Once()

		app := fiber.New()
		app.Post("/api/update_basic_info", UpdateBasicInfo(mockSvc))
		req := multipartRequest(t, "/api/update_basic_info",
			map[string]string{"userID": id, "fullname": "Jane Doe", "email": "taken@example.com"}, "", "", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		app := fiber.New()
		app.Post("/api/update_basic_info", UpdateBasicInfo(new(serviceMocks.MockUserService)))
		req := multipartRequest(t, "/api/update_basic_info", map[string]string{"userID": id}, "", "", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, resp).Error.Code)
	})
}

func TestUpdatePassword(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Put("/api/update_password", UpdatePassword(mockSvc))

	mockSvc.On("UpdatePassword", mock.Anything, service.PasswordChange{UserID: id, Current: "old-pass", New: "new-pass"}).
		Return(service.ErrIncorrectPassword).Once()

	resp, _ := app.Test(jsonRequest(http.MethodPut, "/api/update_password", map[string]string{
		"userID": id, "currentPassword": "old-pass", "newPassword": "new-pass",
	}))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INCORRECT_PASSWORD", decodeError(t, resp).Error.Code)
	mockSvc.AssertExpectations(t)
}

func TestDeleteUser(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Delete("/api/delete_user", DeleteUser(mockSvc))

	mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()
	resp, _ := app.Test(jsonRequest(http.MethodDelete, "/api/delete_user", map[string]string{"userID": id}))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	mockSvc.On("Delete", mock.Anything, id).Return(errors.New("mongo down")).Once()
	resp, _ = app.Test(jsonRequest(http.MethodDelete, "/api/delete_user", map[string]string{"userID": id}))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	mockSvc.AssertExpectations(t)
}
