package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nutritrack/internal/auth"
	"nutritrack/internal/model"
	"nutritrack/internal/repository"
	repoMocks "nutritrack/internal/repository/mocks"
	"nutritrack/internal/storage"
	storeMocks "nutritrack/internal/storage/mocks"
)

var fixedNow = time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC)

func newTestUserService(users *repoMocks.MockUserRepository, meals *repoMocks.MockMealRepository, store *storeMocks.MockStorage) *userService {
	svc := NewUserService(users, meals, store, auth.NewTokenIssuer("test-secret", time.Hour)).(*userService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func ptr[T any](v T) *T { return &v }

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		in         RegisterInput
		setupMocks func(users *repoMocks.MockUserRepository)
		wantErr    error
	}{
		{
			name: "happy path lowercases email and hashes password",
			in:   RegisterInput{Username: "jane", Email: " Jane@Example.COM ", Password: "s3cret!"},
			setupMocks: func(users *repoMocks.MockUserRepository) {
				users.On("FindByEmail", ctx, "jane@example.com").Return(nil, repository.ErrNotFound)
				users.On("Create", ctx, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "jane@example.com" && u.Username == "jane" &&
						u.PasswordHash != "s3cret!" && auth.CheckPassword(u.PasswordHash, "s3cret!") &&
						u.CreatedAt.Equal(fixedNow)
				})).Return(&model.User{ID: primitive.NewObjectID(), Email: "jane@example.com"}, nil)
			},
		},
		{
			name: "existing user",
			in:   RegisterInput{Username: "jane", Email: "jane@example.com", Password: "x"},
			setupMocks: func(users *repoMocks.MockUserRepository) {
				users.On("FindByEmail", ctx, "jane@example.com").Return(&model.User{}, nil)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name: "lost insert race",
			in:   RegisterInput{Username: "jane", Email: "jane@example.com", Password: "x"},
			setupMocks: func(users *repoMocks.MockUserRepository) {
				users.On("FindByEmail", ctx, "jane@example.com").Return(nil, repository.ErrNotFound)
				users.On("Create", ctx, mock.Anything).Return(nil, repository.ErrDuplicate)
			},
			wantErr: ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(repoMocks.MockUserRepository)
			tt.setupMocks(users)

			u, err := newTestUserService(users, nil, nil).Register(ctx, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, u)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("s3cret!")
	require.NoError(t, err)
	stored := &model.User{ID: primitive.NewObjectID(), Email: "jane@example.com", PasswordHash: hash}

	t.Run("happy path", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByEmail", ctx, "jane@example.com").Return(stored, nil)

		res, err := newTestUserService(users, nil, nil).Login(ctx, "JANE@example.com", "s3cret!")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, stored, res.User)

		claims, err := auth.NewTokenIssuer("test-secret", time.Hour).Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, stored.ID.Hex(), claims.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByEmail", ctx, "jane@example.com").Return(stored, nil)

		_, err := newTestUserService(users, nil, nil).Login(ctx, "jane@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound)

		_, err := newTestUserService(users, nil, nil).Login(ctx, "ghost@example.com", "x")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("repository failure is not a credential error", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByEmail", ctx, "jane@example.com").Return(nil, errors.New("db down"))

		_, err := newTestUserService(users, nil, nil).Login(ctx, "jane@example.com", "x")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	base := func() *model.User {
		return &model.User{ID: id, Age: ptr(30), Gender: "male", ActivityLevel: "moderately active"}
	}

	tests := []struct {
		name        string
		update      model.ProfileUpdate
		setupMocks  func(users *repoMocks.MockUserRepository)
		wantChanged bool
		wantErr     error
	}{
		{
			name:   "derives bmi and tdee from the merged profile",
			update: model.ProfileUpdate{Weight: ptr(70.0), Height: ptr(175.0)},
			setupMocks: func(users *repoMocks.MockUserRepository) {
				users.On("FindByID", ctx, id).Return(base(), nil)
				users.On("Update", ctx, id, map[string]any{
					"weight":    70.0,
					"height":    175.0,
					"bmi":       22.9,
					"tdee":      2556.0,
					"updatedAt": fixedNow,
				}).Return(true, nil)
			},
			wantChanged: true,
		},
		{
			name:   "client supplied bmi and tdee are stored as given",
			update: model.ProfileUpdate{Weight: ptr(80.0), BMI: ptr(25.0), TDEE: ptr(2500.0)},
			setupMocks: func(users *repoMocks.MockUserRepository) {
				users.On("FindByID", ctx, id).Return(base(), nil)
				users.On("Update", ctx, id, map[string]any{
					"weight":    80.0,
					"bmi":       25.0,
					"tdee":      2500.0,
					"updatedAt": fixedNow,
				}).Return(true, nil)
			},
			wantChanged: true,
		},
		{
			name:   "incomplete profile skips tdee",
			update: model.ProfileUpdate{Goal: ptr("lose")},
			setupMocks: func(users *repoMocks.MockUserRepository) {
				users.On("FindByID", ctx, id).Return(base(), nil)
				users.On("Update", ctx, id, map[string]any{
					"goal":      "lose",
					"updatedAt": fixedNow,
				}).Return(true, nil)
			},
			wantChanged: true,
		},
		{
			name:   "same values make no write",
			update: model.ProfileUpdate{Age: ptr(30), Gender: ptr("male")},
			setupMocks: func(users *repoMocks.MockUserRepository) {
				users.On("FindByID", ctx, id).Return(base(), nil)
			},
		},
		{
			name:   "unknown user",
			update: model.ProfileUpdate{Age: ptr(31)},
			setupMocks: func(users *repoMocks.MockUserRepository) {
				users.On("FindByID", ctx, id).Return(nil, repository.ErrNotFound)
			},
			wantErr: ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(repoMocks.MockUserRepository)
			tt.setupMocks(users)

			changed, err := newTestUserService(users, nil, nil).UpdateProfile(ctx, id.Hex(), tt.update)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantChanged, changed)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateBasicInfo(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	current := func() *model.User { return &model.User{ID: id, Email: "jane@example.com"} }

	t.Run("uploads image and updates fields", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		store := new(storeMocks.MockStorage)
		r := strings.NewReader("jpeg")

		users.On("FindByID", ctx, id).Return(current(), nil)
		users.On("FindByEmail", ctx, "new@example.com").Return(nil, repository.ErrNotFound)
		store.On("Put", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "profile/") && strings.HasSuffix(key, ".jpg")
		}), r, mock.Anything).Return(storage.ObjectInfo{}, nil)
		store.On("PublicURL", ctx, mock.Anything).Return("http://cdn.local/profile/a.jpg", nil)
		users.On("Update", ctx, id, map[string]any{
			"fullname":  "Jane Doe",
			"email":     "new@example.com",
			"image":     "http://cdn.local/profile/a.jpg",
			"updatedAt": fixedNow,
		}).Return(true, nil)

		u, err := newTestUserService(users, nil, store).UpdateBasicInfo(ctx, BasicInfoInput{
			UserID:   id.Hex(),
			Fullname: " Jane Doe ",
			Email:    "New@example.com",
			Image:    &Upload{Reader: r, Filename: "me.jpg", ContentType: "image/jpeg", Size: 4},
		})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", u.Email)
		assert.Equal(t, "http://cdn.local/profile/a.jpg", u.Image)
		users.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("email used by another user", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByID", ctx, id).Return(current(), nil)
		users.On("FindByEmail", ctx, "taken@example.com").Return(&model.User{ID: primitive.NewObjectID()}, nil)

		_, err := newTestUserService(users, nil, nil).UpdateBasicInfo(ctx, BasicInfoInput{UserID: id.Hex(), Email: "taken@example.com"})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("failed write removes uploaded image", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		store := new(storeMocks.MockStorage)

		users.On("FindByID", ctx, id).Return(current(), nil)
		store.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
		store.On("PublicURL", ctx, mock.Anything).Return("u", nil)
		users.On("Update", ctx, id, mock.Anything).Return(false, errors.New("db fail"))
		store.On("Delete", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "profile/")
		})).Return(nil)

		_, err := newTestUserService(users, nil, store).UpdateBasicInfo(ctx, BasicInfoInput{
			UserID: id.Hex(),
			Image:  &Upload{Reader: strings.NewReader("x"), Filename: "me.png"},
		})
		assert.ErrorContains(t, err, "db fail")
		store.AssertExpectations(t)
	})

	t.Run("nothing to change", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByID", ctx, id).Return(current(), nil)

		u, err := newTestUserService(users, nil, nil).UpdateBasicInfo(ctx, BasicInfoInput{UserID: id.Hex(), Email: "jane@example.com"})
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", u.Email)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("nil image reader", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByID", ctx, id).Return(current(), nil)

		_, err := newTestUserService(users, nil, nil).UpdateBasicInfo(ctx, BasicInfoInput{
			UserID: id.Hex(),
			Image:  &Upload{Reader: io.Reader(nil), Filename: "me.png"},
		})
		assert.ErrorIs(t, err, ErrReaderNil)
	})
}

func TestUserService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	hash, err := auth.HashPassword("old-pass")
	require.NoError(t, err)

	t.Run("happy path", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByID", ctx, id).Return(&model.User{ID: id, PasswordHash: hash}, nil)
		users.On("Update", ctx, id, mock.MatchedBy(func(set map[string]any) bool {
			h, ok := set["password"].(string)
			return ok && auth.CheckPassword(h, "new-pass") && set["updatedAt"] == fixedNow
		})).Return(true, nil)

		err := newTestUserService(users, nil, nil).UpdatePassword(ctx, PasswordChange{UserID: id.Hex(), Current: "old-pass", New: "new-pass"})
		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("wrong current password", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		users.On("FindByID", ctx, id).Return(&model.User{ID: id, PasswordHash: hash}, nil)

		err := newTestUserService(users, nil, nil).UpdatePassword(ctx, PasswordChange{UserID: id.Hex(), Current: "guess", New: "new-pass"})
		assert.ErrorIs(t, err, ErrIncorrectPassword)
	})
}

func TestUserService_Delete(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("removes user and meals", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		meals := new(repoMocks.MockMealRepository)
		users.On("Delete", ctx, id).Return(nil)
		meals.On("DeleteByUser", ctx, id).Return(int64(3), nil)

		require.NoError(t, newTestUserService(users, meals, nil).Delete(ctx, id.Hex()))
		users.AssertExpectations(t)
		meals.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		meals := new(repoMocks.MockMealRepository)
		meals.On("DeleteByUser", ctx, id).Return(int64(0), nil)
		users.On("Delete", ctx, id).Return(repository.ErrNotFound)

		err := newTestUserService(users, meals, nil).Delete(ctx, id.Hex())
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("meal deletion failure keeps the user", func(t *testing.T) {
		users := new(repoMocks.MockUserRepository)
		meals := new(repoMocks.MockMealRepository)
		meals.On("DeleteByUser", ctx, id).Return(int64(0), errors.New("mongo down"))

		err := newTestUserService(users, meals, nil).Delete(ctx, id.Hex())
		assert.ErrorContains(t, err, "delete meals")
		users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		meals.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		err := newTestUserService(nil, nil, nil).Delete(ctx, "123")
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}
