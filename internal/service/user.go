package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"nutritrack/internal/auth"
	"nutritrack/internal/model"
	"nutritrack/internal/nutrition"
	"nutritrack/internal/repository"
	"nutritrack/internal/storage"
)

// RegisterInput is the data needed to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// Upload is a file received from a multipart form.
type Upload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// BasicInfoInput updates the display data of a user. Empty strings and a nil
// Image leave the current values untouched.
type BasicInfoInput struct {
	UserID   string
	Fullname string
	Email    string
	Image    *Upload
}

// PasswordChange replaces the password after checking the current one.
type PasswordChange struct {
	UserID  string
	Current string
	New     string
}

// UserService defines the account use cases.
type UserService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Get(ctx context.Context, id string) (*model.User, error)

	// UpdateProfile stores the supplied body fields and reports whether the
	// document changed. BMI and TDEE are derived when the request does not
	// carry them and the merged profile is complete enough.
	UpdateProfile(ctx context.Context, id string, p model.ProfileUpdate) (bool, error)

	// UpdateBasicInfo uploads the optional profile image before writing the
	// document and removes it again when the write fails.
	UpdateBasicInfo(ctx context.Context, in BasicInfoInput) (*model.User, error)

	UpdatePassword(ctx context.Context, in PasswordChange) error

	// Delete removes the user and every meal document they own.
	Delete(ctx context.Context, id string) error
}

type userService struct {
	users  repository.UserRepository
	meals  repository.MealRepository
	store  storage.Storage
	tokens *auth.TokenIssuer
	now    func() time.Time
}

// NewUserService constructs a new UserService.
func NewUserService(users repository.UserRepository, meals repository.MealRepository, store storage.Storage, tokens *auth.TokenIssuer) UserService {
	return &userService{users: users, meals: meals, store: store, tokens: tokens, now: time.Now}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := normalizeEmail(in.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	u, err := s.users.Create(ctx, &model.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.tokens.Issue(u.ID.Hex(), u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// setPtr records next under key when it differs from *cur and moves *cur to it.
func setPtr[T comparable](set map[string]any, key string, cur **T, next *T) {
	if next == nil {
		return
	}
	if *cur != nil && **cur == *next {
		return
	}
	v := *next
	set[key] = v
	*cur = &v
}

func setString(set map[string]any, key string, cur *string, next *string) {
	if next == nil || *cur == *next {
		return
	}
	set[key] = *next
	*cur = *next
}

func (s *userService) UpdateProfile(ctx context.Context, id string, p model.ProfileUpdate) (bool, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	set := map[string]any{}
	setPtr(set, "age", &u.Age, p.Age)
	setPtr(set, "weight", &u.Weight, p.Weight)
	setPtr(set, "height", &u.Height, p.Height)
	setString(set, "gender", &u.Gender, p.Gender)
	setString(set, "activityLevel", &u.ActivityLevel, p.ActivityLevel)
	setString(set, "goal", &u.Goal, p.Goal)
	setPtr(set, "bmi", &u.BMI, p.BMI)
	setPtr(set, "tdee", &u.TDEE, p.TDEE)

	bodyChanged := p.Weight != nil || p.Height != nil
	if p.BMI == nil && bodyChanged && u.Weight != nil && u.Height != nil {
		if bmi, err := nutrition.BMI(*u.Height, *u.Weight); err == nil {
			setPtr(set, "bmi", &u.BMI, &bmi)
		}
	}
	energyChanged := bodyChanged || p.Age != nil || p.Gender != nil || p.ActivityLevel != nil
	if p.TDEE == nil && energyChanged {
		if prof, ok := profileOf(u); ok {
			if tdee, err := nutrition.TDEE(prof); err == nil {
				setPtr(set, "tdee", &u.TDEE, &tdee)
			}
		}
	}

	if len(set) == 0 {
		return false, nil
	}
	set["updatedAt"] = s.now().UTC()

	changed, err := s.users.Update(ctx, u.ID, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("update user: %w", err)
	}
	return changed, nil
}

// profileOf reports false when a field needed for energy estimates is missing.
func profileOf(u *model.User) (nutrition.Profile, bool) {
	if u.Age == nil || u.Weight == nil || u.Height == nil || u.Gender == "" {
		return nutrition.Profile{}, false
	}
	return nutrition.Profile{
		Age:           *u.Age,
		WeightKg:      *u.Weight,
		HeightCm:      *u.Height,
		Gender:        u.Gender,
		ActivityLevel: u.ActivityLevel,
	}, true
}

func (s *userService) UpdateBasicInfo(ctx context.Context, in BasicInfoInput) (*model.User, error) {
	u, err := s.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	set := map[string]any{}
	if name := strings.TrimSpace(in.Fullname); name != "" {
		set["fullname"] = name
		u.Fullname = name
	}
	if email := normalizeEmail(in.Email); email != "" && email != u.Email {
		other, err := s.users.FindByEmail(ctx, email)
		switch {
		case err == nil && other.ID != u.ID:
			return nil, ErrEmailTaken
		case err != nil && !errors.Is(err, repository.ErrNotFound):
			return nil, fmt.Errorf("find user: %w", err)
		}
		set["email"] = email
		u.Email = email
	}

	var uploadedKey string
	if in.Image != nil {
		if in.Image.Reader == nil {
			return nil, ErrReaderNil
		}
		key := storage.NewObjectKey(storage.PrefixProfile, in.Image.Filename)
		if _, err := s.store.Put(ctx, key, in.Image.Reader, storage.PutObjectOptions{
			Size:        in.Image.Size,
			ContentType: in.Image.ContentType,
			Metadata:    map[string]string{"user-id": u.ID.Hex()},
		}); err != nil {
			return nil, fmt.Errorf("upload to storage: %w", err)
		}
		uploadedKey = key

		url, err := s.store.PublicURL(ctx, key)
		if err != nil {
			return nil, s.rollbackUpload(ctx, key, fmt.Errorf("image url: %w", err))
		}
		set["image"] = url
		u.Image = url
	}

	if len(set) == 0 {
		return u, nil
	}
	now := s.now().UTC()
	set["updatedAt"] = now

	if _, err := s.users.Update(ctx, u.ID, set); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			err = ErrEmailTaken
		} else if errors.Is(err, repository.ErrNotFound) {
			err = ErrUserNotFound
		}
		if uploadedKey != "" {
			return nil, s.rollbackUpload(ctx, uploadedKey, err)
		}
		return nil, err
	}
	u.UpdatedAt = now
	return u, nil
}

func (s *userService) rollbackUpload(ctx context.Context, key string, cause error) error {
	if delErr := s.store.Delete(ctx, key); delErr != nil {
		return fmt.Errorf("%w; rollback delete failed: %v", cause, delErr)
	}
	return cause
}

func (s *userService) UpdatePassword(ctx context.Context, in PasswordChange) error {
	u, err := s.Get(ctx, in.UserID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(u.PasswordHash, in.Current) {
		return ErrIncorrectPassword
	}

	hash, err := auth.HashPassword(in.New)
	if err != nil {
		return err
	}
	if _, err := s.users.Update(ctx, u.ID, map[string]any{
		"password":  hash,
		"updatedAt": s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *userService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	// Meals go first so a failure never leaves meals of a deleted user behind.
	n, err := s.meals.DeleteByUser(ctx, oid)
	if err != nil {
		return fmt.Errorf("delete meals: %w", err)
	}

	if err := s.users.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	slog.InfoContext(ctx, "user deleted", "user_id", id, "meals_deleted", n)
	return nil
}
