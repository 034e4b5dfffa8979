package handler

import (
	"github.com/gofiber/fiber/v2"

	"nutritrack/internal/model"
	"nutritrack/internal/service"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// profileRequest mirrors model.ProfileUpdate; omitted fields stay untouched.
type profileRequest struct {
	ID            string   `json:"_id" validate:"required,objectid"`
	Age           *int     `json:"age" validate:"omitempty,gte=1,lte=120"`
	Weight        *float64 `json:"weight" validate:"omitempty,gt=0,lte=500"`
	Height        *float64 `json:"height" validate:"omitempty,gt=0,lte=300"`
	Gender        *string  `json:"gender" validate:"omitempty,max=20"`
	ActivityLevel *string  `json:"activityLevel" validate:"omitempty,max=40"`
	Goal          *string  `json:"goal" validate:"omitempty,max=40"`
	BMI           *float64 `json:"bmi" validate:"omitempty,gt=0"`
	TDEE          *float64 `json:"tdee" validate:"omitempty,gt=0"`
}

type basicInfoRequest struct {
	UserID   string `form:"userID" validate:"required,objectid"`
	Fullname string `form:"fullname" validate:"required,max=100"`
	Email    string `form:"email" validate:"required,email"`
}

type passwordRequest struct {
	UserID          string `json:"userID" validate:"required,objectid"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

type deleteUserRequest struct {
	UserID string `json:"userID" validate:"required,objectid"`
}

// Register creates an account.
func Register(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := bind(c, &req); err != nil {
			return writeBindError(c, err)
		}
		u, err := svc.Register(c.UserContext(), service.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created successfully", "user": u})
	}
}

// Login exchanges credentials for a bearer token.
func Login(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := bind(c, &req); err != nil {
			return writeBindError(c, err)
		}
		res, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"user": u})
	}
}

// UpdateUser stores body profile fields; BMI and TDEE are derived when absent.
func UpdateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req profileRequest
		if err := bind(c, &req); err != nil {
			return writeBindError(c, err)
		}
		changed, err := svc.UpdateProfile(c.UserContext(), req.ID, model.ProfileUpdate{
			Age:           req.Age,
			Weight:        req.Weight,
			Height:        req.Height,
			Gender:        req.Gender,
			ActivityLevel: req.ActivityLevel,
			Goal:          req.Goal,
			BMI:           req.BMI,
			TDEE:          req.TDEE,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		if !changed {
			return c.JSON(fiber.Map{"message": "No changes were made to the user record."})
		}
		return c.JSON(fiber.Map{"message": "User updated successfully."})
	}
}

// UpdateBasicInfo handles multipart fields userID, fullname, email and an optional image.
func UpdateBasicInfo(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req basicInfoRequest
		if err := bind(c, &req); err != nil {
			return writeBindError(c, err)
		}

		in := service.BasicInfoInput{UserID: req.UserID, Fullname: req.Fullname, Email: req.Email}
		if fh, err := c.FormFile("image"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			defer f.Close()
			in.Image = &service.Upload{
				Reader:      f,
				Filename:    fh.Filename,
				ContentType: contentTypeOf(fh),
				Size:        fh.Size,
			}
		}

		u, err := svc.UpdateBasicInfo(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "User information updated successfully", "user": u})
	}
}

func UpdatePassword(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req passwordRequest
		if err := bind(c, &req); err != nil {
			return writeBindError(c, err)
		}
		err := svc.UpdatePassword(c.UserContext(), service.PasswordChange{
			UserID:  req.UserID,
			Current: req.CurrentPassword,
			New:     req.NewPassword,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Password updated successfully."})
	}
}

// DeleteUser removes the account and all of its meals.
func DeleteUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req deleteUserRequest
		if err := bind(c, &req); err != nil {
			return writeBindError(c, err)
		}
		if err := svc.Delete(c.UserContext(), req.UserID); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "User deleted successfully."})
	}
}
