package handler

import (
	"github.com/gofiber/fiber/v2"

	"nutritrack/internal/model"
	"nutritrack/internal/service"
)

type supportRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       *string `json:"phone" validate:"omitempty,max=30"`
	InquiryType string  `json:"inquiryType" validate:"omitempty,inquirytype"`
	Priority    string  `json:"priority" validate:"omitempty,priority"`
	Subject     string  `json:"subject" validate:"required,min=5,max=200"`
	Message     string  `json:"message" validate:"required,min=20,max=5000"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,supportstatus"`
}

type supportQuery struct {
	Status      string `query:"status" validate:"omitempty,supportstatus"`
	Priority    string `query:"priority" validate:"omitempty,priority"`
	InquiryType string `query:"inquiryType" validate:"omitempty,inquirytype"`
}

// SubmitSupportMessage opens a ticket.
func SubmitSupportMessage(svc service.SupportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req supportRequest
		if err := bind(c, &req); err != nil {
			return writeBindError(c, err)
		}
		msg, err := svc.Submit(c.UserContext(), service.SubmitInput{
			Name:        req.Name,
			Email:       req.Email,
			Phone:       req.Phone,
			InquiryType: req.InquiryType,
			Priority:    req.Priority,
			Subject:     req.Subject,
			Message:     req.Message,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":  "Support request submitted successfully",
			"ticketId": msg.ID.Hex(),
		})
	}
}

// ListSupportMessages filters by status, priority and inquiryType, newest first.
func ListSupportMessages(svc service.SupportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q supportQuery
		if err := c.QueryParser(&q); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_QUERY", "invalid query")
		}
		if err := validate.Validate(&q); err != nil {
			return writeValidationError(c, err)
		}
		page, ok := queryInt(c, "page", 1)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		limit, ok := queryInt(c, "limit", 0)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}

		res, err := svc.List(c.UserContext(), model.SupportFilter{
			Status:      q.Status,
			Priority:    q.Priority,
			InquiryType: q.InquiryType,
		}, page, limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"messages": res.Messages,
			"pagination": fiber.Map{
				"page":  res.Page,
				"limit": res.Limit,
				"total": res.Total,
				"pages": res.Pages,
			},
		})
	}
}

func GetSupportMessage(svc service.SupportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		msg, err := svc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": msg})
	}
}

// UpdateSupportStatus moves a ticket forward; backward moves answer 409.
func UpdateSupportStatus(svc service.SupportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req statusRequest
		if err := bind(c, &req); err != nil {
			return writeBindError(c, err)
		}
		if err := svc.UpdateStatus(c.UserContext(), c.Params("id"), model.SupportStatus(req.Status)); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Status updated successfully"})
	}
}

func SupportStats(svc service.SupportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(stats)
	}
}
