package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	autherror "github.com/vanjararamdhan/student-crud-api/internal/errors"
	"github.com/vanjararamdhan/student-crud-api/internal/student/dto"
	"github.com/vanjararamdhan/student-crud-api/internal/student/service"
	"github.com/vanjararamdhan/student-crud-api/pkg/constant"
)

type StudentHandler struct {
	studentService *service.StudentService
	tokenService   service.TokenGenerator
}

func NewStudentHandler(studentService *service.StudentService, tokenService service.TokenGenerator) *StudentHandler {
	return &StudentHandler{studentService: studentService, tokenService: tokenService}
}

func (h *StudentHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, autherror.ErrInvalidBody, 102, "Error while creating student: ")
	}

	student, err := h.studentService.Register(c.Context(), input)
	if err != nil {
		return fail(c, err, 102, "Error while creating student: ")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.Response{
		Success: true,
		Code:    200,
		Message: "Student registered successfully.",
		Data:    dto.NewStudentOutput(student),
	})
}

func (h *StudentHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, autherror.ErrInvalidBody, 102, "Error while logging in: ")
	}

	tokens, err := h.studentService.Login(c.Context(), input)
	if err != nil {
		return fail(c, err, 102, "Error while logging in: ")
	}

	return c.Status(fiber.StatusOK).JSON(dto.LoginResponse{
		Success:      true,
		Code:         200,
		Message:      "Login successful.",
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

func (h *StudentHandler) List(c *fiber.Ctx) error {
	page, okPage := queryInt(c, "page", constant.DefaultPage)
	limit, okLimit := queryInt(c, "limit", constant.DefaultLimit)
	if !okPage || !okLimit {
		return fail(c, autherror.ErrInvalidPagination, 109, "")
	}

	list, err := h.studentService.List(c.Context(), page, limit)
	if err != nil {
		return fail(c, err, 109, "Error fetching students: ")
	}

	return c.Status(fiber.StatusOK).JSON(dto.Response{
		Success: true,
		Code:    200,
		Message: "Fetched students data successfully.",
		Data:    list,
	})
}

func (h *StudentHandler) UpdateProfile(c *fiber.Ctx) error {
	var input dto.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, autherror.ErrInvalidBody, 500, "Error updating student profile: ")
	}

	studentID, _ := c.Locals(StudentIDKey).(string)

	student, err := h.studentService.UpdateProfile(c.Context(), studentID, input)
	if err != nil {
		return fail(c, err, 500, "Error updating student profile: ")
	}

	return c.Status(fiber.StatusOK).JSON(dto.Response{
		Success: true,
		Code:    200,
		Message: "Student profile updated successfully",
		Data:    dto.NewStudentOutput(student),
	})
}

func (h *StudentHandler) Refresh(c *fiber.Ctx) error {
	var input dto.RefreshInput
	if err := c.BodyParser(&input); err != nil {
		return fail(c, autherror.ErrRefreshTokenRequired, 106, "")
	}

	accessToken, err := h.studentService.Refresh(input)
	if err != nil {
		return fail(c, err, 106, "Invalid or expired refresh token. Error: ")
	}

	return c.Status(fiber.StatusOK).JSON(dto.RefreshResponse{
		Success:     true,
		Code:        200,
		Message:     "Access token refreshed successfully.",
		AccessToken: accessToken,
	})
}

// fail converts a service error into the response envelope. Known failures
// carry their own status and code; anything else is a 500 with the
// endpoint's fallback code and the underlying message surfaced.
func fail(c *fiber.Ctx, err error, fallbackCode int, prefix string) error {
	var apiErr *autherror.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Status).JSON(dto.Response{
			Success: false,
			Code:    apiErr.Code,
			Message: apiErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(dto.Response{
		Success: false,
		Code:    fallbackCode,
		Message: prefix + err.Error(),
	})
}

func queryInt(c *fiber.Ctx, key string, defaultVal int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return defaultVal, true
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return val, true
}
