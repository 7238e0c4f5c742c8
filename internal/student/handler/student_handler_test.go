package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vanjararamdhan/student-crud-api/internal/mocks"
	"github.com/vanjararamdhan/student-crud-api/internal/student/domain"
	"github.com/vanjararamdhan/student-crud-api/internal/student/dto"
	"github.com/vanjararamdhan/student-crud-api/internal/student/handler"
	"github.com/vanjararamdhan/student-crud-api/internal/student/service"
)

type testEnv struct {
	app    *fiber.App
	repo   *mocks.MockStudentRepository
	tokens *service.TokenService
	hasher *service.BcryptHasher
}

// newTestEnv wires the handler with a mocked repository and real token and
// bcrypt services, and mounts every route.
func newTestEnv(t *testing.T) *testEnv {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockStudentRepository(ctrl)
	tokens := service.NewTokenService("test-access-secret", "test-refresh-secret", 15, 10080)
	hasher := service.NewBcryptHasher()
	studentService := service.NewStudentService(mockRepo, tokens, hasher, zap.NewNop())
	h := handler.NewStudentHandler(studentService, tokens)

	app := fiber.New()
	handler.RegisterRoutes(app, h)

	return &testEnv{app: app, repo: mockRepo, tokens: tokens, hasher: hasher}
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(raw, &envelope))

	return envelope
}

func validRegisterPayload() dto.RegisterInput {
	return dto.RegisterInput{
		Name:     "Ram Dhan",
		Email:    "ram@example.com",
		Phone:    "9876543210",
		Address:  "Jaipur",
		DOB:      "2004-03-12",
		Subjects: []dto.Subject{{SubjectName: "Maths", Marks: 88}},
		Password: "secret1",
	}
}

func TestRegisterHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t)
		input := validRegisterPayload()

		env.repo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
		env.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		resp := postJSON(t, env.app, "/api/students/register", input)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, true, envelope["success"])
		assert.Equal(t, float64(200), envelope["code"])

		// The password hash never appears in the outward representation.
		data := envelope["data"].(map[string]any)
		assert.Equal(t, input.Email, data["email"])
		_, hasPassword := data["password"]
		assert.False(t, hasPassword)
		_, hasHash := data["password_hash"]
		assert.False(t, hasHash)
	})

	t.Run("malformed body", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodPost, "/api/students/register", bytes.NewReader([]byte("{")))
		req.Header.Set("Content-Type", "application/json")

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("short name", func(t *testing.T) {
		env := newTestEnv(t)
		input := validRegisterPayload()
		input.Name = "Ab"

		resp := postJSON(t, env.app, "/api/students/register", input)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, float64(110), envelope["code"])
	})

	t.Run("five character password", func(t *testing.T) {
		env := newTestEnv(t)
		input := validRegisterPayload()
		input.Password = "short"

		env.repo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)

		resp := postJSON(t, env.app, "/api/students/register", input)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, float64(112), envelope["code"])
	})

	t.Run("duplicate email", func(t *testing.T) {
		env := newTestEnv(t)
		input := validRegisterPayload()

		env.repo.EXPECT().GetByEmail(gomock.Any(), input.Email).
			Return(&domain.Student{ID: "existing", Email: input.Email}, nil)

		resp := postJSON(t, env.app, "/api/students/register", input)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, float64(101), envelope["code"])
	})

	t.Run("store failure", func(t *testing.T) {
		env := newTestEnv(t)
		input := validRegisterPayload()

		env.repo.EXPECT().GetByEmail(gomock.Any(), input.Email).Return(nil, nil)
		env.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		resp := postJSON(t, env.app, "/api/students/register", input)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, float64(102), envelope["code"])
		assert.Contains(t, envelope["message"], "connection reset")
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("success issues token pair", func(t *testing.T) {
		env := newTestEnv(t)

		hash, err := env.hasher.Hash("secret1")
		require.NoError(t, err)

		env.repo.EXPECT().GetByEmail(gomock.Any(), "ram@example.com").
			Return(&domain.Student{ID: "student-123", Email: "ram@example.com", PasswordHash: hash}, nil)

		resp := postJSON(t, env.app, "/api/students/login", dto.LoginInput{Email: "ram@example.com", Password: "secret1"})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, true, envelope["success"])
		assert.NotEmpty(t, envelope["accessToken"])
		assert.NotEmpty(t, envelope["refreshToken"])

		// The issued access token verifies back to the same student.
		claims, err := env.tokens.VerifyAccessToken(envelope["accessToken"].(string))
		require.NoError(t, err)
		assert.Equal(t, "student-123", claims.StudentID)
	})

	t.Run("unknown email", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(nil, nil)

		resp := postJSON(t, env.app, "/api/students/login", dto.LoginInput{Email: "ghost@example.com", Password: "secret1"})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, float64(113), envelope["code"])
	})

	t.Run("wrong password issues no tokens", func(t *testing.T) {
		env := newTestEnv(t)

		hash, err := env.hasher.Hash("secret1")
		require.NoError(t, err)

		env.repo.EXPECT().GetByEmail(gomock.Any(), "ram@example.com").
			Return(&domain.Student{ID: "student-123", Email: "ram@example.com", PasswordHash: hash}, nil)

		resp := postJSON(t, env.app, "/api/students/login", dto.LoginInput{Email: "ram@example.com", Password: "wrong"})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, float64(114), envelope["code"])
		assert.NotContains(t, envelope, "accessToken")
	})
}

func TestRefreshHandler(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		env := newTestEnv(t)

		resp := postJSON(t, env.app, "/api/students/refresh-token", dto.RefreshInput{})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, float64(105), envelope["code"])
	})

	t.Run("invalid token", func(t *testing.T) {
		env := newTestEnv(t)

		resp := postJSON(t, env.app, "/api/students/refresh-token", dto.RefreshInput{RefreshToken: "garbage"})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, float64(106), envelope["code"])
	})

	t.Run("valid refresh token mints a new access token", func(t *testing.T) {
		env := newTestEnv(t)

		_, refreshToken, err := env.tokens.Generate("student-123")
		require.NoError(t, err)

		resp := postJSON(t, env.app, "/api/students/refresh-token", dto.RefreshInput{RefreshToken: refreshToken})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		require.NotEmpty(t, envelope["accessToken"])

		claims, err := env.tokens.VerifyAccessToken(envelope["accessToken"].(string))
		require.NoError(t, err)
		assert.Equal(t, "student-123", claims.StudentID)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		env := newTestEnv(t)

		accessToken, _, err := env.tokens.Generate("student-123")
		require.NoError(t, err)

		resp := postJSON(t, env.app, "/api/students/refresh-token", dto.RefreshInput{RefreshToken: accessToken})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestListHandler(t *testing.T) {
	authHeader := func(t *testing.T, env *testEnv) string {
		token, err := env.tokens.GenerateAccess("student-123")
		require.NoError(t, err)
		return "Bearer " + token
	}

	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().List(gomock.Any(), 0, 10).
			Return([]domain.Student{{ID: "s1", Name: "Ram Dhan", Email: "ram@example.com"}}, nil)
		env.repo.EXPECT().Count(gomock.Any()).Return(1, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/students/", nil)
		req.Header.Set("Authorization", authHeader(t, env))

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		data := envelope["data"].(map[string]any)
		pagination := data["pagination"].(map[string]any)
		assert.Equal(t, float64(1), pagination["currentPage"])
		assert.Equal(t, float64(1), pagination["totalPages"])
		assert.Equal(t, float64(1), pagination["totalStudents"])
	})

	t.Run("bad pagination params", func(t *testing.T) {
		env := newTestEnv(t)

		req := httptest.NewRequest(http.MethodGet, "/api/students/?page=abc&limit=10", nil)
		req.Header.Set("Authorization", authHeader(t, env))

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, float64(107), envelope["code"])
	})

	t.Run("page out of range", func(t *testing.T) {
		env := newTestEnv(t)

		env.repo.EXPECT().List(gomock.Any(), 40, 10).Return(nil, nil)
		env.repo.EXPECT().Count(gomock.Any()).Return(12, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/students/?page=5&limit=10", nil)
		req.Header.Set("Authorization", authHeader(t, env))

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, float64(108), envelope["code"])
	})
}

func TestUpdateProfileHandler(t *testing.T) {
	putJSON := func(t *testing.T, env *testEnv, token string, payload any) *http.Response {
		body, err := json.Marshal(payload)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPut, "/api/students/profile", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := env.app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("success with strong password", func(t *testing.T) {
		env := newTestEnv(t)

		token, err := env.tokens.GenerateAccess("student-123")
		require.NoError(t, err)

		env.repo.EXPECT().GetByID(gomock.Any(), "student-123").
			Return(&domain.Student{ID: "student-123", Name: "Ram Dhan", PasswordHash: "old-hash"}, nil)
		env.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		resp := putJSON(t, env, token, dto.UpdateProfileInput{Password: "Passw0rd!"})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("weak password rejected", func(t *testing.T) {
		env := newTestEnv(t)

		token, err := env.tokens.GenerateAccess("student-123")
		require.NoError(t, err)

		env.repo.EXPECT().GetByID(gomock.Any(), "student-123").
			Return(&domain.Student{ID: "student-123", PasswordHash: "old-hash"}, nil)

		resp := putJSON(t, env, token, dto.UpdateProfileInput{Password: "password1"})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, float64(109), envelope["code"])
	})

	t.Run("student record gone", func(t *testing.T) {
		env := newTestEnv(t)

		token, err := env.tokens.GenerateAccess("ghost")
		require.NoError(t, err)

		env.repo.EXPECT().GetByID(gomock.Any(), "ghost").Return(nil, nil)

		resp := putJSON(t, env, token, dto.UpdateProfileInput{Name: "Sita Devi"})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		envelope := decodeEnvelope(t, resp)
		assert.Equal(t, float64(104), envelope["code"])
	})
}
