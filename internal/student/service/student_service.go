package service

//go:generate mockgen -destination=../../mocks/mock_repository.go -package=mocks github.com/vanjararamdhan/student-crud-api/internal/student/domain StudentRepository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	autherror "github.com/vanjararamdhan/student-crud-api/internal/errors"
	"github.com/vanjararamdhan/student-crud-api/internal/student/domain"
	"github.com/vanjararamdhan/student-crud-api/internal/student/dto"
	"github.com/vanjararamdhan/student-crud-api/pkg/constant"
)

type StudentService struct {
	repo   domain.StudentRepository
	tokens TokenGenerator
	hasher PasswordHasher
	logger *zap.Logger
}

func NewStudentService(repo domain.StudentRepository, tokens TokenGenerator, hasher PasswordHasher, logger *zap.Logger) *StudentService {
	return &StudentService{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		logger: logger,
	}
}

// Register validates the profile, hashes the password and persists the new
// student. Validation, hashing and persistence are explicit steps here, in
// that order; nothing happens implicitly at save time.
func (s *StudentService) Register(ctx context.Context, input dto.RegisterInput) (*domain.Student, error) {
	if err := validateName(input.Name); err != nil {
		return nil, err
	}
	if !emailRegex.MatchString(input.Email) {
		return nil, autherror.ErrInvalidEmail
	}

	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	if len(input.Password) < constant.MinRegisterPasswordLength {
		return nil, autherror.ErrPasswordTooShort
	}

	if err := validatePhone(input.Phone); err != nil {
		return nil, err
	}
	dob, err := parseDOB(input.DOB)
	if err != nil {
		return nil, err
	}
	if err := validateSubjects(input.Subjects); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	student := &domain.Student{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Address:      input.Address,
		DOB:          dob,
		Subjects:     toDomainSubjects(input.Subjects),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// A concurrent registration with the same email loses here: the unique
	// index rejects the insert and the repository reports the duplicate.
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("student registered", zap.String("student_id", student.ID))

	return student, nil
}

// Login verifies the credentials and issues a fresh access/refresh pair. No
// session state is kept server-side.
func (s *StudentService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenPair, error) {
	student, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, autherror.ErrStudentEmailNotFound
	}

	if !s.hasher.Check(input.Password, student.PasswordHash) {
		s.logger.Warn("failed login attempt", zap.String("email", input.Email))
		return nil, autherror.ErrIncorrectPassword
	}

	accessToken, refreshToken, err := s.tokens.Generate(student.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The refresh
// token itself is not rotated; it stays usable until its own expiry.
func (s *StudentService) Refresh(input dto.RefreshInput) (string, error) {
	if input.RefreshToken == "" {
		return "", autherror.ErrRefreshTokenRequired
	}

	claims, err := s.tokens.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		return "", autherror.InvalidRefreshToken(err)
	}

	return s.tokens.GenerateAccess(claims.StudentID)
}

// List returns one page of students together with pagination metadata.
func (s *StudentService) List(ctx context.Context, page, limit int) (*dto.StudentListOutput, error) {
	if page < 1 || limit < 1 {
		return nil, autherror.ErrInvalidPagination
	}

	offset := (page - 1) * limit
	students, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	if page > totalPages {
		return nil, autherror.ErrPageNotFound
	}

	outputs := make([]dto.StudentOutput, 0, len(students))
	for i := range students {
		outputs = append(outputs, dto.NewStudentOutput(&students[i]))
	}

	return &dto.StudentListOutput{
		Students: outputs,
		Pagination: dto.Pagination{
			CurrentPage:   page,
			TotalPages:    totalPages,
			TotalStudents: total,
			Limit:         limit,
		},
	}, nil
}

// UpdateProfile applies the provided fields to the student's record. A
// password change must satisfy the strong policy, unlike registration.
func (s *StudentService) UpdateProfile(ctx context.Context, studentID string, input dto.UpdateProfileInput) (*domain.Student, error) {
	student, err := s.repo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, autherror.ErrStudentNotFound
	}

	if input.Name != "" {
		if err := validateName(input.Name); err != nil {
			return nil, err
		}
		student.Name = input.Name
	}
	if input.Phone != "" {
		if err := validatePhone(input.Phone); err != nil {
			return nil, err
		}
		student.Phone = input.Phone
	}
	if input.Address != "" {
		student.Address = input.Address
	}
	if input.DOB != "" {
		dob, err := parseDOB(input.DOB)
		if err != nil {
			return nil, err
		}
		student.DOB = dob
	}

	if input.Password != "" {
		if !IsStrongPassword(input.Password) {
			return nil, autherror.ErrWeakPassword
		}
		passwordHash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		student.PasswordHash = passwordHash
	}

	student.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

func toDomainSubjects(subjects []dto.Subject) []domain.Subject {
	out := make([]domain.Subject, 0, len(subjects))
	for _, sub := range subjects {
		out = append(out, domain.Subject{SubjectName: sub.SubjectName, Marks: sub.Marks})
	}
	return out
}
