package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	autherror "github.com/vanjararamdhan/student-crud-api/internal/errors"
	"github.com/vanjararamdhan/student-crud-api/internal/student/domain"
)

// DBPool is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type StudentRepository struct {
	db DBPool
}

func NewStudentRepository(db DBPool) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, name, email, phone, address, dob, subjects, password_hash, created_at, updated_at`

func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*domain.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE email = $1
		LIMIT 1;
	`
	student, err := scanStudent(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student by email: %w", err)
	}

	return student, nil
}

func (r *StudentRepository) GetByID(ctx context.Context, id string) (*domain.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		WHERE id = $1
		LIMIT 1;
	`
	student, err := scanStudent(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get student by id: %w", err)
	}

	return student, nil
}

func (r *StudentRepository) Create(ctx context.Context, student *domain.Student) error {
	subjects, err := json.Marshal(student.Subjects)
	if err != nil {
		return fmt.Errorf("failed to encode subjects: %w", err)
	}

	_, err = r.db.Exec(ctx, `
        INSERT INTO students (id, name, email, phone, address, dob, subjects, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `, student.ID, student.Name, student.Email, student.Phone, student.Address,
		student.DOB, subjects, student.PasswordHash, student.CreatedAt, student.UpdatedAt)

	// The unique index on email is the backstop for concurrent registrations.
	if isUniqueViolation(err) {
		return autherror.ErrEmailAlreadyInUse
	}

	return err
}

func (r *StudentRepository) Update(ctx context.Context, student *domain.Student) error {
	subjects, err := json.Marshal(student.Subjects)
	if err != nil {
		return fmt.Errorf("failed to encode subjects: %w", err)
	}

	_, err = r.db.Exec(ctx, `
		UPDATE students
		SET name = $2, phone = $3, address = $4, dob = $5, subjects = $6,
		    password_hash = $7, updated_at = $8
		WHERE id = $1
	`, student.ID, student.Name, student.Phone, student.Address, student.DOB,
		subjects, student.PasswordHash, student.UpdatedAt)

	return err
}

func (r *StudentRepository) List(ctx context.Context, offset, limit int) ([]domain.Student, error) {
	query := `
		SELECT ` + studentColumns + `
		FROM students
		ORDER BY created_at
		OFFSET $1 LIMIT $2;
	`
	rows, err := r.db.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	var students []domain.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, *student)
	}

	return students, rows.Err()
}

func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students;`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}

	return total, nil
}

func scanStudent(row pgx.Row) (*domain.Student, error) {
	var student domain.Student
	var subjects []byte

	err := row.Scan(&student.ID, &student.Name, &student.Email, &student.Phone,
		&student.Address, &student.DOB, &subjects, &student.PasswordHash,
		&student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if len(subjects) > 0 {
		if err := json.Unmarshal(subjects, &student.Subjects); err != nil {
			return nil, fmt.Errorf("failed to decode subjects: %w", err)
		}
	}

	return &student, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
