package domain

import "context"

type StudentRepository interface {
	GetByEmail(ctx context.Context, email string) (*Student, error)
	GetByID(ctx context.Context, id string) (*Student, error)
	Create(ctx context.Context, student *Student) error
	Update(ctx context.Context, student *Student) error
	List(ctx context.Context, offset, limit int) ([]Student, error)
	Count(ctx context.Context) (int, error)
}
