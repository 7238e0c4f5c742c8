package dto

import (
	"time"

	"github.com/vanjararamdhan/student-crud-api/internal/student/domain"
)

// StudentOutput is the outward-facing view of a student. The password hash
// never appears here.
type StudentOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address,omitempty"`
	DOB       time.Time `json:"dob"`
	Subjects  []Subject `json:"subjects"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewStudentOutput(s *domain.Student) StudentOutput {
	subjects := make([]Subject, 0, len(s.Subjects))
	for _, sub := range s.Subjects {
		subjects = append(subjects, Subject{SubjectName: sub.SubjectName, Marks: sub.Marks})
	}

	return StudentOutput{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		Address:   s.Address,
		DOB:       s.DOB,
		Subjects:  subjects,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

type Pagination struct {
	CurrentPage   int `json:"currentPage"`
	TotalPages    int `json:"totalPages"`
	TotalStudents int `json:"totalStudents"`
	Limit         int `json:"limit"`
}

type StudentListOutput struct {
	Students   []StudentOutput `json:"students"`
	Pagination Pagination      `json:"pagination"`
}
