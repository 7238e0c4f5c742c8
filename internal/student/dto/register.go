package dto

type RegisterInput struct {
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
	Address  string    `json:"address"`
	DOB      string    `json:"dob"`
	Subjects []Subject `json:"subjects"`
	Password string    `json:"password"`
}

type Subject struct {
	SubjectName string `json:"subjectName"`
	Marks       int    `json:"marks"`
}
