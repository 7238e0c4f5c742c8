package domain

import "time"

type Student struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	Address      string
	DOB          time.Time
	Subjects     []Subject
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Subject struct {
	SubjectName string `json:"subjectName"`
	Marks       int    `json:"marks"`
}
