package models

import (
	"errors"
	"strings"
)

var (
	ErrStudentNameRequired  = errors.New("student name is required")
	ErrStudentEmailRequired = errors.New("student email is required")
)

// Student is the identity a test is taken under.
type Student struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// NewStudent trims and validates the identity entered by the student.
func NewStudent(name, email string) (Student, error) {
	s := Student{
		Name:  strings.TrimSpace(name),
		Email: strings.TrimSpace(email),
	}

	if err := s.Validate(); err != nil {
		return Student{}, err
	}

	return s, nil
}

func (s Student) Validate() error {
	if s.Name == "" {
		return ErrStudentNameRequired
	}
	if s.Email == "" {
		return ErrStudentEmailRequired
	}

	return nil
}
