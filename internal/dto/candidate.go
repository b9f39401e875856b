package dto

import (
	"regexp"
	"strings"
)

var phoneRegex = regexp.MustCompile(`^\+?[\d\s\-()]+$`)

// CreateCandidateRequest represents the multipart referral form fields.
// The optional resume file travels alongside and is handled separately.
type CreateCandidateRequest struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Phone    string `form:"phone"`
	JobTitle string `form:"jobTitle"`
}

// Validate checks every field and returns a message per violated field,
// or nil when the request is valid.
func (r *CreateCandidateRequest) Validate() map[string]string {
	errs := map[string]string{}

	if len(strings.TrimSpace(r.Name)) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	}
	if !emailRegex.MatchString(strings.TrimSpace(r.Email)) {
		errs["email"] = "Please provide a valid email address"
	}
	if !validPhone(r.Phone) {
		errs["phone"] = "Please provide a valid phone number"
	}
	if len(strings.TrimSpace(r.JobTitle)) < 2 {
		errs["jobTitle"] = "Job title must be at least 2 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validPhone accepts a loose international format with at least 10 digits
func validPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" || !phoneRegex.MatchString(phone) {
		return false
	}
	digits := 0
	for _, c := range phone {
		if c >= '0' && c <= '9' {
			digits++
		}
	}
	return digits >= 10
}

// UpdateStatusRequest represents a status transition request
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
