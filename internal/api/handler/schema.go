package handler

import (
	"time"

	"github.com/unihub/portal/internal/core/domain"
	"github.com/unihub/portal/internal/core/ports"
)

type registerRequest struct {
	Username  string `json:"username"   validate:"required,min=3,max=50"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6,max=72"`
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name"  validate:"max=100"`
}

func (r registerRequest) toInput() ports.RegisterInput {
	return ports.RegisterInput{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string          `json:"token"`
	User  *domain.Account `json:"user"`
}

type createUserRequest struct {
	registerRequest
	Roles []string `json:"roles" validate:"omitempty,dive,oneof=ADMIN TEACHER STUDENT USER"`
}

type updateUserRequest struct {
	Email     *string  `json:"email"      validate:"omitempty,email"`
	FirstName *string  `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string  `json:"last_name"  validate:"omitempty,max=100"`
	Password  *string  `json:"password"   validate:"omitempty,min=6,max=72"`
	Roles     []string `json:"roles"      validate:"omitempty,dive,oneof=ADMIN TEACHER STUDENT USER"`
}

func (r updateUserRequest) toInput() ports.UpdateAccountInput {
	return ports.UpdateAccountInput{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Password:  r.Password,
		Roles:     r.Roles,
	}
}

type courseRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
}

type eventRequest struct {
	Title       string    `json:"title"       validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	StartTime   time.Time `json:"start_time"  validate:"required"`
	EndTime     time.Time `json:"end_time"    validate:"required,gtfield=StartTime"`
	Location    string    `json:"location"    validate:"required,max=200"`
	Type        string    `json:"type"        validate:"required,max=50"`
	TeacherID   string    `json:"teacher_id"  validate:"required"`
}

func (r eventRequest) toInput() ports.EventInput {
	return ports.EventInput{
		Title:       r.Title,
		Description: r.Description,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		Location:    r.Location,
		Type:        r.Type,
		TeacherID:   r.TeacherID,
	}
}

type newsRequest struct {
	Title   string `json:"title"   validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

type subscriptionRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type newsletterRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required"`
}

type newsletterResponse struct {
	Recipients int `json:"recipients"`
}

type messageResponse struct {
	Message string `json:"message"`
}
