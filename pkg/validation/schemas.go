package validation

import (
	"encoding/json"
	"errors"
	"strings"
)

// SignupInput is the payload of POST /inscription.
type SignupInput struct {
	FirstName string `json:"firstName" validate:"required,name"`
	LastName  string `json:"lastName" validate:"required,name"`
	UserName  string `json:"userName" validate:"required,name"`
	IsAdmin   *bool  `json:"isAdmin" validate:"required"`
	Password  string `json:"password" validate:"required,pwd"`
	Date      *Time  `json:"date"`
}

// LoginInput is the payload of POST /connexion. Fields are pointers so a
// missing field can be told apart from an empty one.
type LoginInput struct {
	UserName *string `json:"userName"`
	Password *string `json:"password"`
}

type loginSchema struct {
	UserName string `json:"userName" validate:"required,name"`
	Password string `json:"password" validate:"required,pwd"`
}

// EventInput is the payload of POST /event. Optional fields are pointers:
// nil means "leave the stored value alone" on update.
type EventInput struct {
	ID          string    `json:"id" validate:"required"`
	Date        *Time     `json:"date" validate:"required"`
	Time        *string   `json:"time"`
	Team        *string   `json:"team"`
	Users       *[]string `json:"users"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Comments    *[]string `json:"comments"`
}

// AlertInput is the payload of POST /alert.
type AlertInput struct {
	ID      string  `json:"id" validate:"required"`
	Type    *string `json:"type"`
	Title   *string `json:"title"`
	Body    *string `json:"body"`
	EndDate *Time   `json:"endDate" validate:"required"`
}

// CommentInput is the payload of POST /comment.
type CommentInput struct {
	ID     string `json:"id" validate:"required"`
	UserID string `json:"userId" validate:"required"`
	Text   string `json:"text" validate:"required"`
	Date   *Time  `json:"date"`
}

// ErrMissingCredentials is returned when userName or password is absent
// from a login payload. It is reported differently from schema failures.
var ErrMissingCredentials = errors.New("userName and password are required")

// DecodeJSON decodes body into dst; an empty body decodes as {}.
func DecodeJSON(body []byte, dst any) error {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}

// ValidateSignup trims the string fields and validates the payload.
func ValidateSignup(in *SignupInput) error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.UserName = strings.TrimSpace(in.UserName)
	in.Password = strings.TrimSpace(in.Password)
	return Struct(in)
}

// CheckLoginPresence reports ErrMissingCredentials when a field is absent.
func CheckLoginPresence(in *LoginInput) error {
	if in.UserName == nil || in.Password == nil {
		return ErrMissingCredentials
	}
	return nil
}

// ValidateLogin trims and validates a login payload whose fields are present.
func ValidateLogin(in *LoginInput) error {
	if err := CheckLoginPresence(in); err != nil {
		return err
	}
	*in.UserName = strings.TrimSpace(*in.UserName)
	*in.Password = strings.TrimSpace(*in.Password)
	return Struct(loginSchema{UserName: *in.UserName, Password: *in.Password})
}

func ValidateEvent(in *EventInput) error {
	in.ID = strings.TrimSpace(in.ID)
	return Struct(in)
}

func ValidateAlert(in *AlertInput) error {
	in.ID = strings.TrimSpace(in.ID)
	return Struct(in)
}

func ValidateComment(in *CommentInput) error {
	in.ID = strings.TrimSpace(in.ID)
	in.UserID = strings.TrimSpace(in.UserID)
	in.Text = strings.TrimSpace(in.Text)
	return Struct(in)
}
