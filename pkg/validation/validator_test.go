package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func validSignup() SignupInput {
	return SignupInput{
		FirstName: "Alice",
		LastName:  "Martin",
		UserName:  "alice",
		IsAdmin:   boolPtr(false),
		Password:  "1234",
	}
}

func TestValidateSignup_Valid(t *testing.T) {
	in := validSignup()
	in.FirstName = "  Alice  "
	require.NoError(t, ValidateSignup(&in))
	assert.Equal(t, "Alice", in.FirstName)
}

func TestValidateSignup_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SignupInput)
		message string
	}{
		{"short first name", func(in *SignupInput) { in.FirstName = "A" }, `"firstName" length must be between 2 and 30 characters long`},
		{"trimmed to short", func(in *SignupInput) { in.LastName = "  B  " }, `"lastName" length must be between 2 and 30 characters long`},
		{"long user name", func(in *SignupInput) { in.UserName = "abcdefghijklmnopqrstuvwxyz012345" }, `"userName" length must be between 2 and 30 characters long`},
		{"missing isAdmin", func(in *SignupInput) { in.IsAdmin = nil }, `"isAdmin" is required`},
		{"missing password", func(in *SignupInput) { in.Password = "" }, `"password" is required`},
		{"password too short", func(in *SignupInput) { in.Password = "123" }, `"password" length must be 4 characters long`},
		{"password too long", func(in *SignupInput) { in.Password = "12345" }, `"password" length must be 4 characters long`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSignup()
			tt.mutate(&in)
			err := ValidateSignup(&in)
			require.Error(t, err)
			assert.Equal(t, tt.message, FirstMessage(err))
		})
	}
}

func TestValidateSignup_ReportsFirstFailingField(t *testing.T) {
	in := SignupInput{}
	err := ValidateSignup(&in)
	require.Error(t, err)
	assert.Equal(t, `"firstName" is required`, FirstMessage(err))
	assert.Len(t, ToDetails(err), 5)
}

func TestValidateSignup_FalseIsAdminAccepted(t *testing.T) {
	in := validSignup()
	in.IsAdmin = boolPtr(false)
	assert.NoError(t, ValidateSignup(&in))
}

func TestLogin_PresenceBeforeSchema(t *testing.T) {
	err := ValidateLogin(&LoginInput{UserName: strPtr("alice")})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	err = ValidateLogin(&LoginInput{UserName: strPtr("a"), Password: strPtr("1234")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingCredentials)
	assert.Equal(t, `"userName" length must be between 2 and 30 characters long`, FirstMessage(err))

	in := &LoginInput{UserName: strPtr(" alice "), Password: strPtr("1234")}
	require.NoError(t, ValidateLogin(in))
	assert.Equal(t, "alice", *in.UserName)
}

func TestDecodeAndValidateEvent(t *testing.T) {
	var in EventInput
	require.NoError(t, DecodeJSON([]byte(`{"id":"e1","date":"2026-03-01","users":["alice"]}`), &in))
	require.NoError(t, ValidateEvent(&in))
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), in.Date.Time)
	assert.Nil(t, in.Team)
	require.NotNil(t, in.Users)
	assert.Equal(t, []string{"alice"}, *in.Users)

	var missing EventInput
	require.NoError(t, DecodeJSON([]byte(`{"id":"e1"}`), &missing))
	err := ValidateEvent(&missing)
	require.Error(t, err)
	assert.Equal(t, `"date" is required`, FirstMessage(err))

	var noID EventInput
	require.NoError(t, DecodeJSON([]byte(`{"date":1767225600000}`), &noID))
	err = ValidateEvent(&noID)
	require.Error(t, err)
	assert.Equal(t, `"id" is required`, FirstMessage(err))
}

func TestDecodeJSON_Errors(t *testing.T) {
	var in EventInput
	err := DecodeJSON([]byte(`{"id":"e1","date":"next tuesday"}`), &in)
	require.Error(t, err)
	assert.Equal(t, `"date" must be a valid date`, FirstMessage(err))

	var al AlertInput
	err = DecodeJSON([]byte(`{"id":"a1","endDate":"not-a-date"}`), &al)
	require.Error(t, err)
	assert.Equal(t, `"endDate" must be a valid date`, FirstMessage(err))
	assert.Equal(t, map[string]string{"endDate": "must be a valid date"}, ToDetails(err))

	var cm CommentInput
	err = DecodeJSON([]byte(`{"id":"c1","date":true}`), &cm)
	require.Error(t, err)
	assert.Equal(t, `"date" must be a valid date`, FirstMessage(err))

	_, err = ParseTime("soon")
	assert.Equal(t, `"date" must be a valid date`, FirstMessage(err))

	var su SignupInput
	err = DecodeJSON([]byte(`{"isAdmin":"yes"}`), &su)
	require.Error(t, err)
	assert.Equal(t, `"isAdmin" must be a bool`, FirstMessage(err))

	err = DecodeJSON([]byte(`{`), &su)
	require.Error(t, err)
	assert.Equal(t, `"payload" must be valid JSON`, FirstMessage(err))
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2026-03-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), got)

	got, err = ParseTime("1767225600000")
	require.NoError(t, err)
	assert.Equal(t, int64(1767225600000), got.UnixMilli())

	_, err = ParseTime("yesterday")
	assert.Error(t, err)
}
