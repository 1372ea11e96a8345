package util

import (
	"bytes"
	"errors"
	"net/http"
	"testing"
	"time"

	"studyhub_backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret-unit-test-secret"

func TestJWTRoundTrip(t *testing.T) {
	u := &model.User{Username: "ana", Role: model.RoleAdmin}
	u.ID = 7

	token, err := GenerateJWT(u, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, "ana", claims.Username)
}

func TestParseJWTFailures(t *testing.T) {
	u := &model.User{Username: "ana", Role: model.RoleUser}
	u.ID = 1

	expired, err := GenerateJWT(u, testSecret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)

	good, err := GenerateJWT(u, testSecret, time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(good, "another-secret-another-secret-xx")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = ParseJWT("not-a-jwt", testSecret)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 1})
	s, err := noExp.SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = ParseJWT(s, testSecret)
	assert.Error(t, err)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrUnauthenticated, http.StatusUnauthorized},
		{ErrTokenExpired, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{Invalid("bad %s", "field"), http.StatusBadRequest},
		{ErrStorageConflict, http.StatusBadRequest},
		{ErrEmptyExam, http.StatusBadRequest},
		{ErrEmailRegistered, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestValidateMimeType(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	mime, err := ValidateMimeType(bytes.NewReader(png), []string{MimeImage})
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	_, err = ValidateMimeType(bytes.NewReader([]byte("plain text")), []string{MimeImage})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestHasAllowedExtension(t *testing.T) {
	assert.True(t, HasAllowedExtension("a.PNG", AllowedImageExtensions))
	assert.False(t, HasAllowedExtension("a.exe", AllowedImageExtensions))
}
