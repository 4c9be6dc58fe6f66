package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewInvalidCredentials(), CodeInvalidCredentials, http.StatusUnauthorized},
		{NewInvalidToken(errors.New("bad sig")), CodeInvalidToken, http.StatusUnauthorized},
		{NewUnauthorized("not yours"), CodeUnauthorized, http.StatusUnauthorized},
		{NewEmailTaken(), CodeEmailTaken, http.StatusBadRequest},
		{NewAlreadyParticipating(), CodeAlreadyParticipating, http.StatusBadRequest},
		{NewNotParticipating(), CodeNotParticipating, http.StatusBadRequest},
		{NewValidationError("bad", nil), CodeValidationFailed, http.StatusBadRequest},
		{NewSessionNotFound("s1"), CodeSessionNotFound, http.StatusNotFound},
		{NewUserNotFound("u1"), CodeUserNotFound, http.StatusNotFound},
		{NewTeacherNotFound("t1"), CodeTeacherNotFound, http.StatusNotFound},
		{NewUnknownSubject(), CodeUnknownSubject, http.StatusNotFound},
		{NewInternalError(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			var domainErr *DomainError
			require.ErrorAs(t, tc.err, &domainErr)
			assert.Equal(t, tc.code, domainErr.Code)
			assert.Equal(t, tc.status, domainErr.HTTPStatus)
			assert.True(t, HasCode(tc.err, tc.code))
		})
	}
}

func TestHasCode_DistinguishesKinds(t *testing.T) {
	err := NewAlreadyParticipating()
	assert.True(t, HasCode(err, CodeAlreadyParticipating))
	assert.False(t, HasCode(err, CodeNotParticipating))
	assert.False(t, HasCode(errors.New("plain"), CodeAlreadyParticipating))
	assert.False(t, HasCode(nil, CodeAlreadyParticipating))
}

func TestHasCode_SeesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", NewSessionNotFound("s1"))
	assert.True(t, HasCode(wrapped, CodeSessionNotFound))
}

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	passthrough := ToDomainError(NewEmailTaken())
	assert.Equal(t, CodeEmailTaken, passthrough.Code)

	noRows := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, http.StatusNotFound, noRows.HTTPStatus)

	unknown := ToDomainError(errors.New("disk on fire"))
	assert.Equal(t, CodeInternal, unknown.Code)
	assert.Equal(t, http.StatusInternalServerError, unknown.HTTPStatus)
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewInternalError(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "root cause")
}
