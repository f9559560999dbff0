package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	base := errors.New("duplicate key")
	wrapped := Wrap(base, CodeConflict, "phone already registered")
	outer := fmt.Errorf("register: %w", Wrap(wrapped, CodeInternal, "failed to save"))

	assert.True(t, HasCode(outer, CodeInternal))
	assert.True(t, HasCode(outer, CodeConflict))
	assert.False(t, HasCode(outer, CodeNotFound))
	assert.False(t, HasCode(base, CodeConflict))
	assert.ErrorIs(t, outer, base)
}

func TestIs(t *testing.T) {
	err := Wrap(New(CodeConflict, "inner"), CodeInternal, "outer")

	assert.True(t, Is(err, CodeInternal))
	assert.False(t, Is(err, CodeConflict), "Is only inspects the outermost coded error")
	assert.False(t, Is(nil, CodeInternal))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "nothing to wrap"))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "invalid input", New(CodeBadRequest, "invalid input").Error())
	assert.Equal(t, "save failed: boom", Wrap(errors.New("boom"), CodeInternal, "save failed").Error())
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:    http.StatusBadRequest,
		CodeValidation:    http.StatusBadRequest,
		CodeUnprocessable: http.StatusUnprocessableEntity,
		CodeNotFound:      http.StatusNotFound,
		CodeConflict:      http.StatusConflict,
		CodeTimeout:       http.StatusGatewayTimeout,
		CodeUnavailable:   http.StatusServiceUnavailable,
		CodeInternal:      http.StatusInternalServerError,
		Code("unknown"):   http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %s", code)
	}
}
