package repository

import (
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"locally/shared/constant"
	"locally/shared/failure"
)

func TestConstraintError(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "unique violation", err: &pq.Error{Code: constant.PqErrorCodeUniqueViolation}, wantCode: http.StatusConflict},
		{name: "foreign key violation", err: &pq.Error{Code: constant.PqErrorCodeFkViolation}, wantCode: http.StatusBadRequest},
		{name: "check violation", err: &pq.Error{Code: constant.PqErrorCodeCheckViolation}, wantCode: http.StatusBadRequest},
		{name: "other postgres error", err: &pq.Error{Code: "57014"}, wantCode: http.StatusInternalServerError},
		{name: "non postgres error", err: plain, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, failure.GetCode(constraintError("space", tt.err)))
		})
	}
}
