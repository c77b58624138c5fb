package service

import (
	"errors"
	"testing"

	"booklingo/internal/apperr"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "field and message",
			err: &ValidationError{
				Field:   "level",
				Message: "must be one of A1, A2, B1, B2, C1, C2",
			},
			want: "validation error on field level: must be one of A1, A2, B1, B2, C1, C2",
		},
		{
			name: "empty field",
			err: &ValidationError{
				Field:   "",
				Message: "invalid",
			},
			want: "validation error on field : invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidationError_Kind(t *testing.T) {
	var err error = WrapError(&ValidationError{Field: "file", Message: "required"}, "upload")

	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Error("ValidationError should match apperr.ErrInvalidInput")
	}
	if got := apperr.KindOf(err); got != apperr.KindInvalidInput {
		t.Errorf("KindOf() = %s, want %s", got, apperr.KindInvalidInput)
	}
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "file" {
		t.Errorf("errors.As() did not find the ValidationError")
	}
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		msg     string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "nil error",
			err:     nil,
			msg:     "context",
			wantNil: true,
		},
		{
			name:    "wrapped error",
			err:     errors.New("original error"),
			msg:     "context",
			wantNil: false,
			wantMsg: "context: original error",
		},
		{
			name:    "empty message",
			err:     errors.New("original error"),
			msg:     "",
			wantNil: false,
			wantMsg: ": original error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapError(tt.err, tt.msg)
			if tt.wantNil {
				if got != nil {
					t.Errorf("WrapError() = %v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Errorf("WrapError() = nil, want error")
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("WrapError() = %v, want %v", got.Error(), tt.wantMsg)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("WrapError() should wrap original error")
			}
		})
	}
}
