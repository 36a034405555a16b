package service

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *ValidationError
		want    string
	}{
		{
			name: "field and message",
			err: &ValidationError{
				Field:   "message",
				Message: "cannot be empty",
			},
			want: "validation error on field message: cannot be empty",
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
			// Verify error wrapping
			if !errors.Is(got, tt.err) {
				t.Errorf("WrapError() should wrap original error")
			}
		})
	}
}

func TestValidationError_IsInvalidInput(t *testing.T) {
	err := WrapError(&ValidationError{Field: "title", Message: "required"}, "add paper")
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("errors.Is(%v, ErrInvalidInput) = false, want true", err)
	}
}

func TestError_Kind(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    error
		wantMsg string
	}{
		{"file store", errNoFileStore, ErrNotConfigured, "Dropbox access token not configured"},
		{"model", errNoModel, ErrNotConfigured, "ANTHROPIC_API_KEY not configured"},
		{"paper", errNoPaper, ErrNotFound, "Paper not found"},
		{"wrapped", fmt.Errorf("outer: %w", newError(ErrConflict, "taken")), ErrConflict, "outer: taken"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.kind) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.kind)
			}
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", got, tt.wantMsg)
			}
		})
	}
}

func TestRequirePaperID(t *testing.T) {
	if err := requirePaperID(0); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("requirePaperID(0) = %v, want validation error", err)
	}
	if err := requirePaperID(3); err != nil {
		t.Errorf("requirePaperID(3) = %v, want nil", err)
	}
}

func TestExternalError(t *testing.T) {
	cause := errors.New("expired_access_token")
	err := fmt.Errorf("sync: %w", externalError("failed to list files", cause))

	if !errors.Is(err, ErrExternalService) {
		t.Errorf("errors.Is(err, ErrExternalService) = false, want true")
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
	var ue *UpstreamError
	if !errors.As(err, &ue) || ue.Err.Error() != "expired_access_token" {
		t.Errorf("errors.As() upstream = %+v, want cause message", ue)
	}
	if want := "sync: external service error: failed to list files: expired_access_token"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
