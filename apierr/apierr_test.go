package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusByKind(t *testing.T) {
	cases := []struct {
		err  *Error
		want int
	}{
		{Validation("no file", nil), http.StatusBadRequest},
		{NotFound("Document not found"), http.StatusNotFound},
		{Internal(errors.New("disk full")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := tc.err.Status(); got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.err.Kind, tc.want, got)
		}
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("pipeline: %w", Internal(cause))

	if !IsKind(err, KindInternal) {
		t.Fatal("expected internal kind through wrapping")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be reachable")
	}
	if Internal(cause).Error() != "disk full" {
		t.Errorf("unexpected message %q", Internal(cause).Error())
	}
	if IsKind(cause, KindValidation) {
		t.Error("plain error must not match a kind")
	}
}
