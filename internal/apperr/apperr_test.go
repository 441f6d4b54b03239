package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindMatching(t *testing.T) {
	err := NotFound("employee", 7)
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected not-found kind: %v", err)
	}
	wrapped := fmt.Errorf("loading report: %w", err)
	if !IsKind(wrapped, KindNotFound) {
		t.Fatal("kind must survive wrapping")
	}
	if IsKind(errors.New("plain"), KindNotFound) {
		t.Fatal("plain errors carry no kind")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{NotFound("employee", 1), http.StatusNotFound},
		{Conflict("duplicate"), http.StatusConflict},
		{InvalidInput("bad range"), http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatus(c.err); got != c.want {
			t.Fatalf("%v: expected %d, got %d", c.err, c.want, got)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("pg: unique violation")
	err := Wrap(KindConflict, "insert log", cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause lost")
	}
	if HTTPStatus(err) != http.StatusConflict {
		t.Fatalf("wrong status: %d", HTTPStatus(err))
	}
}
