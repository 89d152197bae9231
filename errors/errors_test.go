package errors

import (
	stdlib "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestCause(t *testing.T) {
	std := stdlib.New("this is a stdlib error")

	cases := map[string]struct {
		err  error
		root error
	}{
		"Errors are self-causing": {
			err:  ErrNotFound,
			root: ErrNotFound,
		},
		"Wrap reveals root cause": {
			err:  Wrap(ErrNotFound, "foo"),
			root: ErrNotFound,
		},
		"Cause works for stderr as root": {
			err:  Wrap(std, "Some helpful text"),
			root: std,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := errors.Cause(tc.err); got != tc.root {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrModel,
			wantIs: false,
		},
		"successful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrNotFound, "gone"),
			wantIs: true,
		},
		"twice wrapped error": {
			a:      ErrState,
			b:      Wrap(Wrapf(ErrState, "inner %d", 1), "outer"),
			wantIs: true,
		},
		"unsuccessful comparison to a wrapped error": {
			a:      ErrNotFound,
			b:      Wrap(ErrState, "gone"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is any error nil": {
			a:      nil,
			b:      (*multiErr)(nil),
			wantIs: true,
		},
		"multi error contains the kind": {
			a:      ErrEmpty,
			b:      Append(ErrState.New("first"), ErrEmpty.New("second")),
			wantIs: true,
		},
		"stdlib error is not a root error": {
			a:      ErrNotFound,
			b:      stdlib.New("not found"),
			wantIs: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result - got:%v want: %v", got, tc.wantIs)
			}
		})
	}
}

func TestCode(t *testing.T) {
	cases := map[string]struct {
		err  error
		want uint32
	}{
		"nil":            {err: nil, want: 0},
		"root":           {err: ErrNotFound, want: 3},
		"wrapped":        {err: Wrap(ErrDuplicate, "x"), want: 6},
		"stdlib":         {err: stdlib.New("x"), want: InternalCode},
		"wrapped stdlib": {err: Wrap(stdlib.New("x"), "y"), want: InternalCode},
		"multi":          {err: Append(ErrEmpty, ErrState), want: 8},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := Code(tc.err); got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestRegisterTwicePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("panic expected")
		}
	}()
	Register(ErrNotFound.Code(), "again")
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := fn()
	if !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("panic message lost: %s", err)
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "nothing"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestStackTraceIsPrinted(t *testing.T) {
	err := Wrap(ErrEmpty, "name")
	full := fmt.Sprintf("%+v", err)
	if !strings.Contains(full, "errors_test.go") {
		t.Fatalf("stack trace not present in %q", full)
	}
	if short := fmt.Sprintf("%v", err); short != "name: value is empty" {
		t.Fatalf("unexpected message %q", short)
	}
}

func TestAppend(t *testing.T) {
	if err := Append(nil, nil); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	single := ErrEmpty.New("x")
	if err := Append(nil, single); err != single {
		t.Fatalf("single error must be returned as is, got %v", err)
	}
	err := Append(ErrEmpty.New("a"), Append(ErrState.New("b"), ErrAmount.New("c")))
	m, ok := err.(*multiErr)
	if !ok {
		t.Fatalf("want multi error, got %T", err)
	}
	if len(m.errs) != 3 {
		t.Fatalf("nested multi errors must be flattened, got %d", len(m.errs))
	}
}
