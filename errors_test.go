package scopeiq

import (
	"errors"
	"testing"
)

func TestIsShapeMismatch(t *testing.T) {
	err := errors.New("some error")
	if IsShapeMismatch(err) {
		t.Log("custom error type shapeMismatch is wrongly recognized")
		t.Fail()
	}

	err = NewShapeMismatch("x has %d entries", 3)
	if !IsShapeMismatch(err) {
		t.Log("custom error type shapeMismatch is not recognized")
		t.Fail()
	}
}

func TestIsRowShapeMismatch(t *testing.T) {
	err := NewRowShapeMismatch(2, "has 3 cells, want 4")
	if !IsRowShapeMismatch(err) {
		t.Error("custom error type rowShapeMismatch is not recognized")
	}

	row, ok := RowIndex(err)
	if !ok {
		t.Error("RowIndex should recognize a rowShapeMismatch")
	}
	if row != 2 {
		t.Errorf("unexpected row index: %v != 2", row)
	}

	if _, ok := RowIndex(errors.New("other")); ok {
		t.Error("RowIndex should reject other error types")
	}
}

func TestIsInvalidGeometry(t *testing.T) {
	err := NewInvalidGeometry("negative size")
	if !IsInvalidGeometry(err) {
		t.Error("custom error type invalidGeometry is not recognized")
	}
	if IsInvalidGeometry(errors.New("other")) {
		t.Error("foreign error wrongly recognized as invalidGeometry")
	}
}

// Wrapping must not hide the error type; the build wraps every block
// error with the slide position.
func TestWrapKeepsType(t *testing.T) {
	err := NewRowShapeMismatch(1, "short row")
	err = Wrap(err, "slide %d %q", 3, "Pricing")

	if !IsRowShapeMismatch(err) {
		t.Error("wrapped rowShapeMismatch no longer recognized")
	}
	row, ok := RowIndex(err)
	if !ok || row != 1 {
		t.Errorf("row index lost through wrapping: %v, %v", row, ok)
	}
}
