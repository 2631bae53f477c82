package keyload

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("users"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	err := r.Register("users")
	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("second Register = %v, want DuplicateNameError", err)
	}
	if dup.Name != "users" {
		t.Fatalf("DuplicateNameError.Name = %q", dup.Name)
	}
	if err := r.Register("orders"); err != nil {
		t.Fatalf("distinct name: %v", err)
	}
}

// TestRegistryConcurrent verifies exactly one of N racing claims wins.
func TestRegistryConcurrent(t *testing.T) {
	r := NewRegistry()
	const n = 32

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		i := i
		go func() {
			defer wg.Done()
			errs[i] = r.Register("contested")
		}()
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("%d registrations succeeded, want exactly 1", wins)
	}
}

func TestDuplicateNameErrorMessage(t *testing.T) {
	err := &DuplicateNameError{Name: "users:v2"}
	if msg := err.Error(); !strings.Contains(msg, "users:v2") {
		t.Fatalf("Error() = %q, want it to name the namespace", msg)
	}
}
