package mapping

import (
	"testing"
)

func TestPlatform(t *testing.T) {
	caps := Platform()

	if caps.PageSize <= 0 {
		t.Fatalf("page size must be positive, got %d", caps.PageSize)
	}
	if caps.PageSize&(caps.PageSize-1) != 0 {
		t.Errorf("page size %d is not a power of two", caps.PageSize)
	}
	if caps.MaxCapacity <= 0 {
		t.Errorf("max capacity must be positive, got %d", caps.MaxCapacity)
	}
}

func TestReserveAnonymous(t *testing.T) {
	size := Platform().PageSize

	r, err := Reserve("", size, ProtReadWrite, false, false)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Release()

	if int64(len(r.Bytes())) != size {
		t.Errorf("mapped length: got %d, want %d", len(r.Bytes()), size)
	}
	if r.Size() != size {
		t.Errorf("size: got %d, want %d", r.Size(), size)
	}

	// Fresh pages must be zero-filled
	for i, b := range r.Bytes() {
		if b != 0 {
			t.Fatalf("byte %d not zero: %d", i, b)
		}
	}

	// Write through the region
	copy(r.Bytes(), []byte("region test"))
	if string(r.Bytes()[:11]) != "region test" {
		t.Error("write through region not visible")
	}
}

func TestReserveInvalidSize(t *testing.T) {
	for _, size := range []int64{0, -1, -4096} {
		if _, err := Reserve("", size, ProtReadWrite, false, false); err != ErrInvalidSize {
			t.Errorf("size %d: expected ErrInvalidSize, got %v", size, err)
		}
	}
}

func TestReserveLazyCommit(t *testing.T) {
	size := 4 * Platform().PageSize

	r, err := Reserve("", size, ProtReadWrite, true, false)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Release()

	// Pages commit on first touch
	r.Bytes()[size-1] = 0xAB
	if r.Bytes()[size-1] != 0xAB {
		t.Error("write to lazily committed page not visible")
	}
}

func TestReserveReadOnly(t *testing.T) {
	size := Platform().PageSize

	r, err := Reserve("", size, ProtReadOnly, false, false)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Release()

	for i := range r.Bytes() {
		if r.Bytes()[i] != 0 {
			t.Fatalf("byte %d not zero", i)
		}
	}
}

func TestRetainRelease(t *testing.T) {
	r, err := Reserve("", Platform().PageSize, ProtReadWrite, false, false)
	if err != nil {
		t.Fatal(err)
	}

	r.Retain()

	// First release drops the creator's claim; the retained claim keeps
	// the pages mapped.
	if err := r.Release(); err != nil {
		t.Fatal(err)
	}
	if r.Bytes() == nil {
		t.Fatal("region unmapped while a claim was outstanding")
	}

	if err := r.Release(); err != nil {
		t.Fatal(err)
	}
	if r.Bytes() != nil {
		t.Error("region still mapped after last release")
	}

	// Extra release is a no-op
	if err := r.Release(); err != nil {
		t.Fatal(err)
	}
}

func TestFlush(t *testing.T) {
	r, err := Reserve("", Platform().PageSize, ProtReadWrite, false, false)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Release()

	copy(r.Bytes(), []byte("flush test"))
	if err := r.Flush(); err != nil {
		t.Errorf("Flush failed: %v", err)
	}
}

func TestNamedRegionGating(t *testing.T) {
	if Platform().NamingSupported {
		t.Skip("platform supports named regions")
	}

	_, err := Reserve("gating-test", Platform().PageSize, ProtReadWrite, false, false)
	if err != ErrNamingUnsupported {
		t.Errorf("expected ErrNamingUnsupported, got %v", err)
	}
}
