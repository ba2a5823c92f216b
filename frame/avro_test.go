package frame

import (
	"bytes"
	"testing"
	"time"
)

func TestAvroRoundTrip(t *testing.T) {
	when := time.UnixMilli(1700000000000).UTC()

	f := New()
	if err := f.SetColumn("amount", []any{1.5, nil}); err != nil {
		t.Fatalf("SetColumn failed: %v", err)
	}
	if err := f.SetColumn("active", []any{true, false}); err != nil {
		t.Fatalf("SetColumn failed: %v", err)
	}
	if err := f.SetColumn("label", []any{"a", "b"}); err != nil {
		t.Fatalf("SetColumn failed: %v", err)
	}
	if err := f.SetColumn("seen", []any{when, nil}); err != nil {
		t.Fatalf("SetColumn failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteAvro(&buf, f); err != nil {
		t.Fatalf("WriteAvro failed: %v", err)
	}

	back, err := ReadAvro(&buf)
	if err != nil {
		t.Fatalf("ReadAvro failed: %v", err)
	}

	if got := back.NumRows(); got != 2 {
		t.Fatalf("NumRows = %d, want 2", got)
	}
	if got := back.Value("amount", 0); got != 1.5 {
		t.Errorf("amount[0] = %v, want 1.5", got)
	}
	if got := back.Value("amount", 1); got != nil {
		t.Errorf("amount[1] = %v, want nil", got)
	}
	if got := back.Value("active", 0); got != true {
		t.Errorf("active[0] = %v, want true", got)
	}
	if got := back.Value("label", 1); got != "b" {
		t.Errorf("label[1] = %v, want b", got)
	}
	if got := back.Value("seen", 0); !when.Equal(got.(time.Time)) {
		t.Errorf("seen[0] = %v, want %v", got, when)
	}
}

func TestReadAvroEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	f := New()

	if err := WriteAvro(&buf, f); err != nil {
		t.Fatalf("WriteAvro failed: %v", err)
	}

	back, err := ReadAvro(&buf)
	if err != nil {
		t.Fatalf("ReadAvro failed: %v", err)
	}
	if !back.Empty() {
		t.Error("round-tripped empty frame should be empty")
	}
}
