package material

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Material
		wantErr bool
	}{
		{"iron", Iron, false},
		{"Wood", Wood, false},
		{" rubber ", Rubber, false},
		{"GLASS", Glass, false},
		{"gold", Gold, false},
		{"steel", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownMaterial) {
					t.Fatalf("Parse(%q) err = %v, want ErrUnknownMaterial", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, m := range All {
		got, err := Parse(m.String())
		if err != nil || got != m {
			t.Errorf("Parse(%q) = %v, %v", m.String(), got, err)
		}
	}
	if Material(42).Valid() {
		t.Error("Material(42) should be invalid")
	}
}

func TestLookup(t *testing.T) {
	tbl := DefaultTable()
	p, err := tbl.Lookup(Glass)
	if err != nil {
		t.Fatalf("Lookup(Glass): %v", err)
	}
	if p.Color.G != 255 || p.Color.B != 255 {
		t.Errorf("glass colour = %v, want cyan", p.Color)
	}
	if _, err := tbl.Lookup(Material(9)); !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("Lookup(9) err = %v, want ErrUnknownMaterial", err)
	}
}

func TestTableValidate(t *testing.T) {
	tbl := DefaultTable()
	if err := tbl.Validate(); err != nil {
		t.Fatalf("default table invalid: %v", err)
	}

	bad := DefaultTable()
	bad[Rubber].Restitution = 1.5
	if err := bad.Validate(); err == nil {
		t.Error("expected error for restitution > 1")
	}

	bad = DefaultTable()
	bad[Gold].Density = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero density")
	}
}
