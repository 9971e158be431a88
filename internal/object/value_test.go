package object

import (
	"math"
	"testing"
)

func TestNumberString(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"positive integer", 42, "42"},
		{"negative integer", -123, "-123"},
		{"zero", 0, "0"},
		{"fraction", 3.5, "3.5"},
		{"nan", math.NaN(), "NaN"},
		{"positive infinity", math.Inf(1), "Infinity"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Number(tt.value).String(); got != tt.want {
				t.Errorf("Number(%v).String() = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"undefined", Undefined{}, "undefined"},
		{"null", Null{}, "object"},
		{"boolean", Boolean(true), "boolean"},
		{"number", Number(1), "number"},
		{"string", String("x"), "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.TypeOf(); got != tt.want {
				t.Errorf("TypeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToBoolean(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"undefined", Undefined{}, false},
		{"null", Null{}, false},
		{"zero", Number(0), false},
		{"nan", Number(math.NaN()), false},
		{"nonzero", Number(1), true},
		{"empty string", String(""), false},
		{"nonempty string", String("a"), true},
		{"object", NewObject("Object", nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToBoolean(tt.v); got != tt.want {
				t.Errorf("ToBoolean(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want float64
	}{
		{"null", Null{}, 0},
		{"true", Boolean(true), 1},
		{"false", Boolean(false), 0},
		{"number string", String("  42  "), 42},
		{"empty string", String(""), 0},
		{"hex string", String("0x1A"), 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToNumber(tt.v); got != tt.want {
				t.Errorf("ToNumber(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}

	if got := ToNumber(String("not a number")); !math.IsNaN(got) {
		t.Errorf("ToNumber(garbage string) = %v, want NaN", got)
	}
	if got := ToNumber(Undefined{}); !math.IsNaN(got) {
		t.Errorf("ToNumber(undefined) = %v, want NaN", got)
	}
}
