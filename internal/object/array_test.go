package object

import "testing"

func TestNewArrayLength(t *testing.T) {
	arr := NewArray(nil, []Value{Number(1), Number(2), Number(3)})
	if got := ArrayLength(arr); got != 3 {
		t.Fatalf("ArrayLength() = %d, want 3", got)
	}
	v, ok := arr.Get("1")
	if !ok || v != Number(2) {
		t.Fatalf("arr[1] = %v, %v; want 2, true", v, ok)
	}
}

func TestSetArrayIndexRaisesLength(t *testing.T) {
	arr := NewArray(nil, nil)
	SetArrayIndex(arr, 5, String("x"))
	if got := ArrayLength(arr); got != 6 {
		t.Fatalf("ArrayLength() after SetArrayIndex(5) = %d, want 6", got)
	}
	v, ok := arr.Get("5")
	if !ok || v != String("x") {
		t.Fatalf("arr[5] = %v, %v; want x, true", v, ok)
	}
}

func TestSetArrayLengthTruncates(t *testing.T) {
	arr := NewArray(nil, []Value{Number(1), Number(2), Number(3), Number(4)})
	SetArrayLength(arr, 2)

	if got := ArrayLength(arr); got != 2 {
		t.Fatalf("ArrayLength() after truncation = %d, want 2", got)
	}
	if arr.HasOwn("2") || arr.HasOwn("3") {
		t.Fatal("truncating length must delete indices at or above the new length")
	}
	if !arr.HasOwn("0") || !arr.HasOwn("1") {
		t.Fatal("truncating length must keep indices below the new length")
	}
}

func TestSetArrayLengthGrowCreatesNoHoles(t *testing.T) {
	arr := NewArray(nil, []Value{Number(1)})
	SetArrayLength(arr, 5)

	if got := ArrayLength(arr); got != 5 {
		t.Fatalf("ArrayLength() after growth = %d, want 5", got)
	}
	if arr.HasOwn("1") {
		t.Fatal("raising length must not materialize hole properties")
	}
}

func TestIsArrayIndex(t *testing.T) {
	tests := []struct {
		key     string
		wantIdx uint32
		wantOK  bool
	}{
		{"0", 0, true},
		{"1", 1, true},
		{"42", 42, true},
		{"01", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		idx, ok := IsArrayIndex(tt.key)
		if ok != tt.wantOK || (ok && idx != tt.wantIdx) {
			t.Errorf("IsArrayIndex(%q) = %d, %v; want %d, %v", tt.key, idx, ok, tt.wantIdx, tt.wantOK)
		}
	}
}

func TestArrayElementsFillsHoles(t *testing.T) {
	arr := NewArray(nil, nil)
	SetArrayIndex(arr, 2, Number(9))

	got := ArrayElements(arr)
	want := []Value{Undefined{}, Undefined{}, Number(9)}
	if len(got) != len(want) {
		t.Fatalf("ArrayElements() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ArrayElements()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
