package rule

import (
	"fmt"
	"testing"
)

func TestNewCharacterSet_Normalization(t *testing.T) {
	tests := []struct {
		ranges []CharRange
		want   string
	}{
		{
			ranges: nil,
			want:   "{}",
		},
		{
			ranges: []CharRange{{From: 0x61, To: 0x61}},
			want:   "{61}",
		},
		// Unordered input is sorted.
		{
			ranges: []CharRange{{From: 0x41, To: 0x5a}, {From: 0x30, To: 0x39}},
			want:   "{30..39, 41..5A}",
		},
		// Overlapping ranges are merged.
		{
			ranges: []CharRange{{From: 0x10, To: 0x20}, {From: 0x18, To: 0x30}},
			want:   "{10..30}",
		},
		// Adjacent ranges are merged.
		{
			ranges: []CharRange{{From: 0x10, To: 0x20}, {From: 0x21, To: 0x30}},
			want:   "{10..30}",
		},
		// An inverted range denotes nothing.
		{
			ranges: []CharRange{{From: 0x20, To: 0x10}},
			want:   "{}",
		},
		// The extremes of the byte space are legal members.
		{
			ranges: []CharRange{{From: 0x00, To: 0x00}, {From: 0xff, To: 0xff}},
			want:   "{00, FF}",
		},
		// A range reaching 0xFF does not wrap around.
		{
			ranges: []CharRange{{From: 0xfe, To: 0xff}, {From: 0x00, To: 0x01}},
			want:   "{00..01, FE..FF}",
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			cs := NewCharacterSet(tt.ranges...)
			if cs.String() != tt.want {
				t.Fatalf("unexpected set; want: %v, got: %v", tt.want, cs)
			}
		})
	}
}

func TestCharacterSet_Includes(t *testing.T) {
	cs := NewCharacterSet(CharRange{From: 0x30, To: 0x39}, CharRange{From: 0x61, To: 0x61})
	for v := 0; v <= 0xff; v++ {
		want := v >= 0x30 && v <= 0x39 || v == 0x61
		if got := cs.Includes(byte(v)); got != want {
			t.Fatalf("unexpected membership of %02X; want: %v, got: %v", v, want, got)
		}
	}
}

func TestCharacterSet_Operations(t *testing.T) {
	set := func(ranges ...CharRange) CharacterSet {
		return NewCharacterSet(ranges...)
	}
	r := func(from, to byte) CharRange {
		return CharRange{From: from, To: to}
	}

	tests := []struct {
		a    CharacterSet
		b    CharacterSet
		op   string
		want string
	}{
		{a: set(r(0x10, 0x20)), b: set(r(0x30, 0x40)), op: "union", want: "{10..20, 30..40}"},
		{a: set(r(0x10, 0x20)), b: set(r(0x18, 0x30)), op: "union", want: "{10..30}"},
		{a: set(), b: set(r(0x10, 0x20)), op: "union", want: "{10..20}"},
		{a: set(r(0x10, 0x20)), b: set(r(0x30, 0x40)), op: "intersect", want: "{}"},
		{a: set(r(0x10, 0x20)), b: set(r(0x18, 0x30)), op: "intersect", want: "{18..20}"},
		{a: set(r(0x10, 0x20), r(0x30, 0x40)), b: set(r(0x18, 0x38)), op: "intersect", want: "{18..20, 30..38}"},
		{a: set(r(0x10, 0x20)), b: set(r(0x10, 0x20)), op: "intersect", want: "{10..20}"},
		{a: set(r(0x10, 0x20)), b: set(r(0x15, 0x18)), op: "subtract", want: "{10..14, 19..20}"},
		{a: set(r(0x10, 0x20)), b: set(r(0x10, 0x20)), op: "subtract", want: "{}"},
		{a: set(r(0x10, 0x20)), b: set(r(0x00, 0x15)), op: "subtract", want: "{16..20}"},
		{a: set(r(0x10, 0x20)), b: set(r(0x18, 0xff)), op: "subtract", want: "{10..17}"},
		{a: set(r(0x00, 0xff)), b: set(r(0x00, 0x00), r(0xff, 0xff)), op: "subtract", want: "{01..FE}"},
		{a: set(r(0x10, 0x20)), b: set(r(0x30, 0x40)), op: "subtract", want: "{10..20}"},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v %v", i, tt.op), func(t *testing.T) {
			var got CharacterSet
			switch tt.op {
			case "union":
				got = tt.a.Union(tt.b)
			case "intersect":
				got = tt.a.Intersect(tt.b)
			case "subtract":
				got = tt.a.Subtract(tt.b)
			}
			if got.String() != tt.want {
				t.Fatalf("unexpected set; want: %v, got: %v", tt.want, got)
			}
		})
	}
}

func TestCharacterSet_Equal(t *testing.T) {
	a := NewCharacterSet(CharRange{From: 0x10, To: 0x20}, CharRange{From: 0x21, To: 0x30})
	b := NewCharacterSet(CharRange{From: 0x10, To: 0x30})
	if !a.Equal(b) {
		t.Fatalf("%v and %v must be equal", a, b)
	}
	c := NewCharacterSet(CharRange{From: 0x10, To: 0x2f})
	if a.Equal(c) {
		t.Fatalf("%v and %v must not be equal", a, c)
	}
}
