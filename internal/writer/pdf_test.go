package writer

import "testing"

func TestOrderedByLength(t *testing.T) {
	got := orderedByLength([]Replacement{
		{Old: "张三", New: "[当事人二]"},
		{Old: "13812345678", New: "[电话一]"},
		{Old: "张三丰", New: "[当事人一]"},
	})

	want := []string{"13812345678", "张三丰", "张三"}
	for i, w := range want {
		if got[i].Old != w {
			t.Fatalf("ordered[%d].Old = %q, want %q", i, got[i].Old, w)
		}
	}
}

func TestOrderedByLength_RunesNotBytes(t *testing.T) {
	// Four ASCII runes outrank three CJK runes despite fewer bytes.
	got := orderedByLength([]Replacement{
		{Old: "张三丰", New: "x"},
		{Old: "abcd", New: "y"},
	})
	if got[0].Old != "abcd" {
		t.Errorf("ordered[0].Old = %q, want %q", got[0].Old, "abcd")
	}
}

func TestOrderedByLength_StableAndNonDestructive(t *testing.T) {
	in := []Replacement{
		{Old: "张三", New: "[当事人一]"},
		{Old: "李四", New: "[当事人二]"},
		{Old: "王五六", New: "[当事人三]"},
	}
	got := orderedByLength(in)

	// Equal-length needles keep their given order.
	if got[1].Old != "张三" || got[2].Old != "李四" {
		t.Errorf("equal lengths reordered: %q, %q", got[1].Old, got[2].Old)
	}
	// The input slice is left untouched.
	if in[0].Old != "张三" {
		t.Errorf("input mutated: %q", in[0].Old)
	}
}

func TestOverlapsClaimed(t *testing.T) {
	claimed := make([]bool, 10)
	for i := 3; i < 6; i++ {
		claimed[i] = true
	}

	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"before", 0, 3, false},
		{"after", 6, 10, false},
		{"inside", 4, 5, true},
		{"straddles start", 2, 4, true},
		{"straddles end", 5, 8, true},
		{"covers all", 0, 10, true},
		{"past the buffer", 8, 15, false},
		{"empty range", 4, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlapsClaimed(claimed, tt.start, tt.end); got != tt.want {
				t.Errorf("overlapsClaimed(%d, %d) = %t, want %t", tt.start, tt.end, got, tt.want)
			}
		})
	}
}
