package engine

import "testing"

func TestParseCategory(t *testing.T) {
	cases := map[string]Category{
		"sports":     CategorySports,
		"Sports":     CategorySports,
		"kitchen":    CategoryKitchen,
		"handicraft": CategoryHandicraft,
		"craft":      CategoryHandicraft,
	}
	for in, want := range cases {
		got, ok := ParseCategory(in)
		if !ok || got != want {
			t.Errorf("ParseCategory(%q)=%v,%v, want %v", in, got, ok, want)
		}
	}
	if _, ok := ParseCategory("fishing"); ok {
		t.Error("ParseCategory(fishing) must fail")
	}
}

func TestParseTarget(t *testing.T) {
	if got, ok := ParseTarget("course"); !ok || got != TargetCourse {
		t.Fatalf("ParseTarget(course)=%v,%v", got, ok)
	}
	if got, ok := ParseTarget("WORK"); !ok || got != TargetWork {
		t.Fatalf("ParseTarget(WORK)=%v,%v", got, ok)
	}
	if _, ok := ParseTarget("nap"); ok {
		t.Fatal("ParseTarget(nap) must fail")
	}
}
