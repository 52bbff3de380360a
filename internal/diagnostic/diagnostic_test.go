package diagnostic

import "testing"

func TestPassFailAndFailures(t *testing.T) {
	items := []Item{
		Pass("found %d", 3),
		Fail("missing %s", "Q1"),
		Fail("plain"),
	}
	if !items[0].Passed || items[0].Message != "found 3" {
		t.Fatalf("unexpected pass item %#v", items[0])
	}
	if items[1].Passed || items[1].Message != "missing Q1" {
		t.Fatalf("unexpected fail item %#v", items[1])
	}
	if got := Failures(items); got != 2 {
		t.Fatalf("Failures = %d, want 2", got)
	}
}
