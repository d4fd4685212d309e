package wikigraph

import (
	"reflect"
	"testing"
)

func collect(text string) []string {
	rv := []string{}
	for target := range LinkTargets([]byte(text)) {
		rv = append(rv, string(target))
	}
	return rv
}

func TestLinkTargets(t *testing.T) {
	tests := []struct {
		text string
		exp  []string
	}{
		{"[[Apple Inc]] and [[Apple|fruit]]", []string{"Apple Inc", "Apple"}},
		{"See [[Apple#History]].", []string{"Apple"}},
		{"See [[Apple#History|the story]].", []string{"Apple"}},
		{"[[A|x]] then [[B|y]] then [[C]]", []string{"A", "B", "C"}},
		// The alias stops at the first closing brackets.
		{"[[A|x]] [[B]]", []string{"A", "B"}},
		{"[\x00\x00[Padded]\x00]", []string{"Padded"}},
		{"[[#Local section]] only", []string{}},
		{"[[]] nothing", []string{}},
		{"no [links] here", []string{}},
		{"[[Broken|alias\ncontinues]] [[Next]]", []string{"Next"}},
		{"[[File:X.jpg|thumb|see [[Inner]]]] [[After]]", []string{"File:X.jpg", "After"}},
		{"", []string{}},
	}

	for _, test := range tests {
		got := collect(test.text)
		if !reflect.DeepEqual(got, test.exp) {
			t.Errorf("Expected %q for %q, got %q", test.exp, test.text, got)
		}
	}
}

func TestLinkTargetsRestartable(t *testing.T) {
	seq := LinkTargets([]byte("[[One]] [[Two]] [[Three]]"))

	var first, second []string
	for target := range seq {
		first = append(first, string(target))
	}
	for target := range seq {
		second = append(second, string(target))
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Expected the same links twice, got %q and %q", first, second)
	}
}

func TestLinkTargetsStopsEarly(t *testing.T) {
	n := 0
	for range LinkTargets([]byte("[[One]] [[Two]] [[Three]]")) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Fatalf("Expected to stop after 2, got %v", n)
	}
}

func TestScanLinksReportsEmpty(t *testing.T) {
	empties := 0
	var got []string
	scanLinks([]byte("[[#top]] [[Real]] [[|alias]]"), func(b []byte) bool {
		got = append(got, string(b))
		return true
	}, func() { empties++ })

	if empties != 2 {
		t.Errorf("Expected 2 empty links, got %v", empties)
	}
	if !reflect.DeepEqual(got, []string{"Real"}) {
		t.Errorf("Expected [Real], got %q", got)
	}
}
