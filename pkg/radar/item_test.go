package radar

import "testing"

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"Languages & Frameworks": "languagesframeworks",
		"languages-frameworks":   "languagesframeworks",
		"  Tools  ":              "tools",
		"ADOPT":                  "adopt",
		"C++":                    "c",
		"Web 3.0":                "web30",
		"":                       "",
	}
	for in, want := range cases {
		if got := NormalizeKey(in); got != want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestItemKey(t *testing.T) {
	a := Item{Name: "Rust", Category: "Tools", Level: "Adopt"}
	b := Item{Name: "Go", Category: "tools!", Level: "ADOPT"}
	if a.Key() != b.Key() {
		t.Errorf("equivalent classifications should share a key: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() != "tools/adopt" {
		t.Errorf("Key = %q, want tools/adopt", a.Key())
	}

	c := Item{Name: "Rust", Category: "Platforms", Level: "Adopt"}
	if a.Key() == c.Key() {
		t.Error("different categories must not share a key")
	}
}
