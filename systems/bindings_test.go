package systems

import "testing"

func TestEveryActionIsBound(t *testing.T) {
	seen := map[string]bool{}
	for a := ActionID(0); a < ActionCount; a++ {
		b, ok := Bindings[a]
		if !ok || len(b.Keys) == 0 {
			t.Fatalf("action %v has no key binding", a)
		}
		name := a.String()
		if name == "unknown" {
			t.Fatalf("action %d has no name", a)
		}
		if seen[name] {
			t.Fatalf("duplicate action name %q", name)
		}
		seen[name] = true
	}
}
