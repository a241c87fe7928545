package seqid

import "testing"

func TestDefaultRegistryHoldsAllKinds(t *testing.T) {
	r := DefaultRegistry()

	kinds := r.List()
	if len(kinds) != 7 {
		t.Fatalf("len(List()) = %d, want 7", len(kinds))
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1].Name > kinds[i].Name {
			t.Errorf("List() not sorted: %q before %q", kinds[i-1].Name, kinds[i].Name)
		}
	}

	fields := map[string]string{
		"user":                "uid",
		"food":                "fid",
		"order":               "oid",
		"delivery_person":     "did",
		"delivery_assignment": "did",
		"review":              "rid",
		"contact_message":     "cid",
	}
	for name, field := range fields {
		k, err := r.Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if k.Field != field {
			t.Errorf("Lookup(%q).Field = %q, want %q", name, k.Field, field)
		}
	}
}

func TestRegistryLookupUnknown(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Lookup("food"); err == nil {
		t.Error("expected error for unregistered kind")
	}
}

func TestRegistryVerify(t *testing.T) {
	r := DefaultRegistry()

	if err := r.Verify(Food); err != nil {
		t.Errorf("Verify(Food): %v", err)
	}

	tampered := Food
	tampered.Collection = "foods; DROP TABLE users"
	if err := r.Verify(tampered); err == nil {
		t.Error("expected Verify to reject a kind that differs from its registration")
	}
}
