package texture

import "testing"

func TestHashIsDeterministic(t *testing.T) {
	a := Hash("dev/concrete")
	b := Hash("dev/concrete")
	if a != b {
		t.Fatalf("Hash is not deterministic: %v != %v", a, b)
	}
}

func TestHashDistinguishesNames(t *testing.T) {
	if Hash("dev/concrete") == Hash("dev/metal") {
		t.Fatal("distinct texture names hashed to the same ID")
	}
}

func TestRegistryInternFirstNameWins(t *testing.T) {
	r := NewRegistry()
	// "costarring" and "liquid" have the same FNV-32 hash.
	id := r.Intern("costarring")
	r.Intern("liquid")

	if r.Len() != 1 {
		t.Fatalf("interning a colliding name should not grow the registry, Len() = %d", r.Len())
	}
	if got := r.Name(id); got != "costarring" {
		t.Fatalf("Name(id) = %q, want %q", got, "costarring")
	}
}

func TestRegistryInternDistinctNames(t *testing.T) {
	r := NewRegistry()
	idA := r.Intern("dev/concrete")
	idB := r.Intern("dev/metal")

	if idA == idB {
		t.Fatal("distinct names should intern to distinct IDs")
	}
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistryNameUnknownIDReturnsEmpty(t *testing.T) {
	r := NewRegistry()
	if got := r.Name(ID(12345)); got != "" {
		t.Fatalf("Name() for an unseen ID = %q, want empty string", got)
	}
}
