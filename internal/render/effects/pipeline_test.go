package effects

import "testing"

func TestPipelineAddRemoveReorder(t *testing.T) {
	p := NewPipeline()
	p.Add(&Brightness{EffectID: "a", Factor: 1})
	p.Add(&Brightness{EffectID: "b", Factor: 1})
	p.Add(&Brightness{EffectID: "c", Factor: 1})

	ids := func() []string {
		var out []string
		for _, proc := range p.List() {
			out = append(out, proc.ID())
		}
		return out
	}

	if got := ids(); len(got) != 3 {
		t.Fatalf("List() = %v, want 3 processors", got)
	}

	if !p.Reorder("c", 0) {
		t.Fatal("Reorder(c, 0) returned false")
	}
	got := ids()
	want := []string{"c", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after reorder, ids = %v, want %v", got, want)
		}
	}

	if !p.Remove("a") {
		t.Fatal("Remove(a) returned false")
	}
	got = ids()
	if len(got) != 2 || got[0] != "c" || got[1] != "b" {
		t.Fatalf("after remove, ids = %v, want [c b]", got)
	}

	if p.Remove("nonexistent") {
		t.Error("Remove(nonexistent) should return false")
	}
	if p.Reorder("nonexistent", 0) {
		t.Error("Reorder(nonexistent, 0) should return false")
	}
}
