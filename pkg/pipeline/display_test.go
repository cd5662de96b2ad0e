package pipeline

import (
	"errors"
	"testing"
)

func TestDisplay(t *testing.T) {
	var d Display
	if _, ok := d.Current(); ok {
		t.Fatal("empty display should show nothing")
	}

	r1 := &Result{Seq: 1, CorpusID: "alice.txt"}
	r3 := &Result{Seq: 3, CorpusID: "divina_commedia.txt"}
	failure := errors.New("source unavailable")

	steps := []struct {
		name       string
		outcome    Outcome
		accepted   bool
		wantCorpus string
		wantErr    bool
	}{
		{"first result", Outcome{Seq: 1, Result: r1}, true, "alice.txt", false},
		{"newer failure keeps result", Outcome{Seq: 2, Err: failure}, true, "alice.txt", true},
		{"newer result replaces", Outcome{Seq: 3, Result: r3}, true, "divina_commedia.txt", false},
		{"stale failure ignored", Outcome{Seq: 2, Err: failure}, false, "divina_commedia.txt", false},
		{"stale result ignored", Outcome{Seq: 1, Result: r1}, false, "divina_commedia.txt", false},
	}

	for _, s := range steps {
		if got := d.Offer(s.outcome); got != s.accepted {
			t.Errorf("%s: Offer = %v, want %v", s.name, got, s.accepted)
		}
		shown, ok := d.Current()
		if !ok || shown.CorpusID != s.wantCorpus {
			t.Errorf("%s: shown = %v, want %s", s.name, shown, s.wantCorpus)
		}
		if (d.Err() != nil) != s.wantErr {
			t.Errorf("%s: Err() = %v, wantErr %v", s.name, d.Err(), s.wantErr)
		}
	}
}
