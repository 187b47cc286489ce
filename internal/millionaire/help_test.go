package millionaire

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestAudienceDistribution(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	const trials = 2000

	for _, correct := range Keys {
		totals := map[Key]int{}
		for range trials {
			d := audienceDistribution(rng, correct)
			if len(d) != 4 {
				t.Fatalf("keys = %v, want a..d", d)
			}
			sum := 0
			for _, k := range Keys {
				p, ok := d[k]
				if !ok {
					t.Fatalf("missing key %q in %v", k, d)
				}
				if p < 0 {
					t.Fatalf("negative share %d for %q", p, k)
				}
				sum += p
				totals[k] += p
			}
			if sum != 100 {
				t.Fatalf("shares sum to %d, want 100: %v", sum, d)
			}
		}
		for _, k := range wrongKeys(correct) {
			if totals[k] >= totals[correct] {
				t.Errorf("correct %q averaged %d, wrong %q averaged %d", correct, totals[correct]/trials, k, totals[k]/trials)
			}
		}
	}
}

func TestFiftyFifty(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	seen := map[Key]bool{}

	for range 200 {
		keys := fiftyFifty(rng, KeyC)
		if len(keys) != 2 {
			t.Fatalf("keys = %v, want 2", keys)
		}
		if keys[0] == keys[1] {
			t.Fatalf("duplicate key in %v", keys)
		}
		if keys[0] != KeyC && keys[1] != KeyC {
			t.Fatalf("correct key missing from %v", keys)
		}
		for _, k := range keys {
			if k != KeyC {
				seen[k] = true
			}
		}
	}
	if len(seen) != 3 {
		t.Errorf("wrong keys kept = %v, want all three over many trials", seen)
	}
}

func TestFriendCall(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	const trials = 1000
	right := 0

	for range trials {
		fc := friendCall(rng, KeyA)
		if !fc.Key.Valid() {
			t.Fatalf("invalid key %q", fc.Key)
		}
		if fc.Friend == "" {
			t.Fatal("empty friend name")
		}
		if fc.Key == KeyA {
			right++
		}
	}
	if right == trials {
		t.Error("friend was never wrong")
	}
	if right < trials/2 {
		t.Errorf("friend right %d/%d times, want a clear majority", right, trials)
	}
}

func TestGenerateHelp(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	tests := []struct {
		typ   HelpType
		check func(Help) bool
	}{
		{HelpAudience, func(h Help) bool { return len(h.Audience) == 4 }},
		{HelpFiftyFifty, func(h Help) bool { return len(h.FiftyFifty) == 2 }},
		{HelpFriendCall, func(h Help) bool { return h.FriendCall != nil }},
		{HelpDoubleAnswer, func(h Help) bool { return h.DoubleAnswer }},
	}
	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			h, err := generateHelp(rng, tt.typ, KeyB)
			if err != nil {
				t.Fatalf("generateHelp: %v", err)
			}
			if h.Type != tt.typ {
				t.Errorf("type = %q, want %q", h.Type, tt.typ)
			}
			if !tt.check(h) {
				t.Errorf("payload not set: %+v", h)
			}
		})
	}

	if _, err := generateHelp(rng, "phone_a_psychic", KeyB); !errors.Is(err, ErrUnknownHelp) {
		t.Errorf("err = %v, want ErrUnknownHelp", err)
	}
}

func TestParseHelpType(t *testing.T) {
	for _, ht := range HelpTypes {
		got, err := ParseHelpType(string(ht))
		if err != nil || got != ht {
			t.Errorf("ParseHelpType(%q) = %q, %v", ht, got, err)
		}
	}
	if _, err := ParseHelpType("audience"); !errors.Is(err, ErrUnknownHelp) {
		t.Errorf("err = %v, want ErrUnknownHelp", err)
	}
}
