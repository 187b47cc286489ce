package millionaire

import (
	"fmt"
	"slices"
)

// HelpType names one of the helps a player can use once per game.
type HelpType string

const (
	HelpAudience     HelpType = "audience_help"
	HelpFiftyFifty   HelpType = "fifty_fifty"
	HelpFriendCall   HelpType = "friend_call"
	HelpDoubleAnswer HelpType = "double_answer"
)

// HelpTypes lists every help type.
var HelpTypes = []HelpType{HelpAudience, HelpFiftyFifty, HelpFriendCall, HelpDoubleAnswer}

func ParseHelpType(s string) (HelpType, error) {
	t := HelpType(s)
	if !slices.Contains(HelpTypes, t) {
		return "", fmt.Errorf("%w: %q", ErrUnknownHelp, s)
	}
	return t, nil
}

// Help is a tagged union: Type selects which of the payload fields is set.
type Help struct {
	Type HelpType `json:"type"`

	// HelpAudience: percentage per key, summing to 100.
	Audience map[Key]int `json:"audience,omitempty"`

	// HelpFiftyFifty: the two keys left on the board.
	FiftyFifty []Key `json:"fiftyFifty,omitempty"`

	// HelpFriendCall: the friend's suggestion.
	FriendCall *FriendCall `json:"friendCall,omitempty"`

	// HelpDoubleAnswer: two keys may be submitted for the question.
	DoubleAnswer bool `json:"doubleAnswer,omitempty"`
}

type FriendCall struct {
	Friend string `json:"friend"`
	Key    Key    `json:"key"`
}

func (f FriendCall) String() string {
	return fmt.Sprintf("%s thinks the answer is %s", f.Friend, f.Key)
}

// HelpHash is the per-question record of applied helps.
type HelpHash map[HelpType]Help

const (
	audienceBiasChance = 8 // out of 10
	friendRightChance  = 8 // out of 10
)

var friends = []string{"Alice", "Boris", "Carmen", "Dmitri", "Esther", "Farid"}

func generateHelp(rng Rand, t HelpType, correct Key) (Help, error) {
	switch t {
	case HelpAudience:
		return Help{Type: t, Audience: audienceDistribution(rng, correct)}, nil
	case HelpFiftyFifty:
		return Help{Type: t, FiftyFifty: fiftyFifty(rng, correct)}, nil
	case HelpFriendCall:
		fc := friendCall(rng, correct)
		return Help{Type: t, FriendCall: &fc}, nil
	case HelpDoubleAnswer:
		return Help{Type: t, DoubleAnswer: true}, nil
	default:
		return Help{}, fmt.Errorf("%w: %q", ErrUnknownHelp, t)
	}
}

func wrongKeys(correct Key) []Key {
	out := make([]Key, 0, len(Keys)-1)
	for _, k := range Keys {
		if k != correct {
			out = append(out, k)
		}
	}
	return out
}

// audienceDistribution draws a random vote weight per key, usually gives the
// correct key a large bonus, and scales the weights to whole percentages
// that sum to exactly 100 (largest remainder).
func audienceDistribution(rng Rand, correct Key) map[Key]int {
	var weights [len(Keys)]int
	total := 0
	for i, k := range Keys {
		w := 1 + rng.IntN(45)
		if k == correct && rng.IntN(10) < audienceBiasChance {
			w += 40 + rng.IntN(21)
		}
		weights[i] = w
		total += w
	}

	out := make(map[Key]int, len(Keys))
	var rems [len(Keys)]int
	assigned := 0
	for i, k := range Keys {
		p := weights[i] * 100
		out[k] = p / total
		rems[i] = p % total
		assigned += out[k]
	}
	for ; assigned < 100; assigned++ {
		best := 0
		for i := range rems {
			if rems[i] > rems[best] {
				best = i
			}
		}
		out[Keys[best]]++
		rems[best] = -1
	}
	return out
}

func fiftyFifty(rng Rand, correct Key) []Key {
	wrong := wrongKeys(correct)
	keep := []Key{correct, wrong[rng.IntN(len(wrong))]}
	slices.Sort(keep)
	return keep
}

func friendCall(rng Rand, correct Key) FriendCall {
	friend := friends[rng.IntN(len(friends))]
	key := correct
	if rng.IntN(10) >= friendRightChance {
		wrong := wrongKeys(correct)
		key = wrong[rng.IntN(len(wrong))]
	}
	return FriendCall{Friend: friend, Key: key}
}
