package millionaire

// GameQuestion is one question as it appears in a particular game.
type GameQuestion struct {
	ID       string
	Question Question

	// KeyMap maps each option key to an index into Question.Answers. It is
	// shuffled once when the game is created and stored with it.
	KeyMap map[Key]int

	HelpHash HelpHash
}

func newGameQuestion(rng Rand, q Question) *GameQuestion {
	slots := []int{0, 1, 2, 3}
	shuffle(rng, slots)

	km := make(map[Key]int, len(Keys))
	for i, k := range Keys {
		km[k] = slots[i]
	}
	return &GameQuestion{
		Question: q,
		KeyMap:   km,
		HelpHash: HelpHash{},
	}
}

func (gq *GameQuestion) Level() int   { return gq.Question.Level }
func (gq *GameQuestion) Text() string { return gq.Question.Text }

// Variants returns the answer text shown under each key.
func (gq *GameQuestion) Variants() map[Key]string {
	out := make(map[Key]string, len(gq.KeyMap))
	for k, slot := range gq.KeyMap {
		out[k] = gq.Question.Answers[slot]
	}
	return out
}

// CorrectKey returns the key mapped to the correct answer.
func (gq *GameQuestion) CorrectKey() Key {
	for _, k := range Keys {
		if gq.KeyMap[k] == 0 {
			return k
		}
	}
	return ""
}

// AnswerCorrect reports whether any of keys is the correct key.
func (gq *GameQuestion) AnswerCorrect(keys ...Key) bool {
	correct := gq.CorrectKey()
	for _, k := range keys {
		if k == correct {
			return true
		}
	}
	return false
}

// HasHelp reports whether help t was already applied to this question.
func (gq *GameQuestion) HasHelp(t HelpType) bool {
	_, ok := gq.HelpHash[t]
	return ok
}

// ApplyHelp generates the payload for t and stores it. It does not check
// whether t was already applied; Game.UseHelp does.
func (gq *GameQuestion) ApplyHelp(rng Rand, t HelpType) (Help, error) {
	h, err := generateHelp(rng, t, gq.CorrectKey())
	if err != nil {
		return Help{}, err
	}
	if gq.HelpHash == nil {
		gq.HelpHash = HelpHash{}
	}
	gq.HelpHash[t] = h
	return h, nil
}
