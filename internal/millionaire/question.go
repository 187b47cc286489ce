package millionaire

import "fmt"

// Question is a bank item. Answers[0] is always the correct answer; the
// order players see comes from the GameQuestion key map.
type Question struct {
	ID      string
	Level   int
	Text    string
	Answers [4]string
}

func (q Question) Validate() error {
	if q.Level < MinLevel || q.Level > MaxLevel {
		return fmt.Errorf("level %d out of range %d..%d", q.Level, MinLevel, MaxLevel)
	}
	if q.Text == "" {
		return fmt.Errorf("question text is empty")
	}
	for i, a := range q.Answers {
		if a == "" {
			return fmt.Errorf("answer %d is empty", i+1)
		}
	}
	return nil
}

// Key is an option letter shown to the player.
type Key string

const (
	KeyA Key = "a"
	KeyB Key = "b"
	KeyC Key = "c"
	KeyD Key = "d"
)

// Keys lists the option keys in display order.
var Keys = [4]Key{KeyA, KeyB, KeyC, KeyD}

func (k Key) Valid() bool {
	switch k {
	case KeyA, KeyB, KeyC, KeyD:
		return true
	}
	return false
}
