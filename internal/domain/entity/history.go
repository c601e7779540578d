package entity

// History is the ordered, append-only record of one conversation. The only
// way to drop turns is Replace, which swaps in a whole new sequence.
type History struct {
	turns []Turn
}

func NewHistory(turns ...Turn) *History {
	h := &History{}
	h.Replace(turns)
	return h
}

func (h *History) Append(t Turn) {
	h.turns = append(h.turns, t.clone())
}

func (h *History) Replace(turns []Turn) {
	next := make([]Turn, 0, len(turns))
	for _, t := range turns {
		next = append(next, t.clone())
	}
	h.turns = next
}

func (h *History) Len() int {
	return len(h.turns)
}

func (h *History) Turns() []Turn {
	result := make([]Turn, 0, len(h.turns))
	for _, t := range h.turns {
		result = append(result, t.clone())
	}
	return result
}

func (h *History) Last() (Turn, bool) {
	if len(h.turns) == 0 {
		return Turn{}, false
	}
	return h.turns[len(h.turns)-1].clone(), true
}

// Projection linearizes every turn to a string, oldest first.
func (h *History) Projection() []string {
	result := make([]string, 0, len(h.turns))
	for _, t := range h.turns {
		result = append(result, t.String())
	}
	return result
}
