package responsive

// Focusable is implemented by elements that can take keyboard focus.
type Focusable interface {
	Focus()
}

// FocusDelta moves focus from current to the sibling delta positions away
// and returns it. It reports false, without moving focus, when current is
// not among siblings, the target is out of range, or the target cannot take
// focus.
func FocusDelta[T comparable](siblings []T, current T, delta int) (T, bool) {
	var zero T

	index := -1
	for i, s := range siblings {
		if s == current {
			index = i
			break
		}
	}
	if index == -1 {
		return zero, false
	}

	next := index + delta
	if next < 0 || next >= len(siblings) {
		return zero, false
	}

	target, ok := any(siblings[next]).(Focusable)
	if !ok {
		return zero, false
	}
	target.Focus()

	return siblings[next], true
}
