package assistant

import "github.com/seojinpark/nabi/internal/llm"

// maxWindowTurns caps the conversation window at 5 exchanges.
const maxWindowTurns = 10

// Window is the bounded conversation history for free-chat turns. Once the
// window grows past its cap it is cleared entirely rather than trimmed from
// the front: a full reset is cheaper and the model re-establishes context on
// the next exchange. Owned by a single Service; not safe for concurrent use.
type Window struct {
	turns []llm.Message
}

// Turns returns the current window contents.
func (w *Window) Turns() []llm.Message {
	return w.turns
}

// Len returns the number of turns currently held.
func (w *Window) Len() int {
	return len(w.turns)
}

// Append adds one turn and resets the window when it exceeds the cap.
func (w *Window) Append(role, content string) {
	w.turns = append(w.turns, llm.Message{Role: role, Content: content})
	if len(w.turns) > maxWindowTurns {
		w.turns = nil
	}
}
