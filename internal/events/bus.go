package events

// Publisher pushes state-change notifications out of the state model so a
// presentation layer can react without the model rendering anything itself.
// Topics are slash-delimited, e.g. "screens/SCREEN-0001/status".
type Publisher interface {
	Publish(topic string, payload any)
}

// Nop discards every event. Used when no broker is configured and in tests.
type Nop struct{}

func (Nop) Publish(string, any) {}
