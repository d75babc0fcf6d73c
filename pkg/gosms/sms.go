package gosms

// Sender sends one SMS and returns the provider message sid when the
// provider exposes one.
type Sender interface {
	Send(SMS) (string, error)
}

type SMS struct {
	To   string `json:"to"`
	Text string `json:"text,omitempty"`
}

func NewSMS(to, text string) SMS {
	return SMS{
		To:   to,
		Text: text,
	}
}
