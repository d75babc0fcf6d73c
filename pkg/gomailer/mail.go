package gomailer

// Mailer sends one email and returns the provider message id when the
// provider exposes one. Both provider clients satisfy it, so callers can
// swap smtp for sendgrid through config alone.
type Mailer interface {
	Send(Email) (string, error)
}

type Email struct {
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string
	Headers map[string]string
}

type EmailOption func(*Email)

func NewEmail(from string, to []string, opts ...EmailOption) Email {
	e := Email{
		From: from,
		To:   to,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func WithSubject(sub string) EmailOption {
	return func(e *Email) {
		e.Subject = sub
	}
}

func WithText(text string) EmailOption {
	return func(e *Email) {
		e.Text = text
	}
}

func WithHTML(html string) EmailOption {
	return func(e *Email) {
		e.HTML = html
	}
}

func WithHeader(key, value string) EmailOption {
	return func(e *Email) {
		if e.Headers == nil {
			e.Headers = make(map[string]string)
		}
		e.Headers[key] = value
	}
}
