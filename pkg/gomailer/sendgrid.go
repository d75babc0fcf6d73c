package gomailer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const sendgridSendURL = "https://api.sendgrid.com/v3/mail/send"

type SendGridMailer struct {
	APIKey   string        `yaml:"apiKey"`
	BaseURL  string        `yaml:"baseURL"`
	Timeout  time.Duration `yaml:"timeout"`
	FromName string        `yaml:"fromName"`
	FromMail string        `yaml:"fromMail"`
}

func NewSendGridMailer(apiKey, fromName, fromMail string) *SendGridMailer {
	return &SendGridMailer{
		APIKey:   apiKey,
		FromName: fromName,
		FromMail: fromMail,
		Timeout:  10 * time.Second,
	}
}

func (s *SendGridMailer) Send(e Email) (string, error) {
	from := mail.NewEmail(s.FromName, e.From)

	message := mail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = e.Subject

	p := mail.NewPersonalization()
	for _, to := range e.To {
		p.AddTos(mail.NewEmail("", to))
	}
	message.AddPersonalizations(p)

	if e.Text != "" {
		message.AddContent(mail.NewContent("text/plain", e.Text))
	}
	if e.HTML != "" {
		message.AddContent(mail.NewContent("text/html", e.HTML))
	}

	url := s.BaseURL
	if url == "" {
		url = sendgridSendURL
	}
	body := mail.GetRequestBody(message)
	request, err := http.NewRequestWithContext(context.Background(), "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	request.Header.Set("Authorization", "Bearer "+s.APIKey)
	request.Header.Set("Content-Type", "application/json")
	for k, v := range e.Headers {
		request.Header.Set(k, v)
	}

	timeout := s.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(request)
	if err != nil {
		return "", fmt.Errorf("sendgrid send error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("sendgrid API error: %d %s", resp.StatusCode, raw)
	}

	return resp.Header.Get("X-Message-Id"), nil
}
