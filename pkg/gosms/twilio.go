package gosms

import (
	"fmt"
	"time"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

type TwilioSender struct {
	FromNumber string        `yaml:"fromNumber"`
	AccountSID string        `yaml:"accountSid"`
	AuthToken  string        `yaml:"authToken"`
	Timeout    time.Duration `yaml:"timeout"`
	Client     *twilio.RestClient
}

func NewTwilioSender(accountSid, authToken, fromNumber string) *TwilioSender {
	client := twilio.NewRestClientWithParams(
		twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		})

	return &TwilioSender{
		FromNumber: fromNumber,
		AccountSID: accountSid,
		AuthToken:  authToken,
		Client:     client,
		Timeout:    10 * time.Second,
	}
}

func (t *TwilioSender) Send(s SMS) (string, error) {
	if t.Client == nil {
		t.Client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: t.AccountSID,
			Password: t.AuthToken,
		})
	}

	params := &api.CreateMessageParams{}
	params.SetBody(s.Text)
	params.SetFrom(t.FromNumber)
	params.SetTo(s.To)

	resp, err := t.Client.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("twilio send error: %w", err)
	}
	if resp.Sid != nil {
		return *resp.Sid, nil
	}
	return "", nil
}
