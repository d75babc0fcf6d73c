package gomailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

type SMTPMailer struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	UseAuth   bool   `yaml:"useAuth"`
	TLSConfig *tls.Config
	Timeout   time.Duration `yaml:"timeout"`
}

func (m *SMTPMailer) tlsConfig() *tls.Config {
	if m.TLSConfig != nil {
		return m.TLSConfig
	}
	if m.Host == "localhost" {
		return &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         m.Host,
		}
	}
	return &tls.Config{
		ServerName: m.Host,
	}
}

// Send delivers over plain SMTP, or SMTPS when the port is 465. SMTP has
// no provider message id, so the first return value is always empty.
func (m *SMTPMailer) Send(email Email) (string, error) {
	headers := make(map[string]string)
	headers["From"] = email.From
	headers["To"] = strings.Join(email.To, ",")
	headers["Subject"] = email.Subject
	headers["MIME-Version"] = "1.0"
	if email.HTML != "" {
		headers["Content-Type"] = "text/html; charset=\"UTF-8\""
	} else {
		headers["Content-Type"] = "text/plain; charset=\"UTF-8\""
	}
	for k, v := range email.Headers {
		headers[k] = v
	}

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	if email.HTML != "" {
		msg.WriteString("\r\n" + email.HTML)
	} else {
		msg.WriteString("\r\n" + email.Text)
	}

	smtpAddr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	var auth smtp.Auth
	if m.UseAuth {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	if m.Port == 465 {
		conn, err := tls.Dial("tcp", smtpAddr, m.tlsConfig())
		if err != nil {
			return "", err
		}

		c, err := smtp.NewClient(conn, m.Host)
		if err != nil {
			return "", err
		}
		defer c.Close()

		if auth != nil {
			if err = c.Auth(auth); err != nil {
				return "", err
			}
		}
		if err = c.Mail(email.From); err != nil {
			return "", err
		}
		for _, recipient := range email.To {
			if err = c.Rcpt(recipient); err != nil {
				return "", err
			}
		}
		w, err := c.Data()
		if err != nil {
			return "", err
		}
		if _, err = w.Write([]byte(msg.String())); err != nil {
			return "", err
		}
		return "", w.Close()
	}

	return "", smtp.SendMail(smtpAddr, auth, email.From, email.To, []byte(msg.String()))
}
