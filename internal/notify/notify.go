// Package notify covers the two environment-driven collaborators:
// outbound visitor notification mail and the dynamic-DNS refresh ping.
// Both are silently disabled unless their variables are set; absence is
// an expected configuration, never an error surfaced to the visitor.
package notify

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	gomail "gopkg.in/gomail.v2"
)

// ErrMisconfigured is returned when the notification env vars are not
// all present. Callers check it with errors.Is and proceed without
// notifying.
var ErrMisconfigured = errors.New("нужны переменные NOTIFICATION_USERNAME, NOTIFICATION_PASSWORD, DESTINATION_EMAIL_ADDRESS и APP_NAME")

const (
	smtpHost = "smtp.gmail.com"
	smtpPort = 587
)

// Send mails the contents to the configured destination.
func Send(contents string) error {
	username := os.Getenv("NOTIFICATION_USERNAME")
	password := os.Getenv("NOTIFICATION_PASSWORD")
	destination := os.Getenv("DESTINATION_EMAIL_ADDRESS")
	appName := os.Getenv("APP_NAME")

	if username == "" || password == "" || destination == "" || appName == "" {
		return ErrMisconfigured
	}

	m := gomail.NewMessage()
	m.SetHeader("From", username)
	m.SetHeader("To", destination)
	m.SetHeader("Subject", fmt.Sprintf("Notification from %s", appName))
	m.SetBody("text/plain", contents)

	return gomail.NewDialer(smtpHost, smtpPort, username, password).DialAndSend(m)
}

// RefreshDynDNS pings the configured dyndns URL so the server's public
// name stays current. Without DYNDNS_URL it does nothing.
func RefreshDynDNS() error {
	url := os.Getenv("DYNDNS_URL")
	if url == "" {
		return nil
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("dyndns ответил статусом %s", resp.Status)
	}
	return nil
}
