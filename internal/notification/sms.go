// internal/notification/sms.go

package notification

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSService sends text messages
type SMSService interface {
	Send(to, body string) error
}

// TwilioSMSService sends SMS through Twilio
type TwilioSMSService struct {
	client *twilio.RestClient
	from   string
}

// NewTwilioSMSService creates a Twilio-backed SMS service
func NewTwilioSMSService(accountSID, authToken, from string) *TwilioSMSService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSMSService{client: client, from: from}
}

func (s *TwilioSMSService) Send(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send sms via twilio: %w", err)
	}

	return nil
}

// MockSMSService logs instead of sending. Development only.
type MockSMSService struct{}

func (MockSMSService) Send(to, body string) error {
	logrus.WithFields(logrus.Fields{
		"to":   to,
		"body": body,
	}).Info("Mock SMS sent")
	return nil
}
