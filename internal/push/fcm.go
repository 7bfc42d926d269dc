package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMSender sends reminders to a single registered device through Firebase
// Cloud Messaging.
type FCMSender struct {
	client *messaging.Client
	token  string
}

// NewFCMSender initializes the FCM client from a service-account
// credentials file. Called once at startup; a failure here means the push
// capability is unavailable for the lifetime of the process.
func NewFCMSender(ctx context.Context, credentialsPath, deviceToken string) (*FCMSender, error) {
	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}

	return &FCMSender{
		client: client,
		token:  deviceToken,
	}, nil
}

// Send delivers one notification to the configured device token.
func (s *FCMSender) Send(ctx context.Context, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Token: s.token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	return nil
}
