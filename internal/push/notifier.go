// Package push delivers FCM notifications to registered devices.
// Delivery is strictly best-effort: no recipients and no configured
// credentials are silent no-ops, and failures are logged, never returned
// to the request that triggered them.
package push

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"fieldtrack-backend/config"
	"fieldtrack-backend/internal/repository"
)

type Notifier struct {
	client  *messaging.Client
	devices repository.DeviceRepository
}

// NewNotifier builds a notifier from FIREBASE_CREDENTIALS (path to a
// service account file). Without credentials the notifier stays disabled
// and every Send is a no-op.
func NewNotifier(ctx context.Context, devices repository.DeviceRepository) *Notifier {
	n := &Notifier{devices: devices}

	credentials := config.GetEnv("FIREBASE_CREDENTIALS", "")
	if credentials == "" {
		log.Warn().Msg("FIREBASE_CREDENTIALS not set, push notifications disabled")
		return n
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentials))
	if err != nil {
		log.Error().Err(err).Msg("firebase init failed, push notifications disabled")
		return n
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Error().Err(err).Msg("firebase messaging init failed, push notifications disabled")
		return n
	}

	n.client = client
	return n
}

// Send multicasts a notification to every device registered by the given
// users. Users without devices are simply skipped.
func (n *Notifier) Send(ctx context.Context, userIDs []string, title, body string, data map[string]string) {
	if n.client == nil {
		return
	}

	tokens, err := n.devices.TokensForUsers(userIDs)
	if err != nil {
		log.Error().Err(err).Msg("push: loading device tokens failed")
		return
	}
	if len(tokens) == 0 {
		return
	}

	message := &messaging.MulticastMessage{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data:   data,
		Tokens: tokens,
	}

	response, err := n.client.SendEachForMulticast(ctx, message)
	if err != nil {
		log.Error().Err(err).Msg("push: multicast failed")
		return
	}
	if response.FailureCount > 0 {
		log.Warn().
			Int("success", response.SuccessCount).
			Int("failure", response.FailureCount).
			Msg("push: partial delivery")
	}
}
