package services

import (
	"context"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"storyloom.com/storyloom/store"
)

// FCMPusher delivers push notifications over Firebase Cloud Messaging.
// Delivery is best-effort; tokens FCM reports as unregistered are
// removed from the device table so they are not retried forever.
type FCMPusher struct {
	client *messaging.Client
	st     store.DeviceStore
}

func NewFCMPusher(ctx context.Context, credentialsPath string, st store.DeviceStore) (*FCMPusher, error) {
	log.Printf("[FCM] Initializing Firebase with credentials: %s", credentialsPath)

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Printf("[FCM][ERROR] Failed to init Firebase app: %v", err)
		return nil, err
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("[FCM][ERROR] Failed to get messaging client: %v", err)
		return nil, err
	}

	log.Println("[FCM] Firebase Messaging client initialized successfully")
	return &FCMPusher{client: client, st: st}, nil
}

// Push sends one multicast to every registered device of a user.
func (p *FCMPusher) Push(ctx context.Context, userID int64, title, body string, data map[string]string) {
	tokens, err := p.st.DeviceTokensFor(ctx, userID)
	if err != nil {
		log.Printf("[FCM][ERROR] Failed to load tokens for user %d: %v", userID, err)
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

	response, err := p.client.SendEachForMulticast(ctx, message)
	if err != nil {
		log.Printf("[FCM][ERROR] Multicast send failed entirely: %v", err)
		return
	}

	log.Printf(
		"[FCM] Multicast result | user=%d success=%d failure=%d",
		userID,
		response.SuccessCount,
		response.FailureCount,
	)

	for i, resp := range response.Responses {
		if resp.Success {
			continue
		}

		token := tokens[i]
		log.Printf("[FCM][TOKEN ERROR] token=%s error=%v", token, resp.Error)

		if messaging.IsUnregistered(resp.Error) {
			log.Printf("[FCM] Deleting dead token: %s", token)
			if err := p.st.DeleteDeviceToken(ctx, token); err != nil {
				log.Printf("[FCM][ERROR] Failed to delete token %s: %v", token, err)
			}
		}
	}
}
