package notifications

import (
	"context"
	"fmt"
)

// Message is a plain transactional email.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers a message through one mail backend.
type Sender interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// VerificationCodeMessage builds the email carrying a signup verification code.
func VerificationCodeMessage(to, code string) Message {
	return Message{
		To:      to,
		Subject: "Your UniDeals verification code",
		Text:    fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code),
		HTML:    fmt.Sprintf("<p>Your verification code is <strong>%s</strong>.</p><p>It expires in 10 minutes.</p>", code),
	}
}

// OrderConfirmedMessage notifies a client that their order was recorded.
func OrderConfirmedMessage(to, orderID, total string) Message {
	return Message{
		To:      to,
		Subject: "Your UniDeals order is confirmed",
		Text:    fmt.Sprintf("Order %s was placed. Total: %s MAD.", orderID, total),
		HTML:    fmt.Sprintf("<p>Order <strong>%s</strong> was placed.</p><p>Total: %s MAD.</p>", orderID, total),
	}
}
