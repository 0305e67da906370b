// internal/notification/notifier.go
// Fan-out for relationship events. Delivery is best effort: a failed email
// or socket push is logged and dropped, the stored edge already exists.

package notification

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/heartlinkapp/heartlink-backend/internal/relationship"
)

// Recipient is the delivery view of a user
type Recipient struct {
	ID          int64
	Username    string
	Email       *string
	PhoneNumber *string
}

// UserDirectory resolves user IDs to delivery addresses
type UserDirectory interface {
	GetRecipient(ctx context.Context, userID int64) (*Recipient, error)
}

// RealtimeSink pushes events to connected clients
type RealtimeSink interface {
	MatchFormed(userA, userB int64, channelID string)
	LikeReceived(receiverID int64)
}

// NopRealtimeSink discards realtime events
type NopRealtimeSink struct{}

func (NopRealtimeSink) MatchFormed(int64, int64, string) {}
func (NopRealtimeSink) LikeReceived(int64)               {}

// Config controls which channels fire
type Config struct {
	EnableEmail bool
	EnableSMS   bool
}

// Notifier delivers relationship events over email, SMS, and websockets
type Notifier struct {
	directory UserDirectory
	email     EmailService
	sms       SMSService
	realtime  RealtimeSink
	config    Config
}

// NewNotifier creates a notifier. realtime may be nil.
func NewNotifier(directory UserDirectory, email EmailService, sms SMSService, realtime RealtimeSink, config Config) *Notifier {
	if realtime == nil {
		realtime = NopRealtimeSink{}
	}
	return &Notifier{
		directory: directory,
		email:     email,
		sms:       sms,
		realtime:  realtime,
		config:    config,
	}
}

// NotifyMatch tells both users a match formed
func (n *Notifier) NotifyMatch(ctx context.Context, userA, userB int64) {
	channelID := relationship.ChannelID(userA, userB)
	n.realtime.MatchFormed(userA, userB, channelID)

	a, errA := n.directory.GetRecipient(ctx, userA)
	b, errB := n.directory.GetRecipient(ctx, userB)
	if errA != nil || errB != nil {
		logrus.WithFields(logrus.Fields{
			"user_a": userA,
			"user_b": userB,
		}).Warn("Failed to resolve match recipients")
		return
	}

	n.deliverMatch(ctx, a, b)
	n.deliverMatch(ctx, b, a)
}

// NotifyLike tells the receiver someone liked them. The sender's identity
// stays hidden until the receiver likes back or pays for the likers list.
func (n *Notifier) NotifyLike(ctx context.Context, _ int64, receiverID int64) {
	n.realtime.LikeReceived(receiverID)

	if !n.config.EnableEmail {
		return
	}

	recipient, err := n.directory.GetRecipient(ctx, receiverID)
	if err != nil {
		logrus.WithField("user_id", receiverID).Warn("Failed to resolve like recipient")
		return
	}
	if recipient.Email == nil {
		return
	}

	subject, body := newLikeEmail(recipient.Username)
	if err := n.email.Send(ctx, *recipient.Email, subject, body); err != nil {
		logrus.WithError(err).WithField("user_id", receiverID).Warn("Failed to send like email")
	}
}

func (n *Notifier) deliverMatch(ctx context.Context, to, other *Recipient) {
	if n.config.EnableEmail && to.Email != nil {
		subject, body := newMatchEmail(to.Username, other.Username)
		if err := n.email.Send(ctx, *to.Email, subject, body); err != nil {
			logrus.WithError(err).WithField("user_id", to.ID).Warn("Failed to send match email")
		}
	}

	if n.config.EnableSMS && to.PhoneNumber != nil {
		if err := n.sms.Send(*to.PhoneNumber, newMatchSMS(other.Username)); err != nil {
			logrus.WithError(err).WithField("user_id", to.ID).Warn("Failed to send match sms")
		}
	}
}
