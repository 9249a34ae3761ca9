package natsadapter

import (
	"context"
	"encoding/json"

	nats "github.com/nats-io/nats.go"
)

// EventPublisher fans out board events to sibling services. Publishing is
// fire-and-forget; a missing broker never fails the request.
type EventPublisher interface {
	UserRegistered(ctx context.Context, userID, nickname string) error
	PostCreated(ctx context.Context, postID uint, userID string) error
}

type eventPublisher struct {
	conn        *nats.Conn
	userSubject string
	postSubject string
}

func NewEventPublisher(conn *nats.Conn, userSubject, postSubject string) EventPublisher {
	return &eventPublisher{conn: conn, userSubject: userSubject, postSubject: postSubject}
}

func (p *eventPublisher) UserRegistered(_ context.Context, userID, nickname string) error {
	return publish(p.conn, p.userSubject, map[string]interface{}{"user_id": userID, "nickname": nickname})
}

func (p *eventPublisher) PostCreated(_ context.Context, postID uint, userID string) error {
	return publish(p.conn, p.postSubject, map[string]interface{}{"post_id": postID, "user_id": userID})
}

func publish(conn *nats.Conn, subject string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return conn.Publish(subject, data)
}
