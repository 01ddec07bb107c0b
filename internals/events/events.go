package events

import (
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const (
	SubjectPostLiked     = "stogie.posts.liked"
	SubjectPostUnliked   = "stogie.posts.unliked"
	SubjectPostCommented = "stogie.posts.commented"
	SubjectPostCreated   = "stogie.posts.created"
	SubjectUserFollowed  = "stogie.users.followed"
	SubjectReviewCreated = "stogie.cigars.reviewed"
)

// Activity is the payload of every event; consumers (notifications, analytics)
// key on Subject and ignore fields they do not know.
type Activity struct {
	ActorID   uuid.UUID  `json:"actor_id"`
	PostID    *uuid.UUID `json:"post_id,omitempty"`
	TargetID  *uuid.UUID `json:"target_id,omitempty"`
	Count     *int64     `json:"count,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Publisher emits activity events. Publishing never fails the caller's request.
type Publisher interface {
	Publish(subject string, a Activity)
	Close()
}

type NATSPublisher struct {
	conn *nats.Conn
}

// NewNATSPublisher connects to url (nats.DefaultURL when empty).
func NewNATSPublisher(url string) (*NATSPublisher, error) {
	if url == "" {
		url = nats.DefaultURL
	}
	nc, err := nats.Connect(url,
		nats.Name("stogie-backend"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				log.Printf("[WARN] nats disconnected: %v", err)
			}
		}),
	)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] nats connected to %s", url)
	return &NATSPublisher{conn: nc}, nil
}

func (p *NATSPublisher) Publish(subject string, a Activity) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	data, err := sonic.Marshal(a)
	if err != nil {
		log.Printf("[WARN] event %s marshal: %v", subject, err)
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		log.Printf("[WARN] event %s publish: %v", subject, err)
	}
}

func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}

// Noop is used when NATS_URL is unset.
type Noop struct{}

func (Noop) Publish(string, Activity) {}
func (Noop) Close()                   {}
