package pubsub

import (
	"context"
	"encoding/json"

	"github.com/RKmodz24/studio/pkg/xcontext"
)

// Pack is a single message of a topic.
type Pack struct {
	Key []byte
	Msg []byte
}

func NewPack(key string, obj any) (*Pack, error) {
	b, err := json.Marshal(obj)
	if err != nil {
		return nil, err
	}

	return &Pack{Key: []byte(key), Msg: b}, nil
}

type Publisher interface {
	Publish(context.Context, string, *Pack) error
}

type logPublisher struct{}

// NewLogPublisher returns a publisher which only writes messages to the
// context logger. It is used when no broker is configured.
func NewLogPublisher() *logPublisher {
	return &logPublisher{}
}

func (logPublisher) Publish(ctx context.Context, topic string, pack *Pack) error {
	xcontext.Logger(ctx).Debugf("Publish to %s: key=%s msg=%s", topic, pack.Key, pack.Msg)
	return nil
}
