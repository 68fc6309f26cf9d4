package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/mq-api"
)

type SubmissionEventProducer struct {
	locked   mq.Producer
	revision mq.Producer
}

func NewSubmissionEventProducer(q mq.MQ) (*SubmissionEventProducer, error) {
	locked, err := q.Producer(SubmissionLockedEvent{}.Topic())
	if err != nil {
		return nil, err
	}
	revision, err := q.Producer(RevisionRequestedEvent{}.Topic())
	if err != nil {
		return nil, err
	}
	return &SubmissionEventProducer{locked: locked, revision: revision}, nil
}

func (p *SubmissionEventProducer) ProduceLocked(ctx context.Context, evt SubmissionLockedEvent) error {
	return p.produce(ctx, p.locked, evt)
}

func (p *SubmissionEventProducer) ProduceRevisionRequested(ctx context.Context, evt RevisionRequestedEvent) error {
	return p.produce(ctx, p.revision, evt)
}

func (p *SubmissionEventProducer) produce(ctx context.Context, producer mq.Producer, evt any) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}
	_, err = producer.Produce(ctx, &mq.Message{Value: data})
	if err != nil {
		return fmt.Errorf("发送事件失败: %w", err)
	}
	return nil
}
