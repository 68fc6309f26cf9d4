package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/mq-api"
)

type ResultEventProducer struct {
	released mq.Producer
}

func NewResultEventProducer(q mq.MQ) (*ResultEventProducer, error) {
	released, err := q.Producer(ResultReleasedEvent{}.Topic())
	if err != nil {
		return nil, err
	}
	return &ResultEventProducer{released: released}, nil
}

func (p *ResultEventProducer) ProduceReleased(ctx context.Context, evt ResultReleasedEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("序列化事件失败: %w", err)
	}
	_, err = p.released.Produce(ctx, &mq.Message{Value: data})
	if err != nil {
		return fmt.Errorf("发送事件失败: %w", err)
	}
	return nil
}
