// Package kafka 提供了向 Kafka 发送生成用量事件的功能。
// 事件由外部的分析服务消费，本服务只做生产者。
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fasto-go/internal/config"
	"fasto-go/pkg/log"

	"github.com/segmentio/kafka-go"
)

// GenerationEvent 描述一次工具或聊天生成的结果，用于用量统计。
type GenerationEvent struct {
	Tool      string `json:"tool"`
	UserID    uint   `json:"userId"`
	Success   bool   `json:"success"`
	LatencyMs int64  `json:"latencyMs"`
	Timestamp int64  `json:"timestamp"`
}

var producer *kafka.Writer

// InitProducer 初始化 Kafka 生产者。
func InitProducer(cfg config.KafkaConfig) {
	producer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka 生产者初始化成功")
}

// PublishGenerationEvent 发送一条生成用量事件。
// 发送失败只记录日志，不影响请求本身。
func PublishGenerationEvent(event GenerationEvent) {
	if producer == nil {
		return
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		log.Errorf("无法序列化用量事件: %v", err)
		return
	}

	err = producer.WriteMessages(context.Background(),
		kafka.Message{
			Value: eventBytes,
		},
	)
	if err != nil {
		log.Errorf("发送用量事件失败: tool=%s, err=%v", event.Tool, err)
	}
}
