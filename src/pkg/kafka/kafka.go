package kafka

import (
	"fmt"

	"github.com/IBM/sarama"

	"booking-service/src/pkg/log"
)

// Producer is the publishing contract used by gateway/messaging. A nil Producer
// means eventing is disabled in configuration.
type Producer interface {
	Publish(message *sarama.ProducerMessage) error
	Close() error
}

type KafkaConfig struct {
	Brokers  []string
	Username string
	Password string
	AppName  string
}

var kafkaConfig KafkaConfig

func InitKafkaConfig(cfg KafkaConfig) KafkaConfig {
	kafkaConfig = cfg
	return kafkaConfig
}

func GetConfig() KafkaConfig {
	return kafkaConfig
}

func (kc KafkaConfig) GetSaramaConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = kc.AppName
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 3
	if kc.Username != "" {
		cfg.Net.SASL.Enable = true
		cfg.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		cfg.Net.SASL.User = kc.Username
		cfg.Net.SASL.Password = kc.Password
	}
	return cfg
}

type producer struct {
	sync sarama.SyncProducer
	log  log.Log
}

func NewProducer(cfg KafkaConfig, logger log.Log) (Producer, error) {
	sp, err := sarama.NewSyncProducer(cfg.Brokers, cfg.GetSaramaConfig())
	if err != nil {
		return nil, err
	}
	return &producer{sync: sp, log: logger}, nil
}

func (p *producer) Publish(message *sarama.ProducerMessage) error {
	partition, offset, err := p.sync.SendMessage(message)
	if err != nil {
		p.log.Error("kafka", err.Error(), "Publish", message.Topic)
		return err
	}
	p.log.Debug("kafka", fmt.Sprintf("published partition=%d offset=%d", partition, offset), "Publish", message.Topic)
	return nil
}

func (p *producer) Close() error {
	return p.sync.Close()
}
