package mq

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"dakabot/config"
)

const (
	// ReminderExchange 下班提醒使用的 topic exchange
	ReminderExchange = "attendance.topic"
	// ReminderQueue 下班提醒队列
	ReminderQueue = "attendance.clock_out.reminder"
	// ReminderRoutingKey 下班提醒路由键
	ReminderRoutingKey = "attendance.reminder.clock_out"
)

var (
	conn   *amqp.Connection
	connMu sync.RWMutex
)

func Init() error {
	url := config.Cfg.GetRabbitMQURL()

	c, err := amqp.Dial(url)
	if err != nil {
		return err
	}

	connMu.Lock()
	conn = c
	connMu.Unlock()

	return declareTopology()
}

func Connection() *amqp.Connection {
	connMu.RLock()
	defer connMu.RUnlock()
	return conn
}

// declareTopology 声明 exchange 和队列，幂等
func declareTopology() error {
	ch, err := Connection().Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(
		ReminderExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(
		ReminderQueue,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		return err
	}

	return ch.QueueBind(ReminderQueue, ReminderRoutingKey, ReminderExchange, false, nil)
}
