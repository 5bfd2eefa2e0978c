package rabbitmq

import (
	"brokerage-service/internal/core/port"
	"brokerage-service/pkg/rabbitmq/rabbitmq_common"
	"fmt"
)

// brokerLogger отдает pkg/rabbitmq логгер в формате key-value поверх LoggerPort
type brokerLogger struct {
	log port.LoggerPort
}

// NewBrokerLogger привязывает логгер брокера к компоненту (conn_manager, producer)
func NewBrokerLogger(logger port.LoggerPort, component string) rabbitmq_common.Logger {
	return brokerLogger{log: logger.WithFields(port.Fields{"component": component})}
}

// pairs переводит чередующиеся ключи и значения в поля; непарный хвост
// сохраняется под ключом "extra"
func pairs(kv []interface{}) port.Fields {
	if len(kv) == 0 {
		return nil
	}
	fields := make(port.Fields, len(kv)/2+1)
	for len(kv) >= 2 {
		fields[fmt.Sprint(kv[0])] = kv[1]
		kv = kv[2:]
	}
	if len(kv) == 1 {
		fields["extra"] = kv[0]
	}
	return fields
}

func (b brokerLogger) Debug(msg string, kv ...interface{}) { b.log.Debug(msg, pairs(kv)) }
func (b brokerLogger) Info(msg string, kv ...interface{})  { b.log.Info(msg, pairs(kv)) }
func (b brokerLogger) Warn(msg string, kv ...interface{})  { b.log.Warn(msg, pairs(kv)) }
func (b brokerLogger) Error(err error, msg string, kv ...interface{}) {
	b.log.Error(msg, err, pairs(kv))
}
