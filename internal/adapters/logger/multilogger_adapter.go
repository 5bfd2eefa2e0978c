package logger_adapter

import (
	"brokerage-service/internal/core/port"
	"fmt"
)

// fanout рассылает каждую запись во все подключенные логгеры (консоль и Fluent Bit)
type fanout []port.LoggerPort

// NewMultiloggerAdapter пропускает nil-логгеры; единственный оставшийся возвращается как есть
func NewMultiloggerAdapter(loggers ...port.LoggerPort) (port.LoggerPort, error) {
	var sinks fanout
	for _, l := range loggers {
		if l != nil {
			sinks = append(sinks, l)
		}
	}
	switch len(sinks) {
	case 0:
		return nil, fmt.Errorf("multilogger: at least one logger is required")
	case 1:
		return sinks[0], nil
	}
	return sinks, nil
}

func (f fanout) each(write func(port.LoggerPort)) {
	for _, l := range f {
		write(l)
	}
}

func (f fanout) Debug(msg string, fields port.Fields) {
	f.each(func(l port.LoggerPort) { l.Debug(msg, fields) })
}

func (f fanout) Info(msg string, fields port.Fields) {
	f.each(func(l port.LoggerPort) { l.Info(msg, fields) })
}

func (f fanout) Warn(msg string, fields port.Fields) {
	f.each(func(l port.LoggerPort) { l.Warn(msg, fields) })
}

func (f fanout) Error(msg string, err error, fields port.Fields) {
	f.each(func(l port.LoggerPort) { l.Error(msg, err, fields) })
}

func (f fanout) WithFields(fields port.Fields) port.LoggerPort {
	child := make(fanout, 0, len(f))
	f.each(func(l port.LoggerPort) { child = append(child, l.WithFields(fields)) })
	return child
}
