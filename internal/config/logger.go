package config

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultEventBufferSize = 100

// LogEvent is a captured log line.
type LogEvent struct {
	Time    time.Time     `json:"time" yaml:"time"`
	Level   logrus.Level  `json:"level" yaml:"level"`
	Message string        `json:"message" yaml:"message"`
	Data    logrus.Fields `json:"data,omitempty" yaml:"data,omitempty"`
}

// eventLogger is a logrus hook keeping the last warnings and errors in a ring
// buffer, so commands can show what went wrong even when the level hides it.
type eventLogger struct {
	eventBuffer []*LogEvent
	maxSize     int
	currentPos  int
	isFull      bool
	mu          sync.RWMutex
}

func newEventLogger(size int) *eventLogger {
	return &eventLogger{
		eventBuffer: make([]*LogEvent, size),
		maxSize:     size,
	}
}

func (t *eventLogger) Fire(entry *logrus.Entry) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	data := make(logrus.Fields, len(entry.Data))
	for k, v := range entry.Data {
		data[k] = v
	}

	t.eventBuffer[t.currentPos] = &LogEvent{
		Time:    entry.Time,
		Level:   entry.Level,
		Message: entry.Message,
		Data:    data,
	}
	t.currentPos = (t.currentPos + 1) % t.maxSize

	if t.currentPos == 0 {
		t.isFull = true
	}

	return nil
}

func (t *eventLogger) Levels() []logrus.Level {
	return []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
	}
}

// GetEvents returns the buffered events oldest first.
func (t *eventLogger) GetEvents() []*LogEvent {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.isFull {
		result := make([]*LogEvent, t.currentPos)
		copy(result, t.eventBuffer[:t.currentPos])
		return result
	}

	result := make([]*LogEvent, t.maxSize)
	copy(result, t.eventBuffer[t.currentPos:])
	copy(result[t.maxSize-t.currentPos:], t.eventBuffer[:t.currentPos])
	return result
}

func (t *eventLogger) GetRecentEvents(count int) []*LogEvent {
	events := t.GetEvents()
	if len(events) <= count {
		return events
	}
	return events[len(events)-count:]
}
