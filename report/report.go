package report

import (
	"github.com/akmonengine/pivot/logger"
)

type Severity uint8

const (
	DEBUG Severity = iota
	INFO
	WARNING
	ERROR
)

func (s Severity) String() string {
	switch s {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	}
	return "UNKNOWN"
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Sink receives user-facing messages.
type Sink interface {
	Report(severity Severity, message string)
}

type Report struct {
	Severity Severity `yaml:"severity"`
	Message  string   `yaml:"message"`
}

// List keeps every report it receives and mirrors them to a logger.
type List struct {
	Reports []Report
	logger  logger.Logger
}

func NewList(log logger.Logger) *List {
	if log == nil {
		log = logger.Discard
	}
	return &List{logger: log}
}

func (l *List) Report(severity Severity, message string) {
	l.Reports = append(l.Reports, Report{Severity: severity, Message: message})

	switch severity {
	case ERROR:
		l.logger.Error(message)
	case WARNING:
		l.logger.Warn(message)
	case INFO:
		l.logger.Info(message)
	default:
		l.logger.Debug(message)
	}
}

// Count returns how many reports of the given severity were received.
func (l *List) Count(severity Severity) int {
	n := 0
	for _, r := range l.Reports {
		if r.Severity == severity {
			n++
		}
	}
	return n
}

// Last returns the most recent report.
func (l *List) Last() (Report, bool) {
	if len(l.Reports) == 0 {
		return Report{}, false
	}
	return l.Reports[len(l.Reports)-1], true
}

func (l *List) Clear() {
	l.Reports = l.Reports[:0]
}
