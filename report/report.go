package report

import (
	"context"
	"time"

	"github.com/pontem-network/flashloan-loadgen/log"
)

// Record is the result of a single call of a load generation run
type Record struct {
	RunID          string    `json:"run_id"`
	Index          uint64    `json:"index"`
	Sender         string    `json:"sender"`
	Function       string    `json:"function"`
	Hash           string    `json:"hash,omitempty"`
	SequenceNumber uint64    `json:"sequence_number"`
	Version        uint64    `json:"version,omitempty"`
	GasUsed        uint64    `json:"gas_used,omitempty"`
	Status         string    `json:"status"`
	ErrorKind      string    `json:"error_kind,omitempty"`
	Error          string    `json:"error,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	LatencyMs      int64     `json:"latency_ms"`
	Timestamp      time.Time `json:"timestamp"`
}

// Log implementation of log.Loggable
func (r Record) Log(fields log.Fields) {
	fields.Add("runId", r.RunID)
	fields.Add("index", r.Index)
	fields.Add("sender", r.Sender)
	fields.Add("function", r.Function)
	fields.Add("hash", r.Hash)
	fields.Add("sequenceNumber", r.SequenceNumber)
	fields.Add("status", r.Status)
	fields.Add("latencyMs", r.LatencyMs)

	if len(r.ErrorKind) > 0 {
		fields.Add("errorKind", r.ErrorKind)
		fields.Add("err", r.Error)
	}
	if len(r.Reason) > 0 {
		fields.Add("reason", r.Reason)
	}
}

// Sink receives the records of a run as they are produced
type Sink interface {
	Write(ctx context.Context, record Record) error
	Close() error
}

// LogSink writes every record to the logger
type LogSink struct {
	logger log.Logger
}

func NewLogSink(logger log.Logger) *LogSink {
	return &LogSink{logger: logger.ForClass("report", "LogSink")}
}

// Write implementation of Sink for LogSink
func (s *LogSink) Write(ctx context.Context, record Record) error {
	s.logger.Info(ctx, "", log.MapFields{"call_type": "ExecuteResult"}, record)
	return nil
}

// Close implementation of Sink for LogSink
func (s *LogSink) Close() error {
	return nil
}
