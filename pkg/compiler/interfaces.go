// Package compiler turns DDL statement text into plan descriptors.
package compiler

import (
	"context"
	"time"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/TFMV/ddlplan/pkg/plan"
)

// Compiler compiles DDL statements.
type Compiler interface {
	Compile(ctx context.Context, stmt string) (*Task, error)
}

// Task is a compiled DDL statement ready to hand to an executor.
type Task struct {
	QueryID string
	Kind    plan.Kind
	Desc    plan.Desc
	Schema  *arrow.Schema
}

// Logger defines logging interface.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// MetricsCollector defines metrics collection interface.
type MetricsCollector interface {
	IncrementCounter(name string, labels ...string)
	RecordHistogram(name string, value float64, labels ...string)
	RecordGauge(name string, value float64, labels ...string)
	StartTimer(name string) Timer
}

// Timer represents a timing measurement.
type Timer interface {
	Stop() time.Duration
}
