package metrics

import "time"

//go:generate mockery --name Provider --dir . --output ../../../mocks --outpkg mocks --structname MetricsProvider --filename MetricsProvider.go
type Provider interface {
	IncrementHTTPRequests(method, path, status string)
	RecordHTTPRequestDuration(method, path string, duration time.Duration)
	IncrementDatabaseQueries(queryType string, success bool)
	RecordDatabaseQueryDuration(queryType string, duration time.Duration)
	IncrementPostOperations(operation string, success bool)
	IncrementSessionOperations(operation string, success bool)
	SetServiceHealth(healthy bool)
}

// NoOp discards all measurements. Handy in tests and the CLI.
type NoOp struct{}

func (NoOp) IncrementHTTPRequests(method, path, status string)                      {}
func (NoOp) RecordHTTPRequestDuration(method, path string, duration time.Duration)  {}
func (NoOp) IncrementDatabaseQueries(queryType string, success bool)                {}
func (NoOp) RecordDatabaseQueryDuration(queryType string, duration time.Duration)   {}
func (NoOp) IncrementPostOperations(operation string, success bool)                 {}
func (NoOp) IncrementSessionOperations(operation string, success bool)              {}
func (NoOp) SetServiceHealth(healthy bool)                                          {}
