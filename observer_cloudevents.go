// Package rtverify provides CloudEvents integration for validation results.
// Observers receive a started event and then exactly one passed or failed
// event per validation run.
package rtverify

import (
	"context"
	"fmt"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
)

// CloudEvent is an alias for the CloudEvents Event type for convenience
type CloudEvent = cloudevents.Event

// ObserverFunc is a functional observer registered with a Validator.
type ObserverFunc func(ctx context.Context, event cloudevents.Event) error

// Validation event types, in reverse domain notation.
const (
	EventTypeValidationStarted = "com.rtverify.validation.started"
	EventTypeValidationPassed  = "com.rtverify.validation.passed"
	EventTypeValidationFailed  = "com.rtverify.validation.failed"
)

// Extension attribute carrying the run identifier on every event of a run.
const extensionRunID = "runid"

// ValidationEventData is the payload of validation events.
type ValidationEventData struct {
	RunID       string               `json:"runId"`
	Resources   int                  `json:"resources"`
	Tasks       int                  `json:"tasks"`
	Aggregate   bool                 `json:"aggregate"`
	Diagnostics []DiagnosticEventRow `json:"diagnostics,omitempty"`
}

// DiagnosticEventRow is the serialized form of one Diagnostic.
type DiagnosticEventRow struct {
	Kind    string `json:"kind"`
	Ident   string `json:"ident,omitempty"`
	Task    string `json:"task,omitempty"`
	Span    Span   `json:"span,omitzero"`
	Message string `json:"message"`
}

// NewCloudEvent creates a CloudEvent with the required attributes set.
func NewCloudEvent(eventType, source string, data interface{}, metadata map[string]interface{}) cloudevents.Event {
	event := cloudevents.NewEvent()

	event.SetID(generateEventID())
	event.SetSource(source)
	event.SetType(eventType)
	event.SetTime(time.Now())
	event.SetSpecVersion(cloudevents.VersionV1)

	if data != nil {
		_ = event.SetData(cloudevents.ApplicationJSON, data)
	}

	for key, value := range metadata {
		event.SetExtension(key, value)
	}

	return event
}

// generateEventID generates a unique identifier using UUIDv7, which is
// time-ordered.
func generateEventID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails for any reason
		id = uuid.New()
	}
	return id.String()
}

// ValidateCloudEvent validates that a CloudEvent conforms to the CloudEvents specification.
func ValidateCloudEvent(event cloudevents.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("CloudEvent validation failed: %w", err)
	}
	return nil
}

func diagnosticRows(diags []*Diagnostic) []DiagnosticEventRow {
	rows := make([]DiagnosticEventRow, 0, len(diags))
	for _, d := range diags {
		rows = append(rows, DiagnosticEventRow{
			Kind:    d.KindName(),
			Ident:   d.Ident,
			Task:    d.Task,
			Span:    d.Span,
			Message: d.Error(),
		})
	}
	return rows
}
