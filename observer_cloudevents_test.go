package rtverify

import (
	"testing"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCloudEvent(t *testing.T) {
	data := ValidationEventData{RunID: "r1", Resources: 2, Tasks: 3}
	metadata := map[string]interface{}{extensionRunID: "r1"}

	event := NewCloudEvent(EventTypeValidationStarted, "test.source", data, metadata)

	assert.Equal(t, EventTypeValidationStarted, event.Type())
	assert.Equal(t, "test.source", event.Source())
	assert.Equal(t, cloudevents.VersionV1, event.SpecVersion())
	assert.False(t, event.Time().IsZero())

	id, err := uuid.Parse(event.ID())
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	var got ValidationEventData
	require.NoError(t, event.DataAs(&got))
	assert.Equal(t, data, got)
	assert.Equal(t, "r1", event.Extensions()[extensionRunID])
}

func TestValidateCloudEvent(t *testing.T) {
	require.NoError(t, ValidateCloudEvent(NewCloudEvent("test.event", "test.source", nil, nil)))
	require.Error(t, ValidateCloudEvent(cloudevents.NewEvent()))
}

func TestDiagnosticRows(t *testing.T) {
	d := diagnose(ErrUndeclaredResource, Ident{Name: "Z", Span: Span{File: "app.yaml", Line: 3, Column: 7}}, "T1")

	rows := diagnosticRows([]*Diagnostic{d})
	require.Len(t, rows, 1)
	assert.Equal(t, "UndeclaredResource", rows[0].Kind)
	assert.Equal(t, "Z", rows[0].Ident)
	assert.Equal(t, "T1", rows[0].Task)
	assert.Equal(t, d.Span, rows[0].Span)
	assert.Equal(t, d.Error(), rows[0].Message)
}
