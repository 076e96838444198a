package eventbridge

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"notes-backend/domain/events"
)

type fakeEventBridge struct {
	inputs []*eventbridge.PutEventsInput
	failed int32
}

func (f *fakeEventBridge) PutEvents(_ context.Context, in *eventbridge.PutEventsInput, _ ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	f.inputs = append(f.inputs, in)
	out := &eventbridge.PutEventsOutput{FailedEntryCount: f.failed}
	for range in.Entries {
		entry := types.PutEventsResultEntry{}
		if f.failed > 0 {
			entry.ErrorCode = aws.String("InternalFailure")
		}
		out.Entries = append(out.Entries, entry)
	}
	return out, nil
}

func someEvents(n int) []events.DomainEvent {
	ts := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	out := make([]events.DomainEvent, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, events.NewNoteDeleted("n1", "alice", ts))
	}
	return out
}

func TestPublisher_ChunksBatches(t *testing.T) {
	fake := &fakeEventBridge{}
	p := NewPublisher(fake, "notes-bus", zap.NewNop())

	require.NoError(t, p.PublishBatch(context.Background(), someEvents(23)))

	require.Len(t, fake.inputs, 3)
	assert.Len(t, fake.inputs[0].Entries, 10)
	assert.Len(t, fake.inputs[2].Entries, 3)
}

func TestPublisher_EntryShape(t *testing.T) {
	fake := &fakeEventBridge{}
	p := NewPublisher(fake, "notes-bus", zap.NewNop())

	require.NoError(t, p.Publish(context.Background(), someEvents(1)[0]))

	entry := fake.inputs[0].Entries[0]
	assert.Equal(t, "notes-bus", aws.ToString(entry.EventBusName))
	assert.Equal(t, Source, aws.ToString(entry.Source))
	assert.Equal(t, events.TypeNoteDeleted, aws.ToString(entry.DetailType))

	var detail map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(entry.Detail)), &detail))
	assert.Equal(t, "n1", detail["aggregate_id"])
	assert.Equal(t, "alice", detail["user_id"])
}

func TestPublisher_ReportsFailedEntries(t *testing.T) {
	fake := &fakeEventBridge{failed: 1}
	p := NewPublisher(fake, "notes-bus", zap.NewNop())

	err := p.PublishBatch(context.Background(), someEvents(1))
	assert.Error(t, err)
}

func TestPublisher_EmptyBatch(t *testing.T) {
	fake := &fakeEventBridge{}
	p := NewPublisher(fake, "notes-bus", zap.NewNop())

	require.NoError(t, p.PublishBatch(context.Background(), nil))
	assert.Empty(t, fake.inputs)
}
