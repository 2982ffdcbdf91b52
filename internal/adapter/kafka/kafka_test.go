package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/epi-surveillance-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("key-1"),
		Value:     []byte(`{"headline":"巴西-登革熱"}`),
		Topic:     "raw-travel-alerts",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "data_source", Value: []byte("TCDCTravelAlert")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("key-1"), raw.Key)
	assert.JSONEq(t, `{"headline":"巴西-登革熱"}`, string(raw.Value))
	assert.Equal(t, "raw-travel-alerts", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "TCDCTravelAlert", raw.Headers["data_source"])
	assert.Nil(t, raw.Commit)
}

func TestMapMessageToRawEvent_NoHeaders(t *testing.T) {
	raw := mapMessageToRawEvent(kafkago.Message{Value: []byte(`{}`)})
	assert.NotNil(t, raw.Headers)
	assert.Empty(t, raw.Headers)
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)
	event := domain.ResolvedEvent{
		ID:             "bra-0123456789abcdef",
		CountryISO3:    "BRA",
		DiseaseName:    "登革熱",
		CountryDisease: "BRA_登革熱",
		SourceList:     []string{"WHO"},
		ProcessedAt:    now,
	}

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("bra-0123456789abcdef"), msg.Key)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "BRA", decoded["country_iso3"])
	assert.Equal(t, "BRA_登革熱", decoded["country_disease"])
	assert.Equal(t, []any{"WHO"}, decoded["Source_list"])

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "country_iso3", msg.Headers[0].Key)
	assert.Equal(t, []byte("BRA"), msg.Headers[0].Value)
	assert.Equal(t, "disease_name", msg.Headers[1].Key)
	assert.Equal(t, []byte("登革熱"), msg.Headers[1].Value)
	assert.Equal(t, "processed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}
