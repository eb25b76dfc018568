package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewEvent_TableName(t *testing.T) {
	ve := ViewEvent{}
	assert.Equal(t, "view_events", ve.TableName())
}

func TestTrackRequest_ClientIPNotSerialized(t *testing.T) {
	req := TrackRequest{
		LinkID:   "abc123defg",
		ClientIP: "203.0.113.10",
	}

	data, err := json.Marshal(req)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "203.0.113.10")

	// Nor can the client smuggle one in
	var parsed TrackRequest
	require.NoError(t, json.Unmarshal([]byte(`{"linkId":"abc123defg","ClientIP":"10.0.0.1"}`), &parsed))
	assert.Empty(t, parsed.ClientIP)
}

func TestDurationRequest_DistinguishesZeroFromMissing(t *testing.T) {
	var withZero DurationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"viewId":"v1","duration":0}`), &withZero))
	require.NotNil(t, withZero.Duration)
	assert.Equal(t, 0, *withZero.Duration)

	var missing DurationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"viewId":"v1"}`), &missing))
	assert.Nil(t, missing.Duration)
}
