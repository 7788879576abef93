package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{RequestPending, RequestInReview},
		{RequestPending, RequestCancelled},
		{RequestInReview, RequestScheduled},
		{RequestInReview, RequestPending},
		{RequestInReview, RequestCancelled},
		{RequestScheduled, RequestCompleted},
		{RequestScheduled, RequestCancelled},
		{RequestCompleted, RequestCompleted},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]string{
		{RequestPending, RequestCompleted},
		{RequestPending, RequestScheduled},
		{RequestCompleted, RequestPending},
		{RequestCancelled, RequestPending},
		{RequestScheduled, RequestInReview},
		{"bogus", "bogus"},
		{RequestPending, "bogus"},
	}
	for _, tr := range denied {
		assert.False(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestJSONColumn(t *testing.T) {
	j, err := NewJSON(map[string]float64{"ph": 5.5})
	require.NoError(t, err)

	v, err := j.Value()
	require.NoError(t, err)
	assert.NotNil(t, v)

	var empty JSON
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, empty.Scan(nil))
	out, err := json.Marshal(struct {
		D JSON `json:"d"`
	}{D: empty})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":null}`, string(out))

	var scanned JSON
	require.NoError(t, scanned.Scan([]byte(`{"a":1}`)))
	assert.JSONEq(t, `{"a":1}`, string(scanned.JSON))
}

func TestProfileIsAdmin(t *testing.T) {
	assert.True(t, (&Profile{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&Profile{Role: RoleUser}).IsAdmin())
}
