package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat64(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		isSet bool
	}{
		{`5.6`, 5.6, true},
		{`"5.6"`, 5.6, true},
		{`"5,6"`, 5.6, true},
		{`" 12 "`, 12, true},
		{`""`, 0, false},
		{`null`, 0, false},
	}
	for _, tc := range cases {
		var f FlexFloat64
		require.NoError(t, json.Unmarshal([]byte(tc.in), &f), tc.in)
		assert.Equal(t, tc.isSet, f.Set, tc.in)
		assert.InDelta(t, tc.want, f.Value, 1e-9, tc.in)
	}

	var bad FlexFloat64
	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))

	for _, in := range []string{`"NaN"`, `"nan"`, `"Inf"`, `"+Inf"`, `"-Inf"`, `"Infinity"`, `"-infinity"`} {
		var f FlexFloat64
		assert.Error(t, json.Unmarshal([]byte(in), &f), in)
		assert.False(t, f.Set, in)
	}
}

func TestFlexFloat64Finite(t *testing.T) {
	assert.True(t, FlexFloat64{}.Finite())
	assert.True(t, FlexFloat64{Value: -3.5, Set: true}.Finite())
	assert.False(t, FlexFloat64{Value: math.NaN(), Set: true}.Finite())
	assert.False(t, FlexFloat64{Value: math.Inf(1), Set: true}.Finite())
	assert.False(t, FlexFloat64{Value: math.Inf(-1), Set: true}.Finite())
}

func TestFlexFloat64Ptr(t *testing.T) {
	var body struct {
		PH FlexFloat64 `json:"ph"`
		Mg FlexFloat64 `json:"mg"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"ph":"6,1"}`), &body))
	require.NotNil(t, body.PH.Ptr())
	assert.InDelta(t, 6.1, *body.PH.Ptr(), 1e-9)
	assert.Nil(t, body.Mg.Ptr())

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ph":6.1,"mg":null}`, string(out))
}

func TestFlexList(t *testing.T) {
	var single FlexList[map[string]int]
	require.NoError(t, json.Unmarshal([]byte(`{"a":1}`), &single))
	assert.Len(t, single, 1)

	var many FlexList[map[string]int]
	require.NoError(t, json.Unmarshal([]byte(`[{"a":1},{"a":2}]`), &many))
	assert.Len(t, many, 2)

	var none FlexList[int]
	require.NoError(t, json.Unmarshal([]byte(`null`), &none))
	assert.Empty(t, none)
}
