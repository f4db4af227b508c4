package sim

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionSet_MarshalEmpty(t *testing.T) {
	out, err := json.Marshal(ActionSet{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(out))
}

func TestActionSet_MarshalPassAndNom(t *testing.T) {
	out, err := json.Marshal(ActionSet{
		1: Pass{PearlID: 67890, ToWorker: 0},
		2: Nom{PearlID: 12345},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"1":{"Pass":{"pearl_id":67890,"to_worker":0}},"2":{"Nom":12345}}`, string(out))
}

func TestActionSet_MarshalNomOfPearlZero(t *testing.T) {
	out, err := json.Marshal(ActionSet{4: Nom{PearlID: 0}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"4":{"Nom":0}}`, string(out))
}

func TestActionSet_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		set  ActionSet
	}{
		{"pass", ActionSet{1: Pass{PearlID: 67890, ToWorker: 0}}},
		{"nom", ActionSet{3: Nom{PearlID: 5}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.set)
			require.NoError(t, err)

			var decoded ActionSet
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, tt.set, decoded)
		})
	}
}

func TestActionSet_UnmarshalRejectsAmbiguous(t *testing.T) {
	var s ActionSet
	assert.Error(t, json.Unmarshal([]byte(`{"1":{}}`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"1":{"Nom":1,"Pass":{"pearl_id":1,"to_worker":0}}}`), &s))
}

func TestAction_Pearl(t *testing.T) {
	var a Action = Pass{PearlID: 9, ToWorker: 1}
	assert.Equal(t, uint32(9), a.Pearl())
	a = Nom{PearlID: 4}
	assert.Equal(t, uint32(4), a.Pearl())
}
