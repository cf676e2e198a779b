package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDowntime(t *testing.T) {
	ptr := func(d Date) *Date { return &d }

	testCases := []struct {
		name     string
		failure  Date
		recovery *Date
		want     *int64
	}{
		{
			name:     "five day repair",
			failure:  NewDate(2024, time.January, 10),
			recovery: ptr(NewDate(2024, time.January, 15)),
			want:     int64Ptr(5),
		},
		{
			name:     "same day recovery",
			failure:  NewDate(2024, time.March, 5),
			recovery: ptr(NewDate(2024, time.March, 5)),
			want:     int64Ptr(0),
		},
		{
			name:     "no recovery yet",
			failure:  NewDate(2024, time.March, 5),
			recovery: nil,
			want:     nil,
		},
		{
			name:     "recovery before failure clamps to zero",
			failure:  NewDate(2024, time.January, 10),
			recovery: ptr(NewDate(2024, time.January, 1)),
			want:     int64Ptr(0),
		},
		{
			name:     "zero failure date",
			failure:  Date{},
			recovery: ptr(NewDate(2024, time.January, 1)),
			want:     nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeDowntime(tc.failure, tc.recovery)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func TestRecomputeDowntimeIsIdempotent(t *testing.T) {
	recovery := NewDate(2024, time.February, 20)
	claim := Claim{
		FailureDate:  NewDate(2024, time.February, 10),
		RecoveryDate: &recovery,
	}

	claim.RecomputeDowntime()
	require.NotNil(t, claim.Downtime)
	first := *claim.Downtime

	// Recomputing with unchanged dates must not accumulate.
	claim.RecomputeDowntime()
	require.NotNil(t, claim.Downtime)
	assert.Equal(t, first, *claim.Downtime)
	assert.Equal(t, int64(10), first)
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.July, 3)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-07-03"`, string(b))

	var parsed Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-07-03"`), &parsed))
	assert.True(t, parsed.Equal(d.Time))

	var bad Date
	assert.Error(t, json.Unmarshal([]byte(`"03.07.2024"`), &bad))
}

func int64Ptr(v int64) *int64 { return &v }
