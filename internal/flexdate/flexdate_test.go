package flexdate

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromComponents(t *testing.T) {
	tests := []struct {
		name  string
		parts []float64
		want  time.Time
	}{
		{
			name:  "date only",
			parts: []float64{2024, 3, 15},
			want:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name:  "date and time",
			parts: []float64{2024, 3, 15, 10, 30, 0},
			want:  time.Date(2024, time.March, 15, 10, 30, 0, 0, time.Local),
		},
		{
			name:  "with nanoseconds",
			parts: []float64{2024, 3, 15, 10, 30, 0, 500000000},
			want:  time.Date(2024, time.March, 15, 10, 30, 0, 500000000, time.Local),
		},
		{
			name:  "january is month one",
			parts: []float64{2023, 1, 1},
			want:  time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromComponents(tt.parts)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestFromComponents_TooFew_Lenient(t *testing.T) {
	SetStrict(false)

	before := time.Now()
	got, err := FromComponents([]float64{2024, 3})
	require.NoError(t, err)
	// Lenient mode substitutes the current time rather than failing.
	assert.False(t, got.Before(before))
	assert.False(t, got.After(time.Now()))
}

func TestFromComponents_TooFew_Strict(t *testing.T) {
	SetStrict(true)
	defer SetStrict(false)

	_, err := FromComponents([]float64{2024})
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindTooFewComponents, perr.Kind)
}

func TestParseString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "zoned RFC3339",
			in:   "2024-03-15T10:30:00Z",
			want: time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			name: "local date-time without zone",
			in:   "2024-03-15T10:30:00",
			want: time.Date(2024, time.March, 15, 10, 30, 0, 0, time.Local),
		},
		{
			name: "date only",
			in:   "2024-01-05",
			want: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.Local),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseString_Garbage_Strict(t *testing.T) {
	SetStrict(true)
	defer SetStrict(false)

	_, err := ParseString("not a date")
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindBadFormat, perr.Kind)
}

// The same instant must come out of both union arms.
func TestTupleAndStringEquivalence(t *testing.T) {
	fromString, err := ParseString("2024-03-15T10:30:00")
	require.NoError(t, err)

	fromTuple, err := FromComponents([]float64{2024, 3, 15, 10, 30, 0})
	require.NoError(t, err)

	assert.True(t, fromString.Equal(fromTuple), "string %v != tuple %v", fromString, fromTuple)
}

func TestTimeUnmarshalJSON(t *testing.T) {
	var doc struct {
		CreatedAt   Time `json:"createdAt"`
		PublishedAt Time `json:"publishedAt"`
		UpdatedAt   Time `json:"updatedAt"`
	}

	payload := `{
		"createdAt": [2024, 1, 1, 8, 0, 0],
		"publishedAt": "2023-01-01T00:00:00",
		"updatedAt": null
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &doc))

	assert.True(t, doc.CreatedAt.Equal(time.Date(2024, time.January, 1, 8, 0, 0, 0, time.Local)))
	assert.True(t, doc.PublishedAt.Equal(time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local)))
	assert.True(t, doc.UpdatedAt.IsZero(), "null must decode to the zero time")
}

func TestTimeRoundTrip(t *testing.T) {
	orig := At(time.Date(2024, time.February, 10, 12, 0, 0, 0, time.Local))

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var back Time
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, back.Equal(orig.Time))
}

func TestTimeMarshalZero(t *testing.T) {
	data, err := json.Marshal(Time{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
