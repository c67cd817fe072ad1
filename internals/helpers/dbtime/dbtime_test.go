package dbtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-06-01"`), &d))
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.June, d.Month())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-01"`, string(b))

	assert.Error(t, json.Unmarshal([]byte(`"01/06/2024"`), &d))
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-06-01T00:00:00Z"))
	assert.Equal(t, "2024-06-01", d.String())

	require.NoError(t, d.Scan(time.Date(2023, 2, 3, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "2023-02-03", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2023-02-03", v)
}

func TestTodParse(t *testing.T) {
	for in, want := range map[string]string{
		"08:30":           "08:30:00",
		"08:30:15":        "08:30:15",
		"08:30:15.123456": "08:30:15",
	} {
		tod, err := ParseTod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, tod.String())
	}

	_, err := ParseTod("8 o'clock")
	assert.Error(t, err)
}

func TestTodJSON(t *testing.T) {
	var tod Tod
	require.NoError(t, json.Unmarshal([]byte(`"07:45"`), &tod))
	b, err := json.Marshal(tod)
	require.NoError(t, err)
	assert.Equal(t, `"07:45:00"`, string(b))
}

func TestSchoolLocation(t *testing.T) {
	t.Cleanup(func() { SetLocation("") })

	assert.Equal(t, time.UTC, SetLocation("Not/AZone"))
	loc := SetLocation("Asia/Kolkata")
	assert.Equal(t, "Asia/Kolkata", loc.String())
	assert.Equal(t, loc, Location())

	today := Today()
	now := time.Now().In(loc)
	assert.Equal(t, now.Format(DateLayout), today.String())
}
