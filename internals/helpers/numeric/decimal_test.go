package numeric

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(MustMoney("1500"))
	require.NoError(t, err)
	assert.Equal(t, `"1500.00"`, string(b))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`"250.5"`), &m))
	assert.Equal(t, "250.50", m.String())

	require.NoError(t, json.Unmarshal([]byte(`99`), &m))
	assert.Equal(t, "99.00", m.String())
}

func TestSumMoney(t *testing.T) {
	assert.Equal(t, "0.00", SumMoney().String())
	total := SumMoney(MustMoney("100.10"), MustMoney("200.20"), MoneyFromInt(5))
	assert.True(t, total.Equal(MustMoney("305.30")))
}

func TestCoordJSON(t *testing.T) {
	b, err := json.Marshal(MustCoord("12.5"))
	require.NoError(t, err)
	assert.Equal(t, `"12.500000"`, string(b))
}
