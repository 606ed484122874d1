package date

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewNormalizes asserts that out-of-range components are normalized the
// way time.Date normalizes them, so Add can cross month and year boundaries.
func TestNewNormalizes(t *testing.T) {
	d := New(2017, time.May, 32)
	assert.Equal(t, New(2017, time.June, 1), d)

	d = New(2017, time.December, 31).Add(1)
	assert.Equal(t, New(2018, time.January, 1), d)
}

func TestKey(t *testing.T) {
	testCases := []struct {
		name string
		d    Date
		key  int
	}{
		{"regular day", New(2017, time.June, 20), 20170620},
		{"single digit month and day", New(2017, time.April, 3), 20170403},
		{"end of year", New(1999, time.December, 31), 19991231},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.key, tc.d.Key())
			back, err := FromKey(tc.key)
			require.NoError(t, err)
			assert.Equal(t, tc.d, back)
		})
	}
}

func TestKeyOrderIsChronological(t *testing.T) {
	d1 := New(2017, time.April, 30)
	d2 := New(2017, time.May, 1)
	assert.True(t, d1.Before(d2))
	assert.Less(t, d1.Key(), d2.Key())
}

func TestFromKeyRejectsMalformed(t *testing.T) {
	for _, key := range []int{0, -20170620, 20171301, 20170001, 20170230, 20170632, 1234} {
		_, err := FromKey(key)
		assert.Error(t, err, "key %d", key)
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("2017-6-20")
	require.NoError(t, err)
	assert.Equal(t, New(2017, time.June, 20), d)

	_, err = Parse("not-a-date")
	assert.Error(t, err)
}

func TestZeroValueIsNullDate(t *testing.T) {
	var d Date
	assert.True(t, d.IsZero())
	assert.False(t, New(2017, time.June, 20).IsZero())
}

func TestJSONRoundTrip(t *testing.T) {
	d := New(2017, time.June, 20)
	raw, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2017-06-20"`, string(raw))

	var back Date
	require.NoError(t, back.UnmarshalJSON(raw))
	assert.Equal(t, d, back)
}
