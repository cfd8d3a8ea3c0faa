package presence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestNormalizeHardwareID pads each group to two digits and keeps order.
func TestNormalizeHardwareID(t *testing.T) {
	t.Parallel()

	cases := map[string]HardwareID{
		"1:a:3":             "01:0a:03",
		"a:2:ff":            "0a:02:ff",
		"a:b:c:1:2:3":       "0a:0b:0c:01:02:03",
		"AA:BB:CC:DD:EE:FF": "aa:bb:cc:dd:ee:ff",
		"0a:0b:0c:01:02:03": "0a:0b:0c:01:02:03",
	}

	for raw, want := range cases {
		require.Equal(t, want, NormalizeHardwareID(raw), raw)
	}
}
