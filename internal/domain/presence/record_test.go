package presence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func aliceFixture(t *testing.T) ([]string, AddressTable, Directory) {
	t.Helper()

	subnet, err := ParseSubnet("192.168.1.x")
	require.NoError(t, err)

	table := AddressTable{"192.168.1.5": NormalizeHardwareID("a:b:c:1:2:3")}
	directory := Directory{"0a:0b:0c:01:02:03": "Alice"}

	return subnet.Addresses(), table, directory
}

// TestResolve_Scenario joins one known device against the whole address space.
func TestResolve_Scenario(t *testing.T) {
	t.Parallel()

	addresses, table, directory := aliceFixture(t)

	records := Resolve(addresses, table, directory)
	require.Len(t, records, 255)

	for _, record := range records {
		if record.Address == "192.168.1.5" {
			require.Equal(t, StatusNamed, record.Status)
			require.Equal(t, HardwareID("0a:0b:0c:01:02:03"), record.HardwareID)
			require.Equal(t, "Alice", record.DisplayName())

			continue
		}

		require.Equal(t, StatusAbsent, record.Status, record.Address)
		require.Equal(t, NoHardwareLabel, record.HardwareLabel())
		require.Equal(t, UnnamedLabel, record.DisplayName())
	}
}

// TestResolve_Unnamed keeps the hardware id when the directory has no entry.
func TestResolve_Unnamed(t *testing.T) {
	t.Parallel()

	records := Resolve(
		[]string{"192.168.1.9"},
		AddressTable{"192.168.1.9": "de:ad:be:ef:00:01"},
		Directory{},
	)

	require.Equal(t, []Record{{
		Address:    "192.168.1.9",
		HardwareID: "de:ad:be:ef:00:01",
		Status:     StatusUnnamed,
	}}, records)
	require.Equal(t, "de:ad:be:ef:00:01", records[0].HardwareLabel())
	require.Equal(t, UnnamedLabel, records[0].DisplayName())
}

// TestResolve_Idempotent returns identical records for identical inputs.
func TestResolve_Idempotent(t *testing.T) {
	t.Parallel()

	addresses, table, directory := aliceFixture(t)

	require.Equal(t, Resolve(addresses, table, directory), Resolve(addresses, table, directory))
}

// TestPresentNames collects named records only.
func TestPresentNames(t *testing.T) {
	t.Parallel()

	addresses, table, directory := aliceFixture(t)
	table["192.168.1.6"] = "00:00:00:00:00:01"

	names := PresentNames(Resolve(addresses, table, directory))
	require.Equal(t, map[string]struct{}{"Alice": {}}, names)
}
