package neighbor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gadsby/notify-arrival/internal/domain/presence"
)

const darwinOutput = `? (192.168.1.1) at 0:11:22:33:44:55 on en0 ifscope [ethernet]
? (192.168.1.5) at a:b:c:1:2:3 on en0 ifscope [ethernet]
? (192.168.1.7) at (incomplete) on en0 ifscope [ethernet]
? (192.168.2.5) at aa:bb:cc:dd:ee:ff on en1 ifscope [ethernet]
? (192.168.1.255) at ff:ff:ff:ff:ff:ff on en0 ifscope [ethernet]
`

const linuxOutput = `gateway (192.168.1.1) at AA:BB:CC:00:11:22 [ether] on eth0
? (192.168.1.23) at 3c:22:fb:1:2:3 [ether] on eth0
`

type fakeRunner struct {
	out  string
	err  error
	name string
	args []string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args

	return []byte(f.out), f.err
}

func mustSubnet(t *testing.T, pattern string) presence.Subnet {
	t.Helper()

	subnet, err := presence.ParseSubnet(pattern)
	require.NoError(t, err)

	return subnet
}

// TestParse_Darwin keeps only complete entries of the requested subnet.
func TestParse_Darwin(t *testing.T) {
	t.Parallel()

	table := Parse(darwinOutput, mustSubnet(t, "192.168.1.x"))
	require.Equal(t, presence.AddressTable{
		"192.168.1.1":   "00:11:22:33:44:55",
		"192.168.1.5":   "0a:0b:0c:01:02:03",
		"192.168.1.255": "ff:ff:ff:ff:ff:ff",
	}, table)
}

// TestParse_Linux handles net-tools output and uppercase ids.
func TestParse_Linux(t *testing.T) {
	t.Parallel()

	table := Parse(linuxOutput, mustSubnet(t, "192.168.1.x"))
	require.Equal(t, presence.AddressTable{
		"192.168.1.1":  "aa:bb:cc:00:11:22",
		"192.168.1.23": "3c:22:fb:01:02:03",
	}, table)
}

// TestParse_LiteralDots does not let dots in the pattern match other characters.
func TestParse_LiteralDots(t *testing.T) {
	t.Parallel()

	table := Parse("? (192-168-1-5) at a:b:c:1:2:3 on en0\n", mustSubnet(t, "192.168.1.x"))
	require.Empty(t, table)
}

// TestReader_Read runs the configured command.
func TestReader_Read(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{out: darwinOutput}

	reader, err := NewReader(runner, []string{"arp", "-a"}, mustSubnet(t, "192.168.2.x"))
	require.NoError(t, err)

	table, err := reader.Read(context.Background())
	require.NoError(t, err)
	require.Equal(t, "arp", runner.name)
	require.Equal(t, []string{"-a"}, runner.args)
	require.Equal(t, presence.AddressTable{"192.168.2.5": "aa:bb:cc:dd:ee:ff"}, table)
}

// TestReader_ReadFailure propagates command errors.
func TestReader_ReadFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("exit status 1")

	reader, err := NewReader(&fakeRunner{err: boom}, []string{"arp", "-a"}, mustSubnet(t, "192.168.1.x"))
	require.NoError(t, err)

	_, err = reader.Read(context.Background())
	require.ErrorIs(t, err, boom)
}

// TestNewReader_EmptyCommand rejects an empty argv.
func TestNewReader_EmptyCommand(t *testing.T) {
	t.Parallel()

	_, err := NewReader(&fakeRunner{}, nil, mustSubnet(t, "192.168.1.x"))
	require.ErrorIs(t, err, errNoCommand)
}
