package presence

import "strings"

// HardwareID is a canonical hardware address: colon-separated groups,
// each zero-padded to two lowercase hex digits.
type HardwareID string

// NormalizeHardwareID pads every group of raw to two digits and lowercases it.
// The number and order of groups are preserved ("1:A:3" becomes "01:0a:03").
func NormalizeHardwareID(raw string) HardwareID {
	groups := strings.Split(strings.TrimSpace(raw), ":")
	for i, group := range groups {
		if len(group) < 2 {
			group = strings.Repeat("0", 2-len(group)) + group
		}

		groups[i] = strings.ToLower(group)
	}

	return HardwareID(strings.Join(groups, ":"))
}

// String implements fmt.Stringer.
func (id HardwareID) String() string {
	return string(id)
}

// AddressTable maps a network address to the hardware id seen on it.
type AddressTable map[string]HardwareID

// Directory maps a hardware id to the display name of its owner.
type Directory map[HardwareID]string
