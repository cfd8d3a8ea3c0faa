package presence

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Wildcard marks the octet that varies across the subnet.
	Wildcard = "x"

	// lastHostOctet is the highest octet expanded; 255 is the broadcast address.
	lastHostOctet = 254
)

// ErrInvalidSubnet is returned for patterns that are not a dotted quad with exactly one wildcard.
var ErrInvalidSubnet = errors.New("invalid subnet pattern")

// Subnet is a dotted-quad pattern with one octet replaced by Wildcard, e.g. 192.168.1.x.
type Subnet struct {
	octets   [4]string
	wildcard int
}

// ParseSubnet validates pattern and returns the subnet it describes.
func ParseSubnet(pattern string) (Subnet, error) {
	parts := strings.Split(strings.TrimSpace(pattern), ".")
	if len(parts) != len(Subnet{}.octets) {
		return Subnet{}, fmt.Errorf("%w: %q must have four octets", ErrInvalidSubnet, pattern)
	}

	subnet := Subnet{wildcard: -1}

	for i, part := range parts {
		if strings.EqualFold(part, Wildcard) {
			if subnet.wildcard >= 0 {
				return Subnet{}, fmt.Errorf("%w: %q has more than one wildcard", ErrInvalidSubnet, pattern)
			}

			subnet.wildcard = i
			subnet.octets[i] = Wildcard

			continue
		}

		value, err := strconv.Atoi(part)
		if err != nil || strings.Trim(part, "0123456789") != "" || value > 255 || len(part) > 3 {
			return Subnet{}, fmt.Errorf("%w: %q has a bad octet %q", ErrInvalidSubnet, pattern, part)
		}

		subnet.octets[i] = part
	}

	if subnet.wildcard < 0 {
		return Subnet{}, fmt.Errorf("%w: %q has no %q octet", ErrInvalidSubnet, pattern, Wildcard)
	}

	return subnet, nil
}

// String returns the pattern in its canonical form.
func (s Subnet) String() string {
	return strings.Join(s.octets[:], ".")
}

// Addresses expands the wildcard octet over 0..254.
func (s Subnet) Addresses() []string {
	addresses := make([]string, 0, lastHostOctet+1)
	octets := s.octets

	for i := 0; i <= lastHostOctet; i++ {
		octets[s.wildcard] = strconv.Itoa(i)
		addresses = append(addresses, strings.Join(octets[:], "."))
	}

	return addresses
}

// Pattern returns a regular expression fragment matching any address of the subnet.
func (s Subnet) Pattern() string {
	quoted := make([]string, len(s.octets))
	for i, octet := range s.octets {
		if i == s.wildcard {
			quoted[i] = `\d{1,3}`
			continue
		}

		quoted[i] = regexp.QuoteMeta(octet)
	}

	return strings.Join(quoted, `\.`)
}
