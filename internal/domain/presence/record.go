package presence

// Status tells how much is known about an address.
type Status int

const (
	// StatusAbsent means no hardware id was observed on the address.
	StatusAbsent Status = iota
	// StatusUnnamed means a hardware id was observed but has no directory entry.
	StatusUnnamed
	// StatusNamed means the hardware id resolved to a display name.
	StatusNamed
)

const (
	// NoHardwareLabel is printed for addresses without a hardware id.
	NoHardwareLabel = "None"
	// UnnamedLabel is printed for addresses without a display name.
	UnnamedLabel = "Not Found"
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusAbsent:
		return "absent"
	case StatusUnnamed:
		return "unnamed"
	case StatusNamed:
		return "named"
	default:
		return "unknown"
	}
}

// Record is what is known about one address during one poll cycle.
type Record struct {
	Address    string
	HardwareID HardwareID
	Name       string
	Status     Status
}

// HardwareLabel returns the hardware id or NoHardwareLabel.
func (r Record) HardwareLabel() string {
	if r.Status == StatusAbsent {
		return NoHardwareLabel
	}

	return r.HardwareID.String()
}

// DisplayName returns the resolved name or UnnamedLabel.
func (r Record) DisplayName() string {
	if r.Status != StatusNamed {
		return UnnamedLabel
	}

	return r.Name
}

// Resolve joins the address space with the ARP table and the directory,
// producing one record per address in the order of addresses.
func Resolve(addresses []string, table AddressTable, directory Directory) []Record {
	records := make([]Record, 0, len(addresses))

	for _, address := range addresses {
		record := Record{Address: address}

		id, ok := table[address]
		if !ok {
			records = append(records, record)
			continue
		}

		id = NormalizeHardwareID(id.String())
		record.HardwareID = id
		record.Status = StatusUnnamed

		if name, ok := directory[id]; ok {
			record.Name = name
			record.Status = StatusNamed
		}

		records = append(records, record)
	}

	return records
}

// PresentNames returns the set of display names among named records.
func PresentNames(records []Record) map[string]struct{} {
	names := make(map[string]struct{}, len(records))

	for _, record := range records {
		if record.Status == StatusNamed {
			names[record.Name] = struct{}{}
		}
	}

	return names
}
