package idcode

import "fmt"

// Parse splits a raw 32-bit IDCODE into its fields.
func Parse(raw uint32) IDCode {
	return IDCode{
		Raw:              raw,
		Version:          uint8((raw >> 28) & 0xF),
		PartNumber:       uint16((raw >> 12) & 0xFFFF),
		ManufacturerCode: uint16((raw >> 1) & 0x7FF),
		Valid:            raw&0x1 == 0x1,
	}
}

// Matches compares two IDCODEs ignoring the version nibble, which changes
// between silicon revisions of the same part.
func Matches(a, b uint32) bool {
	return a&0x0FFFFFFF == b&0x0FFFFFFF
}

func (id IDCode) String() string {
	m, _ := LookupManufacturer(id.ManufacturerCode)
	return fmt.Sprintf("0x%08X (%s, part 0x%04X, rev %d)", id.Raw, m.Name, id.PartNumber, id.Version)
}
