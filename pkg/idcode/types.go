package idcode

// IDCode is a decoded IEEE 1149.1 device identification register.
type IDCode struct {
	Raw              uint32
	Version          uint8  // [31:28]
	PartNumber       uint16 // [27:12]
	ManufacturerCode uint16 // [11:1], JEP106 bank+id
	Valid            bool   // bit 0 is the mandatory 1
}

// Manufacturer is a JEP106 entry.
type Manufacturer struct {
	Code uint16
	Name string
}
