package idcode

import "testing"

func TestParseXilinx(t *testing.T) {
	id := Parse(0x1362D093)
	if !id.Valid {
		t.Fatalf("bit 0 not decoded")
	}
	if id.Version != 1 {
		t.Errorf("Version = %d, want 1", id.Version)
	}
	if id.PartNumber != 0x362D {
		t.Errorf("PartNumber = 0x%04X, want 0x362D", id.PartNumber)
	}
	m, ok := LookupManufacturer(id.ManufacturerCode)
	if !ok || m.Name != "Xilinx" {
		t.Errorf("manufacturer = %+v (ok=%v), want Xilinx", m, ok)
	}
}

func TestMatchesIgnoresVersion(t *testing.T) {
	if !Matches(0x0362D093, 0x4362D093) {
		t.Errorf("revisions of the same part should match")
	}
	if Matches(0x0362D093, 0x03622093) {
		t.Errorf("different parts should not match")
	}
}

func TestUnknownManufacturer(t *testing.T) {
	m, ok := LookupManufacturer(0x7FF)
	if ok {
		t.Fatalf("0x7FF should be unknown")
	}
	if m.Name != "Unknown (0x7FF)" {
		t.Errorf("Name = %q", m.Name)
	}
}
