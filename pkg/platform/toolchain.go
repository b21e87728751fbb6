package platform

import "fmt"

// Toolchain selects the synthesis/implementation flow.
type Toolchain string

const (
	ToolchainVivado    Toolchain = "vivado"
	ToolchainSymbiflow Toolchain = "symbiflow"
)

// UnsupportedToolchainError reports an unknown toolchain selection.
type UnsupportedToolchainError struct {
	Value string
}

func (e *UnsupportedToolchainError) Error() string {
	return fmt.Sprintf("%s toolchain is not supported", e.Value)
}

// ParseToolchain maps a selection string onto a Toolchain.
func ParseToolchain(s string) (Toolchain, error) {
	switch Toolchain(s) {
	case ToolchainVivado, ToolchainSymbiflow:
		return Toolchain(s), nil
	}
	return "", &UnsupportedToolchainError{Value: s}
}
