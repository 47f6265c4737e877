package portio

// Bus provides single byte transactions on x86 style I/O ports
type Bus interface {
	// WriteByte writes one byte to the given I/O port
	WriteByte(port uint16, value uint8) error

	// ReadByte reads one byte from the given I/O port
	ReadByte(port uint16) (uint8, error)
}
