// Package siosim simulates a Super-I/O chip behind an index/data port pair.
// It implements portio.Bus and is used to test the register protocol without
// hardware. The simulated chip keeps a transaction log so tests can verify
// the exact register sequence an operation produced.
package siosim

import (
	"sync"
)

/* Protocol constants as the hardware defines them */
const (
	unlockKey       uint8 = 0x87
	lockKey         uint8 = 0xAA
	regDeviceSelect uint8 = 0x07
	regChipIDHigh   uint8 = 0x20
	regChipIDLow    uint8 = 0x21
	regEnable       uint8 = 0x30
)

// RegisterAccess is one data port transaction as seen by the chip
type RegisterAccess struct {
	Device uint8
	Index  uint8
	Value  uint8
	Write  bool
}

// Chip simulates one chip at a fixed base address. Ports outside its two
// port window read as 0xFF and ignore writes, like a floating bus.
type Chip struct {
	// Base is the index port address, the data port is Base+1
	Base uint16

	// ChipID is the identifier returned from the chip-id registers
	ChipID uint16

	// EnableSticks controls whether writes to the device enable register
	// are stored. Setting it to false simulates a chip that refuses the
	// enable bit.
	EnableSticks bool

	// WriteError is returned from every write when set
	WriteError error

	mutex       sync.Mutex
	unlockStage int
	unlocked    bool
	index       uint8
	device      uint8
	global      map[uint8]uint8
	devRegs     map[uint8]map[uint8]uint8

	log        []RegisterAccess
	violations int
}

// New creates a simulated chip at the given base address. The GPIO direction
// register starts with all pins configured as inputs, like after reset.
func New(base uint16, chipID uint16) *Chip {
	c := &Chip{
		Base:         base,
		ChipID:       chipID,
		EnableSticks: true,
		global:       make(map[uint8]uint8),
		devRegs:      make(map[uint8]map[uint8]uint8),
	}

	c.SetRegister(0x07, 0xF0, 0xFF)

	return c
}

func (c *Chip) registers(device uint8) map[uint8]uint8 {
	regs, ok := c.devRegs[device]
	if !ok {
		regs = make(map[uint8]uint8)
		c.devRegs[device] = regs
	}
	return regs
}

// SetRegister presets a register of a logical device. Registers below 0x30
// are global and the device argument is ignored for them.
func (c *Chip) SetRegister(device uint8, index uint8, value uint8) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if index < regEnable {
		c.global[index] = value
		return
	}
	c.registers(device)[index] = value
}

// Register returns the current value of a register of a logical device
func (c *Chip) Register(device uint8, index uint8) uint8 {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if index < regEnable {
		return c.global[index]
	}
	return c.registers(device)[index]
}

// Log returns all data port transactions seen so far
func (c *Chip) Log() []RegisterAccess {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return append([]RegisterAccess(nil), c.log...)
}

// ClearLog discards the transaction log
func (c *Chip) ClearLog() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.log = nil
}

// Violations counts register accesses that happened while the chip was not
// in configuration mode. A correct driver never causes any.
func (c *Chip) Violations() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.violations
}

// Unlocked reports whether the chip is currently in configuration mode
func (c *Chip) Unlocked() bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.unlocked
}

func (c *Chip) WriteByte(port uint16, value uint8) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.WriteError != nil {
		return c.WriteError
	}

	switch port {
	case c.Base:
		c.writeIndex(value)
	case c.Base + 1:
		c.writeData(value)
	}

	return nil
}

func (c *Chip) writeIndex(value uint8) {
	if value == unlockKey {
		c.unlockStage++
		if c.unlockStage >= 2 {
			c.unlocked = true
		}
		return
	}
	c.unlockStage = 0

	if value == lockKey {
		c.unlocked = false
		return
	}

	c.index = value
}

func (c *Chip) writeData(value uint8) {
	if !c.unlocked {
		c.violations++
		return
	}

	c.log = append(c.log, RegisterAccess{
		Device: c.device,
		Index:  c.index,
		Value:  value,
		Write:  true,
	})

	switch {
	case c.index == regDeviceSelect:
		c.device = value
	case c.index == regChipIDHigh || c.index == regChipIDLow:
		/* Read only */
	case c.index == regEnable && !c.EnableSticks:
		/* Simulated refusal */
	case c.index < regEnable:
		c.global[c.index] = value
	default:
		c.registers(c.device)[c.index] = value
	}
}

func (c *Chip) ReadByte(port uint16) (uint8, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if port != c.Base+1 {
		return 0xFF, nil
	}

	if !c.unlocked {
		c.violations++
		return 0xFF, nil
	}

	var value uint8
	switch {
	case c.index == regChipIDHigh:
		value = uint8(c.ChipID >> 8)
	case c.index == regChipIDLow:
		value = uint8(c.ChipID)
	case c.index == regDeviceSelect:
		value = c.device
	case c.index < regEnable:
		value = c.global[c.index]
	default:
		value = c.registers(c.device)[c.index]
	}

	c.log = append(c.log, RegisterAccess{
		Device: c.device,
		Index:  c.index,
		Value:  value,
	})

	return value, nil
}
