package nct610xd

import (
	"github.com/sirupsen/logrus"

	"github.com/BertoldVdb/superio-gpio/portio"
	"github.com/BertoldVdb/superio-gpio/superio"
)

// Controller exposes the GPIO pins of one found chip as logical pin numbers.
// Each bank covers a contiguous range of pin numbers and every operation
// resolves the pin to its bank and in-bank bit offset before touching the
// hardware.
type Controller struct {
	bus    portio.Bus
	sio    *SIO
	banks  []*Bank
	logger *logrus.Entry
}

// DefaultBanks returns the bank layout of the NCT610xD: one group of 8 pins
// with its registers at 0xF0, numbered 40 to 47.
func DefaultBanks() []*Bank {
	return []*Bank{
		{Base: 40, NGpio: 8, Regbase: 0xF0},
	}
}

// NewController creates a Controller for a found chip. When banks is nil the
// default layout of the chip family is used. The logger may be nil.
func NewController(bus portio.Bus, sio *SIO, banks []*Bank, logger *logrus.Entry) *Controller {
	if banks == nil {
		banks = DefaultBanks()
	}

	c := &Controller{
		bus:    bus,
		sio:    sio,
		banks:  banks,
		logger: logger,
	}

	for _, bank := range banks {
		bank.controller = c

		if c.logger != nil {
			c.logger.Debugf("Bank at register %#x: pins %d-%d", bank.Regbase, bank.Base, bank.Base+uint32(bank.NGpio)-1)
		}
	}

	return c
}

// Open runs discovery on the bus and returns a Controller with the default
// bank layout for the found chip
func Open(bus portio.Bus, logger *logrus.Entry) (*Controller, error) {
	sio, err := Find(bus, logger)
	if err != nil {
		return nil, err
	}

	return NewController(bus, sio, nil, logger), nil
}

// SIO returns the identity of the chip this controller drives
func (c *Controller) SIO() *SIO {
	return c.sio
}

func (c *Controller) resolve(pin uint32) (*Bank, uint, error) {
	for _, bank := range c.banks {
		if pin >= bank.Base && pin < bank.Base+uint32(bank.NGpio) {
			return bank, uint(pin - bank.Base), nil
		}
	}

	return nil, 0, ErrorOutOfRange
}

// GetDirection returns the configured direction of a pin
func (c *Controller) GetDirection(pin uint32) (Direction, error) {
	bank, offset, err := c.resolve(pin)
	if err != nil {
		return DirectionIn, err
	}

	return bank.getDirection(offset)
}

// DirectionInput configures a pin as input
func (c *Controller) DirectionInput(pin uint32) error {
	bank, offset, err := c.resolve(pin)
	if err != nil {
		return err
	}

	return bank.directionInput(offset)
}

// DirectionOutput configures a pin as output driving the given level. The
// level is committed to the data register before the direction is switched.
func (c *Controller) DirectionOutput(pin uint32, value bool) error {
	bank, offset, err := c.resolve(pin)
	if err != nil {
		return err
	}

	return bank.directionOutput(offset, value)
}

// GetValue returns the current level of a pin
func (c *Controller) GetValue(pin uint32) (bool, error) {
	bank, offset, err := c.resolve(pin)
	if err != nil {
		return false, err
	}

	return bank.getValue(offset)
}

// SetValue sets the latched output level of a pin. The direction is not
// changed: on a pin configured as input the level only takes effect once the
// pin becomes an output.
func (c *Controller) SetValue(pin uint32, value bool) error {
	bank, offset, err := c.resolve(pin)
	if err != nil {
		return err
	}

	return bank.setValue(offset, value)
}

// SoftReset resets the configuration registers of the chip to their power-on
// defaults
func (c *Controller) SoftReset() error {
	session, err := superio.Open(c.bus, c.sio.Addr)
	if err != nil {
		return err
	}
	defer session.Close()

	return session.WriteRegister(superio.RegSoftReset, 0x01)
}

// SetOutputMode configures the output driver of one pin of GPIO port 1 or 2
// as push-pull (true) or open-drain (false). The other port groups of this
// chip have no mode select.
func (c *Controller) SetOutputMode(port int, offset uint, pushPull bool) error {
	var reg uint8
	switch port {
	case 1:
		reg = regOutputModeGpio1
	case 2:
		reg = regOutputModeGpio2
	default:
		return ErrorOutOfRange
	}
	if offset > 7 {
		return ErrorOutOfRange
	}

	session, err := superio.Open(c.bus, c.sio.Addr)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Select(ldGpioMode); err != nil {
		return err
	}

	set, clear := uint8(0), uint8(1<<offset)
	if pushPull {
		set, clear = clear, set
	}

	_, err = session.UpdateRegister(reg, set, clear)
	return err
}
