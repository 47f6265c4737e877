package nct610xd

/* Well known configuration window addresses, probed in this order */
var probeAddresses = []uint16{0x2e, 0x4e}

const chipIDNCT610xD uint16 = 0xd282

/* Logical devices inside the chip */
const ldGpio uint8 = 0x07
const ldGpioMode uint8 = 0x0F

/* Bit in the device enable register that turns on GPIO port group 4 */
const gpio4EnableBit uint8 = 0x10

/* Output mode registers of the GPIO mode control device, one bit per pin.
 * A set bit selects push-pull, a cleared bit open-drain. */
const regOutputModeGpio1 uint8 = 0xE0
const regOutputModeGpio2 uint8 = 0xE1
