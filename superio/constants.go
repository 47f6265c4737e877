package superio

/* The configuration window is two consecutive ports wide */
const RegionSize uint = 2

const UnlockKey uint8 = 0x87
const LockKey uint8 = 0xAA

/* Global configuration registers, valid for any selected logical device */
const RegSoftReset uint8 = 0x02
const RegDeviceSelect uint8 = 0x07
const RegChipID uint8 = 0x20
const RegDeviceEnable uint8 = 0x30
