package tap

// MCHP TAP instructions, 5-bit, written MSB-first as the datasheet
// names them. Reverse8 at the point of transmission.
const (
	MTAPCommand byte = 0x07
	MTAPSwMTAP  byte = 0x04
	MTAPSwETAP  byte = 0x05
	MTAPIDCode  byte = 0x01
)

// EJTAG TAP instructions, 5-bit, MSB-first.
const (
	ETAPAddress   byte = 0x08
	ETAPData      byte = 0x09
	ETAPControl   byte = 0x0A
	ETAPEJTAGBoot byte = 0x0C
	ETAPFastData  byte = 0x0E
)

// MTAP commands, 8-bit, MSB-first.
const (
	MCHPStatus      byte = 0x00
	MCHPAssertRST   byte = 0xD1
	MCHPDeAssertRST byte = 0xD0
	MCHPErase       byte = 0xFC
)

// EJTAG control register polling constants, 32-bit, MSB-first.
const (
	ControlPollValue  uint32 = 0x0004C000
	ControlStartValue uint32 = 0x0000C000
)

// Device status bits, logical (MSB-first) positions within the
// status byte returned by MCHP_STATUS.
const (
	StatusBitCPS    = 7
	StatusBitNVMErr = 5
	StatusBitCFGRdy = 3
	StatusBitFCBusy = 2
	StatusBitDevRst = 0
)

// Control register bit position of PrAcc (processor access), MSB-first.
const ControlBitPrAcc = 18
