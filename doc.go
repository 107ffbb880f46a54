// Package lcdpanel controls small TFT LCD controllers over SPI and QSPI.
//
// A panel is brought from power-on to pixel-addressable by a vendor
// initialization table: a list of register writes, each followed by an
// optional idle delay. After that, pixels are streamed into the controller's
// frame memory through a column/row window and a memory write burst that is
// split in chunks no larger than the bus can carry in one transaction.
//
// # Supported Controllers
//
// - AXS15231B (320×480, QSPI, column window only, RAMWRC continuation)
// - ST77916 (360×360, QSPI; pass the module's own init table)
// - GC9503 through the gc9503 sub-package, layered over a dpi frame buffer engine
//
// The AXS15231B profile only sends CASET before a memory write, never RASET.
// A burst at row 0 starts with RAMWR; any other burst starts with RAMWRC and
// continues from the controller's current row pointer.
//
// # Interface Modes
//
// The lcdio sub-package encodes every write for the wiring in use:
//
//	Mode       Command phase                  Data phase
//	quad-io    0x02/0x32 + opcode<<8 address  1 line (params) / 4 lines (pixels)
//	four-wire  opcode with D/C low            payload with D/C high
//	three-wire 9-bit words, D/C bit 0         9-bit words, D/C bit 1
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCK         → SPI Clock (SCLK)
//	SDA/D0..D3  → SPI Data (MOSI, or the four QSPI lines)
//	CS          → SPI Chip Select
//	DC          → GPIO (four-wire only)
//	RST         → Optional: GPIO for hardware reset
//
// # Basic Usage
//
//	host.Init()
//	port, _ := spireg.Open("")
//	dev, _ := lcdpanel.NewSPI(port, nil, lcdio.DefaultDescriptor(lcdio.QuadIO), 0, &lcdpanel.Opts{
//		W:   320,
//		H:   480,
//		RST: gpioreg.ByName("GPIO17"),
//	})
//	defer dev.Close()
//
//	dev.Reset()
//	dev.Init()
//	dev.Fill(0, 0, 320, 480, 0xF800) // red
//
// # Lifecycle
//
// A Dev moves through Uninitialized → Reset → Initializing → Ready, and
// between Ready and Disabled with DispOnOff. Drawing is only accepted when
// Ready. Orientation, inversion and display on/off are accepted in Ready and
// Disabled. A failed Init leaves the panel Uninitialized and a new Reset is
// required. Argument and state errors never reach the bus.
//
// # Register Shadow
//
// The last MADCTL and COLMOD values written are kept in a Shadow. When an
// init table writes either register, the shadow follows it and a warning is
// logged, since the table then overrides what Opts asked for.
//
// # Compatibility with periph.io
//
// NewDrawer wraps any 16 bits per pixel Panel as a periph.io display.Drawer
// with differential updates:
// https://pkg.go.dev/periph.io/x/conn/v3/display
package lcdpanel
