// Package scanmonitor keeps exactly one scanner session running against
// the card reader whenever it is physically attached. It owns the hotplug
// event loop; sessions it spawns own their device handle and terminate on
// their own when the reader disappears.
package scanmonitor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/gousb"
	"github.com/jochenvg/go-udev"
	"github.com/kenshaw/evdev"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/rvsnack/rvterm/inputbus"
	"github.com/rvsnack/rvterm/scansession"
)

// Hardware identity of the card reader.
const (
	DefaultVendor  gousb.ID = 0x413d
	DefaultProduct gousb.ID = 0x2107
)

type Monitor struct {
	vendor  gousb.ID
	product gousb.ID
	bus     *inputbus.Bus

	ctx        context.Context
	inChannel  <-chan *udev.Device
	usbContext *gousb.Context

	knownDevices map[string]*gousb.DeviceDesc
	started      map[string]bool
}

// New registers for attach/detach notifications on the input subsystem.
// Initialization failure is unrecoverable for the caller: there is no
// reader functionality without this monitor.
func New(ctx context.Context, vendor, product gousb.ID, bus *inputbus.Bus) (*Monitor, error) {
	u := udev.Udev{}
	m := u.NewMonitorFromNetlink("udev")
	m.FilterAddMatchSubsystem("input")

	ch, err := m.DeviceChan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "udev monitor channel")
	}

	return &Monitor{
		vendor:       vendor,
		product:      product,
		bus:          bus,
		ctx:          ctx,
		inChannel:    ch,
		usbContext:   gousb.NewContext(),
		knownDevices: make(map[string]*gousb.DeviceDesc),
		started:      make(map[string]bool),
	}, nil
}

// Run services hotplug notifications until ctx is cancelled. The initial
// enumeration pass runs before the first notification so a reader that is
// already attached at startup is not missed.
func (m *Monitor) Run() error {
	defer m.usbContext.Close()

	if err := m.checkDevices(); err != nil {
		return err
	}

	for d := range m.inChannel {
		action := d.Action()
		if action != "add" && action != "remove" {
			continue
		}
		if err := m.checkDevices(); err != nil {
			log.Error().Err(err).Msg("device enumeration failed")
		}
	}
	return m.ctx.Err()
}

func (m *Monitor) checkDevices() error {
	foundDevices := make(map[string]*gousb.DeviceDesc)
	_, err := m.usbContext.OpenDevices(func(d *gousb.DeviceDesc) bool {
		id := fmt.Sprintf("%d.%d", d.Bus, d.Address)
		if _, known := foundDevices[id]; !known {
			foundDevices[id] = d
		}
		return false
	})
	if err != nil {
		return errors.Wrap(err, "usb enumeration")
	}

	for k, d := range foundDevices {
		if _, known := m.knownDevices[k]; known {
			continue
		}
		if d.Vendor != m.vendor || d.Product != m.product {
			// Some other device; expected, not an error.
			log.Debug().
				Str("vendor", d.Vendor.String()).
				Str("product", d.Product.String()).
				Msg("ignoring non-matching device")
			continue
		}
		m.attached(k)
	}

	for k := range m.knownDevices {
		if _, known := foundDevices[k]; !known {
			// The session notices the failed read itself; just forget
			// the device so a re-attach starts a fresh one.
			delete(m.started, k)
		}
	}

	m.knownDevices = foundDevices
	return nil
}

func (m *Monitor) attached(id string) {
	if m.started[id] {
		return
	}

	dev := enumerateMatching(m.vendor, m.product)
	if dev == nil {
		log.Warn().Str("usb", id).Msg("matching reader has no input device node yet")
		return
	}

	m.started[id] = true
	log.Info().Str("usb", id).Str("device", dev.Name()).Msg("reader attached")

	session := scansession.New(dev, m.bus)
	go func() {
		if err := session.Run(m.ctx); err != nil {
			log.Debug().Err(err).Msg("scanner session exited")
		}
	}()
}

// enumerateMatching scans the visible input devices and returns an opened
// handle to the first one with the reader's hardware identity, or nil.
// Non-matching devices are closed again; calling this repeatedly has no
// side effects on them.
func enumerateMatching(vendor, product gousb.ID) *evdev.Evdev {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil
	}
	for _, path := range paths {
		dev, err := evdev.OpenFile(path)
		if err != nil {
			continue
		}
		id := dev.ID()
		if id.Vendor == uint16(vendor) && id.Product == uint16(product) {
			return dev
		}
		dev.Close()
	}
	return nil
}
