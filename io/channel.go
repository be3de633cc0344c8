// Package io implements the I/O channel boundary of the guidance
// computer. Channels are a sparse store of 16-bit values keyed by a
// channel number below 0100 (octal). Peripherals may be attached to
// individual channels as a Device; everything else is plain storage.
package io

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

const (
	CHANNEL_COUNT = 0100 // Channel numbers are below this.
	CHANNEL_MASK  = 0077 // Mask applied to S to select a channel.

	CHANNEL_L        = 001 // Alias of the L register.
	CHANNEL_Q        = 002 // Alias of the Q register.
	CHANNEL_HISCALAR = 003 // Scaler, high word.
	CHANNEL_LOSCALAR = 004 // Scaler, low word.
	CHANNEL_PYJETS   = 005 // Pitch/yaw RCS jets.
	CHANNEL_ROLLJETS = 006 // Roll RCS jets.
	CHANNEL_SUPERBNK = 007 // Fixed memory superbank select.
	CHANNEL_OUT0     = 010 // DSKY relay word output.
	CHANNEL_DSALMOUT = 011 // DSKY lamps and alarms.
	CHANNEL_MNKEYIN  = 015 // Main DSKY keyboard input.
	CHANNEL_NAVKEYIN = 016 // Navigation DSKY keyboard input.
	CHANNEL_DNTM1    = 034 // Downlink word 1.
	CHANNEL_DNTM2    = 035 // Downlink word 2.

	SUPERBANK_BIT = 0100 // Bit 7 of CHANNEL_SUPERBNK.
)

var _channel_defines = map[string]string{
	"CHAN_L":        fmt.Sprintf("%#o", CHANNEL_L),
	"CHAN_Q":        fmt.Sprintf("%#o", CHANNEL_Q),
	"CHAN_HISCALAR": fmt.Sprintf("%#o", CHANNEL_HISCALAR),
	"CHAN_LOSCALAR": fmt.Sprintf("%#o", CHANNEL_LOSCALAR),
	"CHAN_PYJETS":   fmt.Sprintf("%#o", CHANNEL_PYJETS),
	"CHAN_ROLLJETS": fmt.Sprintf("%#o", CHANNEL_ROLLJETS),
	"CHAN_SUPERBNK": fmt.Sprintf("%#o", CHANNEL_SUPERBNK),
	"CHAN_OUT0":     fmt.Sprintf("%#o", CHANNEL_OUT0),
	"CHAN_DSALMOUT": fmt.Sprintf("%#o", CHANNEL_DSALMOUT),
	"CHAN_MNKEYIN":  fmt.Sprintf("%#o", CHANNEL_MNKEYIN),
	"CHAN_NAVKEYIN": fmt.Sprintf("%#o", CHANNEL_NAVKEYIN),
	"CHAN_DNTM1":    fmt.Sprintf("%#o", CHANNEL_DNTM1),
	"CHAN_DNTM2":    fmt.Sprintf("%#o", CHANNEL_DNTM2),
}

// Device is a peripheral attached to a single channel.
type Device interface {
	// Rewind resets the device to its initial state.
	Rewind()
	// Receive returns the next value the device presents to the CPU,
	// or ok == false if the device has nothing new.
	Receive() (value uint16, ok bool)
	// Send delivers a value written by the CPU.
	Send(value uint16) error
}

// Channels is the sparse channel store.
type Channels struct {
	values  map[uint8]uint16
	devices map[uint8]Device
}

// Defines returns the channel number defines.
func (ch *Channels) Defines() iter.Seq2[string, string] {
	return maps.All(_channel_defines)
}

// Reset clears every stored value and rewinds attached devices.
func (ch *Channels) Reset() {
	clear(ch.values)
	for _, dev := range ch.devices {
		dev.Rewind()
	}
}

// Attach connects a device to a channel. A nil device detaches.
func (ch *Channels) Attach(channel uint8, dev Device) {
	channel &= CHANNEL_MASK
	if dev == nil {
		delete(ch.devices, channel)
		return
	}
	if ch.devices == nil {
		ch.devices = make(map[uint8]Device)
	}
	ch.devices[channel] = dev
}

// Read returns the current value of a channel. An attached device with
// a pending value updates the stored value first.
func (ch *Channels) Read(channel uint8) (value uint16) {
	channel &= CHANNEL_MASK
	dev, ok := ch.devices[channel]
	if ok {
		var fresh uint16
		fresh, ok = dev.Receive()
		if ok {
			ch.store(channel, fresh)
		}
	}

	value = ch.values[channel]
	return
}

// Write stores a channel value and forwards it to an attached device.
func (ch *Channels) Write(channel uint8, value uint16) (err error) {
	channel &= CHANNEL_MASK
	ch.store(channel, value)

	dev, ok := ch.devices[channel]
	if ok {
		err = dev.Send(value)
		if err != nil {
			err = &ErrDevice{Channel: channel, Err: err}
		}
	}

	return
}

// Peek returns a stored value without consulting devices.
func (ch *Channels) Peek(channel uint8) (value uint16, ok bool) {
	value, ok = ch.values[channel&CHANNEL_MASK]
	return
}

// All iterates over the stored channels in ascending order.
func (ch *Channels) All() iter.Seq2[uint8, uint16] {
	return func(yield func(uint8, uint16) bool) {
		for _, channel := range slices.Sorted(maps.Keys(ch.values)) {
			if !yield(channel, ch.values[channel]) {
				return
			}
		}
	}
}

// Superbank reports the fixed memory superbank bit.
func (ch *Channels) Superbank() bool {
	return (ch.values[CHANNEL_SUPERBNK] & SUPERBANK_BIT) != 0
}

func (ch *Channels) store(channel uint8, value uint16) {
	if ch.values == nil {
		ch.values = make(map[uint8]uint16)
	}
	ch.values[channel] = value
}
