package emulator

import (
	"github.com/ezrec/agc/io"
	"github.com/ezrec/agc/word"
)

// Scaler is the timing divider chain, counting once every SCALER_DIVIDE
// time pulses. Bit N of the count toggles every 2^N counts.
type Scaler struct {
	Count uint32
	Prev  uint32
}

// Reset the scaler to zero.
func (sc *Scaler) Reset() {
	sc.Count = 0
	sc.Prev = 0
}

// Changed returns the count bits that toggled on the last Tick.
func (sc *Scaler) Changed() uint32 {
	return sc.Count ^ sc.Prev
}

// Tick advances the count and publishes it to the scaler channels, low
// 14 bits on channel 4 and the next 14 bits on channel 3.
func (sc *Scaler) Tick(channels *io.Channels) (err error) {
	sc.Prev = sc.Count
	sc.Count++

	err = channels.Write(io.CHANNEL_LOSCALAR, uint16(sc.Count)&word.MASK_1_14)
	if err != nil {
		return
	}

	err = channels.Write(io.CHANNEL_HISCALAR, uint16(sc.Count>>14)&word.MASK_1_14)
	return
}
