//go:build !opus

package audio

import "github.com/foxseedlab/voxbridge/internal/audio"

func newOpusPacketDecoder(_ int) (packetDecoder, error) {
	return nil, audio.ErrUnsupportedFormat
}
