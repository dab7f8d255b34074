//go:build opus

package audio

import "github.com/hraban/opus"

func newOpusPacketDecoder(channels int) (packetDecoder, error) {
	dec, err := opus.NewDecoder(opusSampleRate, channels)
	if err != nil {
		return nil, err
	}
	return dec, nil
}
