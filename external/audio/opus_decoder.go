package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/foxseedlab/voxbridge/internal/audio"
)

const (
	opusSampleRate = 48000
	// 120 ms at 48 kHz, the longest frame an Opus packet can carry.
	opusMaxFrameSamples = 5760
	opusHeadMinLen      = 19
	// maxDecodedDuration matches the synchronous recognize limit.
	maxDecodedDuration = 60 * time.Second
)

var (
	opusHeadMagic = []byte("OpusHead")
	opusTagsMagic = []byte("OpusTags")
)

type packetDecoder interface {
	Decode(packet []byte, pcm []int16) (int, error)
}

type OggOpusDecoder struct {
	newPacketDecoder func(channels int) (packetDecoder, error)
	// maxDuration of zero disables the limit.
	maxDuration time.Duration
}

func NewOggOpusDecoder() audio.Decoder {
	return &OggOpusDecoder{newPacketDecoder: newOpusPacketDecoder, maxDuration: maxDecodedDuration}
}

func (d *OggOpusDecoder) Decode(clip audio.Clip) (audio.PCM, error) {
	if clip.Empty() {
		return audio.PCM{}, fmt.Errorf("%w: empty clip", audio.ErrCorrupt)
	}
	if !isOgg(clip.Data) {
		return audio.PCM{}, audio.ErrUnsupportedFormat
	}
	packets, err := readOggPackets(clip.Data)
	if err != nil {
		return audio.PCM{}, err
	}
	if !bytes.HasPrefix(packets[0], opusHeadMagic) {
		// Ogg Vorbis, FLAC-in-Ogg and friends go to the backend as-is.
		return audio.PCM{}, audio.ErrUnsupportedFormat
	}
	head := packets[0]
	if len(head) < opusHeadMinLen {
		return audio.PCM{}, fmt.Errorf("%w: short OpusHead", audio.ErrCorrupt)
	}
	channels := int(head[9])
	preSkip := int(binary.LittleEndian.Uint16(head[10:12]))
	if channels < 1 || channels > 2 {
		return audio.PCM{}, fmt.Errorf("%w: %d opus channels", audio.ErrUnsupportedFormat, channels)
	}

	dec, err := d.newPacketDecoder(channels)
	if err != nil {
		if errors.Is(err, audio.ErrUnsupportedFormat) {
			return audio.PCM{}, err
		}
		return audio.PCM{}, fmt.Errorf("create opus decoder: %w", err)
	}

	maxFrames := 0
	if d.maxDuration > 0 {
		maxFrames = int(int64(d.maxDuration)*opusSampleRate/int64(time.Second)) + preSkip
	}

	capFrames := len(packets) * 960
	if maxFrames > 0 && capFrames > maxFrames {
		capFrames = maxFrames
	}
	samples := make([]int16, 0, capFrames*channels)
	frame := make([]int16, opusMaxFrameSamples*channels)
	for i, pkt := range packets[1:] {
		if i == 0 && bytes.HasPrefix(pkt, opusTagsMagic) {
			continue
		}
		if len(pkt) == 0 {
			continue
		}
		n, err := dec.Decode(pkt, frame)
		if err != nil {
			return audio.PCM{}, fmt.Errorf("%w: opus packet %d: %v", audio.ErrCorrupt, i+1, err)
		}
		samples = append(samples, frame[:n*channels]...)
		if maxFrames > 0 && len(samples)/channels > maxFrames {
			return audio.PCM{}, fmt.Errorf("%w: longer than %s", audio.ErrTooLong, d.maxDuration)
		}
	}

	skip := preSkip * channels
	if skip > len(samples) {
		skip = len(samples)
	}
	samples = samples[skip:]

	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(s))
	}
	return audio.PCM{Data: out, SampleRate: opusSampleRate, Channels: channels}, nil
}
