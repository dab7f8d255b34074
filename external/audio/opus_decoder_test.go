package audio

import (
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/foxseedlab/voxbridge/internal/audio"
)

// oggPage builds a single Ogg page carrying the given packets. Each packet
// must be shorter than 255*255 bytes. The checksum field is left zero.
func oggPage(serial, seq uint32, headerType byte, packets ...[]byte) []byte {
	var lacing []byte
	var body []byte
	for _, p := range packets {
		n := len(p)
		for n >= 255 {
			lacing = append(lacing, 255)
			n -= 255
		}
		lacing = append(lacing, byte(n))
		body = append(body, p...)
	}
	page := make([]byte, oggPageHeaderLen)
	copy(page, oggCapturePattern)
	page[5] = headerType
	binary.LittleEndian.PutUint32(page[14:18], serial)
	binary.LittleEndian.PutUint32(page[18:22], seq)
	page[26] = byte(len(lacing))
	page = append(page, lacing...)
	return append(page, body...)
}

func opusHead(channels byte, preSkip uint16) []byte {
	head := make([]byte, opusHeadMinLen)
	copy(head, opusHeadMagic)
	head[8] = 1
	head[9] = channels
	binary.LittleEndian.PutUint16(head[10:12], preSkip)
	binary.LittleEndian.PutUint32(head[12:16], opusSampleRate)
	return head
}

type fakePacketDecoder struct {
	channels int
	calls    int
	err      error
}

// Decode emits 4 samples per channel whose value is the packet's first byte.
func (f *fakePacketDecoder) Decode(packet []byte, pcm []int16) (int, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	for i := 0; i < 4*f.channels; i++ {
		pcm[i] = int16(packet[0])
	}
	return 4, nil
}

func newTestDecoder(fake *fakePacketDecoder) *OggOpusDecoder {
	return &OggOpusDecoder{newPacketDecoder: func(channels int) (packetDecoder, error) {
		fake.channels = channels
		return fake, nil
	}}
}

func TestReadOggPackets_SpansPages(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = byte(i)
	}
	first := oggPage(7, 0, 0x02, []byte("a"))
	// Split the 300-byte packet: 255 bytes on page 1, 45 on a continued page 2.
	page1 := make([]byte, oggPageHeaderLen)
	copy(page1, oggCapturePattern)
	binary.LittleEndian.PutUint32(page1[14:18], 7)
	page1[26] = 1
	page1 = append(page1, 255)
	page1 = append(page1, long[:255]...)
	page2 := oggPage(7, 2, oggContinued, long[255:])

	data := append(append(first, page1...), page2...)
	packets, err := readOggPackets(data)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(packets) != 2 {
		t.Fatalf("expected 2 packets, got %d", len(packets))
	}
	if len(packets[1]) != 300 || packets[1][299] != long[299] {
		t.Fatalf("continued packet was not reassembled, len=%d", len(packets[1]))
	}
}

func TestReadOggPackets_IgnoresOtherStreams(t *testing.T) {
	data := append(oggPage(1, 0, 0x02, []byte("mine")), oggPage(2, 0, 0x02, []byte("other"))...)
	packets, err := readOggPackets(data)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(packets) != 1 || string(packets[0]) != "mine" {
		t.Fatalf("unexpected packets: %q", packets)
	}
}

func TestReadOggPackets_Truncated(t *testing.T) {
	page := oggPage(1, 0, 0x02, []byte("hello world"))
	if _, err := readOggPackets(page[:len(page)-3]); !errors.Is(err, audio.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
	if _, err := readOggPackets([]byte("OggS\x00")); !errors.Is(err, audio.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt for short header, got %v", err)
	}
}

func TestDecode_MonoWithPreSkip(t *testing.T) {
	data := oggPage(9, 0, 0x02, opusHead(1, 2))
	data = append(data, oggPage(9, 1, 0, []byte("OpusTags\x00\x00\x00\x00"))...)
	data = append(data, oggPage(9, 2, 0x04, []byte{10}, []byte{20})...)

	fake := &fakePacketDecoder{}
	pcm, err := newTestDecoder(fake).Decode(audio.Clip{Data: data, MimeType: "audio/ogg"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if fake.calls != 2 {
		t.Fatalf("expected 2 decoded packets, got %d", fake.calls)
	}
	if pcm.SampleRate != 48000 || pcm.Channels != 1 {
		t.Fatalf("unexpected format: %d Hz, %d ch", pcm.SampleRate, pcm.Channels)
	}
	// 8 samples decoded, 2 skipped.
	if len(pcm.Data) != 6*2 {
		t.Fatalf("unexpected pcm length: %d", len(pcm.Data))
	}
	if got := int16(binary.LittleEndian.Uint16(pcm.Data[0:])); got != 10 {
		t.Fatalf("unexpected first sample: %d", got)
	}
	if got := int16(binary.LittleEndian.Uint16(pcm.Data[len(pcm.Data)-2:])); got != 20 {
		t.Fatalf("unexpected last sample: %d", got)
	}
}

func TestDecode_Stereo(t *testing.T) {
	data := oggPage(9, 0, 0x02, opusHead(2, 0))
	data = append(data, oggPage(9, 1, 0x04, []byte{1})...)
	fake := &fakePacketDecoder{}
	pcm, err := newTestDecoder(fake).Decode(audio.Clip{Data: data})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pcm.Channels != 2 || len(pcm.Data) != 4*2*2 {
		t.Fatalf("unexpected stereo output: ch=%d len=%d", pcm.Channels, len(pcm.Data))
	}
}

func TestDecode_NonOggIsUnsupported(t *testing.T) {
	fake := &fakePacketDecoder{}
	_, err := newTestDecoder(fake).Decode(audio.Clip{Data: []byte("RIFF....WAVEfmt ")})
	if !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if fake.calls != 0 {
		t.Fatal("decoder must not be used for non-ogg input")
	}
}

func TestDecode_OggVorbisIsUnsupported(t *testing.T) {
	data := oggPage(3, 0, 0x02, []byte("\x01vorbis"))
	_, err := newTestDecoder(&fakePacketDecoder{}).Decode(audio.Clip{Data: data})
	if !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecode_CorruptPacket(t *testing.T) {
	data := oggPage(9, 0, 0x02, opusHead(1, 0))
	data = append(data, oggPage(9, 1, 0x04, []byte{1})...)
	fake := &fakePacketDecoder{err: errors.New("invalid packet")}
	_, err := newTestDecoder(fake).Decode(audio.Clip{Data: data})
	if !errors.Is(err, audio.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestDecode_Empty(t *testing.T) {
	_, err := NewOggOpusDecoder().Decode(audio.Clip{})
	if !errors.Is(err, audio.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}

func TestDecode_StopsPastMaxDuration(t *testing.T) {
	clip := func(packets int) audio.Clip {
		data := oggPage(9, 0, 0x02, opusHead(1, 0))
		var body [][]byte
		for i := 0; i < packets; i++ {
			body = append(body, []byte{byte(i + 1)})
		}
		return audio.Clip{Data: append(data, oggPage(9, 1, 0x04, body...)...)}
	}

	// 1 ms at 48 kHz is 48 frames, 12 fake packets of 4 frames each.
	fake := &fakePacketDecoder{}
	dec := newTestDecoder(fake)
	dec.maxDuration = time.Millisecond
	if _, err := dec.Decode(clip(12)); err != nil {
		t.Fatalf("expected clip at the limit to decode, got %v", err)
	}

	fake = &fakePacketDecoder{}
	dec = newTestDecoder(fake)
	dec.maxDuration = time.Millisecond
	_, err := dec.Decode(clip(40))
	if !errors.Is(err, audio.ErrTooLong) {
		t.Fatalf("expected ErrTooLong, got %v", err)
	}
	if fake.calls != 13 {
		t.Fatalf("expected decoding to stop after 13 packets, got %d", fake.calls)
	}
}

func TestNewOggOpusDecoder_HasDurationLimit(t *testing.T) {
	dec, ok := NewOggOpusDecoder().(*OggOpusDecoder)
	if !ok {
		t.Fatal("unexpected decoder type")
	}
	if dec.maxDuration != maxDecodedDuration {
		t.Fatalf("unexpected limit: %s", dec.maxDuration)
	}
}
