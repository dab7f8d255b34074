package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/foxseedlab/voxbridge/internal/audio"
)

const (
	oggPageHeaderLen = 27
	oggContinued     = 0x01
)

var oggCapturePattern = []byte("OggS")

func isOgg(data []byte) bool {
	return bytes.HasPrefix(data, oggCapturePattern)
}

// readOggPackets returns the packets of the first logical bitstream in data.
// Page checksums are not verified; a truncated page is reported as corrupt.
func readOggPackets(data []byte) ([][]byte, error) {
	var (
		packets [][]byte
		partial []byte
		serial  uint32
		first   = true
	)
	for off := 0; off < len(data); {
		if len(data)-off < oggPageHeaderLen || !bytes.Equal(data[off:off+4], oggCapturePattern) {
			return nil, fmt.Errorf("%w: bad ogg page at offset %d", audio.ErrCorrupt, off)
		}
		header := data[off : off+oggPageHeaderLen]
		pageSerial := binary.LittleEndian.Uint32(header[14:18])
		segments := int(header[26])
		tableEnd := off + oggPageHeaderLen + segments
		if tableEnd > len(data) {
			return nil, fmt.Errorf("%w: truncated segment table at offset %d", audio.ErrCorrupt, off)
		}
		lacing := data[off+oggPageHeaderLen : tableEnd]
		bodyLen := 0
		for _, l := range lacing {
			bodyLen += int(l)
		}
		if tableEnd+bodyLen > len(data) {
			return nil, fmt.Errorf("%w: truncated page body at offset %d", audio.ErrCorrupt, off)
		}
		body := data[tableEnd : tableEnd+bodyLen]
		off = tableEnd + bodyLen

		if first {
			serial = pageSerial
			first = false
		}
		if pageSerial != serial {
			continue
		}
		if header[5]&oggContinued == 0 && len(partial) > 0 {
			return nil, fmt.Errorf("%w: unterminated packet before page %d", audio.ErrCorrupt, binary.LittleEndian.Uint32(header[18:22]))
		}

		pos := 0
		for _, l := range lacing {
			partial = append(partial, body[pos:pos+int(l)]...)
			pos += int(l)
			if l < 255 {
				packets = append(packets, partial)
				partial = nil
			}
		}
	}
	if len(partial) > 0 {
		packets = append(packets, partial)
	}
	if len(packets) == 0 {
		return nil, fmt.Errorf("%w: ogg stream has no packets", audio.ErrCorrupt)
	}
	return packets, nil
}
