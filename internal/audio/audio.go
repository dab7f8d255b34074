package audio

import (
	"errors"
	"time"
)

var (
	ErrUnsupportedFormat = errors.New("audio format cannot be decoded locally")
	ErrCorrupt           = errors.New("audio payload is corrupt")
	ErrTooLong           = errors.New("audio exceeds the maximum duration")
)

// Clip is an uploaded recording as received from the client.
type Clip struct {
	Data     []byte
	MimeType string
}

func (c Clip) Empty() bool {
	return len(c.Data) == 0
}

// PCM is interleaved little-endian signed 16-bit audio.
type PCM struct {
	Data       []byte
	SampleRate int
	Channels   int
}

func (p PCM) Duration() time.Duration {
	if p.SampleRate <= 0 || p.Channels <= 0 {
		return 0
	}
	frames := len(p.Data) / (2 * p.Channels)
	return time.Duration(frames) * time.Second / time.Duration(p.SampleRate)
}

// Decoder converts a clip into PCM. It returns ErrUnsupportedFormat when the
// clip must be handed to the backend undecoded and ErrCorrupt when the clip
// claims a supported format but cannot be read. ErrTooLong means the clip
// runs past what the recognizer accepts in one request.
type Decoder interface {
	Decode(clip Clip) (PCM, error)
}
