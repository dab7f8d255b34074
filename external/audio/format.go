package audio

import (
	"bytes"
	"mime"
	"net/http"
	"strings"

	"github.com/foxseedlab/voxbridge/internal/audio"
)

const fallbackMimeType = "application/octet-stream"

var webmMagic = []byte{0x1A, 0x45, 0xDF, 0xA3}

// DetectMimeType trusts a specific declared type and sniffs the payload
// otherwise. Codec parameters ("audio/webm;codecs=opus") are dropped.
func DetectMimeType(clip audio.Clip) string {
	if mt, _, err := mime.ParseMediaType(clip.MimeType); err == nil && mt != fallbackMimeType {
		return mt
	}
	switch {
	case isOgg(clip.Data):
		return "audio/ogg"
	case bytes.HasPrefix(clip.Data, webmMagic):
		return "audio/webm"
	}
	sniffed := http.DetectContentType(clip.Data)
	mt, _, err := mime.ParseMediaType(sniffed)
	if err != nil {
		return fallbackMimeType
	}
	switch mt {
	case "application/ogg":
		return "audio/ogg"
	case "video/webm":
		return "audio/webm"
	case "audio/wave":
		return "audio/wav"
	}
	return mt
}

// FileExtension picks the extension backends use to infer the container.
func FileExtension(mimeType string) string {
	mt := strings.ToLower(mimeType)
	switch {
	case strings.Contains(mt, "ogg"):
		return ".ogg"
	case strings.Contains(mt, "webm"):
		return ".webm"
	case strings.Contains(mt, "wav"), strings.Contains(mt, "wave"):
		return ".wav"
	case strings.Contains(mt, "flac"):
		return ".flac"
	case strings.Contains(mt, "mpeg"), strings.Contains(mt, "mp3"):
		return ".mp3"
	case strings.Contains(mt, "mp4"), strings.Contains(mt, "aac"), strings.Contains(mt, "m4a"):
		return ".m4a"
	}
	return ".webm"
}
