package server

import (
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/foxseedlab/voxbridge/internal/audio"
	"github.com/foxseedlab/voxbridge/internal/pipeline"
)

//go:embed static/dashboard.html
var dashboardHTML []byte

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

type languageEntry struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type languagesResponse struct {
	Languages []languageEntry `json:"languages"`
}

type translateResponse struct {
	Success          bool   `json:"success"`
	SessionID        string `json:"session_id,omitempty"`
	InputText        string `json:"input_text"`
	InputLanguage    string `json:"input_language"`
	DetectedLanguage string `json:"detected_language,omitempty"`
	TranslatedText   string `json:"translated_text"`
	TargetLanguage   string `json:"target_language"`
	SpeechDetected   bool   `json:"speech_detected"`
	AudioBase64      string `json:"audio_base64,omitempty"`
	AudioMimeType    string `json:"audio_mime_type,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Stage   string `json:"stage,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "online", Service: serviceName, Version: Version})
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(dashboardHTML)
}

func (s *Server) handleLanguages(w http.ResponseWriter, _ *http.Request) {
	langs := s.pipeline.Languages()
	resp := languagesResponse{Languages: make([]languageEntry, 0, len(langs))}
	for _, l := range langs {
		resp.Languages = append(resp.Languages, languageEntry{Name: l.Name, Code: l.Code})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxAudioBytes+multipartOverhead)

	req, err := s.parseTranslateRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	resp, err := s.pipeline.Run(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := translateResponse{
		Success:          true,
		SessionID:        resp.SessionID,
		InputText:        resp.InputText,
		InputLanguage:    resp.Source.Code,
		DetectedLanguage: resp.DetectedLanguage,
		TranslatedText:   resp.TranslatedText,
		TargetLanguage:   resp.Target.Name,
		SpeechDetected:   resp.SpeechDetected,
	}
	if resp.Speech != nil {
		out.AudioBase64 = base64.StdEncoding.EncodeToString(resp.Speech.Audio)
		out.AudioMimeType = resp.Speech.MimeType
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) parseTranslateRequest(r *http.Request) (pipeline.Request, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return s.parseMultipart(r)
	}

	data, err := s.readAudio(r.Body)
	if err != nil {
		return pipeline.Request{}, err
	}
	q := r.URL.Query()
	return pipeline.Request{
		Audio:          audio.Clip{Data: data, MimeType: r.Header.Get("Content-Type")},
		SourceLanguage: q.Get("source_language"),
		TargetLanguage: q.Get("target_language"),
		SessionID:      q.Get("session_id"),
	}, nil
}

func (s *Server) parseMultipart(r *http.Request) (pipeline.Request, error) {
	if err := r.ParseMultipartForm(s.maxAudioBytes); err != nil {
		if isMaxBytesError(err) {
			return pipeline.Request{}, errPayloadTooLarge
		}
		return pipeline.Request{}, fmt.Errorf("%w: malformed multipart body: %v", pipeline.ErrInvalidRequest, err)
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("%w: no audio file provided", pipeline.ErrInvalidRequest)
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := s.readAudio(file)
	if err != nil {
		return pipeline.Request{}, err
	}
	return pipeline.Request{
		Audio:          audio.Clip{Data: data, MimeType: header.Header.Get("Content-Type")},
		SourceLanguage: r.FormValue("source_language"),
		TargetLanguage: r.FormValue("target_language"),
		SessionID:      r.FormValue("session_id"),
	}, nil
}

func (s *Server) readAudio(src io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(src, s.maxAudioBytes+1))
	if err != nil {
		if isMaxBytesError(err) {
			return nil, errPayloadTooLarge
		}
		return nil, fmt.Errorf("%w: read audio: %v", pipeline.ErrInvalidRequest, err)
	}
	if int64(len(data)) > s.maxAudioBytes {
		return nil, errPayloadTooLarge
	}
	return data, nil
}

func isMaxBytesError(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	stage := stageFor(err)
	if status >= http.StatusInternalServerError {
		slog.Error("translate request failed", "error", err, "stage", stage, "status", status)
	} else {
		slog.Warn("translate request rejected", "error", err, "stage", stage, "status", status, "path", r.URL.Path)
	}
	writeJSON(w, status, errorResponse{Success: false, Error: err.Error(), Stage: stage})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}
