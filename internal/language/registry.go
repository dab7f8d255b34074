// Package language maps human-readable language names to the codes the
// speech, translation and voice backends expect.
package language

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

type Language struct {
	Name string
	// Code is the translation code, e.g. "es" or "zh-CN".
	Code string
	// Locale is the BCP-47 locale used for speech recognition.
	Locale string
	// VoiceLocale is the locale used for speech synthesis; empty means Locale.
	VoiceLocale string
}

func (l Language) IsZero() bool {
	return l.Code == ""
}

// ISO639 returns the base language subtag ("zh" for "zh-CN").
func (l Language) ISO639() string {
	base, _, _ := strings.Cut(l.Code, "-")
	return strings.ToLower(base)
}

func (l Language) SynthesisLocale() string {
	if l.VoiceLocale != "" {
		return l.VoiceLocale
	}
	return l.Locale
}

// Registry is read-only after construction and safe for concurrent use.
type Registry struct {
	byKey map[string]Language
	// byTag indexes recognition locales and base subtags for Detect.
	byTag map[string]Language
	all   []Language
}

func NewRegistry(languages []Language) (*Registry, error) {
	r := &Registry{
		byKey: make(map[string]Language, len(languages)*2),
		byTag: make(map[string]Language, len(languages)*2),
	}
	for _, l := range languages {
		if l.Name == "" || l.Code == "" || l.Locale == "" {
			return nil, fmt.Errorf("language entry %q is incomplete", l.Name)
		}
		for _, key := range []string{normalize(l.Name), normalize(l.Code)} {
			if prev, ok := r.byKey[key]; ok && prev.Code != l.Code {
				return nil, fmt.Errorf("language key %q is ambiguous between %s and %s", key, prev.Name, l.Name)
			}
			r.byKey[key] = l
		}
		for _, tag := range []string{normalize(l.Locale), l.ISO639()} {
			if _, ok := r.byTag[tag]; !ok {
				r.byTag[tag] = l
			}
		}
		r.all = append(r.all, l)
	}
	sort.Slice(r.all, func(i, j int) bool { return r.all[i].Name < r.all[j].Name })
	return r, nil
}

// Default returns the registry of the languages the service ships with.
func Default() *Registry {
	r, err := NewRegistry(defaultLanguages)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve looks a language up by name ("Spanish") or code ("es"),
// ignoring case and surrounding whitespace.
func (r *Registry) Resolve(nameOrCode string) (Language, error) {
	key := normalize(nameOrCode)
	if key == "" {
		return Language{}, fmt.Errorf("%w: empty language", ErrUnsupportedLanguage)
	}
	l, ok := r.byKey[key]
	if !ok {
		return Language{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, strings.TrimSpace(nameOrCode))
	}
	return l, nil
}

// Detect maps whatever a recognizer reports as the spoken language
// ("en-us", "cmn-Hans-CN", "english") onto a registered language.
func (r *Registry) Detect(tag string) (Language, bool) {
	key := strings.ReplaceAll(normalize(tag), "_", "-")
	if key == "" {
		return Language{}, false
	}
	if l, ok := r.byKey[key]; ok {
		return l, true
	}
	if l, ok := r.byTag[key]; ok {
		return l, true
	}
	base, _, _ := strings.Cut(key, "-")
	l, ok := r.byTag[base]
	return l, ok
}

// List returns every language sorted by name.
func (r *Registry) List() []Language {
	out := make([]Language, len(r.all))
	copy(out, r.all)
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var defaultLanguages = []Language{
	{Name: "English", Code: "en", Locale: "en-US"},
	{Name: "Hindi", Code: "hi", Locale: "hi-IN"},
	{Name: "Spanish", Code: "es", Locale: "es-ES"},
	{Name: "French", Code: "fr", Locale: "fr-FR"},
	{Name: "German", Code: "de", Locale: "de-DE"},
	{Name: "Japanese", Code: "ja", Locale: "ja-JP"},
	{Name: "Portuguese", Code: "pt", Locale: "pt-BR"},
	{Name: "Russian", Code: "ru", Locale: "ru-RU"},
	{Name: "Arabic", Code: "ar", Locale: "ar-EG", VoiceLocale: "ar-XA"},
	{Name: "Turkish", Code: "tr", Locale: "tr-TR"},
	{Name: "Chinese", Code: "zh-CN", Locale: "cmn-Hans-CN", VoiceLocale: "cmn-CN"},
	{Name: "Bengali", Code: "bn", Locale: "bn-IN"},
	{Name: "Telugu", Code: "te", Locale: "te-IN"},
	{Name: "Marathi", Code: "mr", Locale: "mr-IN"},
	{Name: "Tamil", Code: "ta", Locale: "ta-IN"},
	{Name: "Gujarati", Code: "gu", Locale: "gu-IN"},
	{Name: "Kannada", Code: "kn", Locale: "kn-IN"},
	{Name: "Urdu", Code: "ur", Locale: "ur-IN"},
	{Name: "Malay", Code: "ms", Locale: "ms-MY"},
	{Name: "Indonesian", Code: "id", Locale: "id-ID"},
}
