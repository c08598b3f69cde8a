// Package model defines thin wrappers over payload objects the TV returns.
package model

// Application describes one installed app as reported by the
// application manager.
type Application struct {
	Data map[string]any
}

// ID returns the app identifier (e.g. "netflix").
func (a Application) ID() string {
	id, _ := a.Data["id"].(string)

	return id
}

// Title returns the human-readable app name.
func (a Application) Title() string {
	title, _ := a.Data["title"].(string)

	return title
}

func (a Application) String() string {
	if title := a.Title(); title != "" {
		return title
	}

	return a.ID()
}

// InputSource describes one external input (HDMI, component, ...).
type InputSource struct {
	Data map[string]any
}

// ID returns the source identifier (e.g. "HDMI_1").
func (s InputSource) ID() string {
	id, _ := s.Data["id"].(string)

	return id
}

// Label returns the user-visible source label.
func (s InputSource) Label() string {
	label, _ := s.Data["label"].(string)

	return label
}

func (s InputSource) String() string {
	if label := s.Label(); label != "" {
		return label
	}

	return s.ID()
}

// AudioOutputSource identifies a sound output route.
type AudioOutputSource string

// Known audio output sources.
const (
	TVSpeaker         AudioOutputSource = "tv_speaker"
	ExternalSpeaker   AudioOutputSource = "external_speaker"
	Soundbar          AudioOutputSource = "soundbar"
	BTSoundbar        AudioOutputSource = "bt_soundbar"
	TVExternalSpeaker AudioOutputSource = "tv_external_speaker"
)

// AudioOutputSources lists the sound outputs a TV may expose.
func AudioOutputSources() []AudioOutputSource {
	return []AudioOutputSource{
		TVSpeaker, ExternalSpeaker, Soundbar, BTSoundbar, TVExternalSpeaker,
	}
}

func (a AudioOutputSource) String() string {
	return string(a)
}
