package webostv

import (
	"github.com/wagiedev/webostv-go/internal/model"
	"github.com/wagiedev/webostv-go/internal/protocol"
)

// Application describes one installed app as reported by the TV.
type Application = model.Application

// InputSource describes one external input (HDMI, component, ...).
type InputSource = model.InputSource

// AudioOutputSource identifies a sound output route.
type AudioOutputSource = model.AudioOutputSource

// Known audio output sources.
const (
	TVSpeaker         = model.TVSpeaker
	ExternalSpeaker   = model.ExternalSpeaker
	Soundbar          = model.Soundbar
	BTSoundbar        = model.BTSoundbar
	TVExternalSpeaker = model.TVExternalSpeaker
)

// AudioOutputSources lists the sound outputs a TV may expose.
func AudioOutputSources() []AudioOutputSource {
	return model.AudioOutputSources()
}

// RegisterStatus reports pairing progress milestones.
type RegisterStatus = protocol.RegisterStatus

// Pairing milestones, in the order they are emitted.
const (
	// StatusPrompted means the TV is showing the on-screen pairing prompt.
	StatusPrompted = protocol.StatusPrompted

	// StatusRegistered means the TV accepted the pairing and issued a client key.
	StatusRegistered = protocol.StatusRegistered
)
