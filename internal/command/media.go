package command

import "github.com/wagiedev/webostv-go/internal/model"

// Media and audio commands.
var (
	VolumeUp   = Descriptor{URI: "ssap://audio/volumeUp"}
	VolumeDown = Descriptor{URI: "ssap://audio/volumeDown"}

	GetVolume = Descriptor{
		URI:          "ssap://audio/getVolume",
		Validation:   StandardValidation,
		Subscription: true,
	}

	SetVolume = Descriptor{
		URI:     "ssap://audio/setVolume",
		Payload: map[string]any{"volume": Arg(0)},
	}

	Mute = Descriptor{
		URI:     "ssap://audio/setMute",
		Payload: map[string]any{"mute": Arg(0)},
	}

	Play        = Descriptor{URI: "ssap://media.controls/play"}
	Pause       = Descriptor{URI: "ssap://media.controls/pause"}
	Stop        = Descriptor{URI: "ssap://media.controls/stop"}
	Rewind      = Descriptor{URI: "ssap://media.controls/rewind"}
	FastForward = Descriptor{URI: "ssap://media.controls/fastForward"}

	GetAudioOutput = Descriptor{
		URI:          "ssap://audio/getSoundOutput",
		Validation:   StandardValidation,
		Subscription: true,
		Transform: func(p map[string]any) (any, error) {
			out, _ := p["soundOutput"].(string)

			return model.AudioOutputSource(out), nil
		},
	}

	SetAudioOutput = Descriptor{
		URI:     "ssap://audio/changeSoundOutput",
		Payload: map[string]any{"output": Arg(0)},
	}

	GetSoundOutput = Descriptor{
		URI:          "ssap://audio/getSoundOutput",
		Validation:   StandardValidation,
		Subscription: true,
	}
)
