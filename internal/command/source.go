package command

import "github.com/wagiedev/webostv-go/internal/model"

// External input source commands.
var (
	ListSources = Descriptor{
		URI:        "ssap://tv/getExternalInputList",
		Validation: StandardValidation,
		Transform: func(p map[string]any) (any, error) {
			raw, _ := p["devices"].([]any)
			sources := make([]model.InputSource, 0, len(raw))

			for _, entry := range raw {
				if data, ok := entry.(map[string]any); ok {
					sources = append(sources, model.InputSource{Data: data})
				}
			}

			return sources, nil
		},
	}

	GetSource = Descriptor{
		URI:        "ssap://tv/getExternalInputList",
		Validation: StandardValidation,
		Transform: func(p map[string]any) (any, error) {
			return p["devices"], nil
		},
	}

	SetSource = Descriptor{
		URI:        "ssap://tv/switchInput",
		Validation: StandardValidation,
		Payload:    Arg(0),
	}
)
