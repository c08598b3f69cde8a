package command

import "github.com/wagiedev/webostv-go/internal/model"

// Application management commands.
var (
	ListApps = Descriptor{
		URI:        "ssap://com.webos.applicationManager/listApps",
		Validation: StandardValidation,
		Transform: func(p map[string]any) (any, error) {
			raw, _ := p["apps"].([]any)
			apps := make([]model.Application, 0, len(raw))

			for _, entry := range raw {
				if data, ok := entry.(map[string]any); ok {
					apps = append(apps, model.Application{Data: data})
				}
			}

			return apps, nil
		},
	}

	GetAppStatus = Descriptor{
		URI:        "ssap://system.launcher/getAppState",
		Validation: StandardValidation,
		Payload:    Arg(0),
	}

	Launch = Descriptor{
		URI:        "ssap://system.launcher/launch",
		Validation: StandardValidation,
		Payload:    Arg(0),
	}

	LaunchApp = Descriptor{
		URI:        "ssap://system.launcher/launch",
		Validation: StandardValidation,
		Payload: map[string]any{
			"id":        Arg(0),
			"contentId": Named("content_id").Default(nil),
		},
	}

	Close = Descriptor{
		URI:        "ssap://system.launcher/close",
		Validation: StandardValidation,
		Payload:    Arg(0),
	}

	CloseApp = Descriptor{
		URI:        "ssap://system.launcher/close",
		Validation: StandardValidation,
		Payload:    map[string]any{"id": Arg(0)},
	}
)
