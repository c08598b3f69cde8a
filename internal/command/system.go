package command

// System commands.
var (
	PowerOff = Descriptor{URI: "ssap://system/turnOff"}
	TurnOn   = Descriptor{URI: "ssap://system/turnOn"}

	SystemInfo = Descriptor{
		URI:        "ssap://system/getSystemInfo",
		Validation: StandardValidation,
	}

	Notify = Descriptor{
		URI:     "ssap://system.notifications/createToast",
		Payload: map[string]any{"message": Arg(0)},
	}

	LauncherClose = Descriptor{URI: "ssap://com.webos.app.home/close"}
	LauncherReady = Descriptor{URI: "ssap://com.webos.app.home/ready"}

	PowerState = Descriptor{
		URI:          "ssap://com.webos.service.tvpower/power/getPowerState",
		Validation:   StandardValidation,
		Subscription: true,
	}
)
