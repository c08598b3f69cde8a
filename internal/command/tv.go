package command

// Live TV commands.
var (
	ChannelUp   = Descriptor{URI: "ssap://tv/channelUp"}
	ChannelDown = Descriptor{URI: "ssap://tv/channelDown"}

	GetChannels = Descriptor{
		URI:        "ssap://tv/getChannelList",
		Validation: StandardValidation,
		Transform: func(p map[string]any) (any, error) {
			return p["channelList"], nil
		},
	}

	GetCurrentChannel = Descriptor{
		URI:          "ssap://tv/getCurrentChannel",
		Validation:   StandardValidation,
		Subscription: true,
	}

	GetChannelInfo = Descriptor{
		URI:        "ssap://tv/getChannelProgramInfo",
		Validation: StandardValidation,
	}

	SetChannel = Descriptor{
		URI:     "ssap://tv/openChannel",
		Payload: Arg(0),
	}
)
