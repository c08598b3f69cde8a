package webostv

import (
	"context"

	"github.com/wagiedev/webostv-go/internal/command"
)

// Subscription names, one per subscribable command per control group.
const (
	subVolume         = "volume"
	subAudioOutput    = "audio_output"
	subCurrentChannel = "current_channel"
	subPowerState     = "power_state"
)

func exec(ctx context.Context, d *command.Dispatcher, desc command.Descriptor, args command.Args) error {
	_, err := d.Execute(ctx, desc, args)

	return err
}

func execPayload(
	ctx context.Context,
	d *command.Dispatcher,
	desc command.Descriptor,
	args command.Args,
) (map[string]any, error) {
	result, err := d.Execute(ctx, desc, args)
	if err != nil {
		return nil, err
	}

	payload, _ := result.(map[string]any)

	return payload, nil
}

// MediaControl groups audio and playback transport commands.
type MediaControl struct {
	d *command.Dispatcher
}

func (m *MediaControl) VolumeUp(ctx context.Context) error {
	return exec(ctx, m.d, command.VolumeUp, command.Args{})
}

func (m *MediaControl) VolumeDown(ctx context.Context) error {
	return exec(ctx, m.d, command.VolumeDown, command.Args{})
}

// Volume returns the current volume status (volume level, mute flag).
func (m *MediaControl) Volume(ctx context.Context) (map[string]any, error) {
	return execPayload(ctx, m.d, command.GetVolume, command.Args{})
}

func (m *MediaControl) SetVolume(ctx context.Context, level int) error {
	return exec(ctx, m.d, command.SetVolume, command.Positional(level))
}

func (m *MediaControl) Mute(ctx context.Context, mute bool) error {
	return exec(ctx, m.d, command.Mute, command.Positional(mute))
}

func (m *MediaControl) Play(ctx context.Context) error {
	return exec(ctx, m.d, command.Play, command.Args{})
}

func (m *MediaControl) Pause(ctx context.Context) error {
	return exec(ctx, m.d, command.Pause, command.Args{})
}

func (m *MediaControl) Stop(ctx context.Context) error {
	return exec(ctx, m.d, command.Stop, command.Args{})
}

func (m *MediaControl) Rewind(ctx context.Context) error {
	return exec(ctx, m.d, command.Rewind, command.Args{})
}

func (m *MediaControl) FastForward(ctx context.Context) error {
	return exec(ctx, m.d, command.FastForward, command.Args{})
}

// AudioOutput returns the active sound output route.
func (m *MediaControl) AudioOutput(ctx context.Context) (AudioOutputSource, error) {
	result, err := m.d.Execute(ctx, command.GetAudioOutput, command.Args{})
	if err != nil {
		return "", err
	}

	out, _ := result.(AudioOutputSource)

	return out, nil
}

func (m *MediaControl) SetAudioOutput(ctx context.Context, output AudioOutputSource) error {
	return exec(ctx, m.d, command.SetAudioOutput, command.Positional(string(output)))
}

// SoundOutput returns the raw sound output status payload.
func (m *MediaControl) SoundOutput(ctx context.Context) (map[string]any, error) {
	return execPayload(ctx, m.d, command.GetSoundOutput, command.Args{})
}

// SubscribeVolume delivers every volume status push until unsubscribed.
func (m *MediaControl) SubscribeVolume(
	ctx context.Context,
	handler func(status map[string]any, err error),
) error {
	return m.d.Subscribe(ctx, subVolume, command.GetVolume, func(result any, err error) {
		status, _ := result.(map[string]any)
		handler(status, err)
	})
}

func (m *MediaControl) UnsubscribeVolume(ctx context.Context) error {
	return m.d.Unsubscribe(ctx, subVolume)
}

// SubscribeAudioOutput delivers every sound output change until unsubscribed.
func (m *MediaControl) SubscribeAudioOutput(
	ctx context.Context,
	handler func(output AudioOutputSource, err error),
) error {
	return m.d.Subscribe(ctx, subAudioOutput, command.GetAudioOutput, func(result any, err error) {
		output, _ := result.(AudioOutputSource)
		handler(output, err)
	})
}

func (m *MediaControl) UnsubscribeAudioOutput(ctx context.Context) error {
	return m.d.Unsubscribe(ctx, subAudioOutput)
}

// TVControl groups live TV channel commands.
type TVControl struct {
	d *command.Dispatcher
}

func (t *TVControl) ChannelUp(ctx context.Context) error {
	return exec(ctx, t.d, command.ChannelUp, command.Args{})
}

func (t *TVControl) ChannelDown(ctx context.Context) error {
	return exec(ctx, t.d, command.ChannelDown, command.Args{})
}

// Channels returns the channel list as reported by the tuner.
func (t *TVControl) Channels(ctx context.Context) ([]any, error) {
	result, err := t.d.Execute(ctx, command.GetChannels, command.Args{})
	if err != nil {
		return nil, err
	}

	channels, _ := result.([]any)

	return channels, nil
}

// CurrentChannel returns the channel currently tuned.
func (t *TVControl) CurrentChannel(ctx context.Context) (map[string]any, error) {
	return execPayload(ctx, t.d, command.GetCurrentChannel, command.Args{})
}

// ChannelInfo returns program info for the current channel.
func (t *TVControl) ChannelInfo(ctx context.Context) (map[string]any, error) {
	return execPayload(ctx, t.d, command.GetChannelInfo, command.Args{})
}

// SetChannel tunes to a channel. The argument is a channel object as
// returned by Channels (or a subset like {"channelId": ...}).
func (t *TVControl) SetChannel(ctx context.Context, channel map[string]any) error {
	return exec(ctx, t.d, command.SetChannel, command.Positional(channel))
}

// SubscribeCurrentChannel delivers a push on every channel change.
func (t *TVControl) SubscribeCurrentChannel(
	ctx context.Context,
	handler func(channel map[string]any, err error),
) error {
	return t.d.Subscribe(ctx, subCurrentChannel, command.GetCurrentChannel, func(result any, err error) {
		channel, _ := result.(map[string]any)
		handler(channel, err)
	})
}

func (t *TVControl) UnsubscribeCurrentChannel(ctx context.Context) error {
	return t.d.Unsubscribe(ctx, subCurrentChannel)
}

// SystemControl groups power, notification, and system info commands.
type SystemControl struct {
	d *command.Dispatcher
}

func (s *SystemControl) PowerOff(ctx context.Context) error {
	return exec(ctx, s.d, command.PowerOff, command.Args{})
}

func (s *SystemControl) TurnOn(ctx context.Context) error {
	return exec(ctx, s.d, command.TurnOn, command.Args{})
}

// Info returns static system information (model name, firmware, ...).
func (s *SystemControl) Info(ctx context.Context) (map[string]any, error) {
	return execPayload(ctx, s.d, command.SystemInfo, command.Args{})
}

// Notify shows a toast notification on the TV screen.
func (s *SystemControl) Notify(ctx context.Context, message string) error {
	return exec(ctx, s.d, command.Notify, command.Positional(message))
}

func (s *SystemControl) LauncherClose(ctx context.Context) error {
	return exec(ctx, s.d, command.LauncherClose, command.Args{})
}

func (s *SystemControl) LauncherReady(ctx context.Context) error {
	return exec(ctx, s.d, command.LauncherReady, command.Args{})
}

// PowerState returns the current power state payload.
func (s *SystemControl) PowerState(ctx context.Context) (map[string]any, error) {
	return execPayload(ctx, s.d, command.PowerState, command.Args{})
}

// SubscribePowerState delivers a push on every power state transition.
func (s *SystemControl) SubscribePowerState(
	ctx context.Context,
	handler func(state map[string]any, err error),
) error {
	return s.d.Subscribe(ctx, subPowerState, command.PowerState, func(result any, err error) {
		state, _ := result.(map[string]any)
		handler(state, err)
	})
}

func (s *SystemControl) UnsubscribePowerState(ctx context.Context) error {
	return s.d.Unsubscribe(ctx, subPowerState)
}

// ApplicationControl groups app management commands.
type ApplicationControl struct {
	d *command.Dispatcher
}

// Apps lists the installed applications.
func (a *ApplicationControl) Apps(ctx context.Context) ([]Application, error) {
	result, err := a.d.Execute(ctx, command.ListApps, command.Args{})
	if err != nil {
		return nil, err
	}

	apps, _ := result.([]Application)

	return apps, nil
}

// Status returns the launcher state for an app, e.g. {"id": "netflix"}.
func (a *ApplicationControl) Status(ctx context.Context, params map[string]any) (map[string]any, error) {
	return execPayload(ctx, a.d, command.GetAppStatus, command.Positional(params))
}

// Launch starts an app from a raw launch object.
func (a *ApplicationControl) Launch(ctx context.Context, params map[string]any) (map[string]any, error) {
	return execPayload(ctx, a.d, command.Launch, command.Positional(params))
}

// LaunchApp starts an app by its identifier.
func (a *ApplicationControl) LaunchApp(ctx context.Context, appID string) (map[string]any, error) {
	return execPayload(ctx, a.d, command.LaunchApp, command.Positional(appID))
}

// LaunchAppWithContent starts an app and deep-links it to contentID.
func (a *ApplicationControl) LaunchAppWithContent(
	ctx context.Context,
	appID string,
	contentID any,
) (map[string]any, error) {
	args := command.Args{
		Positional: []any{appID},
		Named:      map[string]any{"content_id": contentID},
	}

	return execPayload(ctx, a.d, command.LaunchApp, args)
}

// CloseApp closes an app by its identifier.
func (a *ApplicationControl) CloseApp(ctx context.Context, appID string) error {
	return exec(ctx, a.d, command.CloseApp, command.Positional(appID))
}

// Close closes an app from a raw close object, e.g. a launch response.
func (a *ApplicationControl) Close(ctx context.Context, params map[string]any) error {
	return exec(ctx, a.d, command.Close, command.Positional(params))
}

// SourceControl groups external input source commands.
type SourceControl struct {
	d *command.Dispatcher
}

// Sources lists the TV's external inputs.
func (s *SourceControl) Sources(ctx context.Context) ([]InputSource, error) {
	result, err := s.d.Execute(ctx, command.ListSources, command.Args{})
	if err != nil {
		return nil, err
	}

	sources, _ := result.([]InputSource)

	return sources, nil
}

// SetSource switches the TV to the given external input.
func (s *SourceControl) SetSource(ctx context.Context, source InputSource) error {
	return exec(ctx, s.d, command.SetSource,
		command.Positional(map[string]any{"inputId": source.ID()}))
}

// InputControl groups on-screen keyboard and pointer/remote-button input.
//
// Pointer and button commands ride a second websocket the TV hands out on
// demand; it is dialed lazily on first use and torn down by Client.Close.
type InputControl struct {
	d       *command.Dispatcher
	pointer *command.PointerInput
}

// Type inserts text into the focused input field.
func (i *InputControl) Type(ctx context.Context, text string) error {
	return exec(ctx, i.d, command.TypeText, command.Positional(text))
}

// DeleteCharacters deletes count characters before the cursor.
func (i *InputControl) DeleteCharacters(ctx context.Context, count int) error {
	return exec(ctx, i.d, command.DeleteCharacters, command.Positional(count))
}

// Enter submits the focused input field.
func (i *InputControl) Enter(ctx context.Context) error {
	return exec(ctx, i.d, command.SendEnter, command.Args{})
}

// Connect dials the pointer input socket eagerly. Button, Move, Click,
// and Scroll connect on demand, so calling this is optional.
func (i *InputControl) Connect(ctx context.Context) error {
	return i.pointer.Connect(ctx)
}

// Button presses a remote control button by name (see the Button constants).
func (i *InputControl) Button(ctx context.Context, name string) error {
	return i.pointer.Button(ctx, name)
}

// Move moves the pointer to absolute coordinates.
func (i *InputControl) Move(ctx context.Context, x, y int, drag bool) error {
	return i.pointer.Move(ctx, x, y, drag)
}

// MoveMouse moves the pointer by a relative delta.
func (i *InputControl) MoveMouse(ctx context.Context, dx, dy int, drag bool) error {
	return i.pointer.MoveMouse(ctx, dx, dy, drag)
}

// Click clicks at absolute coordinates.
func (i *InputControl) Click(ctx context.Context, x, y int) error {
	return i.pointer.Click(ctx, x, y)
}

// Scroll scrolls at the given coordinates; direction is "up" or "down".
func (i *InputControl) Scroll(ctx context.Context, x, y int, direction string) error {
	return i.pointer.Scroll(ctx, x, y, direction)
}

// Remote control button names accepted by Button.
const (
	ButtonHome        = command.ButtonHome
	ButtonBack        = command.ButtonBack
	ButtonUp          = command.ButtonUp
	ButtonDown        = command.ButtonDown
	ButtonLeft        = command.ButtonLeft
	ButtonRight       = command.ButtonRight
	ButtonEnter       = command.ButtonEnter
	ButtonDash        = command.ButtonDash
	ButtonInfo        = command.ButtonInfo
	ButtonAsterisk    = command.ButtonAsterisk
	ButtonCC          = command.ButtonCC
	ButtonExit        = command.ButtonExit
	ButtonMute        = command.ButtonMute
	ButtonRed         = command.ButtonRed
	ButtonGreen       = command.ButtonGreen
	ButtonYellow      = command.ButtonYellow
	ButtonBlue        = command.ButtonBlue
	ButtonVolumeUp    = command.ButtonVolumeUp
	ButtonVolumeDown  = command.ButtonVolumeDown
	ButtonChannelUp   = command.ButtonChannelUp
	ButtonChannelDown = command.ButtonChannelDown
)
