package protocol

import (
	"context"
	"fmt"
	"time"

	"github.com/wagiedev/webostv-go/internal/errors"
)

// RegisterStatus is a pairing milestone surfaced to the caller.
type RegisterStatus int

const (
	// StatusPrompted means the TV is showing the pairing prompt and is
	// waiting for the user to accept.
	StatusPrompted RegisterStatus = iota + 1

	// StatusRegistered means pairing completed and the session holds a
	// client key.
	StatusRegistered
)

func (s RegisterStatus) String() string {
	switch s {
	case StatusPrompted:
		return "prompted"
	case StatusRegistered:
		return "registered"
	default:
		return fmt.Sprintf("RegisterStatus(%d)", int(s))
	}
}

// signature is the static app signature the TV expects in the
// registration manifest.
const signature = "eyJhbGdvcml0aG0iOiJSU0EtU0hBMjU2Iiwia2V5SWQiOiJ0ZXN0LXNpZ25pbm" +
	"ctY2VydCIsInNpZ25hdHVyZVZlcnNpb24iOjF9.hrVRgjCwXVvE2OOSpDZ58hR" +
	"+59aFNwYDyjQgKk3auukd7pcegmE2CzPCa0bJ0ZsRAcKkCTJrWo5iDzNhMBWRy" +
	"aMOv5zWSrthlf7G128qvIlpMT0YNY+n/FaOHE73uLrS/g7swl3/qH/BGFG2Hu4" +
	"RlL48eb3lLKqTt2xKHdCs6Cd4RMfJPYnzgvI4BNrFUKsjkcu+WD4OO2A27Pq1n" +
	"50cMchmcaXadJhGrOqH5YmHdOCj5NSHzJYrsW0HPlpuAx/ECMeIZYDh6RMqaFM" +
	"2DXzdKX9NmmyqzJ3o/0lkk/N97gfVRLW5hA29yeAwaCViZNCP8iC9aO0q9fQoj" +
	"oa7NQnAtw=="

// registrationPayload builds the capability manifest for a register
// request. A fresh map is returned on every call so callers can mutate it.
// A non-empty clientKey is included for re-authentication.
func registrationPayload(clientKey string) map[string]any {
	payload := map[string]any{
		"forcePairing": false,
		"pairingType":  "PROMPT",
		"manifest": map[string]any{
			"appVersion":      "1.1",
			"manifestVersion": 1,
			"permissions": []string{
				"LAUNCH",
				"LAUNCH_WEBAPP",
				"APP_TO_APP",
				"CLOSE",
				"TEST_OPEN",
				"TEST_PROTECTED",
				"CONTROL_AUDIO",
				"CONTROL_DISPLAY",
				"CONTROL_INPUT_JOYSTICK",
				"CONTROL_INPUT_MEDIA_RECORDING",
				"CONTROL_INPUT_MEDIA_PLAYBACK",
				"CONTROL_INPUT_TV",
				"CONTROL_POWER",
				"READ_APP_STATUS",
				"READ_CURRENT_CHANNEL",
				"READ_INPUT_DEVICE_LIST",
				"READ_NETWORK_STATE",
				"READ_RUNNING_APPS",
				"READ_TV_CHANNEL_LIST",
				"WRITE_NOTIFICATION_TOAST",
				"READ_POWER_STATE",
				"READ_COUNTRY_INFO",
				"READ_SETTINGS",
				"CONTROL_TV_SCREEN",
				"CONTROL_TV_STANBY",
				"CONTROL_FAVORITE_GROUP",
				"CONTROL_USER_INFO",
				"CHECK_BLUETOOTH_DEVICE",
				"CONTROL_BLUETOOTH",
				"CONTROL_TIMER_INFO",
				"STB_INTERNAL_CONNECTION",
				"CONTROL_RECORDING",
				"READ_RECORDING_STATE",
				"WRITE_RECORDING_LIST",
				"READ_RECORDING_LIST",
				"READ_RECORDING_SCHEDULE",
				"WRITE_RECORDING_SCHEDULE",
				"READ_STORAGE_DEVICE_LIST",
				"READ_TV_PROGRAM_INFO",
				"CONTROL_BOX_CHANNEL",
				"READ_TV_ACR_AUTH_TOKEN",
				"READ_TV_CONTENT_STATE",
				"READ_TV_CURRENT_TIME",
				"ADD_LAUNCHER_CHANNEL",
				"SET_CHANNEL_SKIP",
				"RELEASE_CHANNEL_SKIP",
				"CONTROL_CHANNEL_BLOCK",
				"DELETE_SELECT_CHANNEL",
				"CONTROL_CHANNEL_GROUP",
				"SCAN_TV_CHANNELS",
				"CONTROL_TV_POWER",
				"CONTROL_WOL",
			},
			"signatures": []map[string]any{
				{
					"signature":        signature,
					"signatureVersion": 1,
				},
			},
			"signed": map[string]any{
				"appId":   "com.lge.test",
				"created": "20140509",
				"localizedAppNames": map[string]string{
					"":       "LG Remote App",
					"ko-KR":  "리모컨 앱",
					"zxx-XX": "ЛГ Rэмotэ AПП",
				},
				"localizedVendorNames": map[string]string{
					"": "LG Electronics",
				},
				"permissions": []string{
					"TEST_SECURE",
					"CONTROL_INPUT_TEXT",
					"CONTROL_MOUSE_AND_KEYBOARD",
					"READ_INSTALLED_APPS",
					"READ_LGE_SDX",
					"READ_NOTIFICATIONS",
					"SEARCH",
					"WRITE_SETTINGS",
					"WRITE_NOTIFICATION_ALERT",
					"CONTROL_POWER",
					"READ_CURRENT_CHANNEL",
					"READ_RUNNING_APPS",
					"READ_UPDATE_INFO",
					"UPDATE_FROM_REMOTE_APP",
					"READ_LGE_TV_INPUT_EVENTS",
					"READ_TV_CURRENT_TIME",
				},
				"serial":   "2f930e2d2cfe083771f68e4fe7bb07",
				"vendorId": "com.lge",
			},
		},
	}

	if clientKey != "" {
		payload["client-key"] = clientKey
	}

	return payload
}

// registerSignals carries the completion signals of one pairing exchange.
// Each channel is buffered so the classification handler, which runs on
// the dispatch goroutine, never blocks.
type registerSignals struct {
	prompted   chan struct{}
	registered chan string
	failed     chan error
}

// classify sorts one inbound frame for the register id into a prompt
// notification, a credential issuance, or a failure.
func (rs *registerSignals) classify(msg *Message) {
	switch {
	case msg.PairingType() == "PROMPT":
		select {
		case rs.prompted <- struct{}{}:
		default:
		}

	case msg.Type == TypeRegistered:
		key := msg.ClientKey()
		if key == "" {
			rs.fail(&errors.ProtocolError{Message: "registered reply without client-key"})

			return
		}

		select {
		case rs.registered <- key:
		default:
		}

	case msg.IsError():
		rs.fail(&errors.ProtocolError{Message: msg.ErrorMessage()})

	default:
		rs.fail(&errors.ProtocolError{
			Message: fmt.Sprintf("unexpected pairing reply of type %q", msg.Type),
		})
	}
}

func (rs *registerSignals) fail(err error) {
	select {
	case rs.failed <- err:
	default:
	}
}

// Register runs the pairing handshake with the TV.
//
// It sends one register request carrying the capability manifest (and
// clientKey, when re-authenticating) and returns a channel pair in the
// style of ReadMessages: the event channel emits exactly StatusPrompted
// followed by StatusRegistered on success and is then closed; any failure
// is delivered on the error channel instead and both channels close.
//
// Waiting for the prompt and waiting for the client key each get an
// independent window of timeout (DefaultTimeout when zero). When the TV
// accepts a stored key without prompting, StatusPrompted is still emitted
// immediately before StatusRegistered so callers always observe both
// milestones in order.
//
// On success the session's client key is set before StatusRegistered is
// emitted.
func (s *Session) Register(
	ctx context.Context,
	clientKey string,
	timeout time.Duration,
) (<-chan RegisterStatus, <-chan error) {
	events := make(chan RegisterStatus, 2)
	errs := make(chan error, 1)

	go s.runRegistration(ctx, clientKey, timeout, events, errs)

	return events, errs
}

func (s *Session) runRegistration(
	ctx context.Context,
	clientKey string,
	timeout time.Duration,
	events chan<- RegisterStatus,
	errs chan<- error,
) {
	defer close(events)
	defer close(errs)

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	id := s.NextID()

	s.log.Debug("Starting registration", "id", id, "has_key", clientKey != "")

	rs := &registerSignals{
		prompted:   make(chan struct{}, 1),
		registered: make(chan string, 1),
		failed:     make(chan error, 1),
	}

	// The register id receives multiple frames (prompt, then registered),
	// so its waiter persists like a subscription until pairing finishes.
	msg := &Message{Type: TypeRegister, ID: id, Payload: registrationPayload(clientKey)}

	if err := s.SendWithHandler(ctx, msg, rs.classify, true); err != nil {
		errs <- err

		return
	}

	defer s.RemoveWaiter(id)

	// Stage 1: await the pairing prompt. A stored key the TV accepts
	// outright skips straight to registered.
	select {
	case <-rs.prompted:
		s.log.Info("TV is prompting for pairing approval")

		events <- StatusPrompted

	case key := <-rs.registered:
		s.log.Info("TV accepted stored client key")
		s.SetClientKey(key)

		events <- StatusPrompted
		events <- StatusRegistered

		return

	case err := <-rs.failed:
		s.log.Warn("Registration failed", "id", id, "error", err)

		errs <- err

		return

	case <-time.After(timeout):
		errs <- fmt.Errorf("%w waiting for pairing prompt", errors.ErrRegistrationTimeout)

		return

	case <-s.done:
		errs <- errors.ErrSessionClosed

		return

	case <-ctx.Done():
		errs <- ctx.Err()

		return
	}

	// Stage 2: await credential issuance in a fresh window.
	select {
	case key := <-rs.registered:
		s.log.Info("Registration complete")
		s.SetClientKey(key)

		events <- StatusRegistered

	case err := <-rs.failed:
		s.log.Warn("Registration failed", "id", id, "error", err)

		errs <- err

	case <-time.After(timeout):
		errs <- fmt.Errorf("%w waiting for client key", errors.ErrRegistrationTimeout)

	case <-s.done:
		errs <- errors.ErrSessionClosed

	case <-ctx.Done():
		errs <- ctx.Err()
	}
}
