package command

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/wagiedev/webostv-go/internal/errors"
	"github.com/wagiedev/webostv-go/internal/protocol"
)

// Text input commands (on-screen keyboard).
var (
	TypeText = Descriptor{
		URI:     "ssap://com.webos.service.ime/insertText",
		Payload: map[string]any{"text": Arg(0), "replace": 0},
	}

	DeleteCharacters = Descriptor{
		URI:     "ssap://com.webos.service.ime/deleteCharacters",
		Payload: map[string]any{"count": Arg(0)},
	}

	SendEnter = Descriptor{URI: "ssap://com.webos.service.ime/sendEnterKey"}
)

const pointerSocketURI = "ssap://com.webos.service.networkinput/getPointerInputSocket"

// Remote control button names accepted by the pointer input socket.
const (
	ButtonHome        = "HOME"
	ButtonBack        = "BACK"
	ButtonUp          = "UP"
	ButtonDown        = "DOWN"
	ButtonLeft        = "LEFT"
	ButtonRight       = "RIGHT"
	ButtonEnter       = "ENTER"
	ButtonDash        = "DASH"
	ButtonInfo        = "INFO"
	ButtonAsterisk    = "ASTERISK"
	ButtonCC          = "CC"
	ButtonExit        = "EXIT"
	ButtonMute        = "MUTE"
	ButtonRed         = "RED"
	ButtonGreen       = "GREEN"
	ButtonYellow      = "YELLOW"
	ButtonBlue        = "BLUE"
	ButtonVolumeUp    = "VOLUMEUP"
	ButtonVolumeDown  = "VOLUMEDOWN"
	ButtonChannelUp   = "CHANNELUP"
	ButtonChannelDown = "CHANNELDOWN"
)

// PointerInput drives the TV's pointer/remote-button input service.
//
// The TV hands out a dedicated websocket path on request; button and
// pointer payloads are written to that second socket rather than the
// service bus. Connect is invoked lazily by the first send.
type PointerInput struct {
	log     *slog.Logger
	session *protocol.Session
	dialer  *websocket.Dialer

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewPointerInput creates a pointer input client over session.
// A nil dialer uses the gorilla default.
func NewPointerInput(log *slog.Logger, session *protocol.Session, dialer *websocket.Dialer) *PointerInput {
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	return &PointerInput{
		log:     log.With("component", "pointer_input"),
		session: session,
		dialer:  dialer,
	}
}

// Connect asks the TV for its pointer socket path and dials it.
// A no-op when already connected.
func (p *PointerInput) Connect(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn != nil {
		return nil
	}

	resp, err := p.session.Request(ctx, pointerSocketURI, nil, 0)
	if err != nil {
		return err
	}

	if resp.IsError() {
		return &errors.ProtocolError{Message: resp.ErrorMessage()}
	}

	socketPath, _ := resp.Payload["socketPath"].(string)
	if socketPath == "" {
		return errors.ErrNoPointerSocket
	}

	p.log.Debug("Connecting to pointer socket", "path", socketPath)

	conn, _, err := p.dialer.DialContext(ctx, socketPath, nil)
	if err != nil {
		return &errors.ConnectionError{URL: socketPath, Err: err}
	}

	p.conn = conn

	return nil
}

// Close tears down the pointer socket. Safe to call multiple times.
func (p *PointerInput) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return nil
	}

	err := p.conn.Close()
	p.conn = nil

	if err != nil {
		return fmt.Errorf("close pointer socket: %w", err)
	}

	return nil
}

// Button presses one remote control button.
func (p *PointerInput) Button(ctx context.Context, name string) error {
	return p.send(ctx, map[string]any{"button": name})
}

// Move moves the pointer to x, y. Set drag to keep a drag gesture going.
func (p *PointerInput) Move(ctx context.Context, x, y int, drag bool) error {
	return p.send(ctx, map[string]any{"x": x, "y": y, "drag": drag})
}

// MoveMouse moves the pointer by a relative dx, dy.
func (p *PointerInput) MoveMouse(ctx context.Context, dx, dy int, drag bool) error {
	return p.send(ctx, map[string]any{"dx": dx, "dy": dy, "drag": drag, "move": true})
}

// Click clicks at x, y.
func (p *PointerInput) Click(ctx context.Context, x, y int) error {
	return p.send(ctx, map[string]any{"x": x, "y": y, "click": true})
}

// Scroll scrolls the wheel at x, y in the given direction.
func (p *PointerInput) Scroll(ctx context.Context, x, y int, direction string) error {
	return p.send(ctx, map[string]any{
		"x": x, "y": y, "wheelDirection": direction, "drag": false,
	})
}

func (p *PointerInput) send(ctx context.Context, payload map[string]any) error {
	if err := p.Connect(ctx); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal pointer payload: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil {
		return errors.ErrNotConnected
	}

	if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("pointer socket write: %w", err)
	}

	return nil
}
