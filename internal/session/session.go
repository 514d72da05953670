package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/structsketch/structsketch/backend-go/internal/engine"
	"github.com/structsketch/structsketch/backend-go/internal/gesture"
	"github.com/structsketch/structsketch/backend-go/internal/typeid"
	"github.com/structsketch/structsketch/backend-go/internal/viewport"
)

const (
	inboxSize = 64
	sendSize  = 256
)

var errBadPayload = errors.New("bad payload")

func decode(msg *Message, dst any) error {
	if err := json.Unmarshal(msg.Payload, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", errBadPayload, msg.Type, err)
	}
	return nil
}

func errorKind(err error) string {
	if errors.Is(err, errBadPayload) {
		return "bad_request"
	}
	return engine.ErrorKind(err)
}

// Config configures new sessions.
type Config struct {
	Metrics        viewport.Metrics
	LongPressDelay time.Duration
	Clock          gesture.Clock
	// Sample loads the sample sketch into every new session.
	Sample bool
}

type inboxItem struct {
	msg   *Message
	event *gesture.Event
}

// Session is one drawing surface served over a connection. Its engine is owned
// by the goroutine running Run: messages from the client and expired
// long-press timers both go through the inbox, so they are processed one at a
// time in arrival order.
type Session struct {
	ID       string
	ClientID string

	engine *engine.Engine
	inbox  chan inboxItem
	send   chan []byte
	done   chan struct{}
	seq    int64
	logger *slog.Logger
}

// New creates a session. Nothing is processed until Run is called.
func New(cfg Config) *Session {
	s := &Session{
		ID:       typeid.NewSessionID(),
		ClientID: uuid.New().String(),
		inbox:    make(chan inboxItem, inboxSize),
		send:     make(chan []byte, sendSize),
		done:     make(chan struct{}),
	}
	s.logger = slog.With("session", s.ID)
	s.engine = engine.NewEngine(engine.Options{
		Metrics:        cfg.Metrics,
		LongPressDelay: cfg.LongPressDelay,
		Clock:          cfg.Clock,
		Post:           s.post,
		Logger:         s.logger,
	})
	if cfg.Sample {
		s.engine.LoadSampleDocument()
	}
	return s
}

// Deliver queues a client message. It returns false once the session has stopped.
func (s *Session) Deliver(msg *Message) bool {
	select {
	case s.inbox <- inboxItem{msg: msg}:
		return true
	case <-s.done:
		return false
	}
}

// post queues an event from a timer goroutine.
func (s *Session) post(ev gesture.Event) {
	select {
	case s.inbox <- inboxItem{event: &ev}:
	case <-s.done:
	}
}

// Outbox returns the encoded messages for the client. It is closed when Run returns.
func (s *Session) Outbox() <-chan []byte {
	return s.send
}

// Done is closed when Run returns.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Run processes the inbox until ctx is cancelled.
func (s *Session) Run(ctx context.Context) {
	defer func() {
		close(s.done)
		close(s.send)
	}()

	s.welcome()
	s.render()

	for {
		select {
		case <-ctx.Done():
			return
		case it := <-s.inbox:
			changed := false
			if it.event != nil {
				s.engine.HandleEvent(*it.event)
			} else {
				changed = s.handleMessage(it.msg)
			}
			if s.flushSignals() || changed {
				s.render()
			}
		}
	}
}

func (s *Session) welcome() {
	s.sendMessage(TypeWelcome, WelcomePayload{
		SessionID: s.ID,
		ClientID:  s.ClientID,
		Mode:      s.engine.Mode(),
		Viewport:  s.engine.GetViewport(),
		Sketch:    json.RawMessage(s.engine.GetDocument()),
	})
}

// handleMessage applies one client message and reports whether the drawing changed.
func (s *Session) handleMessage(msg *Message) bool {
	err := s.apply(msg)
	if err == nil {
		return msg.Type != TypeDocGet && msg.Type != TypeModeSet
	}
	kind := errorKind(err)
	if kind == "internal" {
		s.logger.Warn("message failed", "type", msg.Type, "error", err)
	} else {
		s.logger.Debug("rejected message", "type", msg.Type, "error", err)
	}
	s.sendMessage(TypeError, ErrorPayload{Request: msg.Type, Kind: kind, Error: err.Error()})
	return false
}

func (s *Session) apply(msg *Message) error {
	e := s.engine
	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp, TypeDoubleClick:
		var ev viewport.PointerEvent
		if err := decode(msg, &ev); err != nil {
			return err
		}
		switch msg.Type {
		case TypePointerDown:
			e.PointerDown(ev)
		case TypePointerMove:
			e.PointerMove(ev)
		case TypePointerUp:
			e.PointerUp(ev)
		default:
			e.DoubleClick(ev)
		}
		return nil

	case TypeWheel:
		var p WheelPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		e.Wheel(p.DeltaY, viewport.PointerSample{X: p.X, Y: p.Y})
		return nil

	case TypeModeSet:
		var cfg viewport.ModeConfig
		if err := decode(msg, &cfg); err != nil {
			return err
		}
		return e.SetMode(cfg)

	case TypeResize:
		var p ResizePayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("%w: canvas size %gx%g", errBadPayload, p.Width, p.Height)
		}
		e.Resize(p.Width, p.Height)
		return nil

	case TypeGlyphAdd:
		var p GlyphAddPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		id, err := e.AddGlyph(p.Kind, p.Params)
		if err != nil {
			return err
		}
		s.sendMessage(TypeGlyphAdded, GlyphRefPayload{ID: id})
		return nil

	case TypeGlyphRemove:
		var p GlyphRefPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		return e.RemoveGlyph(p.ID)

	case TypeGlyphMove:
		var p GlyphMovePayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		return e.MoveGlyph(p.ID, p.DX, p.DY)

	case TypeSelectionCreated, TypeSelectionUpdated:
		var p SelectionPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		e.SetSelection(p.Glyphs)
		return nil

	case TypeDocLoad:
		return e.LoadDocument(string(msg.Payload))

	case TypeDocSample:
		e.LoadSampleDocument()
		return nil

	case TypeDocGet:
		s.sendMessage(TypeDocSync, json.RawMessage(e.GetDocument()))
		return nil

	default:
		return fmt.Errorf("%w: unknown message type %q", errBadPayload, msg.Type)
	}
}

// flushSignals forwards recognized gestures and reports whether any changed the drawing.
func (s *Session) flushSignals() bool {
	changed := false
	for _, sig := range s.engine.DrainSignals() {
		switch sig.Kind {
		case gesture.SignalViewport:
			s.sendMessage(TypeViewport, sig.Viewport)
			changed = true
		case gesture.SignalMove, gesture.SignalStroke:
			s.sendMessage(TypeSignal, sig)
			changed = true
		default:
			s.sendMessage(TypeSignal, sig)
		}
	}
	return changed
}

func (s *Session) render() {
	cmds := s.engine.RenderCommands()
	if cmds == nil {
		cmds = []engine.DrawCommand{}
	}
	s.sendMessage(TypeRender, RenderPayload{Commands: cmds})
}

func (s *Session) sendMessage(msgType string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("marshal payload", "type", msgType, "error", err)
		return
	}
	s.seq++
	data, err := json.Marshal(&Message{Type: msgType, SessionID: s.ID, Seq: s.seq, Payload: raw})
	if err != nil {
		s.logger.Error("marshal message", "error", err)
		return
	}

	select {
	case s.send <- data:
	default:
		s.logger.Warn("session send buffer full, dropping message", "type", msgType)
	}
}
