// Package screen tracks the design surface the designer previews: its type,
// size, scale and orientation.
package screen

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/designable/internal/event"
	"github.com/dshills/designable/internal/event/events"
)

// Type is a screen type.
type Type string

// Screen types.
const (
	PC         Type = "PC"
	Mobile     Type = "Mobile"
	Responsive Type = "Responsive"
	Sketch     Type = "Sketch"
)

// ErrUnknownType is returned for an unrecognized screen type.
var ErrUnknownType = errors.New("unknown screen type")

var types = []Type{PC, Mobile, Responsive, Sketch}

// ParseType parses a case-insensitive screen type name.
func ParseType(s string) (Type, error) {
	for _, t := range types {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	return slices.Contains(types, t)
}

// Breakpoint maps widths up to MaxWidth to a type when the screen is
// Responsive.
type Breakpoint struct {
	MaxWidth int
	Type     Type
}

// DefaultBreakpoints is the responsive table used when none is configured.
// Widths are in surface cells.
var DefaultBreakpoints = []Breakpoint{
	{MaxWidth: 60, Type: Mobile},
}

// Config configures a Screen.
type Config struct {
	Bus         *event.Bus
	DefaultType Type
	Breakpoints []Breakpoint
	Logger      *zap.Logger
}

// Screen is the designer's screen collaborator.
type Screen struct {
	bus         *event.Bus
	logger      *zap.Logger
	breakpoints []Breakpoint

	typ    Type
	width  int
	height int
	scale  float64
	flip   bool
	sub    event.Subscription
}

// New creates a screen of the default type and follows resize events.
func New(cfg Config) (*Screen, error) {
	if cfg.DefaultType == "" {
		cfg.DefaultType = PC
	}
	if !cfg.DefaultType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, cfg.DefaultType)
	}
	if cfg.Breakpoints == nil {
		cfg.Breakpoints = DefaultBreakpoints
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	bps := slices.Clone(cfg.Breakpoints)
	slices.SortFunc(bps, func(a, b Breakpoint) int { return a.MaxWidth - b.MaxWidth })

	s := &Screen{
		bus:         cfg.Bus,
		logger:      cfg.Logger,
		breakpoints: bps,
		typ:         cfg.DefaultType,
		scale:       1,
	}
	if s.bus != nil {
		sub, err := event.Listen(s.bus, events.ScreenResized, s.onResize, event.WithPriority(event.PriorityHigh))
		if err != nil {
			return nil, err
		}
		s.sub = sub
	}
	return s, nil
}

// Type returns the configured type.
func (s *Screen) Type() Type {
	return s.typ
}

// Effective returns the type in force: for Responsive screens, the first
// breakpoint covering the current width, otherwise PC.
func (s *Screen) Effective() Type {
	if s.typ != Responsive {
		return s.typ
	}
	for _, bp := range s.breakpoints {
		if s.width <= bp.MaxWidth {
			return bp.Type
		}
	}
	return PC
}

// SetType changes the screen type.
func (s *Screen) SetType(t Type) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, t)
	}
	if t == s.typ {
		return nil
	}
	prev := s.typ
	s.typ = t
	s.changed(prev)
	return nil
}

// Size returns the surface size in cells.
func (s *Screen) Size() (width, height int) {
	return s.width, s.height
}

// SetSize records a new surface size.
func (s *Screen) SetSize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	prev := s.Effective()
	s.width, s.height = width, height
	s.changed(prev)
}

// Scale returns the preview zoom factor.
func (s *Screen) Scale() float64 {
	return s.scale
}

// SetScale sets the preview zoom factor. Non-positive values reset it to 1.
func (s *Screen) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.scale = scale
}

// Flipped reports whether the preview is rotated.
func (s *Screen) Flipped() bool {
	return s.flip
}

// SetFlip rotates the preview.
func (s *Screen) SetFlip(flip bool) {
	if flip == s.flip {
		return
	}
	s.flip = flip
	s.changed(s.Effective())
}

// Close stops following resize events.
func (s *Screen) Close() {
	if s.sub != nil {
		s.sub.Dispose()
		s.sub = nil
	}
}

func (s *Screen) changed(prev Type) {
	s.logger.Debug("screen changed",
		zap.String("type", string(s.typ)),
		zap.String("effective", string(s.Effective())),
		zap.Int("width", s.width),
		zap.Int("height", s.height),
	)
	if s.bus == nil {
		return
	}
	err := event.Publish(context.Background(), s.bus, events.ScreenChanged, events.ScreenChangedPayload{
		Type:         string(s.Effective()),
		PreviousType: string(prev),
		Width:        s.width,
		Height:       s.height,
	}, "screen")
	if err != nil {
		s.logger.Debug("screen event not delivered", zap.Error(err))
	}
}

func (s *Screen) onResize(ctx context.Context, e event.Event[events.ScreenResizedPayload]) error {
	s.SetSize(e.Payload.Width, e.Payload.Height)
	return nil
}
