package material

import (
	"fmt"
	"image"

	"go.uber.org/zap"

	"github.com/Faultbox/mgen/internal/compositor"
	"github.com/Faultbox/mgen/internal/engine/texture"
	"github.com/Faultbox/mgen/internal/mesh"
)

// Ticket identifies one image request. Only the most recently issued
// ticket may change the material.
type Ticket uint64

// Config holds the emissive look of a lit screen.
type Config struct {
	Emissive          Color
	EmissiveIntensity float32
}

// DefaultConfig is a white glow at 0.85 intensity.
func DefaultConfig() Config {
	return Config{Emissive: White, EmissiveIntensity: 0.85}
}

// Binder composites images into the screen material. It is not safe for
// concurrent use: call it from the render thread only.
type Binder struct {
	region   mesh.UVRegion
	opts     compositor.Options
	uploader texture.Uploader
	cfg      Config
	log      *zap.Logger

	screen    Screen
	placement *compositor.Placement
	issued    Ticket
}

// NewBinder creates a binder for the given screen region. The region is
// validated once here and never changes afterwards.
func NewBinder(region mesh.UVRegion, opts compositor.Options, uploader texture.Uploader, cfg Config, log *zap.Logger) (*Binder, error) {
	if err := region.Validate(); err != nil {
		return nil, err
	}
	if uploader == nil {
		return nil, fmt.Errorf("material: nil uploader")
	}
	if log == nil {
		log = zap.NewNop()
	}
	opts.Logger = log
	return &Binder{
		region:   region,
		opts:     opts,
		uploader: uploader,
		cfg:      cfg,
		log:      log,
	}, nil
}

// Begin issues a ticket for a new image request. Results carrying an
// older ticket are discarded by SetImage.
func (b *Binder) Begin() Ticket {
	b.issued++
	return b.issued
}

// Current reports whether t is the latest issued ticket.
func (b *Binder) Current(t Ticket) bool {
	return t == b.issued
}

// SetImage composites img and binds it. It returns false without
// touching the material if t is stale. On error the previous texture
// stays bound.
func (b *Binder) SetImage(t Ticket, img image.Image) (bool, error) {
	if !b.Current(t) {
		b.log.Debug("dropping stale image", zap.Uint64("ticket", uint64(t)), zap.Uint64("latest", uint64(b.issued)))
		return false, nil
	}

	res, err := compositor.Composite(img, b.region, b.opts)
	if err != nil {
		return false, fmt.Errorf("compositing screen image: %w", err)
	}
	tex, err := b.uploader.Upload(res.Atlas, res.Sampling)
	if err != nil {
		return false, fmt.Errorf("uploading screen texture: %w", err)
	}

	b.release()
	b.screen.Map = tex
	b.screen.EmissiveMap = tex
	b.screen.Emissive = b.cfg.Emissive
	b.screen.EmissiveIntensity = b.cfg.EmissiveIntensity
	b.screen.Version++
	p := res.Placement
	b.placement = &p

	b.log.Info("screen texture bound",
		zap.Uint32("texture", tex.ID()),
		zap.Uint64("ticket", uint64(t)),
		zap.Float64("scale", p.Scale),
	)
	return true, nil
}

// Clear turns the screen off: the texture is released, both map slots
// are emptied and emission drops to zero. Pending requests are
// invalidated. Clearing an empty screen is a no-op apart from that.
func (b *Binder) Clear() {
	b.issued++
	if !b.screen.Lit() && b.screen.EmissiveIntensity == 0 {
		return
	}
	b.release()
	b.screen.Emissive = Black
	b.screen.EmissiveIntensity = 0
	b.screen.Version++
	b.placement = nil
	b.log.Info("screen cleared")
}

// Screen returns the current material state.
func (b *Binder) Screen() Screen {
	return b.screen
}

// Placement returns the layout of the bound image, if any.
func (b *Binder) Placement() (compositor.Placement, bool) {
	if b.placement == nil {
		return compositor.Placement{}, false
	}
	return *b.placement, true
}

// Close releases the bound texture.
func (b *Binder) Close() {
	b.release()
	b.placement = nil
}

// release frees the bound texture. Map and EmissiveMap share one handle.
func (b *Binder) release() {
	if b.screen.Map != nil {
		b.screen.Map.Release()
	}
	b.screen.Map = nil
	b.screen.EmissiveMap = nil
}
