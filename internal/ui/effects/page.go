// Package effects implements the page's interaction features: the scroll orchestrator,
// pointer-reactive effects, the gallery looper, scroll-linked reveals and the particle
// background. Every feature is wired against dom contracts and tolerates missing
// elements and collaborators by skipping.
package effects

import (
	"go.uber.org/zap"

	"github.com/Its-donkey/luxe-portfolio/internal/ui/collab"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/config"
	"github.com/Its-donkey/luxe-portfolio/internal/ui/dom"
)

// Page bundles what every feature reads.
type Page struct {
	Doc      dom.Document
	Win      dom.Window
	Animator collab.Animator
	Settings config.Settings
	Log      *zap.Logger
}

func (p *Page) logger() *zap.Logger {
	if p.Log == nil {
		return zap.NewNop()
	}
	return p.Log
}

func (p *Page) skip(feature, reason string) {
	p.logger().Debug("feature skipped", zap.String("feature", feature), zap.String("reason", reason))
}
