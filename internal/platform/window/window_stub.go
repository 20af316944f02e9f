//go:build !ebiten

package window

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/qube-arcade/internal/games/qube"
	"github.com/vovakirdan/qube-arcade/internal/storage"
)

// Available reports whether this binary was built with the window frontend.
const Available = false

// ErrUnavailable is returned by Run in builds without the window frontend.
var ErrUnavailable = errors.New("window: built without the ebiten tag")

// Run reports ErrUnavailable; rebuild with -tags ebiten for a window.
func Run(_ *qube.Game, _ *storage.Store, _ *log.Logger, _ int) error {
	return ErrUnavailable
}
