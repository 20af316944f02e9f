package window

import "github.com/vovakirdan/qube-arcade/internal/games/qube/levels"

// Window layout in pixels. The full stage has to fit between the top
// margin and the controls line.
const (
	screenWidth  = 1280
	screenHeight = 720

	boardX    = 80
	boardY    = 40
	controlsY = screenHeight - 30

	cellSize = (controlsY - boardY) / levels.GridRows
	cellGap  = 2
	panelX   = boardX + levels.GridCols*cellSize + 60
)
