package surface

import (
	"strings"
	"sync"
)

type cell struct {
	r    rune
	attr Attr
}

// Grid is an in-memory Surface. The bubbletea host renders it, the report
// command prints it, and tests inspect it.
//
// The reported size (SetSize) and the buffer size (Resize) are separate so
// the controller's resize acknowledgement is observable.
type Grid struct {
	mu sync.Mutex

	height, width int // what Size reports
	back, front   [][]cell
	keys          []rune

	resizes   int
	refreshes int
}

// NewGrid returns a grid that reports and buffers height x width cells.
func NewGrid(height, width int) *Grid {
	g := &Grid{height: height, width: width}
	g.back = newCells(height, width)
	g.front = newCells(height, width)
	return g
}

func newCells(height, width int) [][]cell {
	if height < 0 {
		height = 0
	}
	if width < 0 {
		width = 0
	}
	rows := make([][]cell, height)
	for i := range rows {
		rows[i] = make([]cell, width)
		for j := range rows[i] {
			rows[i][j] = cell{r: ' '}
		}
	}
	return rows
}

// SetSize changes the geometry reported by Size, as a terminal resize would.
func (g *Grid) SetSize(height, width int) {
	g.mu.Lock()
	g.height, g.width = height, width
	g.mu.Unlock()
}

// Feed queues keys for PollKey.
func (g *Grid) Feed(keys ...rune) {
	g.mu.Lock()
	g.keys = append(g.keys, keys...)
	g.mu.Unlock()
}

func (g *Grid) Init() error { return nil }

func (g *Grid) Size() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.height, g.width
}

func (g *Grid) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, row := range g.back {
		for j := range row {
			row[j] = cell{r: ' '}
		}
	}
}

func (g *Grid) Border() {
	g.mu.Lock()
	defer g.mu.Unlock()
	h := len(g.back)
	if h == 0 {
		return
	}
	w := len(g.back[0])
	if w == 0 {
		return
	}
	for x := 0; x < w; x++ {
		g.back[0][x] = cell{r: runeHLine}
		g.back[h-1][x] = cell{r: runeHLine}
	}
	for y := 0; y < h; y++ {
		g.back[y][0] = cell{r: runeVLine}
		g.back[y][w-1] = cell{r: runeVLine}
	}
	g.back[0][0] = cell{r: runeULC}
	g.back[0][w-1] = cell{r: runeURC}
	g.back[h-1][0] = cell{r: runeLLC}
	g.back[h-1][w-1] = cell{r: runeLRC}
}

func (g *Grid) Print(row, col int, text string, attr Attr) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if row < 0 || row >= len(g.back) || col < 0 {
		return
	}
	line := g.back[row]
	x := col
	for _, r := range text {
		if x >= len(line) {
			break
		}
		line[x] = cell{r: r, attr: attr}
		x++
	}
}

func (g *Grid) Refresh() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.front = make([][]cell, len(g.back))
	for i, row := range g.back {
		g.front[i] = append([]cell(nil), row...)
	}
	g.refreshes++
}

func (g *Grid) PollKey() (rune, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.keys) == 0 {
		return 0, false
	}
	k := g.keys[0]
	g.keys = g.keys[1:]
	return k, true
}

func (g *Grid) Resize(height, width int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.back = newCells(height, width)
	g.front = newCells(height, width)
	g.resizes++
}

func (g *Grid) Close() {}

// Lines returns the last refreshed frame as plain text, one string per row,
// with trailing spaces trimmed.
func (g *Grid) Lines() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.front))
	for i, row := range g.front {
		var sb strings.Builder
		for _, c := range row {
			sb.WriteRune(c.r)
		}
		out[i] = strings.TrimRight(sb.String(), " ")
	}
	return out
}

// Text is Lines joined with newlines.
func (g *Grid) Text() string {
	return strings.Join(g.Lines(), "\n")
}

// AttrAt returns the attribute of a cell in the last refreshed frame.
func (g *Grid) AttrAt(row, col int) Attr {
	g.mu.Lock()
	defer g.mu.Unlock()
	if row < 0 || row >= len(g.front) || col < 0 || col >= len(g.front[row]) {
		return AttrNormal
	}
	return g.front[row][col].attr
}

// Resizes counts resize acknowledgements.
func (g *Grid) Resizes() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resizes
}

// Refreshes counts flushed frames.
func (g *Grid) Refreshes() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.refreshes
}

// Render returns the last refreshed frame with attributes applied through
// lipgloss, for the bubbletea host.
func (g *Grid) Render() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	lines := make([]string, len(g.front))
	for i, row := range g.front {
		var sb strings.Builder
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && row[j].attr == row[start].attr {
				continue
			}
			run := make([]rune, 0, j-start)
			for _, c := range row[start:j] {
				run = append(run, c.r)
			}
			sb.WriteString(renderRun(string(run), row[start].attr))
			start = j
		}
		lines[i] = sb.String()
	}
	return strings.Join(lines, "\n")
}
