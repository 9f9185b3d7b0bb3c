package client

import (
	"fmt"

	"github.com/nsf/termbox-go"

	"grid-tactics/internal/models"
)

// Board drawing offsets. Each tile is two cells wide so the grid reads
// roughly square in a terminal.
const (
	boardLeft = 1
	boardTop  = 3
	tileWidth = 2
)

// TermboxUI renders the battle grid and drives the move/attack flow.
type TermboxUI struct {
	client *Client

	state     models.BattleSnapshot
	cursorX   int
	cursorY   int
	selected  int // selected unit id, 0 when none
	reachable []models.Tile
	eventLog  []string
}

// NewTermboxUI creates a UI bound to the given API client.
func NewTermboxUI(c *Client) *TermboxUI {
	return &TermboxUI{client: c}
}

// Init initializes the termbox screen.
func (ui *TermboxUI) Init() error {
	return termbox.Init()
}

// Close closes the termbox screen.
func (ui *TermboxUI) Close() {
	termbox.Close()
}

func terrainCell(kind models.TerrainKind) (rune, termbox.Attribute) {
	switch kind {
	case models.TerrainGrass:
		return '.', termbox.ColorGreen
	case models.TerrainForest:
		return '♣', termbox.ColorGreen | termbox.AttrBold
	case models.TerrainMountain:
		return '^', termbox.ColorWhite
	case models.TerrainWater:
		return '~', termbox.ColorBlue
	case models.TerrainRoad:
		return '=', termbox.ColorYellow
	default:
		return '?', termbox.ColorDefault
	}
}

func classRune(class models.UnitClass) rune {
	switch class {
	case models.ClassWarrior:
		return 'W'
	case models.ClassArcher:
		return 'A'
	case models.ClassMage:
		return 'M'
	case models.ClassKnight:
		return 'K'
	default:
		return '?'
	}
}

func (ui *TermboxUI) drawText(x, y int, text string, fg, bg termbox.Attribute) {
	for i, r := range []rune(text) {
		termbox.SetCell(x+i, y, r, fg, bg)
	}
}

func (ui *TermboxUI) unitAt(x, y int) *models.Unit {
	for i := range ui.state.Units {
		u := &ui.state.Units[i]
		if u.X == x && u.Y == y {
			return u
		}
	}
	return nil
}

func (ui *TermboxUI) isReachable(x, y int) bool {
	for _, t := range ui.reachable {
		if t.X == x && t.Y == y {
			return true
		}
	}
	return false
}

func (ui *TermboxUI) logEvent(msg string) {
	ui.eventLog = append(ui.eventLog, msg)
	if len(ui.eventLog) > 5 {
		ui.eventLog = ui.eventLog[len(ui.eventLog)-5:]
	}
}

// Render draws the full screen from the last fetched snapshot.
func (ui *TermboxUI) Render() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)

	header := "Grid Tactics | battle not started. [s] start  [q] quit"
	if ui.state.Started {
		header = fmt.Sprintf("Grid Tactics | %s turn. [enter] select/move  [a] attack  [e] end turn  [r] reset  [q] quit",
			ui.state.CurrentTurn)
	}
	ui.drawText(1, 1, header, termbox.ColorWhite, termbox.ColorBlack)

	grid := ui.state.Grid
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			ch, fg := terrainCell(grid.Tiles[y][x])
			bg := termbox.ColorBlack
			if ui.isReachable(x, y) {
				bg = termbox.ColorCyan
			}
			if unit := ui.unitAt(x, y); unit != nil {
				ch = classRune(unit.Class)
				if unit.Team == models.TeamPlayer {
					fg = termbox.ColorGreen | termbox.AttrBold
				} else {
					fg = termbox.ColorRed | termbox.AttrBold
				}
				if unit.ID == ui.selected {
					bg = termbox.ColorMagenta
				}
			}
			if x == ui.cursorX && y == ui.cursorY {
				bg = termbox.ColorWhite
				fg = termbox.ColorBlack
			}
			termbox.SetCell(boardLeft+x*tileWidth, boardTop+y, ch, fg, bg)
		}
	}

	infoY := boardTop + grid.Height + 1
	if unit := ui.unitAt(ui.cursorX, ui.cursorY); unit != nil {
		info := fmt.Sprintf("%s (%s) HP %d/%d ATK %d DEF %d MOV %d RNG %d-%d",
			unit.Name, unit.Team, unit.CurrentHP, unit.MaxHP,
			unit.Attack, unit.Defense, unit.Movement, unit.MinAttackRange, unit.MaxAttackRange)
		ui.drawText(1, infoY, info, termbox.ColorCyan, termbox.ColorBlack)
	} else if ui.state.Started {
		kind := grid.Tiles[ui.cursorY][ui.cursorX]
		ui.drawText(1, infoY, fmt.Sprintf("(%d,%d) %s", ui.cursorX, ui.cursorY, kind), termbox.ColorCyan, termbox.ColorBlack)
	}

	for i, msg := range ui.eventLog {
		ui.drawText(1, infoY+2+i, msg, termbox.ColorYellow, termbox.ColorBlack)
	}

	termbox.Flush()
}

// refresh refetches the snapshot and, if a unit is still selected, its
// movement range.
func (ui *TermboxUI) refresh() {
	state, err := ui.client.GameState()
	if err != nil {
		ui.logEvent("state fetch failed: " + err.Error())
		return
	}
	ui.state = state
	if ui.selected != 0 {
		tiles, err := ui.client.MovementRange(ui.selected)
		if err != nil {
			ui.selected = 0
			ui.reachable = nil
		} else {
			ui.reachable = tiles
		}
	}
}

func (ui *TermboxUI) clampCursor() {
	if ui.state.Grid.Width == 0 {
		return
	}
	if ui.cursorX < 0 {
		ui.cursorX = 0
	}
	if ui.cursorY < 0 {
		ui.cursorY = 0
	}
	if ui.cursorX >= ui.state.Grid.Width {
		ui.cursorX = ui.state.Grid.Width - 1
	}
	if ui.cursorY >= ui.state.Grid.Height {
		ui.cursorY = ui.state.Grid.Height - 1
	}
}

func (ui *TermboxUI) handleSelectOrMove() {
	if !ui.state.Started {
		return
	}
	if ui.selected == 0 {
		unit := ui.unitAt(ui.cursorX, ui.cursorY)
		if unit == nil {
			return
		}
		if unit.Team != ui.state.CurrentTurn {
			ui.logEvent(fmt.Sprintf("%s belongs to the %s team.", unit.Name, unit.Team))
			return
		}
		tiles, err := ui.client.MovementRange(unit.ID)
		if err != nil {
			ui.logEvent(err.Error())
			return
		}
		ui.selected = unit.ID
		ui.reachable = tiles
		return
	}

	if err := ui.client.MoveUnit(ui.selected, ui.cursorX, ui.cursorY); err != nil {
		ui.logEvent(err.Error())
		return
	}
	ui.selected = 0
	ui.reachable = nil
	ui.refresh()
}

func (ui *TermboxUI) handleAttack() {
	if ui.selected == 0 {
		ui.logEvent("Select an attacker first (enter on your unit).")
		return
	}
	target := ui.unitAt(ui.cursorX, ui.cursorY)
	if target == nil {
		ui.logEvent("No unit under cursor to attack.")
		return
	}
	outcome, err := ui.client.Attack(ui.selected, target.ID)
	if err != nil {
		ui.logEvent(err.Error())
		return
	}
	msg := fmt.Sprintf("%s hit %s for %d damage.", outcome.AttackerName, outcome.TargetName, outcome.Damage)
	if outcome.TargetRemainingHP == 0 {
		msg += fmt.Sprintf(" %s was defeated!", outcome.TargetName)
	}
	ui.logEvent(msg)
	ui.selected = 0
	ui.reachable = nil
	ui.refresh()
}

// Run fetches the initial state and enters the input loop, returning when
// the user quits.
func (ui *TermboxUI) Run() {
	ui.refresh()
	ui.Render()

	for {
		switch ev := termbox.PollEvent(); ev.Type {
		case termbox.EventKey:
			switch {
			case ev.Key == termbox.KeyEsc:
				if ui.selected != 0 {
					ui.selected = 0
					ui.reachable = nil
				} else {
					return
				}
			case ev.Ch == 'q':
				return
			case ev.Key == termbox.KeyArrowUp:
				ui.cursorY--
			case ev.Key == termbox.KeyArrowDown:
				ui.cursorY++
			case ev.Key == termbox.KeyArrowLeft:
				ui.cursorX--
			case ev.Key == termbox.KeyArrowRight:
				ui.cursorX++
			case ev.Key == termbox.KeyEnter:
				ui.handleSelectOrMove()
			case ev.Ch == 's':
				if _, err := ui.client.StartBattle(); err != nil {
					ui.logEvent(err.Error())
				} else {
					ui.logEvent("Battle started.")
				}
				ui.refresh()
			case ev.Ch == 'a':
				ui.handleAttack()
			case ev.Ch == 'e':
				turn, err := ui.client.EndTurn()
				if err != nil {
					ui.logEvent(err.Error())
				} else {
					ui.logEvent(fmt.Sprintf("It is now the %s turn.", turn))
				}
				ui.selected = 0
				ui.reachable = nil
				ui.refresh()
			case ev.Ch == 'r':
				if err := ui.client.ResetGame(); err != nil {
					ui.logEvent(err.Error())
				} else {
					ui.logEvent("Battle reset.")
				}
				ui.selected = 0
				ui.reachable = nil
				ui.refresh()
			}
			ui.clampCursor()
			ui.Render()

		case termbox.EventResize:
			ui.Render()

		case termbox.EventError:
			return
		}
	}
}
