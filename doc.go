// Package vtcore provides a headless VT220-compatible terminal emulator
// built on the module's own parser, OSC sub-parser, and page-structured
// screen model.
//
// This package emulates a terminal without any display, making it ideal for:
//   - Testing terminal applications without a GUI
//   - Building terminal multiplexers and recorders
//   - Creating terminal-based web applications
//   - Automated testing of CLI tools
//   - Screen scraping and automation
//
// # Quick Start
//
// Create a terminal and write ANSI sequences to it:
//
//	term := vtcore.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.String()) // "Hello World!"
//
// # Architecture
//
// The package is organized around these core types:
//
//   - [Terminal]: the main emulator that processes VT byte streams
//   - [screen.Screen]: the page list, cursor, and active area it drives
//   - [cellpage.Page] / [cellpage.Cell]: the packed, style-interned grid
//   - [vtparse.Parser] / [oscparse.Parser]: the byte-stream and OSC FSMs
//
// # Terminal
//
// Terminal is the main entry point. It implements [io.Writer] so you can write
// raw bytes containing ANSI escape sequences:
//
//	term := vtcore.New(
//	    vtcore.WithSize(24, 80),           // 24 rows, 80 columns
//	    vtcore.WithScrollback(storage),    // Enable scrollback mirroring
//	    vtcore.WithResponse(ptyWriter),    // Handle terminal responses
//	)
//
//	// Process output from a command
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = term
//	cmd.Run()
//
//	// Read the result
//	for row := 0; row < term.Rows(); row++ {
//	    fmt.Println(term.LineContent(row))
//	}
//
// # Cells
//
// Each cell is a [cellpage.Cell]: a packed content tag/codepoint/wide-state
// word plus a style handle interned in the owning page's style set. [Cell]
// and [CellView] resolve that handle for you:
//
//	cv := term.Cell(row, col)
//	fmt.Printf("Char: %c bold=%v fg=%v\n", cv.Char, cv.Style.Attrs&cellpage.AttrBold != 0, cv.Style.Fg)
//
// # Colors
//
// Styles carry [image/color.Color] values directly (nil means "default").
// Use [ResolveDefaultColor] to convert any color to RGBA; a nil default
// slot becomes [DefaultForeground] or [DefaultBackground]:
//
//	rgba := vtcore.ResolveDefaultColor(style.Fg, true)
//
// # Scrollback
//
// Lines scrolled off the top of the primary screen are retained internally
// in its [pagelist.Scrollback]. Implement [ScrollbackProvider] to additionally
// mirror them to your own storage as they scroll off:
//
//	term := vtcore.New(vtcore.WithScrollback(myScrollbackStore))
//	for i := 0; i < term.ScrollbackLen(); i++ {
//	    line := term.ScrollbackLine(i) // []vtcore.CellView
//	}
//
// # Providers
//
// Providers handle terminal events. All are optional with no-op defaults:
//
//   - [BellProvider]: bell/beep events (BEL)
//   - [TitleProvider]: window title changes (OSC 0/1/2)
//   - [ClipboardProvider]: clipboard operations (OSC 52)
//   - [ScrollbackProvider]: mirrors lines scrolled off screen
//   - [RecordingProvider]: captures raw input for replay
//   - [PaletteProvider]: palette/dynamic-color set and reset (OSC 4/10/11/12/104+)
//   - [ProgressProvider]: progress reports (OSC 9;4)
//   - [NotificationProvider]: desktop notifications (OSC 9 / OSC 777)
//
// Example with providers:
//
//	term := vtcore.New(
//	    vtcore.WithResponse(os.Stdout),
//	    vtcore.WithBell(&MyBellHandler{}),
//	    vtcore.WithTitle(&MyTitleHandler{}),
//	)
//
// # Middleware
//
// Middleware intercepts terminal-level side effects for custom behavior:
//
//	mw := &vtcore.Middleware{
//	    Bell: func(next func()) {
//	        log.Println("Bell!")
//	        // Don't call next() to suppress the bell
//	    },
//	}
//	term := vtcore.New(vtcore.WithMiddleware(mw))
//
// # Dirty Tracking
//
// Track which rows changed for efficient rendering, via the active page's
// own dirty bitset (§3 Page):
//
//	if term.HasDirty() {
//	    for _, row := range term.DirtyRows() {
//	        // Redraw row
//	    }
//	    term.ClearDirty()
//	}
//
// # Selection
//
// Manage text selections for copy/paste, backed by [selection.Selection]:
//
//	term.SetSelection(vtcore.Position{Row: 0, Col: 0}, vtcore.Position{Row: 2, Col: 10}, false)
//	text := term.GetSelectedText()
//	term.ClearSelection()
//
// # Search
//
// Find text in the active area (scrollback is not searched):
//
//	matches := term.Search("error")
//	for _, pos := range matches {
//	    fmt.Printf("Found at row %d, col %d\n", pos.Row, pos.Col)
//	}
//
// # Snapshots
//
// Capture the terminal state for serialization:
//
//	snap := term.Snapshot(vtcore.SnapshotDetailStyled)
//	data, _ := json.Marshal(snap)
//
// # Shell Integration
//
// Track shell prompts and command output (OSC 133), backed by each row's
// [cellpage.Row.SemanticPrompt]:
//
//	nextAbsRow := term.NextPromptRow(currentAbsRow, vtcore.PromptMarkAny)
//	output := term.GetLastCommandOutput()
//
// # Thread Safety
//
// All Terminal methods are safe for concurrent use, except the screen.Sink
// callbacks (Bell, Hyperlink, ...), which take no lock because the screen
// invokes them from inside Write. The terminal uses internal
// locking to protect state. However, if you need to perform multiple operations
// atomically, you should use your own synchronization.
//
// # Non-goals
//
// This package does not render pixels, shape fonts, decode images (Sixel/Kitty
// graphics), or perform window-system/input integration; those are the
// embedding program's concern. It also does not implement terminal modes
// (DECSET/DECRST), an alternate screen buffer, or character-set switching:
// it drives a single [screen.Screen] and has no mode-dependent behavior to
// toggle.
package vtcore
