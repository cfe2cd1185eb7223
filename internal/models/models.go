package models

// AppState holds the application state
type AppState struct {
	Width          int
	Height         int
	TreeWidth      int
	FocusedPane    PaneSide
	ViewMode       ViewMode
	ShowTree       bool
	MouseEnabled   bool
	EngineName     string
	SmartCase      bool
	HistoryEnabled bool
}

// PaneSide identifies which pane is focused
type PaneSide int

const (
	LeftPane PaneSide = iota
	RightPane
)

// Swap returns the other side
func (s PaneSide) Swap() PaneSide {
	if s == LeftPane {
		return RightPane
	}
	return LeftPane
}

func (s PaneSide) String() string {
	if s == LeftPane {
		return "left"
	}
	return "right"
}

// ViewMode identifies the current view
type ViewMode int

const (
	NormalMode ViewMode = iota
	HelpMode
	QueryMode
	SearchMode
	SaveMode
	OpenMode
	PreviewMode
	FavoritesMode
)

// NewAppState creates a new AppState with defaults
func NewAppState() AppState {
	return AppState{
		Width:       80,
		Height:      24,
		TreeWidth:   24,
		FocusedPane: LeftPane,
		ViewMode:    NormalMode,
		EngineName:  "jq",
		SmartCase:   true,
	}
}
