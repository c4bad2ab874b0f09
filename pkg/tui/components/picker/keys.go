package picker

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Click     key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	PickPrev  key.Binding
	PickNext  key.Binding
	PrevYear  key.Binding
	NextYear  key.Binding
	Today     key.Binding
	Range     key.Binding
	Start     key.Binding
	End       key.Binding
	DaysUp    key.Binding
	DaysStart key.Binding
	Popup     key.Binding
	Close     key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "day")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "day")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "week")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "week")),
		Click:     key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "pick")),
		PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "month")),
		NextMonth: key.NewBinding(key.WithKeys("]")),
		PickPrev:  key.NewBinding(key.WithKeys("<"), key.WithHelp("</>", "month in year")),
		PickNext:  key.NewBinding(key.WithKeys(">")),
		PrevYear:  key.NewBinding(key.WithKeys("{"), key.WithHelp("{/}", "year")),
		NextYear:  key.NewBinding(key.WithKeys("}")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Range:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "range")),
		Start:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s/e", "type dates")),
		End:       key.NewBinding(key.WithKeys("e")),
		DaysUp:    key.NewBinding(key.WithKeys("+"), key.WithHelp("+/-", "n days")),
		DaysStart: key.NewBinding(key.WithKeys("-")),
		Popup:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.PrevMonth, k.PrevYear, k.Today, k.Range, k.Start, k.DaysUp, k.Popup, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.Click},
		{k.PrevMonth, k.PickPrev, k.PrevYear, k.Today},
		{k.Range, k.Start, k.DaysUp, k.Popup, k.Close, k.Quit},
	}
}
