package tui

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	wifilog "github.com/shazow/wifimenu/internal/log"
	"github.com/shazow/wifimenu/wifi"
)

// signalScale is the signal mapped to the SignalHigh color. Shifted dBm
// readings rarely exceed it; nmcli percentages are clamped.
const signalScale = 70.0

// menuLineRe picks apart a line rendered by wifi.FormatMenuLine.
var menuLineRe = regexp.MustCompile(`^(\d+)\) (?:\[(\d+)\] )?(.*?)(?: \[(O?K?)\])?$`)

// option is one chooser line.
type option string

func (o option) FilterValue() string { return string(o) }

// parsed splits a menu line into its parts. ok is false for lines that do not
// look like a network, such as the refresh entry.
func (o option) parsed() (essid string, signal *int, open, known, ok bool) {
	m := menuLineRe.FindStringSubmatch(string(o))
	if m == nil {
		return string(o), nil, false, false, false
	}
	if m[2] != "" {
		v, _ := strconv.Atoi(m[2])
		signal = &v
	}
	return m[3], signal, strings.Contains(m[4], "O"), strings.Contains(m[4], "K"), true
}

// optionDelegate renders menu lines as a list row with an icon and a signal
// colored along the theme's gradient.
type optionDelegate struct{}

func (d optionDelegate) Height() int                               { return 1 }
func (d optionDelegate) Spacing() int                              { return 0 }
func (d optionDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d optionDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	o, ok := listItem.(option)
	if !ok {
		return
	}

	title := string(o)
	var desc string
	essid, signal, open, known, isNetwork := o.parsed()
	titleStyle := lipgloss.NewStyle().Foreground(CurrentTheme.Normal)
	if isNetwork {
		icon := CurrentTheme.NetworkSecureIcon
		if open {
			icon = CurrentTheme.NetworkOpenIcon
		}
		if known {
			icon = CurrentTheme.NetworkSavedIcon
			titleStyle = titleStyle.Foreground(CurrentTheme.Saved)
		}
		if essid == "" {
			essid = "(hidden)"
			titleStyle = titleStyle.Foreground(CurrentTheme.Disabled)
		}
		title = icon + essid
		if signal != nil {
			desc = lipgloss.NewStyle().Foreground(signalColor(*signal)).Render(fmt.Sprintf("%d", *signal))
		}
	} else {
		titleStyle = titleStyle.Foreground(CurrentTheme.Subtle)
	}

	// Define column width for SSID
	ssidColumnWidth := 30
	if n := lipgloss.Width(title); n > ssidColumnWidth {
		title = string([]rune(title)[:ssidColumnWidth-1]) + "…"
	}
	padding := strings.Repeat(" ", max(0, ssidColumnWidth-lipgloss.Width(title)))
	line := titleStyle.Render(title) + padding + " " + desc

	lineStyle := lipgloss.NewStyle().PaddingLeft(1)
	if index == m.Index() {
		lineStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true). // Left border
			BorderForeground(CurrentTheme.Primary)
	}
	fmt.Fprint(w, lineStyle.Render(line))
}

func signalColor(signal int) lipgloss.Color {
	start, err1 := colorful.Hex(CurrentTheme.SignalLow.hex())
	end, err2 := colorful.Hex(CurrentTheme.SignalHigh.hex())
	if err1 != nil || err2 != nil {
		return lipgloss.Color(CurrentTheme.Normal.hex())
	}
	p := min(max(float64(signal)/signalScale, 0), 1)
	return lipgloss.Color(start.BlendRgb(end, p).Hex())
}

type pickerKeyMap struct {
	Choose  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var pickerKeys = pickerKeyMap{
	Choose:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan")),
	Quit:    key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// pickerModel is a list of menu lines. It quits once a line is chosen or the
// user gives up.
type pickerModel struct {
	list      list.Model
	choice    string
	cancelled bool
	status    string
}

func newPickerModel(prompt string, options []string) pickerModel {
	items := make([]list.Item, len(options))
	for i, o := range options {
		items[i] = option(o)
	}
	l := list.New(items, optionDelegate{}, 60, 20)
	l.Title = prompt
	l.Styles.Title = lipgloss.NewStyle().Foreground(CurrentTheme.Primary).Bold(true)
	l.SetShowStatusBar(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{pickerKeys.Choose, pickerKeys.Refresh}
	}
	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case wifilog.LogMsg:
		m.status = msg.Message
		return m, nil
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, pickerKeys.Choose):
			if o, ok := m.list.SelectedItem().(option); ok {
				m.choice = string(o)
				return m, tea.Quit
			}
			return m, nil
		case key.Matches(msg, pickerKeys.Refresh):
			m.choice = wifi.RefreshEntry
			return m, tea.Quit
		case key.Matches(msg, pickerKeys.Quit):
			if m.list.FilterState() == list.FilterApplied && msg.String() == "esc" {
				break
			}
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	status := lipgloss.NewStyle().Foreground(CurrentTheme.Subtle).Render(m.status)
	return m.list.View() + "\n" + status
}
