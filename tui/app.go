// Package tui is the terminal front-end: the intake chat, then the flight
// selector and day timeline of the trip plan.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fast-trip/model"
	"fast-trip/usecase"
	"fast-trip/view"
)

type mode int

const (
	modeChat mode = iota
	modeItinerary
)

type sentMsg struct{ err error }

type loadedMsg struct{ err error }

type Model struct {
	conv         *usecase.ConversationUsecase
	newItinerary func() *usecase.ItineraryUsecase
	trip         *usecase.ItineraryUsecase
	days         []model.ItineraryDay
	day          int

	mode    mode
	input   textinput.Model
	sending bool
	width   int
	height  int
}

func NewModel(conv *usecase.ConversationUsecase, newItinerary func() *usecase.ItineraryUsecase, days []model.ItineraryDay) Model {
	in := textinput.New()
	in.Placeholder = "Write here..."
	in.CharLimit = 500
	in.Focus()

	return Model{
		conv:         conv,
		newItinerary: newItinerary,
		days:         days,
		day:          1,
		input:        in,
		width:        100,
		height:       30,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Close ends the lifetimes of the views the model opened.
func (m Model) Close() {
	m.conv.Close()
	if m.trip != nil {
		m.trip.Close()
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(10, msg.Width-6)
		return m, nil

	case sentMsg:
		m.sending = false
		return m, nil

	case loadedMsg:
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeChat:
			return m.updateChat(msg)
		case modeItinerary:
			return m.updateItinerary(msg)
		}
	}
	return m, nil
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.conv.Collected() {
		switch msg.String() {
		case "enter":
			return m.openItinerary()
		case "q", "esc":
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "enter":
		if m.sending {
			return m, nil
		}
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		m.input.Reset()
		m.sending = true
		return m, send(m.conv, text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) openItinerary() (tea.Model, tea.Cmd) {
	if m.trip != nil {
		m.trip.Close()
	}
	m.trip = m.newItinerary()
	m.mode = modeItinerary
	m.input.Blur()
	return m, load(m.trip)
}

func (m Model) updateItinerary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	snap := m.trip.Snapshot()
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "esc":
		m.trip.Close()
		m.trip = nil
		m.mode = modeChat
		return m, nil
	case "left", "h":
		m.trip.Select(snap.Selected - 1)
	case "right", "l":
		m.trip.Select(snap.Selected + 1)
	case "up", "k":
		if m.day > 1 {
			m.day--
		}
	case "down", "j":
		if m.day < len(m.days) {
			m.day++
		}
	case "r":
		if snap.State == usecase.StateError {
			return m.openItinerary()
		}
	}
	return m, nil
}

func send(conv *usecase.ConversationUsecase, text string) tea.Cmd {
	return func() tea.Msg {
		return sentMsg{err: conv.SendMessage(context.Background(), text)}
	}
}

func load(trip *usecase.ItineraryUsecase) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: trip.Load(context.Background())}
	}
}

func (m Model) View() string {
	if m.mode == modeItinerary {
		return m.viewItinerary()
	}
	return m.viewChat()
}

func (m Model) viewChat() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("fast-trip · Inclusive Travel Starts Here"))
	b.WriteString("\n\n")

	wrap := lipgloss.NewStyle().Width(max(20, m.width-14))
	for _, msg := range m.conv.Messages() {
		tag := assistantTag.Render("assistant")
		if msg.IsUser {
			tag = userTag.Render("you      ")
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tag, " ", wrap.Render(msg.Text)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if f := m.conv.Failure(); f != "" {
		b.WriteString(errorStyle.Render(f))
		b.WriteString("\n")
	}

	if m.conv.Collected() {
		b.WriteString(selectedStyle.Render("View My Trip Plan"))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter: open trip plan · q: quit"))
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.sending {
		b.WriteString(dimStyle.Render("sending..."))
	} else {
		b.WriteString(helpStyle.Render("enter: send · esc: quit"))
	}
	return b.String()
}

func (m Model) viewItinerary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Your Accessible Itinerary"))
	b.WriteString("\n\n")

	snap := m.trip.Snapshot()
	switch snap.State {
	case usecase.StateLoading:
		b.WriteString(dimStyle.Render("Searching for the best flights..."))
		return b.String()
	case usecase.StateError:
		b.WriteString(errorStyle.Render(snap.Error))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("r: retry · esc: back · q: quit"))
		return b.String()
	}

	b.WriteString(renderSelector(snap))
	b.WriteString("\n")
	if offer := snap.SelectedOffer(); offer != nil {
		b.WriteString(renderCard(*offer))
	} else {
		b.WriteString(dimStyle.Render("No flights matched this search."))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderDay())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→: flight · ↑/↓: day · esc: back · q: quit"))
	return b.String()
}

func renderSelector(snap usecase.ItinerarySnapshot) string {
	var opts []string
	for i := range snap.Flights.Offers {
		label := fmt.Sprintf("Flight %d", i+1)
		if i == snap.Selected {
			opts = append(opts, selectedStyle.Render(label))
		} else {
			opts = append(opts, normalStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, opts...)
}

func renderCard(o model.FlightOffer) string {
	lines := []string{
		fmt.Sprintf("%s %s · Economy · %s", o.Airline, o.FlightNumber, view.FormatStops(o)),
		fmt.Sprintf("%s  %s %s  →  %s %s  (%s)",
			view.DepartureDay(o.DepartureTime),
			view.ClockTime(o.DepartureTime), o.Origin,
			view.ClockTime(o.ArrivalTime), o.Destination,
			view.FormatDuration(o.DurationMinutes)),
		fmt.Sprintf("Accessibility score %.1f/10", o.AccessibilityScore),
	}
	for _, f := range o.AccessibilityFeatures {
		lines = append(lines, dimStyle.Render("  • "+view.Humanize(f)))
	}
	for _, t := range view.TicketTiers(o) {
		lines = append(lines, fmt.Sprintf("%s  %s  %s", t.Name, priceStyle.Render(t.Price), dimStyle.Render(t.Description)))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderDay() string {
	for _, d := range m.days {
		if d.Day != m.day {
			continue
		}
		var b strings.Builder
		heading := fmt.Sprintf("Day %d", d.Day)
		if date := view.TimelineDate(d.Date); date != "" {
			heading += " – " + date
		}
		b.WriteString(titleStyle.Render(heading))
		b.WriteString("\n")
		for _, a := range d.Activities {
			fmt.Fprintf(&b, "  %s • %s  %s\n", a.Time, view.Capitalize(a.Type), a.Name)
			b.WriteString(dimStyle.Render(fmt.Sprintf("      %s · %s", a.Address, a.Duration)))
			b.WriteString("\n")
		}
		return b.String()
	}
	return ""
}
