package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/voltwise/internal/estimator"
)

// FormState is the lifecycle state of the interactive form.
type FormState int

const (
	// FormStateEditing means the form accepts input.
	FormStateEditing FormState = iota
	// FormStateQuitting means the program is exiting.
	FormStateQuitting
)

// FormField identifies one input of the form in focus order.
type FormField int

const (
	FieldName FormField = iota
	FieldAge
	FieldCity
	FieldArea
	FieldDwelling
	FieldHousing
	FieldAirConditioner
	FieldRefrigerator
	FieldWashingMachine

	fieldCount
)

// Fields before textFieldCount are free-text inputs.
const textFieldCount = int(FieldArea) + 1

func (f FormField) isText() bool {
	return f >= FieldName && int(f) < textFieldCount
}

// String returns the field label.
func (f FormField) String() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldAge:
		return "Age"
	case FieldCity:
		return "City"
	case FieldArea:
		return "Area"
	case FieldDwelling:
		return "Dwelling"
	case FieldHousing:
		return "Housing type"
	case FieldAirConditioner:
		return "Air conditioner"
	case FieldRefrigerator:
		return "Refrigerator"
	case FieldWashingMachine:
		return "Washing machine"
	default:
		return fmt.Sprintf("FormField(%d)", int(f))
	}
}

// NamePrompt is shown in place of the report until a name is entered.
const NamePrompt = "Please enter your name to see your electricity consumption analysis!"

const (
	formDefaultWidth = 80
	textCharLimit    = 64
	ageCharLimit     = 3
	formLabelWidth   = 18
)

// FormModel is the Bubble Tea model for the interactive estimator. Every
// change recomputes the estimate synchronously.
type FormModel struct {
	inputs   [textFieldCount]textinput.Model
	ageErr   error
	resident estimator.Resident
	profile  estimator.HouseholdProfile
	result   estimator.ConsumptionResult

	focus FormField
	state FormState
	opts  ReportOptions
}

// NewFormModel builds a form seeded with the given resident and profile.
// An invalid housing type is replaced by 1BHK, an unknown dwelling by Flat and
// an out-of-range age by none.
func NewFormModel(resident estimator.Resident, profile estimator.HouseholdProfile, opts ReportOptions) *FormModel {
	if !profile.HousingType.IsValid() {
		profile.HousingType = estimator.OneBHK
	}
	dwelling, err := estimator.ParseDwelling(string(resident.Dwelling))
	if err != nil {
		dwelling = estimator.DwellingFlat
	}
	resident.Dwelling = dwelling
	if opts.Width == 0 {
		opts.Width = formDefaultWidth
	}

	if resident.Age < estimator.MinAge || resident.Age > estimator.MaxAge {
		resident.Age = 0
	}

	m := &FormModel{
		inputs: [textFieldCount]textinput.Model{
			FieldName: newTextInput("Your name", textCharLimit, resident.Name),
			FieldAge:  newTextInput("1-120", ageCharLimit, ageText(resident.Age)),
			FieldCity: newTextInput("City", textCharLimit, resident.City),
			FieldArea: newTextInput("Area", textCharLimit, resident.Area),
		},
		resident: resident,
		profile:  profile,
		focus:    FieldName,
		state:    FormStateEditing,
		opts:     opts,
	}
	m.inputs[FieldName].Focus()
	m.recompute()
	return m
}

func newTextInput(placeholder string, limit int, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.SetValue(value)
	return ti
}

func ageText(age int) string {
	if age == 0 {
		return ""
	}
	return strconv.Itoa(age)
}

// Init starts the cursor blink.
func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.focus.isText() {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyMsg processes keyboard input.
//
//nolint:exhaustive // Only handling relevant key types for form navigation.
func (m *FormModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.state = FormStateQuitting
		return m, tea.Quit

	case tea.KeyUp, tea.KeyShiftTab:
		m.moveFocus(-1)
		return m, nil

	case tea.KeyDown, tea.KeyTab:
		m.moveFocus(1)
		return m, nil

	case tea.KeyEnter, tea.KeyEsc:
		if m.focus.isText() {
			m.moveFocus(1)
		}
		return m, nil
	}

	if m.focus.isText() {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		m.syncInput(m.focus)
		return m, cmd
	}

	switch msg.Type {
	case tea.KeyLeft:
		m.cycle(-1)
	case tea.KeyRight, tea.KeySpace:
		m.cycle(1)
	case tea.KeyRunes:
		if string(msg.Runes) == "q" {
			m.state = FormStateQuitting
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *FormModel) moveFocus(delta int) {
	next := int(m.focus) + delta
	if next < 0 || next >= int(fieldCount) {
		return
	}
	if m.focus.isText() {
		m.inputs[m.focus].Blur()
	}
	m.focus = FormField(next)
	if m.focus.isText() {
		m.inputs[m.focus].Focus()
	}
}

// syncInput copies a text input into the resident. An age that does not
// parse is reported and leaves the previous age in place.
func (m *FormModel) syncInput(f FormField) {
	value := m.inputs[f].Value()
	switch f {
	case FieldName:
		m.resident.Name = value
	case FieldAge:
		age, err := estimator.ParseAge(value)
		m.ageErr = err
		if err == nil {
			m.resident.Age = age
		}
	case FieldCity:
		m.resident.City = strings.TrimSpace(value)
	case FieldArea:
		m.resident.Area = strings.TrimSpace(value)
	default:
	}
}

// cycle steps the focused choice field forward or backward and recomputes.
func (m *FormModel) cycle(delta int) {
	switch m.focus {
	case FieldDwelling:
		if m.resident.Dwelling == estimator.DwellingFlat {
			m.resident.Dwelling = estimator.DwellingTenement
		} else {
			m.resident.Dwelling = estimator.DwellingFlat
		}
	case FieldHousing:
		types := estimator.HousingTypes()
		idx := 0
		for i, h := range types {
			if h == m.profile.HousingType {
				idx = i
			}
		}
		idx = (idx + delta + len(types)) % len(types)
		m.profile.HousingType = types[idx]
	case FieldAirConditioner:
		m.toggle(estimator.AirConditioner)
	case FieldRefrigerator:
		m.toggle(estimator.Refrigerator)
	case FieldWashingMachine:
		m.toggle(estimator.WashingMachine)
	case FieldName, FieldAge, FieldCity, FieldArea, fieldCount:
	}
	m.recompute()
}

func (m *FormModel) toggle(a estimator.Appliance) {
	m.profile = m.profile.With(a, !m.profile.Has(a))
}

func (m *FormModel) recompute() {
	m.result = estimator.Estimate(m.profile)
}

// View renders the form followed by the report, or the name prompt.
func (m *FormModel) View() string {
	if m.state == FormStateQuitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("⚡ Electricity Consumption Estimator"))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderFields())
	sb.WriteString("\n")

	if !m.resident.HasName() {
		sb.WriteString(InfoStyle.Render(NamePrompt))
	} else {
		sb.WriteString(RenderReport(m.resident, m.result, nil, m.opts))
	}

	sb.WriteString("\n\n")
	sb.WriteString(SubtleStyle.Render("↑/↓: move • ←/→/space: change • q: quit"))
	return sb.String()
}

func (m *FormModel) renderFields() string {
	var sb strings.Builder
	for f := FieldName; f < fieldCount; f++ {
		marker := "  "
		label := LabelStyle.Render(fmt.Sprintf("%-*s", formLabelWidth, f.String()))
		if f == m.focus {
			marker = FocusStyle.Render(IconFocus + " ")
			label = FocusStyle.Render(fmt.Sprintf("%-*s", formLabelWidth, f.String()))
		}
		sb.WriteString(marker)
		sb.WriteString(label)
		sb.WriteString(m.fieldValue(f))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m *FormModel) fieldValue(f FormField) string {
	switch f {
	case FieldName, FieldCity, FieldArea:
		return m.inputs[f].View()
	case FieldAge:
		if m.ageErr != nil {
			return m.inputs[f].View() + " " + CriticalStyle.Render(estimator.ErrInvalidAge.Error())
		}
		return m.inputs[f].View()
	case FieldDwelling:
		return ValueStyle.Render(string(m.resident.Dwelling))
	case FieldHousing:
		return ValueStyle.Render(m.profile.HousingType.String())
	case FieldAirConditioner:
		return yesNo(m.profile.HasAirConditioner)
	case FieldRefrigerator:
		return yesNo(m.profile.HasRefrigerator)
	case FieldWashingMachine:
		return yesNo(m.profile.HasWashingMachine)
	default:
		return ""
	}
}

func yesNo(b bool) string {
	if b {
		return OKStyle.Render("Yes")
	}
	return SubtleStyle.Render("No")
}

// Result returns the estimate for the current selections.
func (m *FormModel) Result() estimator.ConsumptionResult {
	return m.result
}

// Profile returns the current selections.
func (m *FormModel) Profile() estimator.HouseholdProfile {
	return m.profile
}

// Resident returns the personal details entered so far.
func (m *FormModel) Resident() estimator.Resident {
	return m.resident
}

// AgeError returns the problem with the typed age, or nil.
func (m *FormModel) AgeError() error {
	return m.ageErr
}

// Focus returns the focused field.
func (m *FormModel) Focus() FormField {
	return m.focus
}

// State returns the lifecycle state.
func (m *FormModel) State() FormState {
	return m.state
}
