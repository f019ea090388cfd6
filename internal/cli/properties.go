package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/flowcanvas/pkg/workflow"
)

// propsState tracks field focus and the in-flight edit buffer of the
// properties pane.
type propsState struct {
	fieldIdx int
	editing  bool
	buffer   string
}

func (p *propsState) reset() {
	p.fieldIdx = 0
	p.editing = false
	p.buffer = ""
}

func (p *propsState) nextField(fields int) {
	if fields > 0 && p.fieldIdx < fields-1 {
		p.fieldIdx++
	}
}

func (p *propsState) prevField() {
	if p.fieldIdx > 0 {
		p.fieldIdx--
	}
}

// configKeys returns a node's config keys in stable display order.
func configKeys(cfg workflow.Config) []string {
	return slices.Sorted(maps.Keys(cfg))
}

// focusedField returns the key and value under the field cursor.
func (m *editorModel) focusedField() (string, workflow.ConfigValue, bool) {
	n := m.selectedNode()
	if n == nil {
		return "", workflow.ConfigValue{}, false
	}
	keys := configKeys(n.Config)
	if m.props.fieldIdx >= len(keys) {
		return "", workflow.ConfigValue{}, false
	}
	key := keys[m.props.fieldIdx]
	return key, n.Config[key], true
}

// beginOrToggleField starts editing the focused field. Booleans toggle
// in place; string and structured values open a text buffer seeded with
// the current value.
func (m editorModel) beginOrToggleField() editorModel {
	key, val, ok := m.focusedField()
	if !ok {
		return m
	}

	switch val.Kind() {
	case workflow.KindBool:
		m.applyConfig(key, workflow.BoolValue(!val.Flag()))
		m.status = "toggled " + key

	case workflow.KindString:
		m.props.editing = true
		m.props.buffer = val.Text()

	case workflow.KindStructured:
		data, err := json.Marshal(val.Object())
		if err != nil {
			data = []byte("{}")
		}
		m.props.editing = true
		m.props.buffer = string(data)
	}
	return m
}

// updatePropsEditing handles key input while a field edit is open.
func (m editorModel) updatePropsEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.props.editing = false
		m.props.buffer = ""
		return m, nil

	case "enter":
		m.commitField()
		return m, nil

	case "backspace":
		if len(m.props.buffer) > 0 {
			r := []rune(m.props.buffer)
			m.props.buffer = string(r[:len(r)-1])
		}
		return m, nil

	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.props.buffer += string(msg.Runes)
		case tea.KeySpace:
			m.props.buffer += " "
		}
		return m, nil
	}
}

// commitField writes the edit buffer back into the node's config.
// Malformed JSON for a structured field is discarded without comment and
// the stored value stays as it was.
func (m *editorModel) commitField() {
	key, val, ok := m.focusedField()
	if !ok {
		m.props.editing = false
		return
	}

	switch val.Kind() {
	case workflow.KindString:
		m.applyConfig(key, workflow.StringValue(m.props.buffer))
		m.status = "updated " + key

	case workflow.KindStructured:
		var obj map[string]any
		if err := json.Unmarshal([]byte(m.props.buffer), &obj); err == nil {
			m.applyConfig(key, workflow.StructuredValue(obj))
			m.status = "updated " + key
		}
	}

	m.props.editing = false
	m.props.buffer = ""
}

func (m *editorModel) applyConfig(key string, val workflow.ConfigValue) {
	id := m.controller.SelectedID()
	if id == "" {
		return
	}
	m.controller.Store().UpdateNodeConfig(id, workflow.Config{key: val})
}

// =============================================================================
// View
// =============================================================================

func (m editorModel) viewProps(height int) string {
	var b strings.Builder
	b.WriteString(stylePaneTitle.Render("Properties"))
	b.WriteString("\n\n")

	n := m.selectedNode()
	if n == nil {
		b.WriteString(StyleDim.Render("no node selected"))
		return stylePaneBorder.Width(propsWidth - 2).Height(height - 2).Render(b.String())
	}

	b.WriteString(StyleValue.Render(n.Name))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(n.TemplateType))
	b.WriteString("\n\n")

	keys := configKeys(n.Config)
	if len(keys) == 0 {
		b.WriteString(StyleDim.Render("no configuration"))
	}
	for i, key := range keys {
		cursor := "  "
		keyStyle := StyleDim
		if i == m.props.fieldIdx && m.focus == focusProps {
			cursor = "▸ "
			keyStyle = StyleHighlight
		}

		b.WriteString(keyStyle.Render(cursor + key))
		b.WriteString("\n")

		if i == m.props.fieldIdx && m.props.editing {
			b.WriteString("    " + StyleValue.Render(m.props.buffer+"▏"))
		} else {
			b.WriteString("    " + renderConfigValue(n.Config[key]))
		}
		b.WriteString("\n")
	}

	return stylePaneBorder.Width(propsWidth - 2).Height(height - 2).Render(b.String())
}

func renderConfigValue(v workflow.ConfigValue) string {
	switch v.Kind() {
	case workflow.KindString:
		s := v.Text()
		if s == "" {
			return StyleDim.Render(`""`)
		}
		return StyleValue.Render(truncate(s, propsWidth-8))

	case workflow.KindBool:
		if v.Flag() {
			return StyleSuccess.Render("true")
		}
		return StyleDim.Render("false")

	case workflow.KindStructured:
		data, err := json.Marshal(v.Object())
		if err != nil {
			return StyleDim.Render("{…}")
		}
		return StyleValue.Render(truncate(string(data), propsWidth-8))

	default:
		return StyleDim.Render(fmt.Sprintf("%v", v))
	}
}
