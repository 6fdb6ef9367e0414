package view

import (
	"strings"

	"chatbot/internal/chatconfig"
	"chatbot/pkg/types"
)

// FieldLabel turns a config key into its form label ("top_p" -> "top p").
// Only the first underscore is replaced.
func FieldLabel(key string) string {
	return strings.Replace(key, "_", " ", 1)
}

// ConfigFormState describes cursor and edit state of the form.
type ConfigFormState struct {
	Focused bool
	// Cursor is an index into chatconfig.FieldNames.
	Cursor int
	// Editing, when non-empty, is the rendered editor shown in place of the cursor field's value.
	Editing string
	Err     string
}

// RenderConfigForm renders each of the five fields with its current value.
func RenderConfigForm(th Theme, cfg types.ChatConfig, st ConfigFormState) string {
	var b strings.Builder
	for i, name := range chatconfig.FieldNames {
		label := strings.ToUpper(FieldLabel(name))
		value := chatconfig.FieldValue(cfg, name)
		prefix := "  "
		style := th.Field
		if st.Focused && i == st.Cursor {
			prefix = "> "
			style = th.FieldFocused
			if st.Editing != "" {
				value = st.Editing
			}
		}
		b.WriteString(style.Render(prefix + padRight(label, 18)))
		b.WriteString(th.Text.Render(value))
		if i < len(chatconfig.FieldNames)-1 {
			b.WriteByte('\n')
		}
	}
	if st.Err != "" {
		b.WriteByte('\n')
		b.WriteString(th.Error.Render(st.Err))
	}
	return b.String()
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s + " "
	}
	return s + strings.Repeat(" ", n-len(s))
}
