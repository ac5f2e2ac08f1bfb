package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderPackHelp renders the help text for the pack command with lipgloss
// styling.
func renderPackHelp() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginTop(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("10"))

	commandStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("14"))

	commentStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Italic(true)

	flagStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Examples"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Pack an order, write the packed result to disk"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("cratepack pack run.yaml -o packed.json"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Pack an order, print the packed result to stdout"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("cratepack pack run.yaml"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Pack an order, writing the dataset layout alongside a report"))
	b.WriteString("\n")
	b.WriteString("  " + commandStyle.Render("cratepack pack run.yaml --report --dataset-dir ./dataset"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Flags:"))
	b.WriteString("\n")

	flags := []struct {
		flag string
		desc string
	}{
		{"-o, --output", "Output file path (overrides the config's output_file)"},
		{"--report", "Print each variant's center-of-gravity and utilization diagnostics"},
		{"--dataset-dir", "Write the info.json/order{N}.json dataset layout to this directory"},
	}

	maxWidth := 0
	for _, f := range flags {
		if len(f.flag) > maxWidth {
			maxWidth = len(f.flag)
		}
	}
	for _, f := range flags {
		padding := strings.Repeat(" ", maxWidth-len(f.flag)+2)
		b.WriteString("  " + flagStyle.Render(f.flag) + padding + commentStyle.Render(f.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	return b.String()
}
