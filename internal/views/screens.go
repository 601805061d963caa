package views

import (
	"fmt"
	"strings"
)

type BoardPanelData struct {
	TableView string
}

type TaskLineData struct {
	ID       int
	Name     string
	Status   string
	Selected bool
}

type DayPanelData struct {
	Day       string
	Tasks     []TaskLineData
	InputView string
	Adding    bool
}

type CommandLineData struct {
	Active bool
	View   string
}

type HelpPanelData struct {
	Markdown string
	HelpView string
}

func RenderBoardPanel(data BoardPanelData) string {
	var b strings.Builder
	b.WriteString("week:\n")
	b.WriteString("actions: [j/k]day [a]add [enter]open [:]command\n")
	b.WriteString(data.TableView)
	return strings.TrimSpace(b.String())
}

func RenderDayPanel(data DayPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s:\n", data.Day))
	if data.Adding {
		b.WriteString(data.InputView + "\n")
	}
	if len(data.Tasks) == 0 {
		b.WriteString("(no tasks)")
		return strings.TrimSpace(b.String())
	}
	for _, task := range data.Tasks {
		cursor := " "
		if task.Selected {
			cursor = ">"
		}
		line := fmt.Sprintf("%d: %s - %s", task.ID, task.Name, task.Status)
		if task.Status == "Done" {
			line = doneStyle.Render(line)
		}
		b.WriteString(cursor + " " + line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderAllDaysPanel(rows []DayPanelData) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s:\n", row.Day))
		for _, task := range row.Tasks {
			b.WriteString(fmt.Sprintf("  %d: %s - %s\n", task.ID, task.Name, task.Status))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandLine(data CommandLineData) string {
	if !data.Active {
		return ""
	}
	return "command: " + data.View
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(RenderMarkdown(data.Markdown))
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView)
	}
	return strings.TrimSpace(b.String())
}
