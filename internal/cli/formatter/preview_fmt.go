package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/daybrief/internal/briefing"
	"github.com/alexanderramin/daybrief/internal/tasks"
)

// FormatPreview renders the fetched snapshots for the preview command.
func FormatPreview(p *briefing.Preview) string {
	var b strings.Builder

	b.WriteString(Header("Weather"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s  %s\n",
		Bold(p.Weather.Current.Temperature),
		p.Weather.Current.Description,
		Dim(fmt.Sprintf("humidity %s, wind %s", p.Weather.Current.Humidity, p.Weather.Current.WindSpeed)))
	fmt.Fprintf(&b, "  Today: %s, %s to %s\n",
		p.Weather.Forecast.Conditions, p.Weather.Forecast.MinTemp, p.Weather.Forecast.MaxTemp)
	fmt.Fprintf(&b, "  %s\n", Dim(fmt.Sprintf("sunrise %s, sunset %s", p.Weather.Current.Sunrise, p.Weather.Current.Sunset)))
	for _, a := range p.Weather.Alerts {
		fmt.Fprintf(&b, "  %s %s\n", AlertBadge(a.Title), Dim(a.Start+" to "+a.End))
	}

	b.WriteString("\n")
	b.WriteString(Header("Fitness (yesterday)"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Steps %s   Active %s min   Calories %s   Elevated HR %s min\n",
		Bold(metric(p.Fitness.Steps)),
		Bold(metric(p.Fitness.ActiveMinutes)),
		Bold(metric(p.Fitness.Calories)),
		Bold(metric(p.Fitness.ElevatedHRMinutes)))

	b.WriteString("\n")
	b.WriteString(Header("Schedule"))
	b.WriteString("\n")
	if len(p.Schedule.Tasks) == 0 && len(p.Schedule.Events) == 0 {
		fmt.Fprintf(&b, "  %s\n", Dim("nothing scheduled"))
	}
	for _, t := range p.Schedule.Tasks {
		fmt.Fprintf(&b, "  %s %s %s\n", statusMark(t.Status), t.Name, Dim(taskMeta(t)))
	}
	for _, e := range p.Schedule.Events {
		fmt.Fprintf(&b, "  %s %s %s\n", StyleBlue.Render("◆"), e.Name, Dim(e.Start))
	}

	return b.String()
}

func metric(v *int) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%d", *v)
}

func statusMark(status string) string {
	if status == tasks.StatusCompleted {
		return StyleGreen.Render("✓")
	}
	return StyleYellow.Render("○")
}

func taskMeta(t tasks.Task) string {
	parts := []string{}
	if !t.ScheduledStart.IsZero() {
		parts = append(parts, t.ScheduledStart.Format("15:04"))
	}
	if t.DurationMinutes > 0 {
		parts = append(parts, fmt.Sprintf("%d min", t.DurationMinutes))
	}
	if t.Label != "" {
		parts = append(parts, t.Label)
	}
	return strings.Join(parts, ", ")
}
