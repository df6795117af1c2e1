package briefing

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/daybrief/internal/fitness"
	"github.com/alexanderramin/daybrief/internal/schedule"
	"github.com/alexanderramin/daybrief/internal/weather"
)

// Compose assembles the single user prompt for the briefing generation call.
// It is a pure function of its inputs: every field of every snapshot is
// rendered verbatim, nothing is filtered or reordered, and the only
// time-dependent fragment is the date line derived from now.
func Compose(w *weather.Snapshot, f *fitness.Summary, sched *schedule.Schedule, now time.Time, goals string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Construct my morning briefing for %s from the data below.\n", now.Format("Monday, 2 January 2006"))

	b.WriteString("\n== Weather ==\n")
	fmt.Fprintf(&b, "Current conditions: %s, %s, humidity %s, wind %s.\n",
		w.Current.Description, w.Current.Temperature, w.Current.Humidity, w.Current.WindSpeed)
	fmt.Fprintf(&b, "Sunrise %s, sunset %s.\n", w.Current.Sunrise, w.Current.Sunset)
	fmt.Fprintf(&b, "Today's forecast: %s, min %s, max %s.\n",
		w.Forecast.Conditions, w.Forecast.MinTemp, w.Forecast.MaxTemp)
	if len(w.Alerts) == 0 {
		b.WriteString("No active weather alerts.\n")
	} else {
		b.WriteString("Active weather alerts:\n")
		for _, a := range w.Alerts {
			fmt.Fprintf(&b, "- %s (%s to %s): %s\n", a.Title, a.Start, a.End, a.Description)
		}
	}

	b.WriteString("\n== Fitness (yesterday) ==\n")
	fmt.Fprintf(&b, "Steps: %s\n", intOrUnavailable(f.Steps))
	fmt.Fprintf(&b, "Active minutes: %s\n", intOrUnavailable(f.ActiveMinutes))
	fmt.Fprintf(&b, "Calories expended: %s\n", intOrUnavailable(f.Calories))
	fmt.Fprintf(&b, "Elevated heart-rate minutes: %s\n", intOrUnavailable(f.ElevatedHRMinutes))
	if f.WeightKg != nil {
		fmt.Fprintf(&b, "Weight: %g kg\n", *f.WeightKg)
	}

	b.WriteString("\n== Schedule ==\n")
	if len(sched.Tasks) == 0 {
		b.WriteString("No planner tasks scheduled.\n")
	} else {
		b.WriteString("Planner tasks:\n")
		for _, t := range sched.Tasks {
			fmt.Fprintf(&b, "- %s (%s", t.Name, t.Status)
			if t.DurationMinutes > 0 {
				fmt.Fprintf(&b, ", %d min", t.DurationMinutes)
			}
			if t.DueDate != "" {
				fmt.Fprintf(&b, ", due %s", t.DueDate)
			}
			if t.Label != "" {
				fmt.Fprintf(&b, ", %s", t.Label)
			}
			b.WriteString(")")
			if t.Description != "" {
				fmt.Fprintf(&b, ": %s", t.Description)
			}
			b.WriteString("\n")
		}
	}
	if len(sched.Events) > 0 {
		b.WriteString("Calendar events:\n")
		for _, e := range sched.Events {
			fmt.Fprintf(&b, "- %s (%s to %s)", e.Name, e.Start, e.End)
			if e.Description != "" {
				fmt.Fprintf(&b, ": %s", e.Description)
			}
			b.WriteString("\n")
		}
	}

	if goals != "" {
		b.WriteString("\n== Long-term goals ==\n")
		b.WriteString(goals)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(formatInstructions)

	return b.String()
}

func intOrUnavailable(v *int) string {
	if v == nil {
		return "unavailable"
	}
	return fmt.Sprintf("%d", *v)
}
