package services

import (
	"strconv"
	"strings"

	"tripplanbuddy/internal/domain/models"
	"tripplanbuddy/internal/utils"
)

// SystemInstruction is sent as the system message of every completion call.
const SystemInstruction = "You create practical, realistic travel itineraries in clear, simple English with clean formatting."

const (
	notSpecified     = "not specified"
	noInterests      = "None"
	noNotes          = "No extra notes provided."
	maxTripDays      = 30
	minTripDays      = 1
	defaultPace      = "normal"
	defaultBudget    = "medium"
	defaultTravelers = "2"
)

// ApplyDefaults fills the form-level defaults and derives the duration from
// a date range when it is missing. It is the only place these defaults live.
func ApplyDefaults(req models.TripRequest) models.TripRequest {
	if strings.TrimSpace(req.Travelers.String()) == "" {
		req.Travelers = defaultTravelers
	}
	if strings.TrimSpace(req.Budget) == "" {
		req.Budget = defaultBudget
	}
	if strings.TrimSpace(req.Pace) == "" {
		req.Pace = defaultPace
	}
	if strings.TrimSpace(req.DurationDays.String()) == "" {
		if days, ok := utils.InclusiveDays(req.StartDate, req.EndDate); ok {
			req.DurationDays = models.Text(strconv.Itoa(clampDays(days)))
		}
	}
	return req
}

func clampDays(n int) int {
	if n < minTripDays {
		return minTripDays
	}
	if n > maxTripDays {
		return maxTripDays
	}
	return n
}

// BuildPrompt renders a trip request into the system and user messages.
// It never fails: absent fields become fixed placeholder text.
func BuildPrompt(req models.TripRequest) models.PromptPair {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line("")
	line("You are TripPlanBuddy, an expert travel planner.")
	line("")
	line("Create a clear, realistic, day-by-day travel itinerary.")
	line("")
	line("Destination: " + utils.OrDefault(req.Destination, notSpecified))
	line("Trip date: " + tripDateText(req))
	line("Approx duration from slider: " + durationText(req.DurationDays))
	line("Number of travelers: " + utils.OrDefault(req.Travelers.String(), notSpecified))
	line("Budget label: " + utils.OrDefault(req.Budget, notSpecified))
	line("Approx total budget from slider: " + budgetValueText(req.BudgetValue))
	line("Preferred pace: " + utils.OrDefault(req.Pace, notSpecified))
	line("Preferred mode of transportation: " + utils.OrDefault(req.Transportation, notSpecified) + " (road / air / water)")
	line("Interests (optional): " + interestsText(req.Interests))
	line("")
	line("Special notes from the traveler (very important, incorporate into the plan):")
	line(notesText(req.Notes))
	line("")
	line("Formatting requirements:")
	line("- Use plain text (no markdown symbols like **, bullets with hyphens only if needed).")
	line("- Use concise paragraphs and Day 1 / Day 2 / ... headings.")
	line("- Avoid more than one blank line between paragraphs.")
	line("- Make it look clean and easy to read.")

	return models.PromptPair{System: SystemInstruction, User: b.String()}
}

func tripDateText(req models.TripRequest) string {
	if d := strings.TrimSpace(req.TripDate); d != "" {
		return d
	}
	start := strings.TrimSpace(req.StartDate)
	end := strings.TrimSpace(req.EndDate)
	switch {
	case start != "" && end != "":
		return start + " to " + end
	case start != "":
		return start
	case end != "":
		return "until " + end
	default:
		return notSpecified
	}
}

func durationText(days models.Text) string {
	d := strings.TrimSpace(days.String())
	if d == "" {
		return notSpecified
	}
	return d + " days"
}

func budgetValueText(v models.Text) string {
	s := strings.TrimSpace(v.String())
	if s == "" {
		return notSpecified
	}
	return utils.FormatDollars(s)
}

func interestsText(tags models.Tags) string {
	if len(tags) == 0 {
		return noInterests
	}
	return strings.Join(tags, ", ")
}

// Notes are embedded verbatim; only an all-blank value counts as absent.
func notesText(notes string) string {
	if strings.TrimSpace(notes) == "" {
		return noNotes
	}
	return notes
}
