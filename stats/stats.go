// Package stats reports session journal statistics
package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"

	"github.com/sesh-cli/sesh/config"
	"github.com/sesh-cli/sesh/dose"
	"github.com/sesh-cli/sesh/internal/models"
	"github.com/sesh-cli/sesh/internal/timeutil"
	"github.com/sesh-cli/sesh/internal/ui"
)

const (
	barChartChar  = "▇"
	noSessionsMsg = "No sessions found for the specified time range"
)

type aggregatePeriod string

const (
	monthly aggregatePeriod = "Monthly"
	daily   aggregatePeriod = "Daily"
	yearly  aggregatePeriod = "Yearly"
	weekly  aggregatePeriod = "Weekly"
	hourly  aggregatePeriod = "Hourly"
)

// Opts configures the reporting window and filters.
type Opts struct {
	config.FilterConfig
}

// Summary holds the aggregate figures for the reporting period.
type Summary struct {
	Sessions    int            `json:"sessions"`
	Ongoing     int            `json:"ongoing"`
	Events      int            `json:"events"`
	TotalDose   float64        `json:"total_dose_grams"`
	AvgDose     float64        `json:"avg_dose_grams"`
	TimeLogged  time.Duration  `json:"time_logged"`
	Tolerance   float64        `json:"tolerance"`
	Effects     map[string]int `json:"effects"`
	Supplements map[string]int `json:"supplements"`
}

type aggregates struct {
	daily     map[int]float64
	weekly    map[int]float64
	monthly   map[int]float64
	yearly    map[int]float64
	hourly    map[int]float64
	tolerance map[int]float64
}

// Stats computes and renders the journal statistics for a reporting
// period.
type Stats struct {
	Opts
	Sessions []models.Session
	Summary  Summary
	aggr     aggregates
}

// filterSessions restricts the journal to sessions started within the
// reporting window, carrying the requested effects when an effect
// filter is set.
func (s *Stats) filterSessions(sessions []models.Session) []models.Session {
	var filtered []models.Session

	for i := range sessions {
		sess := sessions[i]

		if !s.StartTime.IsZero() && sess.StartTime.Before(s.StartTime) {
			continue
		}

		if sess.StartTime.After(s.EndTime) {
			continue
		}

		if len(s.Effects) != 0 && !hasAnyEffect(&sess, s.Effects) {
			continue
		}

		filtered = append(filtered, sess)
	}

	return filtered
}

func hasAnyEffect(sess *models.Session, effects []string) bool {
	for _, want := range effects {
		for _, e := range sess.Effects {
			if strings.EqualFold(e, want) {
				return true
			}
		}
	}

	return false
}

// Compute filters the sessions to the reporting window and fills in
// the summary and aggregates.
func (s *Stats) Compute(sessions []models.Session) {
	s.Sessions = s.filterSessions(sessions)

	// For all-time, set start time to the date of the first session
	if s.StartTime.IsZero() && len(s.Sessions) > 0 {
		s.StartTime = timeutil.RoundToStart(s.Sessions[0].StartTime)
	}

	s.computeSummary()
	s.computeAggregates()
}

func (s *Stats) computeSummary() {
	totals := Summary{
		Effects:     make(map[string]int),
		Supplements: make(map[string]int),
	}

	for i := range s.Sessions {
		sess := &s.Sessions[i]

		totals.Sessions++

		if sess.Active {
			totals.Ongoing++
		}

		totals.Events += len(sess.Consumptions)
		totals.TotalDose += dose.SessionTotal(sess)
		totals.TimeLogged += sess.ElapsedAt(s.EndTime)

		for _, e := range sess.Effects {
			totals.Effects[e]++
		}

		for _, sup := range sess.Supplements {
			totals.Supplements[sup]++
		}
	}

	if totals.Sessions > 0 {
		totals.AvgDose = totals.TotalDose / float64(totals.Sessions)
	}

	totals.Tolerance = dose.Tolerance(s.EndTime, s.Sessions)

	s.Summary = totals
}

func (s *Stats) computeAggregates() {
	totals := aggregates{
		daily:     make(map[int]float64),
		weekly:    populateMap(6),
		monthly:   make(map[int]float64),
		yearly:    make(map[int]float64),
		hourly:    populateMap(23),
		tolerance: make(map[int]float64),
	}

	for i := range s.Sessions {
		sess := &s.Sessions[i]

		for _, c := range sess.Consumptions {
			grams := dose.FromEvent(c, sess.Sharers)
			ts := c.Timestamp

			totals.daily[timeutil.DayFormat(ts)] += grams
			totals.weekly[int(ts.Weekday())] += grams
			totals.monthly[int(ts.Month())] += grams
			totals.yearly[ts.Year()] += grams
			totals.hourly[ts.Hour()] += grams
		}
	}

	// The tolerance trajectory is sampled at the end of each day in
	// the reporting window.
	hoursDiff := timeutil.Round(s.EndTime.Sub(s.StartTime).Hours())
	if hoursDiff <= timeutil.MaxHoursInAMonth {
		start := timeutil.RoundToStart(s.StartTime)

		for date := start; date.Before(s.EndTime); date = date.AddDate(0, 0, 1) {
			at := timeutil.RoundToEnd(date)
			totals.tolerance[timeutil.DayFormat(date)] = dose.Tolerance(at, s.Sessions)
		}
	}

	s.aggr = totals
}

func populateMap(max int) map[int]float64 {
	m := make(map[int]float64)

	for i := 0; i <= max; i++ {
		m[i] = 0
	}

	return m
}

func chartLabel(period aggregatePeriod, key int) string {
	//nolint:exhaustive // all chart periods are covered
	switch period {
	case yearly:
		return fmt.Sprintf("%d", key)
	case monthly:
		return time.Month(key).String()
	case weekly:
		return time.Weekday(key).String()
	case daily:
		return fmt.Sprintf("%04d-%02d-%02d", key/10000, (key/100)%100, key%100)
	case hourly:
		return fmt.Sprintf("%02d:00", key)
	}

	return fmt.Sprintf("%d", key)
}

// getBarChart renders an aggregate map as a horizontal bar chart.
// Dose values are shown in milligrams so the bars stay integral.
func getBarChart(
	data map[int]float64,
	period aggregatePeriod,
	title string,
	toValue func(float64) int,
) string {
	if len(data) == 0 {
		return ""
	}

	header := ui.Blue("\n" + title)

	type keyValue struct {
		value float64
		key   int
	}

	sl := make([]keyValue, 0, len(data))
	for k, v := range data {
		sl = append(sl, keyValue{v, k})
	}

	sort.SliceStable(sl, func(i, j int) bool {
		return sl[i].key < sl[j].key
	})

	var bars pterm.Bars

	for _, v := range sl {
		bars = append(bars, pterm.Bar{
			Value: toValue(v.value),
			Label: chartLabel(period, v.key),
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

func milligrams(grams float64) int {
	return int(math.Round(grams * 1000))
}

// getFrequencies renders a name → count breakdown sorted by count
// descending.
func getFrequencies(title string, counts map[string]int) string {
	if len(counts) == 0 {
		return ""
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("\n%s\n", ui.Blue(title)))

	type keyValue struct {
		key   string
		value int
	}

	kv := make([]keyValue, 0, len(counts))
	for k, v := range counts {
		kv = append(kv, keyValue{k, v})
	}

	sort.SliceStable(kv, func(i, j int) bool {
		if kv[i].value != kv[j].value {
			return kv[i].value > kv[j].value
		}

		return kv[i].key < kv[j].key
	})

	for _, v := range kv {
		noun := "sessions"
		if v.value == 1 {
			noun = "session"
		}

		builder.WriteString(fmt.Sprintf(
			"%s: %s %s\n",
			v.key,
			ui.Green(v.value),
			noun,
		))
	}

	return builder.String()
}

// getSummary renders the aggregate figures for the reporting period.
func (s *Stats) getSummary() string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary"))

	sessions := fmt.Sprintln("Sessions logged:", ui.Green(s.Summary.Sessions))

	ongoing := ""
	if s.Summary.Ongoing > 0 {
		ongoing = fmt.Sprintln("Ongoing:", ui.Green(s.Summary.Ongoing))
	}

	//nolint:gomnd // limit to first 2 units
	duration := durafmt.Parse(s.Summary.TimeLogged).LimitToUnit("hours").LimitFirstN(2)

	timeLogged := fmt.Sprintf("Time logged: %s\n", ui.Green(duration))

	totalDose := fmt.Sprintf(
		"Total dose: %s\n",
		ui.Green(fmt.Sprintf("%.3fg", s.Summary.TotalDose)),
	)

	avgDose := fmt.Sprintf(
		"Average dose per session: %s\n",
		ui.Green(fmt.Sprintf("%.3fg", s.Summary.AvgDose)),
	)

	tolerance := fmt.Sprintf(
		"Tolerance: %s\n",
		ui.Green(fmt.Sprintf("%.1f units", s.Summary.Tolerance)),
	)

	return header + sessions + ongoing + timeLogged + totalDose + avgDose + tolerance
}

// ToJSON returns the computed report as a JSON document.
func (s *Stats) ToJSON() ([]byte, error) {
	return json.Marshal(struct {
		StartTime time.Time       `json:"start_time"`
		EndTime   time.Time       `json:"end_time"`
		Summary   Summary         `json:"summary"`
		Daily     map[int]float64 `json:"daily_dose_grams"`
		Weekday   map[int]float64 `json:"weekday_dose_grams"`
		Hourly    map[int]float64 `json:"hourly_dose_grams"`
		Tolerance map[int]float64 `json:"daily_tolerance"`
	}{
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Summary:   s.Summary,
		Daily:     s.aggr.daily,
		Weekday:   s.aggr.weekly,
		Hourly:    s.aggr.hourly,
		Tolerance: s.aggr.tolerance,
	})
}

// Show renders the report for the reporting period.
func (s *Stats) Show() {
	if len(s.Sessions) == 0 {
		pterm.Info.Println(noSessionsMsg)
		return
	}

	reportingStart := s.StartTime.Format("January 02, 2006")
	reportingEnd := s.EndTime.Format("January 02, 2006")
	timePeriod := "Reporting period: " + reportingStart + " - " + reportingEnd

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("%s", timePeriod)

	hoursDiff := timeutil.Round(s.EndTime.Sub(s.StartTime).Hours())

	var history string
	//nolint:gocritic // if-else more appropriate
	if hoursDiff > timeutil.HoursInADay &&
		hoursDiff <= timeutil.MaxHoursInAMonth {
		history = getBarChart(s.aggr.daily, daily, "Daily dose (mg)", milligrams)
	} else if hoursDiff > timeutil.MaxHoursInAYear {
		history = getBarChart(s.aggr.yearly, yearly, "Yearly dose (mg)", milligrams)
	} else {
		history = getBarChart(s.aggr.monthly, monthly, "Monthly dose (mg)", milligrams)
	}

	tolerance := getBarChart(
		s.aggr.tolerance,
		daily,
		"Tolerance trajectory (units)",
		func(v float64) int { return timeutil.Round(v) },
	)

	output := fmt.Sprint(
		header,
		s.getSummary(),
		getFrequencies("Effects", s.Summary.Effects),
		getFrequencies("Supplements", s.Summary.Supplements),
		history,
		getBarChart(s.aggr.weekly, weekly, "Weekday dose (mg)", milligrams),
		getBarChart(s.aggr.hourly, hourly, "Time of day (mg)", milligrams),
		tolerance,
	)

	fmt.Fprintln(
		config.Stdout,
		strings.TrimSpace(output),
	)
}
