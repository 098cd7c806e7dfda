package render

import (
	"fmt"
	"strings"

	"route-optimizer-service/internal/domain"
)

// RouteSheet formats one route as a plain-text driver sheet: stop order,
// arrival and departure times, directions, and running totals. Plain text
// prints cleanly from any dispatch terminal.
func RouteSheet(depot domain.Depot, route domain.Route) string {
	var b strings.Builder

	name := route.VehicleName
	if name == "" {
		name = route.VehicleID
	}
	fmt.Fprintf(&b, "ROUTE SHEET - %s\n", name)
	fmt.Fprintf(&b, "Depart from: %s\n", depotLabel(depot))
	fmt.Fprintf(&b, "Stops: %d | Distance: %.2f km | Time: %d min | Load: %g\n",
		len(route.Stops), route.TotalDistanceKm, route.TotalTime, route.TotalLoad)
	b.WriteString(strings.Repeat("-", 60) + "\n")

	for _, s := range route.Stops {
		fmt.Fprintf(&b, "%2d. %s", s.Sequence, stopLabel(s))
		b.WriteString("\n")
		fmt.Fprintf(&b, "    Arrive %s, depart %s\n", s.ArrivalTime, s.DepartureTime)
		if s.Directions != "" {
			fmt.Fprintf(&b, "    %s\n", s.Directions)
		}
	}

	b.WriteString(strings.Repeat("-", 60) + "\n")
	fmt.Fprintf(&b, "Return to: %s\n", depotLabel(depot))
	return b.String()
}

// ReportSheets renders every route in a report, separated by blank lines.
func ReportSheets(depot domain.Depot, report domain.OptimizationReport) string {
	sheets := make([]string, 0, len(report.Routes))
	for _, route := range report.Routes {
		sheets = append(sheets, RouteSheet(depot, route))
	}

	out := strings.Join(sheets, "\n")
	if len(report.Unassigned) > 0 {
		out += fmt.Sprintf("\nUNASSIGNED DELIVERIES: %s\n", strings.Join(report.Unassigned, ", "))
	}
	return out
}

func depotLabel(depot domain.Depot) string {
	if depot.Address != "" {
		return depot.Address
	}
	if depot.Name != "" {
		return depot.Name
	}
	return fmt.Sprintf("%.4f, %.4f", depot.Location.Lat, depot.Location.Lon)
}

func stopLabel(s domain.RouteStop) string {
	label := s.CustomerName
	if label == "" {
		label = s.StopID
	}
	if s.Address != "" {
		label += " - " + s.Address
	}
	if s.CustomerPhone != "" {
		label += " (" + s.CustomerPhone + ")"
	}
	return label
}
