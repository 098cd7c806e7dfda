package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"route-optimizer-service/internal/domain"
)

// Per-row defaults applied when an optional column is absent or blank.
const (
	defaultDemand      = 1.0
	defaultServiceTime = 5
	defaultPriority    = 1
)

// ParseDeliveries reads delivery stops from CSV. The first row is a header;
// column order is free and header names are matched case-insensitively.
// Required columns: latitude, longitude. Everything else falls back to
// row-number defaults so a minimal two-column sheet still optimizes.
func ParseDeliveries(r io.Reader) ([]domain.Stop, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["latitude"]; !ok {
		return nil, fmt.Errorf("csv missing required column %q", "latitude")
	}
	if _, ok := cols["longitude"]; !ok {
		return nil, fmt.Errorf("csv missing required column %q", "longitude")
	}

	var stops []domain.Stop
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row, err)
		}

		stop, err := parseRow(cols, record, row)
		if err != nil {
			return nil, err
		}
		stops = append(stops, stop)
	}

	if len(stops) == 0 {
		return nil, fmt.Errorf("csv has a header but no delivery rows")
	}
	return stops, nil
}

func parseRow(cols map[string]int, record []string, row int) (domain.Stop, error) {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	lat, err := strconv.ParseFloat(field("latitude"), 64)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("csv row %d: bad latitude %q", row, field("latitude"))
	}
	lon, err := strconv.ParseFloat(field("longitude"), 64)
	if err != nil {
		return domain.Stop{}, fmt.Errorf("csv row %d: bad longitude %q", row, field("longitude"))
	}

	stop := domain.Stop{
		ID:              field("id"),
		Name:            field("name"),
		Phone:           field("phone"),
		Notes:           field("notes"),
		Address:         field("address"),
		Location:        domain.Coordinate{Lat: lat, Lon: lon},
		Demand:          defaultDemand,
		TimeWindowStart: field("time_window_start"),
		TimeWindowEnd:   field("time_window_end"),
		ServiceTime:     defaultServiceTime,
		Priority:        defaultPriority,
	}
	if stop.ID == "" {
		stop.ID = fmt.Sprintf("delivery_%d", row)
	}
	if stop.Name == "" {
		stop.Name = stop.ID
	}

	if raw := field("demand"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return domain.Stop{}, fmt.Errorf("csv row %d: bad demand %q", row, raw)
		}
		stop.Demand = v
	}
	if raw := field("service_time"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Stop{}, fmt.Errorf("csv row %d: bad service_time %q", row, raw)
		}
		stop.ServiceTime = v
	}
	if raw := field("priority"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return domain.Stop{}, fmt.Errorf("csv row %d: bad priority %q", row, raw)
		}
		stop.Priority = v
	}

	if err := stop.Validate(); err != nil {
		return domain.Stop{}, fmt.Errorf("csv row %d: %w", row, err)
	}
	return stop, nil
}
