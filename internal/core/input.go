package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"
)

const inputColumns = 7 // ID,Burst,Wait,Priority,CPU%,Memory%,Completed

// LoadProcessSet reads the comma separated process table written by the viewer. Cells left
// empty are drawn from rng using the same ranges as NewProcessSet.
func LoadProcessSet(r io.Reader, maxProcesses int, rng *rand.Rand) (ProcessSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		if isBlank(record) {
			continue
		}
		rows = append(rows, record)
	}
	if err := ValidateProcessCount(len(rows), maxProcesses); err != nil {
		return nil, err
	}

	processes := make([]Process, 0, len(rows))
	for i, row := range rows {
		p, err := parseProcessRow(row, i, rng)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidInput, i+1, err)
		}
		processes = append(processes, p)
	}
	return NewProcessSetFrom(processes, maxProcesses)
}

func parseProcessRow(row []string, index int, rng *rand.Rand) (Process, error) {
	cells := make([]string, inputColumns)
	for i := 0; i < len(row) && i < inputColumns; i++ {
		cells[i] = strings.TrimSpace(row[i])
	}

	var err error
	p := Process{ProcessId: index}
	if cells[0] != "" {
		if p.ProcessId, err = parseInt(cells[0], "id", 0, -1); err != nil {
			return p, err
		}
	}

	p.BurstTime = randomBurstTime(rng)
	if cells[1] != "" {
		if p.BurstTime, err = parseInt(cells[1], "burst", 0, -1); err != nil {
			return p, err
		}
	}
	if cells[2] != "" {
		if p.WaitingTime, err = parseInt(cells[2], "wait", 0, -1); err != nil {
			return p, err
		}
	}

	p.Priority = randomPriority(rng)
	if cells[3] != "" {
		if p.Priority, err = parseInt(cells[3], "priority", MinPriority, MaxPriority); err != nil {
			return p, err
		}
	}

	p.CpuUtilization = randomFraction(rng)
	if cells[4] != "" {
		if p.CpuUtilization, err = parseFraction(cells[4], "cpu"); err != nil {
			return p, err
		}
	}
	p.MemoryUsage = randomFraction(rng)
	if cells[5] != "" {
		if p.MemoryUsage, err = parseFraction(cells[5], "memory"); err != nil {
			return p, err
		}
	}

	switch strings.ToLower(cells[6]) {
	case "", "no":
	case "yes":
		p.Completed = true
	default:
		return p, fmt.Errorf("completed must be Yes or No, got %q", cells[6])
	}
	return p, nil
}

// parseInt parses an integer in [lo, hi]; hi < 0 means unbounded.
func parseInt(cell, name string, lo, hi int) (int, error) {
	v, err := strconv.Atoi(cell)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", name, err)
	}
	if v < lo || (hi >= 0 && v > hi) {
		return 0, fmt.Errorf("%s %d out of range", name, v)
	}
	return v, nil
}

func parseFraction(cell, name string) (float64, error) {
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", name, err)
	}
	if v < 0 || v >= 1 {
		return 0, fmt.Errorf("%s %.2f not in [0,1)", name, v)
	}
	return v, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
