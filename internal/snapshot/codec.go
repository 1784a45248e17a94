package snapshot

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"qtable-scheduler/internal/core"
)

const (
	processStatesTitle  = "Current Process States:"
	processStatesHeader = "ID\tBurst\tWait\tPriority\tCPU%\tMemory%\tCompleted"
	qTableTitle         = "Q-Table:"
	qTableHeader        = "Process ID\tPriority\tCPU Utilization\tMemory Usage\tWaiting Time\tBurst Time"
	nextProcessPrefix   = "Will now execute Process ID: "
	allCompletedLine    = "All processes completed!"
	qRowPrefix          = "Process "
)

// Encode writes s in the viewer's text format. Sequence is not part of the body, it is carried
// by the resource name.
func Encode(w io.Writer, s Snapshot) error {
	var buf bytes.Buffer

	buf.WriteString(processStatesTitle + "\n")
	buf.WriteString(processStatesHeader + "\n")
	for _, p := range s.Processes {
		fmt.Fprintf(&buf, "%d\t%d\t%d\t%d\t%.2f\t%.2f\t%s\n",
			p.ProcessId, p.BurstTime, p.WaitingTime, p.Priority,
			p.CpuUtilization, p.MemoryUsage, yesNo(p.Completed))
	}

	buf.WriteString("\n" + qTableTitle + "\n")
	buf.WriteString(qTableHeader + "\n")
	for i, row := range s.QTable {
		id := i
		if i < len(s.Processes) {
			id = s.Processes[i].ProcessId
		}
		fmt.Fprintf(&buf, "%s%d:", qRowPrefix, id)
		for _, v := range row {
			fmt.Fprintf(&buf, "\t%.2f", v)
		}
		buf.WriteString("\n")
	}

	if s.Done {
		buf.WriteString("\n" + allCompletedLine + "\n")
	} else {
		fmt.Fprintf(&buf, "\n%s%d\n", nextProcessPrefix, s.NextProcessId)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// Decode parses a snapshot body written by Encode. Numbers come back at the printed precision.
func Decode(r io.Reader) (Snapshot, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return Snapshot{}, err
	}

	var s Snapshot
	pos := 0
	expect := func(want string) error {
		if pos >= len(lines) || strings.TrimSpace(lines[pos]) != want {
			return fmt.Errorf("%w: expected %q at line %d", ErrMalformed, want, pos+1)
		}
		pos++
		return nil
	}

	if err := expect(processStatesTitle); err != nil {
		return s, err
	}
	if err := expect(processStatesHeader); err != nil {
		return s, err
	}
	for pos < len(lines) && strings.TrimSpace(lines[pos]) != qTableTitle {
		p, err := decodeProcess(lines[pos])
		if err != nil {
			return s, fmt.Errorf("%w: line %d: %v", ErrMalformed, pos+1, err)
		}
		s.Processes = append(s.Processes, p)
		pos++
	}

	if err := expect(qTableTitle); err != nil {
		return s, err
	}
	if err := expect(qTableHeader); err != nil {
		return s, err
	}
	for pos < len(lines) && strings.HasPrefix(lines[pos], qRowPrefix) {
		id, row, err := decodeQRow(lines[pos])
		if err != nil {
			return s, fmt.Errorf("%w: line %d: %v", ErrMalformed, pos+1, err)
		}
		if len(s.QTable) >= len(s.Processes) || s.Processes[len(s.QTable)].ProcessId != id {
			return s, fmt.Errorf("%w: q-table row for process %d out of order", ErrMalformed, id)
		}
		s.QTable = append(s.QTable, row)
		pos++
	}
	if len(s.QTable) != len(s.Processes) {
		return s, fmt.Errorf("%w: %d q-table rows for %d processes", ErrMalformed, len(s.QTable), len(s.Processes))
	}

	if pos != len(lines)-1 {
		return s, fmt.Errorf("%w: missing or trailing status line", ErrMalformed)
	}
	status := strings.TrimSpace(lines[pos])
	switch {
	case status == allCompletedLine:
		s.Done = true
		s.NextProcessId = -1
	case strings.HasPrefix(status, nextProcessPrefix):
		id, err := strconv.Atoi(strings.TrimPrefix(status, nextProcessPrefix))
		if err != nil {
			return s, fmt.Errorf("%w: status line: %v", ErrMalformed, err)
		}
		s.NextProcessId = id
	default:
		return s, fmt.Errorf("%w: unknown status line %q", ErrMalformed, status)
	}
	return s, nil
}

func decodeProcess(line string) (core.Process, error) {
	var p core.Process
	fields := splitFields(line)
	if len(fields) != 7 {
		return p, fmt.Errorf("expected 7 columns, got %d", len(fields))
	}

	ints := []*int{&p.ProcessId, &p.BurstTime, &p.WaitingTime, &p.Priority}
	for i, dst := range ints {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return p, err
		}
		*dst = v
	}

	var err error
	if p.CpuUtilization, err = strconv.ParseFloat(fields[4], 64); err != nil {
		return p, err
	}
	if p.MemoryUsage, err = strconv.ParseFloat(fields[5], 64); err != nil {
		return p, err
	}

	switch fields[6] {
	case "Yes":
		p.Completed = true
	case "No":
	default:
		return p, fmt.Errorf("completed must be Yes or No, got %q", fields[6])
	}
	return p, nil
}

func decodeQRow(line string) (int, []float64, error) {
	label, values, ok := strings.Cut(strings.TrimPrefix(line, qRowPrefix), ":")
	if !ok {
		return 0, nil, fmt.Errorf("missing ':' in q-table row")
	}
	id, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil {
		return 0, nil, err
	}

	fields := splitFields(values)
	row := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, nil, err
		}
		row = append(row, v)
	}
	return id, row, nil
}

// splitFields splits on tabs and drops the empty columns left by padding tabs.
func splitFields(line string) []string {
	var fields []string
	for _, f := range strings.Split(line, "\t") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
