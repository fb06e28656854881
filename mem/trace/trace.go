package trace

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// OpKind identifies a trace operation.
type OpKind byte

const (
	OpAlloc  OpKind = 'a'
	OpResize OpKind = 'r'
	OpFree   OpKind = 'f'
)

// Op is one parsed trace line. Slot numbers a workload's logical
// allocations; Size is the requested payload size in bytes and is zero
// for frees. Line is the 1-based source line, kept for replay errors.
type Op struct {
	Kind OpKind
	Slot int
	Size int
	Line int
}

// Parse reads a trace script. Blank lines and lines starting with '#'
// are skipped. Errors carry the offending line number.
func Parse(r io.Reader) ([]Op, error) {
	scanner := bufio.NewScanner(r)
	var ops []Op
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		trim := strings.TrimSpace(scanner.Text())
		if trim == "" || strings.HasPrefix(trim, "#") {
			continue
		}

		fields := strings.Fields(trim)
		op := Op{Line: lineNo}

		switch fields[0] {
		case "a", "r":
			if len(fields) != 3 {
				return nil, fmt.Errorf("trace: line %d: want '%s <slot> <bytes>', got %q", lineNo, fields[0], trim)
			}
			op.Kind = OpKind(fields[0][0])
			slot, err := strconv.Atoi(fields[1])
			if err != nil || slot < 0 {
				return nil, fmt.Errorf("trace: line %d: bad slot %q", lineNo, fields[1])
			}
			size, err := strconv.Atoi(fields[2])
			if err != nil || size <= 0 {
				return nil, fmt.Errorf("trace: line %d: bad size %q", lineNo, fields[2])
			}
			op.Slot, op.Size = slot, size

		case "f":
			if len(fields) != 2 {
				return nil, fmt.Errorf("trace: line %d: want 'f <slot>', got %q", lineNo, trim)
			}
			op.Kind = OpFree
			slot, err := strconv.Atoi(fields[1])
			if err != nil || slot < 0 {
				return nil, fmt.Errorf("trace: line %d: bad slot %q", lineNo, fields[1])
			}
			op.Slot = slot

		default:
			return nil, fmt.Errorf("trace: line %d: unknown op %q", lineNo, fields[0])
		}

		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

// ParseString is Parse over an in-memory script.
func ParseString(s string) ([]Op, error) {
	return Parse(strings.NewReader(s))
}
