// Package listing parses hand assembled 6502 listings into a loadable image.
// Each line of interest is of the form:
//
//	XXXX OP A1 A2	comment
//
// Where XXXX is the address field and OP is the opcode. A1,A2 are then
// optional params as needed. Anything after a tab or a (*) marker is ignored
// as are lines which don't start with an address.
package listing

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Listing is an assembled image and the address its first byte belongs at.
type Listing struct {
	Origin uint16
	Image  []uint8
}

// ParseError describes a line which couldn't be assembled.
type ParseError struct {
	Line   int
	Text   string
	Reason string
}

// Error implements the interface for error types.
func (e ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %s", e.Line, e.Text, e.Reason)
}

// Parse reads a listing from r. Addresses must increase. A gap between the end
// of one line and the address of the next is zero filled.
func Parse(r io.Reader) (*Listing, error) {
	var l *Listing
	var next int
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		t := scanner.Text()
		addr, toks, ok := split(t)
		if !ok {
			continue
		}
		if len(toks) > 3 {
			return nil, ParseError{line, t, "more than 3 bytes"}
		}
		if l == nil {
			l = &Listing{Origin: addr}
			next = int(addr)
		}
		switch {
		case int(addr) < next:
			return nil, ParseError{line, t, fmt.Sprintf("address %.4X overlaps previous line ending at %.4X", addr, next)}
		case int(addr) > next:
			l.Image = append(l.Image, make([]uint8, int(addr)-next)...)
			next = int(addr)
		}
		for _, v := range toks {
			b, err := strconv.ParseUint(v, 16, 8)
			if err != nil {
				return nil, ParseError{line, t, err.Error()}
			}
			l.Image = append(l.Image, uint8(b))
			next++
		}
		if next > 0x10000 {
			return nil, ParseError{line, t, "runs past 0xFFFF"}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if l == nil {
		return nil, ParseError{line, "", "no address lines found"}
	}
	return l, nil
}

// split returns the address and byte tokens for an assembled line. ok is false
// for anything else (comments, headers, blank lines).
func split(t string) (uint16, []string, bool) {
	if len(t) < 4 {
		return 0, nil, false
	}
	addr, err := strconv.ParseUint(t[:4], 16, 16)
	if err != nil {
		return 0, nil, false
	}
	if len(t) > 4 && t[4] != ' ' && t[4] != '\t' {
		return 0, nil, false
	}
	rest := t[4:]
	if i := strings.Index(rest, "(*)"); i >= 0 {
		rest = rest[:i]
	}
	// The first tab after the address starts the source text.
	if i := strings.IndexByte(strings.TrimLeft(rest, " "), '\t'); i >= 0 {
		rest = strings.TrimLeft(rest, " ")[:i]
	}
	return uint16(addr), strings.Fields(rest), true
}
