// disassembler takes a filename and loads it and then
// disassembles it to stdout starting at the first instruction.
// If the filename ends in .lst (case insensitive) it's parsed
// as a hand assembled listing and disassembled from its origin.
// Otherwise it's treated as raw bytes loaded at -offset.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmchacon/6502core/disassemble"
	"github.com/jmchacon/6502core/listing"
	"github.com/jmchacon/6502core/memory"
	log "github.com/sirupsen/logrus"
)

var (
	startPC = flag.Int("start_pc", -1, "PC value to start disassembling. If negative the load offset is used.")
	offset  = flag.Int("offset", 0x0000, "Offset into RAM to start loading data. All other RAM will be zero'd out. Ignored for listings.")
)

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Invalid command: %s [-start_pc <PC> -offset <offset>] <filename>", os.Args[0])
	}
	if *offset < 0 || *offset > 0xFFFF {
		log.Fatal("-offset out of range. Must be between 0-65535")
	}
	fn := flag.Args()[0]

	f := memory.NewFlat()
	var b []uint8
	if strings.ToLower(filepath.Ext(fn)) == ".lst" {
		in, err := os.Open(fn)
		if err != nil {
			log.Fatalf("Can't open %s - %v", fn, err)
		}
		l, err := listing.Parse(in)
		in.Close()
		if err != nil {
			log.Fatalf("Can't parse %s - %v", fn, err)
		}
		*offset = int(l.Origin)
		b = l.Image
	} else {
		var err error
		b, err = ioutil.ReadFile(fn)
		if err != nil {
			log.Fatalf("Can't open %s - %v", fn, err)
		}
	}
	max := memory.Size - *offset
	if l := len(b); l > max {
		log.Warnf("Length %d at offset %d too long, truncating to 64k", l, *offset)
		b = b[:max]
	}
	if err := f.LoadAt(uint16(*offset), b); err != nil {
		log.Fatalf("Can't load %s - %v", fn, err)
	}
	pc := uint16(*offset)
	if *startPC >= 0 {
		pc = uint16(*startPC)
	}
	fmt.Printf("0x%.2X bytes at pc: %.4X\n", len(b), pc)
	// Can't base it on PC since it may rollover so just disassemble until we run out of buffer.
	for _, l := range disassemble.Range(pc, len(b), f) {
		fmt.Println(l)
	}
}
