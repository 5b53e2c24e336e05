// hand_asm takes a filename and produces a bin file
// from parsing the output as a hand assembled file
// of the form:
//
// XXXX OP A1 A2 ....
//
// Where XXXX is the address field and OP is the opcode
// A1,A2 are then optional params as needed.
package main

import (
	"flag"
	"os"

	"github.com/jmchacon/6502core/listing"
	log "github.com/sirupsen/logrus"
)

var (
	offset   = flag.Int("offset", -1, "Offset to start writing assembled data. Everything prior is zero filled. If negative the listing origin is used.")
	logLevel = flag.String("log_level", "info", "Logging level (debug, info, warn, error)")
)

func main() {
	flag.Parse()
	lvl, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Invalid -log_level %q - %v", *logLevel, err)
	}
	log.SetLevel(lvl)
	if len(flag.Args()) != 2 {
		log.Fatalf("Invalid command: %s [-offset <offset>] <input> <output>", os.Args[0])
	}
	fn := flag.Args()[0]
	out := flag.Args()[1]

	f, err := os.Open(fn)
	if err != nil {
		log.Fatalf("Can't open %q for input - %v", fn, err)
	}
	l, err := listing.Parse(f)
	f.Close()
	if err != nil {
		log.Fatalf("Can't process %q - %v", fn, err)
	}
	log.WithFields(log.Fields{"origin": l.Origin, "bytes": len(l.Image)}).Info("assembled")

	start := int(l.Origin)
	if *offset >= 0 {
		start = *offset
	}
	output := make([]byte, start, start+len(l.Image))
	output = append(output, l.Image...)

	of, err := os.Create(out)
	if err != nil {
		log.Fatalf("Can't open output %q - %v", out, err)
	}
	n, err := of.Write(output)
	if got, want := n, len(output); got != want {
		log.Fatalf("Short write to %q. Got %d and want %d", out, got, want)
	}
	if err != nil {
		log.Fatalf("Got error writing to %q - %v", out, err)
	}
	if err := of.Close(); err != nil {
		log.Fatalf("Error closing %q - %v", out, err)
	}
}
