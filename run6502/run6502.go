// run6502 loads a binary image or hand assembled listing into a 6502
// and runs it until it traps (an instruction which leaves the PC where
// it was such as a JMP or branch to itself), halts on an unimplemented
// opcode or hits -max_steps.
//
// Files ending in .lst (case insensitive) are parsed as listings and
// loaded at their origin. Anything else is loaded as raw bytes at -load_addr.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/jmchacon/6502core/cpu"
	"github.com/jmchacon/6502core/listing"
	"github.com/jmchacon/6502core/memview"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

var (
	cpuType     = flag.String("cpu", "nmos", "CPU variant to run (nmos or ricoh)")
	loadAddr    = flag.Int("load_addr", int(cpu.DefaultLoadAddress), "Address to load binary images. Ignored for listings.")
	startPC     = flag.Int("start_pc", -1, "PC value to start execution. If negative the reset vector is used when the image sets one and the load address otherwise.")
	maxSteps    = flag.Int("max_steps", 10000000, "Stop after this many steps. 0 means run until a trap or halt.")
	trace       = flag.Bool("trace", false, "If set, log every step at debug level. Implies -log_level=debug.")
	logLevel    = flag.String("log_level", "info", "Logging level (debug, info, warn, error)")
	logFormat   = flag.String("log_format", "auto", "Log output format (text, json or auto). auto uses text on a terminal and json otherwise.")
	dump        = flag.Bool("dump", false, "If set, dump the full processor state when stopping.")
	memPNG      = flag.String("mem_png", "", "If set, write a picture of memory to this PNG file when stopping.")
	memPNGScale = flag.Int("mem_png_scale", 2, "Scale factor for -mem_png")
)

func main() {
	flag.Parse()
	lvl, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Invalid -log_level %q - %v", *logLevel, err)
	}
	if *trace {
		lvl = log.DebugLevel
	}
	log.SetLevel(lvl)
	f, err := formatter(*logFormat, term.IsTerminal(int(os.Stderr.Fd())))
	if err != nil {
		log.Fatal(err)
	}
	log.SetFormatter(f)
	if len(flag.Args()) != 1 {
		log.Fatalf("Invalid command: %s [flags] <filename>", os.Args[0])
	}
	if *loadAddr < 0 || *loadAddr > 0xFFFF {
		log.Fatal("-load_addr out of range. Must be between 0-65535")
	}
	if *startPC > 0xFFFF {
		log.Fatal("-start_pc out of range. Must be between 0-65535")
	}
	fn := flag.Args()[0]

	def := &cpu.ChipDef{
		Log: log.StandardLogger(),
	}
	switch strings.ToLower(*cpuType) {
	case "nmos":
		def.Cpu = cpu.CPU_NMOS
	case "ricoh":
		def.Cpu = cpu.CPU_NMOS_RICOH
	default:
		log.Fatalf("Unknown -cpu %q", *cpuType)
	}
	c, err := cpu.Init(def)
	if err != nil {
		log.Fatalf("Can't initialize cpu - %v", err)
	}

	origin, err := load(c, fn)
	if err != nil {
		log.Fatalf("Can't load %s - %v", fn, err)
	}
	switch {
	case *startPC >= 0:
		c.WriteAddr(cpu.RESET_VECTOR, uint16(*startPC))
	case c.ReadAddr(cpu.RESET_VECTOR) == 0x0000:
		c.WriteAddr(cpu.RESET_VECTOR, origin)
	}
	c.Reset()
	log.WithFields(log.Fields{"file": fn, "origin": fmt.Sprintf("%.4X", origin), "pc": fmt.Sprintf("%.4X", c.PC)}).Info("starting")

	steps, err := run(c, *maxSteps)
	fields := log.Fields{"steps": steps, "state": c.String()}
	if err != nil {
		log.WithFields(fields).Errorf("stopped - %v", err)
	} else {
		log.WithFields(fields).Info("stopped")
	}
	if *dump {
		fmt.Print(spew.Sdump(c))
	}
	if *memPNG != "" {
		if err := writePNG(c, *memPNG, *memPNGScale); err != nil {
			log.Fatalf("Can't write %s - %v", *memPNG, err)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

// formatter picks the log output format. Traces piped to a file or another
// tool get one JSON object per step.
func formatter(format string, tty bool) (log.Formatter, error) {
	switch format {
	case "text":
		return &log.TextFormatter{DisableTimestamp: true}, nil
	case "json":
		return &log.JSONFormatter{}, nil
	case "auto":
		if tty {
			return &log.TextFormatter{DisableTimestamp: true}, nil
		}
		return &log.JSONFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown -log_format %q", format)
}

// load puts fn into RAM and returns the address it was loaded at.
func load(c *cpu.Processor, fn string) (uint16, error) {
	if strings.ToLower(filepath.Ext(fn)) == ".lst" {
		f, err := os.Open(fn)
		if err != nil {
			return 0, err
		}
		defer f.Close()
		l, err := listing.Parse(f)
		if err != nil {
			return 0, err
		}
		return l.Origin, c.LoadAt(l.Origin, l.Image)
	}
	b, err := ioutil.ReadFile(fn)
	if err != nil {
		return 0, err
	}
	return uint16(*loadAddr), c.LoadAt(uint16(*loadAddr), b)
}

// run steps c until a trap, a halt or max steps (if non-zero). It returns the
// number of steps taken.
func run(c *cpu.Processor, max int) (int, error) {
	steps := 0
	for max == 0 || steps < max {
		res, err := c.Step()
		if err != nil {
			return steps, err
		}
		steps++
		log.Debug(res)
		if res.Interrupt == cpu.INTERRUPT_NONE && c.PC == res.PC {
			log.WithField("pc", fmt.Sprintf("%.4X", c.PC)).Info("trapped")
			return steps, nil
		}
	}
	log.WithField("max_steps", max).Warn("step limit reached")
	return steps, nil
}

func writePNG(c *cpu.Processor, fn string, scale int) error {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	if err := memview.WritePNG(f, c, scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
