package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/tzneal/mgrs"
	"github.com/tzneal/mgrs/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run converts each argument, or each stdin line when there are none, and
// returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mgrsconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to YAML config")
	accuracy := fs.Int("accuracy", 0, "MGRS accuracy in meters: 1, 10, 100, 1000 or 10000")
	compact := fs.Bool("compact", false, "Print MGRS references without spaces")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "config load failed: %v\n", err)
			return 2
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "accuracy":
			cfg.Accuracy = *accuracy
		case "compact":
			cfg.Compact = *compact
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "invalid options: %v\n", err)
		return 2
	}

	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "logger init failed: %v\n", err)
		return 2
	}
	c, err := newConverter(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "converter init failed: %v\n", err)
		return 2
	}

	converted, failed := 0, 0
	handle := func(input string) {
		out, err := c.convert(input)
		if err != nil {
			failed++
			logger.Warn("conversion failed", "input", input, "error", err)
			return
		}
		converted++
		fmt.Fprintln(stdout, out)
	}

	if inputs := fs.Args(); len(inputs) > 0 {
		for _, in := range inputs {
			handle(in)
		}
	} else {
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				handle(line)
			}
		}
		if err := sc.Err(); err != nil {
			logger.Error("read failed", "error", err)
			failed++
		}
	}

	logger.Info("done", "converted", converted, "failed", failed)
	if failed > 0 {
		return 1
	}
	return 0
}

func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := config.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

type converter struct {
	utm      *mgrs.UTM
	mgrs     *mgrs.MGRS
	accuracy mgrs.Accuracy
	compact  bool
}

func newConverter(cfg config.Config) (*converter, error) {
	datum, err := mgrs.ParseDatum(cfg.Datum)
	if err != nil {
		return nil, err
	}
	u, err := mgrs.NewUTM(datum)
	if err != nil {
		return nil, err
	}
	m, err := mgrs.NewMGRS(datum)
	if err != nil {
		return nil, err
	}
	accuracy, err := cfg.MGRSAccuracy()
	if err != nil {
		return nil, err
	}
	return &converter{utm: u, mgrs: m, accuracy: accuracy, compact: cfg.Compact}, nil
}

// convert turns "lat lon" or "lat,lon" into MGRS and UTM, and anything else,
// read as an MGRS reference, into a latitude, longitude and UTM.
func (c *converter) convert(input string) (string, error) {
	if lat, lon, ok := parseLatLon(input); ok {
		geo, err := mgrs.NewGeodeticCoord(lat, lon)
		if err != nil {
			return "", err
		}
		uc, err := c.utm.ConvertFromGeodetic(geo)
		if err != nil {
			return "", err
		}
		ref, err := c.mgrs.ConvertFromGeodetic(geo, c.accuracy)
		if err != nil {
			return "", err
		}
		text := ref.Format(c.accuracy)
		if c.compact {
			text = ref.FormatCompact(c.accuracy)
		}
		return text + "\t" + uc.String(), nil
	}

	uc, err := c.mgrs.ConvertToUTM(input)
	if err != nil {
		return "", err
	}
	geo, err := c.utm.ConvertToGeodetic(uc)
	if err != nil {
		return "", err
	}
	return geo.String() + "\t" + uc.String(), nil
}

func parseLatLon(s string) (lat, lon float64, ok bool) {
	var fields []string
	if strings.Contains(s, ",") {
		fields = strings.Split(s, ",")
	} else {
		fields = strings.Fields(s)
	}
	if len(fields) != 2 {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err = strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
