// nskeyed-dump decodes a NSKeyedArchiver encoded plist file and prints the
// decoded values as JSON or YAML.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/go-forensics/nskeyed"
	"github.com/go-forensics/nskeyed/plistfile"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var format string
	var verbose bool

	flagSet := pflag.NewFlagSet("nskeyed-dump", pflag.ContinueOnError)
	flagSet.StringVar(&format, "format", "json", "output format: json or yaml")
	flagSet.BoolVarP(&verbose, "verbose", "v", false, "log decoding details to stderr")
	flagSet.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nskeyed-dump [flags] <plist file>\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}

		return err
	}

	args := flagSet.Args()
	if len(args) != 1 {
		flagSet.Usage()
		return fmt.Errorf("expected exactly one plist file, got %d arguments", len(args))
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	doc, err := plistfile.Load(args[0])
	if err != nil {
		return err
	}

	objects, _ := doc["$objects"].([]any)
	logger.Debug("parsed property list", "path", args[0], "objects", len(objects))

	decoded, err := nskeyed.Decode(doc)
	if err != nil {
		return err
	}

	logger.Debug("decoded archive", "roots", len(decoded))

	switch format {
	case "json":
		out, err := json.Marshal(decoded)
		if err != nil {
			return err
		}

		fmt.Println(string(out))

	case "yaml":
		out, err := yaml.Marshal(decoded)
		if err != nil {
			return err
		}

		os.Stdout.Write(out)

	default:
		return fmt.Errorf("unknown format %q", format)
	}

	return nil
}
