// Package main provides the prefdump CLI tool for inspecting settings files.
//
// Usage:
//
//	prefdump --file=<path> [options]
//
// Commands:
//
//	scan            List all entries with their types and values
//	structured      Decode a Binary entry's embedded structured value
//	check           Verify the file decodes and report summary statistics
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/aalhour/arcprefs"
	"github.com/aalhour/arcprefs/ubjson"
)

var (
	filePath  = flag.String("file", "", "Path to the settings file (required)")
	command   = flag.String("command", "scan", "Command: scan, structured, check")
	hexOutput = flag.Bool("hex", false, "Output binary payloads in hex")
	key       = flag.String("key", "", "Entry key for the structured command")
	help      = flag.Bool("help", false, "Print help")
)

func main() {
	flag.Parse()

	if *help {
		printUsage()
		return
	}

	if *filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: --file flag is required")
		printUsage()
		os.Exit(1)
	}

	var err error
	switch *command {
	case "scan":
		err = cmdScan()
	case "structured":
		err = cmdStructured()
	case "check":
		err = cmdCheck()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", *command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("prefdump - arcprefs settings file inspection tool")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  prefdump --file=<path> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  scan        List all entries with their types and values (default)")
	fmt.Println("  structured  Decode a Binary entry's embedded structured value (--key required)")
	fmt.Println("  check       Verify the file decodes and report summary statistics")
	fmt.Println()
	flag.PrintDefaults()
}

func load() (*arcprefs.Settings, error) {
	s := arcprefs.New()
	s.SetPath(*filePath)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

func cmdScan() error {
	s, err := load()
	if err != nil {
		return err
	}

	for _, k := range s.Keys() {
		v, _ := s.Get(k)
		if v.Type() == arcprefs.TypeBinary && *hexOutput {
			fmt.Printf("%-40s %-7s %s\n", k, v.Type(), hex.EncodeToString(v.AsBinary()))
			continue
		}
		fmt.Printf("%-40s %-7s %s\n", k, v.Type(), v)
	}
	fmt.Printf("\n%d entries\n", s.Len())
	return nil
}

func cmdStructured() error {
	if *key == "" {
		return fmt.Errorf("--key is required for the structured command")
	}
	s, err := load()
	if err != nil {
		return err
	}

	v, ok := s.Get(*key)
	if !ok {
		return fmt.Errorf("no entry for key %q", *key)
	}
	if v.Type() != arcprefs.TypeBinary {
		return fmt.Errorf("entry %q is %s, not binary", *key, v.Type())
	}

	decoded, err := ubjson.Decode(v.AsBinary())
	if err != nil {
		return fmt.Errorf("decode structured payload of %q: %w", *key, err)
	}
	fmt.Println(decoded)
	return nil
}

func cmdCheck() error {
	raw, err := os.ReadFile(*filePath)
	if err != nil {
		return err
	}
	values, err := arcprefs.Decode(raw)
	if err != nil {
		return err
	}

	counts := map[arcprefs.Type]int{}
	binaryStructured := 0
	for _, v := range values {
		counts[v.Type()]++
		if v.Type() == arcprefs.TypeBinary {
			if _, err := ubjson.Decode(v.AsBinary()); err == nil {
				binaryStructured++
			}
		}
	}

	fmt.Printf("OK: %d entries (%d bytes on disk)\n", len(values), len(raw))
	for typ := arcprefs.TypeBool; typ <= arcprefs.TypeBinary; typ++ {
		if counts[typ] > 0 {
			fmt.Printf("  %-7s %d\n", typ, counts[typ])
		}
	}
	if counts[arcprefs.TypeBinary] > 0 {
		fmt.Printf("  %d of %d binary entries decode as structured values\n",
			binaryStructured, counts[arcprefs.TypeBinary])
	}
	return nil
}
