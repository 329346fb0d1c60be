package main

import (
	"flag"
	"fmt"
	"os"

	"aura/pkg/logger"
	"aura/pkg/store"
)

// Small operator tool: dump the namespaced collections persisted in a
// pebble store, one key per line, optionally with the raw JSON value.
func main() {
	var p string
	var dump bool
	flag.StringVar(&p, "path", "", "pebble db path to open")
	flag.BoolVar(&dump, "dump", false, "print raw values, not just keys")
	flag.Parse()
	if p == "" {
		fmt.Fprintln(os.Stderr, "--path required")
		os.Exit(2)
	}
	logger.Init()
	if err := store.Open(p); err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", p, err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	keys, err := store.ListKeys()
	if err != nil {
		fmt.Fprintf(os.Stderr, "list keys: %v\n", err)
		os.Exit(1)
	}
	for _, k := range keys {
		if !dump {
			fmt.Println(k)
			continue
		}
		v, err := store.GetRaw(k)
		if err != nil {
			fmt.Printf("%s\t<error: %v>\n", k, err)
			continue
		}
		fmt.Printf("%s\t%s\n", k, v)
	}
}
