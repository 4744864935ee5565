package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mastercactapus/gturtle/config"
	"github.com/mastercactapus/gturtle/meshlevel"
	"github.com/mastercactapus/gturtle/output"
	"github.com/mastercactapus/gturtle/script"
	"github.com/mastercactapus/gturtle/turtle"
)

func main() {
	log.SetFlags(log.Lshortfile)

	if err := run(os.Args[1:], os.Stdin); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdin io.Reader) error {
	fs := flag.NewFlagSet("gturtle", flag.ContinueOnError)
	cfgFile := fs.String("config", "", "YAML config file.")
	dest := fs.String("o", "", "Output destination: file path, '-', serial:<port>[?baud=N] or ws://host/ws?port=<name>.")
	feed := fs.Float64("feed", 0, "Feed rate override in mm/min.")
	mesh := fs.String("mesh", "", "JSON file of bed probe points for height correction.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("expected at most one script file, got %d", fs.NArg())
	}

	cfg := config.Default()
	if *cfgFile != "" {
		var err error
		cfg, err = config.Load(*cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "o":
			cfg.Output = *dest
		case "feed":
			cfg.FeedRate = *feed
		case "mesh":
			cfg.Mesh = *mesh
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	in := stdin
	if fs.NArg() == 1 {
		fd, err := os.Open(fs.Arg(0))
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer fd.Close()
		in = fd
	}
	cmds, err := script.Parse(in)
	if err != nil {
		return fmt.Errorf("parse script: %w", err)
	}

	opt := cfg.Options()
	if cfg.Mesh != "" {
		m, err := meshlevel.LoadMesh(cfg.Mesh)
		if err != nil {
			return fmt.Errorf("load mesh: %w", err)
		}
		opt.Leveler = m
	}

	out, err := output.Open(cfg.Output, cfg.Baud)
	if err != nil {
		return err
	}
	s, err := turtle.New(out, opt)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	if err := script.Run(s, cmds); err != nil {
		s.Close()
		return err
	}
	return s.Close()
}
