package main

import (
	"fmt"
	"os"

	"masonry/internal/commands"
	"masonry/internal/config"
	"masonry/internal/session"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "masonry:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	s, err := session.Open(config.Path, session.EnvFile)
	if err != nil {
		return err
	}
	reg := commands.NewRegistry()
	register(reg, s)
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: masonry <command> [flags]")
		reg.Usage(os.Stderr)
		return nil
	}
	return reg.Execute(args)
}
