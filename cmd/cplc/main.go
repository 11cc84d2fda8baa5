package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/p-sawicki/cplc/pkg/compiler"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cmd := &cli.Command{
		Name:      "cplc",
		Usage:     "Compile source code into a textual IR module",
		ArgsUsage: "[INPUT_FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "write the IR module to `FILE` instead of standard output",
			},
		},
		Description: "Give no input file to read from standard input.\n" +
			"Give no output file to write to standard output.",
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 1 {
				return fmt.Errorf("more than one input file")
			}

			var in io.Reader = os.Stdin
			if path := c.Args().First(); path != "" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open input file: %w", err)
				}
				defer f.Close()
				in = f
			}

			var out io.Writer = os.Stdout
			if path := c.String("output"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			logger := slog.Default()

			compiler, err := compiler.New(logger, compiler.Config{})
			if err != nil {
				return fmt.Errorf("failed to initialize compiler: %w", err)
			}

			if err := compiler.Compile(ctx, in, out); err != nil {
				fmt.Fprintf(os.Stderr, "%v\nCompilation failed!\n", err)
				os.Exit(1)
			}

			return nil
		},
	}

	err := cmd.Run(ctx, os.Args)
	if err != nil {
		log.Fatalln(err)
	}
}
