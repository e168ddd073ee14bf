package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/scimwire/go-scim/diff"
)

func scimDiff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff takes two resource documents", cli.ErrUsage)
	}
	from, err := cfg.readDoc(args[0])
	if err != nil {
		return err
	}
	to, err := cfg.readDoc(args[1])
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cc.Out, diff.Render(from, to))
	return err
}
