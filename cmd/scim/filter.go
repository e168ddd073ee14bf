package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/scimwire/go-scim/evaluate"
	"github.com/scimwire/go-scim/filter"
)

func scimFilter(cfg *FilterConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Filter.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: no filter expression given", cli.ErrUsage)
	}
	f, err := filter.Parse(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if cfg.Match == "" {
		fmt.Fprintf(cc.Out, "%s\n", f)
		return nil
	}
	doc, err := cfg.readDoc(cfg.Match)
	if err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "%v\n", evaluate.Filter(f, doc))
	return nil
}
