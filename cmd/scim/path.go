package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/scimwire/go-scim/encode"
	"github.com/scimwire/go-scim/path"
	"github.com/scimwire/go-scim/resolve"
)

func scimPath(cfg *PathConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Path.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: no path given", cli.ErrUsage)
	}
	p, err := path.Parse(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if cfg.Resolve == "" {
		fmt.Fprintf(cc.Out, "%s\n", p)
		return nil
	}
	doc, err := cfg.readDoc(cfg.Resolve)
	if err != nil {
		return err
	}
	tgts, err := resolve.Targets(p, doc)
	if err != nil {
		return err
	}
	for _, tgt := range tgts {
		if tgt.Node == nil {
			continue
		}
		if err := encode.Encode(tgt.Node, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}
