package main

import (
	"github.com/scott-cotton/cli"

	"github.com/scimwire/go-scim/encode"
)

func scimView(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, file := range args {
		doc, err := cfg.readDoc(file)
		if err != nil {
			return err
		}
		if err := encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}
