package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/scimwire/go-scim/diff"
	"github.com/scimwire/go-scim/encode"
	"github.com/scimwire/go-scim/patch"
	"github.com/scimwire/go-scim/resource"
)

func scimPatch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cmd.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Patch == "" {
		return fmt.Errorf("%w: no patch request given, use -p", cli.ErrUsage)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: at most one resource document", cli.ErrUsage)
	}
	reqData, err := os.ReadFile(cfg.Patch)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", cfg.Patch, err)
	}
	req, err := patch.DecodeRequest(reqData)
	if err != nil {
		return err
	}
	file := "-"
	if len(args) == 1 {
		file = args[0]
	}
	doc, err := cfg.readDoc(file)
	if err != nil {
		return err
	}
	before := doc.Clone()
	if err := req.Apply(doc); err != nil {
		return err
	}
	if cfg.SetID {
		res := resource.New()
		res.SetRaw(doc)
		resource.EnsureID(res)
	}
	if cfg.Diff {
		_, err := fmt.Fprint(cc.Out, diff.Render(before, doc))
		return err
	}
	return encode.Encode(doc, cc.Out, cfg.encOpts(cc.Out)...)
}
