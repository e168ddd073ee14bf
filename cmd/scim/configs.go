package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/scimwire/go-scim/encode"
	"github.com/scimwire/go-scim/ir"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`
	Wire  bool `cli:"name=wire desc='output in compact format'"`
	Y     bool `cli:"name=y aliases=yaml desc='read resources as yaml'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.Compact(cfg.Wire),
	}
	if cfg.Color {
		return append(res, encode.EncodeColors(encode.NewColors()))
	}
	return append(res, encode.EncodeColors(encode.Colorize(w)))
}

// readDoc loads a resource document from file ("-" for stdin), as JSON
// or, with -y, as YAML.
func (cfg *MainConfig) readDoc(file string) (*ir.Node, error) {
	var (
		f   *os.File
		err error
	)
	if file != "-" {
		f, err = os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
	} else {
		f = os.Stdin
	}
	d, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", file, err)
	}
	if cfg.Y {
		var v any
		if err := yaml.Unmarshal(d, &v); err != nil {
			return nil, fmt.Errorf("error decoding %s: %w", file, err)
		}
		return ir.FromAny(v)
	}
	n, err := ir.FromJSON(d)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", file, err)
	}
	return n, nil
}

type FilterConfig struct {
	Match string `cli:"name=m aliases=match desc='evaluate against a resource document'"`

	*MainConfig
	Filter *cli.Command
}

type PathConfig struct {
	Resolve string `cli:"name=m aliases=resolve desc='resolve against a resource document'"`

	*MainConfig
	Path *cli.Command
}

type PatchConfig struct {
	Patch string `cli:"name=p aliases=patch desc='patch request document'"`
	Diff  bool   `cli:"name=diff desc='show a line diff instead of the result'"`
	SetID bool   `cli:"name=set-id desc='assign a fresh resource id'"`

	*MainConfig
	Cmd *cli.Command
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Diff *cli.Command
}
