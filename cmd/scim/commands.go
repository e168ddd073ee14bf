package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "scim").
		WithSynopsis("scim [opts] command [opts]").
		WithDescription("scim is a tool for working with SCIM 2.0 filters, paths, and patches.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return scimMain(cfg, cc, args)
		}).
		WithSubs(
			FilterCommand(cfg),
			PathCommand(cfg),
			PatchCommand(cfg),
			ViewCommand(cfg),
			DiffCommand(cfg))
}

func scimMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func FilterCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FilterConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("filter").
		WithAliases("f").
		WithSynopsis("filter [-m resource.json] <filter>").
		WithDescription("Parse a filter expression; with -m, evaluate it against a resource").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return scimFilter(cfg, cc, args)
		})
	cfg.Filter = cmd
	return cmd
}

func PathCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PathConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("path").
		WithAliases("p").
		WithSynopsis("path [-m resource.json] <path>").
		WithDescription("Parse an attribute path; with -m, resolve it against a resource").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return scimPath(cfg, cc, args)
		})
	cfg.Path = cmd
	return cmd
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("patch").
		WithSynopsis("patch -p patch.json [-diff] [-set-id] [resource.json]").
		WithDescription("Apply a PatchOp request to a resource").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return scimPatch(cfg, cc, args)
		})
	cfg.Cmd = cmd
	return cmd
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("Pretty-print resource documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return scimView(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithSynopsis("diff <before> <after>").
		WithDescription("Show a line diff between two resource documents").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return scimDiff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}
