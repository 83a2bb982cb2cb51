package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/tugascript/devlogs/payloads/internal/endpoints"
)

type MainConfig struct {
	Catalog string `cli:"name=catalog aliases=c desc='endpoints catalog file' default=endpoints.yaml"`
	Color   bool   `cli:"name=color desc='print with color'"`

	Main *cli.Command
}

func (cfg *MainConfig) loadCatalog() (*endpoints.Catalog, error) {
	catalog, err := endpoints.Load(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("could not load catalog %q: %w", cfg.Catalog, err)
	}
	return catalog, nil
}

func (cfg *MainConfig) findEndpoint(args []string) (*endpoints.Endpoint, []string, error) {
	if len(args) == 0 {
		return nil, nil, fmt.Errorf("%w: an endpoint name is required", cli.ErrUsage)
	}
	catalog, err := cfg.loadCatalog()
	if err != nil {
		return nil, nil, err
	}
	endpoint, ok := catalog.Find(args[0])
	if !ok {
		return nil, nil, fmt.Errorf("%w: endpoint %q not found in %s", cli.ErrUsage, args[0], cfg.Catalog)
	}
	return endpoint, args[1:], nil
}

type ListConfig struct {
	*MainConfig

	List *cli.Command
}

type RequestConfig struct {
	*MainConfig

	Method string `cli:"name=method aliases=m desc='override the endpoint method'"`
	Params string `cli:"name=params aliases=p desc='path parameters as key=value,key=value'"`

	Request *cli.Command
}

type ResponseConfig struct {
	*MainConfig

	Response *cli.Command
}

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Main, "reqres").
		WithSynopsis("reqres [opts] command [opts]").
		WithDescription("reqres validates request payloads and filters response payloads against an endpoints catalog.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mainRun(cfg, cc, args)
		}).
		WithSubs(
			ListCommand(cfg),
			RequestCommand(cfg),
			ResponseCommand(cfg),
		)
}

func mainRun(cfg *MainConfig, cc *cli.Context, args []string) error {
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

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l", "ls").
		WithSynopsis("list").
		WithDescription("list the endpoints of the catalog").
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
}

func RequestCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RequestConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("request").
		WithAliases("req").
		WithOpts(opts...).
		WithSynopsis("request [-m method] [-p key=value,...] <endpoint> [file]").
		WithDescription("validate a JSON request payload, read from file or stdin, and print the normalized data").
		WithRun(func(cc *cli.Context, args []string) error {
			return request(cfg, cc, args)
		})
	cfg.Request = cmd
	return cmd
}

func ResponseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ResponseConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("response").
		WithAliases("res").
		WithSynopsis("response <endpoint> [file]").
		WithDescription("filter a JSON response payload, read from file or stdin, through the endpoint response schema").
		WithRun(func(cc *cli.Context, args []string) error {
			return response(cfg, cc, args)
		})
	cfg.Response = cmd
	return cmd
}
