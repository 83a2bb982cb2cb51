package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/tugascript/devlogs/payloads/internal/endpoints"
	"github.com/tugascript/devlogs/payloads/internal/reqres"
)

var errPayloadNotObject = errors.New("payload must be a JSON object")

type printer struct {
	w     io.Writer
	name  func(string, ...any) string
	code  func(string, ...any) string
	fail  func(string, ...any) string
	muted func(string, ...any) string
}

func paint(enabled bool, attrs ...color.Attribute) func(string, ...any) string {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.SprintfFunc()
}

func newPrinter(w io.Writer, enabled bool) *printer {
	return &printer{
		w:     w,
		name:  paint(enabled, color.FgCyan, color.Bold),
		code:  paint(enabled, color.FgYellow),
		fail:  paint(enabled, color.FgRed, color.Bold),
		muted: paint(enabled, color.FgHiBlack),
	}
}

func (p *printer) endpoint(e *endpoints.Endpoint) {
	fmt.Fprintf(p.w, "%s %s %s", p.name("%-16s", e.Name), p.code("%-6s", e.Method), e.Path)
	if e.Description != "" {
		fmt.Fprintf(p.w, " %s", p.muted("# %s", e.Description))
	}
	fmt.Fprintln(p.w)
}

func (p *printer) inputError(err *reqres.InputError) {
	fmt.Fprintf(p.w, "%s %s %s\n", p.fail("invalid"), p.code("[%s]", err.Code), p.name("%s", err.Path.String()))
	fmt.Fprintf(p.w, "  %s\n", err.Message)
}

func (p *printer) json(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding output: %w", err)
	}
	data = append(data, '\n')
	_, err = p.w.Write(data)
	return err
}

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.List.Parse(cc, args); err != nil {
		return err
	}
	catalog, err := cfg.loadCatalog()
	if err != nil {
		return err
	}

	p := newPrinter(cc.Out, cfg.Color)
	for i := range catalog.Endpoints() {
		p.endpoint(&catalog.Endpoints()[i])
	}
	return nil
}

func request(cfg *RequestConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Request.Parse(cc, args)
	if err != nil {
		return err
	}
	endpoint, args, err := cfg.findEndpoint(args)
	if err != nil {
		return err
	}
	payload, err := readPayload(cc.In, args)
	if err != nil {
		return err
	}
	params, err := parseParams(cfg.Params)
	if err != nil {
		return err
	}

	method := endpoint.Method
	if cfg.Method != "" {
		method = strings.ToUpper(cfg.Method)
	}

	p := newPrinter(cc.Out, cfg.Color)
	data, err := validateRequest(endpoint, method, params, payload)
	if err != nil {
		var inputErr *reqres.InputError
		if errors.As(err, &inputErr) {
			p.inputError(inputErr)
			return cli.ExitCodeErr(1)
		}
		return err
	}
	return p.json(data)
}

func response(cfg *ResponseConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Response.Parse(cc, args)
	if err != nil {
		return err
	}
	endpoint, args, err := cfg.findEndpoint(args)
	if err != nil {
		return err
	}
	payload, err := readPayload(cc.In, args)
	if err != nil {
		return err
	}

	data, err := filterResponse(endpoint, payload)
	if err != nil {
		return err
	}
	return newPrinter(cc.Out, cfg.Color).json(data)
}

// readPayload reads the single file argument, or in when it is absent or "-".
func readPayload(in io.Reader, args []string) ([]byte, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("%w: at most one payload file is accepted", cli.ErrUsage)
	}
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("error reading stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", args[0], err)
	}
	return data, nil
}

func decodePayload(payload []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(payload)) == 0 {
		return make(map[string]any), nil
	}

	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return nil, fmt.Errorf("error decoding payload: %w", err)
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errPayloadNotObject
	}
	return obj, nil
}

// parseParams reads "key=value,key=value" path parameters.
func parseParams(s string) (map[string]string, error) {
	params := make(map[string]string)
	if s == "" {
		return params, nil
	}

	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: invalid path parameter %q", cli.ErrUsage, pair)
		}
		params[key] = strings.TrimSpace(value)
	}
	return params, nil
}

func validateRequest(
	endpoint *endpoints.Endpoint,
	method string,
	params map[string]string,
	payload []byte,
) (map[string]any, error) {
	source, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}

	raw := reqres.RawRequest{
		Method: method,
		Params: params,
	}
	if reqres.IsQueryMethod(method) {
		raw.Query = source
	} else {
		raw.Body = source
	}

	req := endpoint.NewRequest()
	if err := req.Attach(raw); err != nil {
		return nil, err
	}
	return req.Data(), nil
}

func filterResponse(endpoint *endpoints.Endpoint, payload []byte) (map[string]any, error) {
	source, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}
	return endpoint.NewResponse().SetAll(source).Data(), nil
}
