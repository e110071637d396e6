package gatewaycli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/contenox/testrail-mcp/apiframework"
	"github.com/spf13/cobra"
)

// errCallFailed makes the process exit non-zero after a failure envelope was printed.
var errCallFailed = errors.New("tool call failed")

func newCallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Run one tool and print its envelope.",
		Long: `Run one tool against TestRail and print the resulting envelope as JSON.
Arguments are a JSON object passed with --args, or read from stdin with --args -.
With --jsonpath only the selected part of the envelope is printed, e.g.
--jsonpath '$.data.cases[*].title'.`,
		Args: cobra.ExactArgs(1),
		RunE: runCall,
	}
	cmd.Flags().String("args", "", "Tool arguments as a JSON object, or - to read them from stdin")
	cmd.Flags().String("jsonpath", "", "JSONPath expression selecting what to print from the envelope")
	return cmd
}

func runCall(cmd *cobra.Command, args []string) error {
	name := args[0]
	rawArgs, err := readArgs(cmd)
	if err != nil {
		return err
	}
	expr, _ := cmd.Flags().GetString("jsonpath")

	g, err := newGateway(cmd.Context(), cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer g.Close()

	env := g.registry.Call(cmd.Context(), name, json.RawMessage(rawArgs))
	if err := printEnvelope(cmd.OutOrStdout(), env, expr); err != nil {
		return err
	}
	if !env.Success {
		return errCallFailed
	}
	return nil
}

func readArgs(cmd *cobra.Command) (string, error) {
	raw, _ := cmd.Flags().GetString("args")
	if raw != "-" {
		return raw, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read arguments from stdin: %w", err)
	}
	return string(b), nil
}

// printEnvelope writes env, or the part of it selected by expr, as indented JSON.
func printEnvelope(w io.Writer, env apiframework.Envelope, expr string) error {
	b, err := env.JSON()
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	if strings.TrimSpace(expr) == "" {
		_, err = fmt.Fprintln(w, string(b))
		return err
	}

	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	selected, err := jsonpath.Get(expr, doc)
	if err != nil {
		return fmt.Errorf("jsonpath %q: %w", expr, err)
	}
	if s, ok := selected.(string); ok {
		_, err = fmt.Fprintln(w, s)
		return err
	}
	out, err := json.MarshalIndent(selected, "", "  ")
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
