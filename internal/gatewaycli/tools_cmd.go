package gatewaycli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/contenox/testrail-mcp/internal/testrailtools"
	"github.com/contenox/testrail-mcp/testrailsdk"
	"github.com/contenox/testrail-mcp/toolschema"
	"github.com/spf13/cobra"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tool catalogue.",
		Long: `List every tool with its access mode, record type and description.
With --json, print names, descriptions, input schemas and the schema of the
records each tool works on as JSON.`,
		Args:  cobra.NoArgs,
		RunE:  runTools,
	}
	cmd.Flags().Bool("json", false, "Print the catalogue with input schemas as JSON")
	return cmd
}

type toolInfo struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	ReadOnly     bool            `json:"readOnly"`
	Entity       string          `json:"entity,omitempty"`
	InputSchema  json.RawMessage `json:"inputSchema"`
	RecordSchema json.RawMessage `json:"recordSchema,omitempty"`
}

func runTools(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	// Listing needs no credentials; the registry is built against a placeholder client.
	registry, err := catalogue()
	if err != nil {
		return err
	}
	if asJSON {
		return printToolsJSON(cmd.OutOrStdout(), registry.Tools())
	}
	return printToolsTable(cmd.OutOrStdout(), registry.Tools())
}

func printToolsJSON(w io.Writer, tools []*testrailtools.Tool) error {
	infos := make([]toolInfo, 0, len(tools))
	for _, t := range tools {
		schema, err := t.Schema.JSONSchema()
		if err != nil {
			return fmt.Errorf("tool %s: %w", t.Name, err)
		}
		info := toolInfo{Name: t.Name, Description: t.Description, ReadOnly: t.ReadOnly, Entity: t.Entity, InputSchema: schema}
		if entity, ok := toolschema.EntitySchemas[t.Entity]; ok {
			if info.RecordSchema, err = entity.JSONSchema(); err != nil {
				return fmt.Errorf("tool %s: %w", t.Name, err)
			}
		}
		infos = append(infos, info)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(infos)
}

func printToolsTable(w io.Writer, tools []*testrailtools.Tool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMODE\tRECORD\tDESCRIPTION")
	for _, t := range tools {
		mode := "write"
		if t.ReadOnly {
			mode = "read"
		}
		record := t.Entity
		if record == "" {
			record = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Name, mode, record, t.Description)
	}
	return tw.Flush()
}

func catalogue() (*testrailtools.Registry, error) {
	client, err := testrailsdk.NewClient(testrailsdk.Config{BaseURL: "http://localhost"})
	if err != nil {
		return nil, err
	}
	return testrailtools.New(client), nil
}
