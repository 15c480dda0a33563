package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hydropump/hydropump/pkg/core"
)

var (
	templateSource string
	templateFile   string
	templateMeta   []string
	templateGlob   string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage reusable templates",
}

var templateCreateCmd = &cobra.Command{
	Use:   "create [id]",
	Short: "Create a template",
	Long:  `Create a template from an inline payload or a file. Omitting the id generates one.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}

		payload, meta, err := payloadAndMeta(templateSource, templateFile, templateMeta)
		if err != nil {
			fatal("Failed to parse input", err)
		}

		svc, err := newService()
		if err != nil {
			fatal("Failed to initialize hydropump", err)
		}

		doc, err := svc.CreateTemplate(context.Background(), id, payload, meta)
		if err != nil {
			fatal("Failed to create template", err)
		}

		fmt.Printf("Template '%s' created.\n", doc.ID)
	},
}

var templateGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Read a template",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fatal("Failed to initialize hydropump", err)
		}

		doc, err := svc.GetTemplate(context.Background(), args[0])
		if err != nil {
			fatal("Failed to read template", err)
		}

		printDocument(doc)
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a template",
	Long: `Delete permanently removes a template. Instructions already compiled
from it keep their merged payload; only future compiles will fail.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fatal("Failed to initialize hydropump", err)
		}

		if err := svc.DeleteTemplate(context.Background(), args[0]); err != nil {
			fatal("Failed to delete template", err)
		}

		fmt.Printf("Template deleted: %s\n", args[0])
	},
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List template ids",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fatal("Failed to initialize hydropump", err)
		}

		ids, err := svc.ListTemplates(context.Background(), templateGlob)
		if err != nil {
			fatal("Failed to list templates", err)
		}

		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

// payloadAndMeta assembles the document body and metadata from CLI input.
func payloadAndMeta(source, file string, metaPairs []string) (core.Payload, core.Metadata, error) {
	raw := source
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, nil, err
		}
		raw = string(data)
	}

	p, err := parsePayload(raw)
	if err != nil {
		return nil, nil, err
	}

	m, err := parseMeta(metaPairs)
	if err != nil {
		return nil, nil, err
	}
	return p, m, nil
}

func printDocument(doc core.Document) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		fatal("Failed to encode JSON", err)
	}
}

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateCreateCmd, templateGetCmd, templateDeleteCmd, templateListCmd)

	templateCreateCmd.Flags().StringVar(&templateSource, "source", "", "Inline payload (JSON or YAML)")
	templateCreateCmd.Flags().StringVar(&templateFile, "file", "", "Read the payload from a file")
	templateCreateCmd.Flags().StringArrayVar(&templateMeta, "meta", nil, "Metadata pair key=value (repeatable)")
	templateListCmd.Flags().StringVar(&templateGlob, "pattern", "", "Filter ids with a glob pattern")
}
