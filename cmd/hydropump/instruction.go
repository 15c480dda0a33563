package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	instructionSource    string
	instructionFile      string
	instructionMeta      []string
	instructionTemplates []string
	instructionGlob      string
)

var instructionCmd = &cobra.Command{
	Use:   "instruction",
	Short: "Manage compiled instructions",
}

var instructionCreateCmd = &cobra.Command{
	Use:   "create [id]",
	Short: "Compile and store an instruction",
	Long: `Create an instruction by merging the given templates in order and
applying the source payload last. Omitting the id generates one.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := ""
		if len(args) == 1 {
			id = args[0]
		}

		payload, meta, err := payloadAndMeta(instructionSource, instructionFile, instructionMeta)
		if err != nil {
			fatal("Failed to parse input", err)
		}

		svc, err := newService()
		if err != nil {
			fatal("Failed to initialize hydropump", err)
		}

		doc, err := svc.CreateInstruction(context.Background(), id, payload, meta, instructionTemplates)
		if err != nil {
			fatal("Failed to create instruction", err)
		}

		fmt.Printf("Instruction '%s' created.\n", doc.ID)
	},
}

var instructionGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Read a stored instruction",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fatal("Failed to initialize hydropump", err)
		}

		doc, err := svc.GetInstruction(context.Background(), args[0])
		if err != nil {
			fatal("Failed to read instruction", err)
		}

		printDocument(doc)
	},
}

var instructionCompileCmd = &cobra.Command{
	Use:   "compile [id]",
	Short: "Re-merge an instruction against the current templates",
	Long: `Compile resolves the instruction's recorded template list against the
templates as they exist now and prints the merged result. The stored
instruction is not modified.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fatal("Failed to initialize hydropump", err)
		}

		doc, err := svc.CompileInstruction(context.Background(), args[0])
		if err != nil {
			fatal("Failed to compile instruction", err)
		}

		printDocument(doc)
	},
}

var instructionDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an instruction",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fatal("Failed to initialize hydropump", err)
		}

		if err := svc.DeleteInstruction(context.Background(), args[0]); err != nil {
			fatal("Failed to delete instruction", err)
		}

		fmt.Printf("Instruction deleted: %s\n", args[0])
	},
}

var instructionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List instruction ids",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc, err := newService()
		if err != nil {
			fatal("Failed to initialize hydropump", err)
		}

		ids, err := svc.ListInstructions(context.Background(), instructionGlob)
		if err != nil {
			fatal("Failed to list instructions", err)
		}

		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

func init() {
	rootCmd.AddCommand(instructionCmd)
	instructionCmd.AddCommand(instructionCreateCmd, instructionGetCmd, instructionCompileCmd, instructionDeleteCmd, instructionListCmd)

	instructionCreateCmd.Flags().StringVar(&instructionSource, "source", "", "Inline source payload (JSON or YAML)")
	instructionCreateCmd.Flags().StringVar(&instructionFile, "file", "", "Read the source payload from a file")
	instructionCreateCmd.Flags().StringArrayVar(&instructionMeta, "meta", nil, "Metadata pair key=value (repeatable)")
	instructionCreateCmd.Flags().StringSliceVarP(&instructionTemplates, "template", "t", nil, "Template id to merge, in order (repeatable)")
	instructionListCmd.Flags().StringVar(&instructionGlob, "pattern", "", "Filter ids with a glob pattern")
}
