package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestTitle string

var ingestCmd = &cobra.Command{
	Use:   "ingest [space-id] [file...]",
	Short: "Ingest files into a space",
	Long:  `Extracts text from the given files (pdf, txt, md), chunks and embeds it, and stores the result in the space.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		spaceID := args[0]
		for _, path := range args[1:] {
			doc, err := sys.IngestFile(cmd.Context(), spaceID, ingestTitle, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Printf("ingested %s as document %s (%d chunks)\n", path, doc.ID, len(doc.Chunks))
		}
		return nil
	},
}

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Manage ingested documents",
}

var docListCmd = &cobra.Command{
	Use:   "list [space-id]",
	Short: "List documents in a space, hidden ones included",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		docs, err := sys.Chunks.FetchAllIncludingHidden(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, doc := range docs {
			visibility := "visible"
			if !doc.Visible {
				visibility = "hidden"
			}
			fmt.Printf("%s\t%s\t%s\t%d chunks\n", doc.ID, doc.Title, visibility, len(doc.Chunks))
		}
		return nil
	},
}

var docHideCmd = &cobra.Command{
	Use:   "hide [doc-id]",
	Short: "Exclude a document from retrieval",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		return sys.SetDocumentVisibility(cmd.Context(), args[0], false)
	},
}

var docShowCmd = &cobra.Command{
	Use:   "show [doc-id]",
	Short: "Include a document in retrieval again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		return sys.SetDocumentVisibility(cmd.Context(), args[0], true)
	},
}

var docDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document and its chunks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		return sys.DeleteDocument(cmd.Context(), args[0])
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "document title (defaults to the file name)")

	docCmd.AddCommand(docListCmd)
	docCmd.AddCommand(docHideCmd)
	docCmd.AddCommand(docShowCmd)
	docCmd.AddCommand(docDeleteCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(docCmd)
}
