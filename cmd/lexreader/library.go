package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"lexreader/internal/domain"

	"github.com/spf13/cobra"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List uploaded books",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, _, err := newGateway(cmd)
		if err != nil {
			return err
		}
		books, err := gw.ListBooks(cmdContext(cmd))
		if err != nil {
			return err
		}
		if len(books) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No books yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE")
		for _, b := range books {
			fmt.Fprintf(w, "%s\t%s\n", b.ID, b.Title)
		}
		return w.Flush()
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a UTF-8 text file as a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, _, err := newGateway(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		book, err := gw.UploadBook(cmdContext(cmd), filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %q (%s)\n", book.Title, book.ID)
		return nil
	},
}

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List the vocabulary",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, _, err := newGateway(cmd)
		if err != nil {
			return err
		}
		words, err := gw.ListWords(cmdContext(cmd))
		if err != nil {
			return err
		}

		all, _ := cmd.Flags().GetBool("all")
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "WORD\tSTATUS\tTRANSLATION")
		for _, word := range words {
			if !all && !word.Visible() {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", word.Text, word.Status, firstLine(word.Translation))
		}
		return w.Flush()
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show library statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		gw, _, err := newGateway(cmd)
		if err != nil {
			return err
		}
		stats, err := gw.Stats(cmdContext(cmd))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Books: %d\n", stats.Books)
		fmt.Fprintf(out, "Words: %d (%d to learn)\n", stats.Words, stats.Visible())
		for _, s := range domain.Statuses {
			fmt.Fprintf(out, "  %-10s %d\n", s, stats.ByStatus[s])
		}
		return nil
	},
}

func init() {
	wordsCmd.Flags().Bool("all", false, "Include familiar words")
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
