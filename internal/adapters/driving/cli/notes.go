package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var notesJSON bool

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage research notes",
	Long:  `Add, list, edit and remove the research notes kept alongside your searches.`,
	RunE:  runNotesList,
}

var notesAddCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a note",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNotesAdd,
}

var notesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	RunE:  runNotesList,
}

var notesEditCmd = &cobra.Command{
	Use:   "edit [id] [text...]",
	Short: "Replace the text of a note",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runNotesEdit,
}

var notesRemoveCmd = &cobra.Command{
	Use:     "rm [id]",
	Aliases: []string{"remove"},
	Short:   "Remove a note",
	Args:    cobra.ExactArgs(1),
	RunE:    runNotesRemove,
}

func init() {
	notesListCmd.Flags().BoolVar(&notesJSON, "json", false, "output notes as JSON")
	notesCmd.AddCommand(notesAddCmd)
	notesCmd.AddCommand(notesListCmd)
	notesCmd.AddCommand(notesEditCmd)
	notesCmd.AddCommand(notesRemoveCmd)
	rootCmd.AddCommand(notesCmd)
}

func runNotesAdd(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return fmt.Errorf("notes: %w", errServiceNotConfigured)
	}

	note, err := noteService.Add(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}
	cmd.Printf("Added note %d\n", note.ID)
	return nil
}

func runNotesList(cmd *cobra.Command, _ []string) error {
	if noteService == nil {
		return fmt.Errorf("notes: %w", errServiceNotConfigured)
	}

	notes, err := noteService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list notes: %w", err)
	}

	if notesJSON {
		data, err := json.MarshalIndent(notes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal notes: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(notes) == 0 {
		cmd.Println("No notes yet. Add one with 'citewise notes add'.")
		return nil
	}
	for _, n := range notes {
		cmd.Printf("%d  %s\n", n.ID, n.Timestamp)
		for _, line := range strings.Split(n.Content, "\n") {
			cmd.Printf("    %s\n", line)
		}
	}
	return nil
}

func runNotesEdit(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return fmt.Errorf("notes: %w", errServiceNotConfigured)
	}

	id, err := parseNoteID(args[0])
	if err != nil {
		return err
	}
	if _, err := noteService.Edit(cmd.Context(), id, strings.Join(args[1:], " ")); err != nil {
		return fmt.Errorf("failed to edit note: %w", err)
	}
	cmd.Printf("Updated note %d\n", id)
	return nil
}

func runNotesRemove(cmd *cobra.Command, args []string) error {
	if noteService == nil {
		return fmt.Errorf("notes: %w", errServiceNotConfigured)
	}

	id, err := parseNoteID(args[0])
	if err != nil {
		return err
	}
	if err := noteService.Delete(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to remove note: %w", err)
	}
	cmd.Printf("Removed note %d\n", id)
	return nil
}

func parseNoteID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}
