package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tala/internal/caption"
	"tala/internal/project"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [project] [delta_seconds]",
	Short: "Shift every caption in a project by a fixed offset",
	Long: `Apply a uniform time offset to every caption in a stored project,
correcting systematic sync drift. The delta may be negative; times are
clamped at zero.

Examples:
  tala shift podcast 1.5
  tala shift podcast -0.75`,
	Args: cobra.ExactArgs(2),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)
}

func runShift(cmd *cobra.Command, args []string) error {
	projectName := args[0]

	delta, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid delta %q: expected seconds as a number", args[1])
	}

	storeRoot, _ := cmd.Flags().GetString("store")
	userID, _ := cmd.Flags().GetString("user")

	store := project.NewStore(storeRoot)
	record, err := store.Load(projectName)
	if err != nil {
		return err
	}

	doc := caption.NewDocumentFromEvents(record.Events)
	doc.ApplyGlobalOffset(delta)

	sess := project.Session{UserID: userID}
	if err := store.Save(sess, projectName, doc.Snapshot(), record.MediaName); err != nil {
		return err
	}

	fmt.Printf("Shifted %d captions by %+gs in project %q\n", doc.Len(), delta, projectName)
	return nil
}
