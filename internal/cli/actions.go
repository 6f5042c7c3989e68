package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeenCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seen",
		Short: "Mark a folder as seen",
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := folderFlag(cmd)
			if err != nil {
				return err
			}

			app, err := newApp(cmd, *configFile)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if err := app.engine.RefreshFolders(ctx); err != nil {
				return err
			}
			app.engine.MarkFolderSeen(ctx, folder, 0)
			fmt.Fprintf(cmd.OutOrStdout(), "marked %s as seen\n", folder)
			return nil
		},
	}
	cmd.Flags().String("folder", "all", "folder to mark seen (all, direct, subscription)")
	return cmd
}

func newReadCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read <thread-id> <message-id>...",
		Short: "Mark messages of a thread read or unread",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			unread, _ := cmd.Flags().GetBool("unread")

			app, err := newApp(cmd, *configFile)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if err := app.engine.Bootstrap(ctx); err != nil {
				return err
			}
			app.engine.ToggleMessagesRead(ctx, args[0], args[1:], !unread)
			fmt.Fprintf(cmd.OutOrStdout(), "updated %d message(s)\n", len(args)-1)
			return nil
		},
	}
	cmd.Flags().Bool("unread", false, "mark unread instead of read")
	return cmd
}

func newMuteCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mute <thread-id>",
		Short: "Mute or unmute a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unmute, _ := cmd.Flags().GetBool("unmute")

			app, err := newApp(cmd, *configFile)
			if err != nil {
				return err
			}
			defer app.Close()

			muted, err := app.engine.MuteToggle(cmd.Context(), args[0], !unmute)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "thread %s muted=%v\n", args[0], muted)
			return nil
		},
	}
	cmd.Flags().Bool("unmute", false, "unmute instead of mute")
	return cmd
}
