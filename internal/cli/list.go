package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tOgg1/trackinbox/internal/activity"
	"github.com/tOgg1/trackinbox/internal/models"
)

func folderFlag(cmd *cobra.Command) (models.FolderID, error) {
	name, _ := cmd.Flags().GetString("folder")
	folder := models.FolderID(name)
	if !folder.Valid() {
		return "", fmt.Errorf("unknown folder %q (want all, direct or subscription)", name)
	}
	return folder, nil
}

func newListCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Load and print a folder's threads",
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := folderFlag(cmd)
			if err != nil {
				return err
			}
			unreadOnly, _ := cmd.Flags().GetBool("unread-only")

			app, err := newApp(cmd, *configFile)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx := cmd.Context()
			if err := app.engine.Bootstrap(ctx); err != nil {
				return err
			}
			if cmd.Flags().Changed("unread-only") {
				if err := app.engine.SetUnreadOnly(ctx, unreadOnly); err != nil {
					return err
				}
			}
			if err := app.engine.LoadInboxThreads(ctx, folder, 0); err != nil {
				return err
			}
			app.engine.Wait()

			printFolder(cmd, app, folder)
			return nil
		},
	}
	cmd.Flags().String("folder", string(models.FolderAll), "folder to load (all, direct, subscription)")
	cmd.Flags().Bool("unread-only", false, "only unread threads")
	return cmd
}

func newMoreCmd(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "more",
		Short: "Load the next page of a folder",
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
			if err := app.engine.Bootstrap(ctx); err != nil {
				return err
			}
			if err := app.engine.LoadMore(ctx, folder); err != nil {
				return err
			}
			app.engine.Wait()

			printFolder(cmd, app, folder)
			return nil
		},
	}
	cmd.Flags().String("folder", string(models.FolderAll), "folder to page (all, direct, subscription)")
	return cmd
}

func printFolder(cmd *cobra.Command, a *app, folder models.FolderID) {
	state := a.engine.Store().Snapshot(folder)
	out := cmd.OutOrStdout()

	for _, thread := range state.Threads {
		groups := activity.BuildThreadGroups(thread)
		if len(groups) == 0 {
			continue
		}
		cls := a.engine.Classify(thread)
		marker := " "
		if thread.UnreadCount() > 0 {
			marker = "*"
		}
		title := thread.Subject.Target.Summary
		if thread.Subject.Target.IDReadable != "" {
			title = thread.Subject.Target.IDReadable + " " + title
		}
		fmt.Fprintf(out, "%s [%s] %s\n", marker, cls.Kind, title)

		for _, g := range groups {
			fmt.Fprintf(out, "    %-8s %-20s %s\n",
				g.Class,
				g.Author.Login,
				describeGroup(g),
			)
		}
		if cls.BottomPositioned && thread.Subject.Target.IDReadable != "" {
			fmt.Fprintf(out, "    -> %s\n", thread.Subject.Target.IDReadable)
		}
	}
	if state.HasMore {
		fmt.Fprintln(out, "  (more available, run: trackinbox more --folder", string(folder)+")")
	}
}

func describeGroup(g activity.ThreadGroup) string {
	ts := time.UnixMilli(g.Timestamp).Format("Jan 02 15:04")
	switch g.Class {
	case models.ClassComment:
		if g.Comment != nil {
			text := g.Comment.Text
			if len(text) > 60 {
				text = text[:57] + "..."
			}
			return ts + " " + text
		}
	case models.ClassWork:
		if g.Work != nil {
			return fmt.Sprintf("%s logged %dm", ts, g.Work.Duration)
		}
	case models.ClassCreated:
		return ts + " created"
	}

	var fields []string
	for _, e := range g.Events {
		if e.Field != "" {
			fields = append(fields, e.Field)
		}
	}
	if len(fields) > 0 {
		return ts + " changed " + strings.Join(fields, ", ")
	}
	return ts
}
