package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoofs/zoofs/pkg/zoofile"
)

type fsCommandFunc func(ctx context.Context, fs *zoofile.FS, cmd *cobra.Command, args []string) error

// withFS opens the configured store around fn.
func (a *app) withFS(fn fsCommandFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fs, closeFS, err := a.openFS(ctx)
		if err != nil {
			return err
		}
		defer closeFS()

		return fn(ctx, fs, cmd, args)
	}
}

// nodePath cleans a path given on the command line so that "a/b" and
// "/a/b/" both refer to "/a/b".
func nodePath(arg string) string {
	return path.Clean("/" + arg)
}

func pathArg(args []string) string {
	if len(args) == 0 {
		return "/"
	}
	return nodePath(args[0])
}

func newLsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [path]",
		Short: "List the children of a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.withFS(func(ctx context.Context, fs *zoofile.FS, cmd *cobra.Command, args []string) error {
			entries, err := fs.ReadDir(ctx, pathArg(args))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, entry := range entries {
				fmt.Fprintln(out, formatEntry(entry))
			}
			return nil
		}),
	}
}

func formatEntry(entry zoofile.Entry) string {
	if entry.IsDir {
		return fmt.Sprintf("d %10s  %s/", "-", entry.Name)
	}
	return fmt.Sprintf("- %10d  %s", entry.Size, entry.Name)
}

func newCatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cat <path>",
		Short: "Print the content of a file",
		Args:  cobra.ExactArgs(1),
		RunE: a.withFS(func(ctx context.Context, fs *zoofile.FS, cmd *cobra.Command, args []string) error {
			content, err := fs.File(nodePath(args[0])).Content(ctx)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(content)
			return err
		}),
	}
}

func newPutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "put <path> [content]",
		Short: "Write a file, reading the content from stdin if not given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: a.withFS(func(ctx context.Context, fs *zoofile.FS, cmd *cobra.Command, args []string) error {
			var content []byte
			if len(args) == 2 {
				content = []byte(args[1])
			} else {
				var err error
				content, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("unable to read content: %w", err)
				}
			}
			return fs.WriteFile(ctx, nodePath(args[0]), content)
		}),
	}
}

func newMkdirCommand(a *app) *cobra.Command {
	var parents bool

	cmd := &cobra.Command{
		Use:   "mkdir <path>",
		Short: "Create a directory",
		Args:  cobra.ExactArgs(1),
		RunE: a.withFS(func(ctx context.Context, fs *zoofile.FS, cmd *cobra.Command, args []string) error {
			p := nodePath(args[0])
			if !parents {
				return fs.Mkdir(ctx, p)
			}

			current := ""
			for _, name := range strings.Split(strings.TrimPrefix(p, "/"), "/") {
				current += "/" + name
				if err := fs.Mkdir(ctx, current); err != nil && !errors.Is(err, zoofile.ErrNodeExists) {
					return err
				}
			}
			return nil
		}),
	}
	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "Create missing parents and accept existing directories")
	return cmd
}

func newTouchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "touch <path>",
		Short: "Create an empty file unless it exists",
		Args:  cobra.ExactArgs(1),
		RunE: a.withFS(func(ctx context.Context, fs *zoofile.FS, cmd *cobra.Command, args []string) error {
			file := fs.File(nodePath(args[0]))
			if err := file.Create(ctx); err != nil && !errors.Is(err, zoofile.ErrNodeExists) {
				return err
			}
			file.MarkAsFile()
			return nil
		}),
	}
}

func newRmCommand(a *app) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "rm <path>",
		Short: "Remove a node",
		Args:  cobra.ExactArgs(1),
		RunE: a.withFS(func(ctx context.Context, fs *zoofile.FS, cmd *cobra.Command, args []string) error {
			p := nodePath(args[0])
			if recursive {
				return fs.RemoveAll(ctx, p)
			}
			return fs.File(p).Remove(ctx)
		}),
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Remove the node and everything below it")
	return cmd
}

func newStatCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stat <path>",
		Short: "Show whether a node is a file or a directory",
		Args:  cobra.ExactArgs(1),
		RunE: a.withFS(func(ctx context.Context, fs *zoofile.FS, cmd *cobra.Command, args []string) error {
			entry, err := fs.Stat(ctx, nodePath(args[0]))
			if err != nil {
				return err
			}

			kind := "file"
			if entry.IsDir {
				kind = "directory"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Path: %s\nType: %s\nSize: %d\n", entry.Path, kind, entry.Size)
			return nil
		}),
	}
}

func newTreeCommand(a *app) *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Print the tree below a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.withFS(func(ctx context.Context, fs *zoofile.FS, cmd *cobra.Command, args []string) error {
			root := pathArg(args)
			out := cmd.OutOrStdout()

			return fs.Walk(ctx, root, func(entry zoofile.Entry) error {
				level := 0
				if entry.Path != root {
					rel := strings.TrimPrefix(strings.TrimPrefix(entry.Path, root), "/")
					level = strings.Count(rel, "/") + 1
				}

				name := entry.Name
				if entry.Path == root {
					name = root
				} else if entry.IsDir {
					name += "/"
				}
				fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", level), name)

				if entry.IsDir && depth > 0 && level >= depth {
					return zoofile.SkipDir
				}
				return nil
			})
		}),
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", 0, "Maximum depth to descend, 0 for no limit")
	return cmd
}
