package main

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/unbox/pkg/commands"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// resourceNamesCompletion provides shell completion for tracked resource names
func resourceNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	env, _, err := initEnv(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return env.Store.Resources(), cobra.ShellCompDirectiveNoFileComp
}

func newAddCmd() *cobra.Command {
	var (
		versionLabel string
		deps         []string
	)

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: MsgAddShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, palette, err := initEnv(cmd)
			if err != nil {
				return err
			}

			result, err := commands.AddResource(env, commands.AddResourceOptions{
				Path:         args[0],
				Version:      versionLabel,
				Dependencies: deps,
			})
			if err != nil {
				return err
			}

			fmt.Print(palette.Added(fmt.Sprintf(MsgResourceAdded, result.Name, result.Version)))
			return nil
		},
	}

	cmd.Flags().StringVar(&versionLabel, "version", "", MsgFlagVersion)
	cmd.Flags().StringArrayVar(&deps, "dep", nil, MsgFlagDep)

	return cmd
}

func newRemoveCmd() *cobra.Command {
	var dropLinks bool

	cmd := &cobra.Command{
		Use:               "remove <name>",
		Short:             MsgRemoveShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: resourceNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, palette, err := initEnv(cmd)
			if err != nil {
				return err
			}

			if err := commands.RemoveResource(env, commands.RemoveResourceOptions{
				Name:      args[0],
				DropLinks: dropLinks,
			}); err != nil {
				return err
			}

			fmt.Print(palette.Info(fmt.Sprintf(MsgResourceRemoved, args[0])))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dropLinks, "drop-links", false, MsgFlagDrop)

	return cmd
}

func newListCmd() *cobra.Command {
	var withBackups bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, palette, err := initEnv(cmd)
			if err != nil {
				return err
			}

			result, err := commands.List(env)
			if err != nil {
				return err
			}

			if len(result.Resources) == 0 {
				fmt.Println(MsgNoResources)
			}
			for _, r := range result.Resources {
				fmt.Printf(MsgResourceRow,
					palette.Info(r.Name), r.CurrentVersion, strings.Join(r.Versions, ", "))
			}

			if withBackups && len(result.Backups) > 0 {
				fmt.Println(MsgBackupHeader)
				for _, b := range result.Backups {
					fmt.Printf(MsgBackupRow, palette.Warning(b))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withBackups, "backups", false, MsgFlagBackups)

	return cmd
}

func newVersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: MsgVersionsShort,
	}

	cmd.AddCommand(newVersionsCopyCmd())
	cmd.AddCommand(newVersionsUseCmd())
	cmd.AddCommand(newVersionsDeleteCmd())

	return cmd
}

func newVersionsCopyCmd() *cobra.Command {
	var copyDeps bool

	cmd := &cobra.Command{
		Use:   "copy <name> <source-version> <new-version>",
		Short: MsgCopyShort,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, palette, err := initEnv(cmd)
			if err != nil {
				return err
			}

			if err := commands.CopyVersion(env, commands.CopyVersionOptions{
				Name:             args[0],
				Source:           args[1],
				NewVersion:       args[2],
				CopyDependencies: copyDeps,
			}); err != nil {
				return err
			}

			fmt.Print(palette.Added(fmt.Sprintf(MsgVersionCopied, args[2], args[0], args[1])))
			return nil
		},
	}

	cmd.Flags().BoolVar(&copyDeps, "deps", false, MsgFlagDeps)

	return cmd
}

func newVersionsUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <name> <version>",
		Short: MsgUseShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, palette, err := initEnv(cmd)
			if err != nil {
				return err
			}

			result, err := commands.UseVersion(env, commands.UseVersionOptions{
				Name:    args[0],
				Version: args[1],
			})
			if err != nil {
				return err
			}

			fmt.Print(palette.Added(fmt.Sprintf(MsgVersionInUse,
				result.Name, result.Version, result.LinksUpdated)))
			return nil
		},
	}
}

func newVersionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name> <version>",
		Short: MsgDeleteShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, palette, err := initEnv(cmd)
			if err != nil {
				return err
			}

			if err := commands.DeleteVersion(env, commands.DeleteVersionOptions{
				Name:    args[0],
				Version: args[1],
			}); err != nil {
				return err
			}

			fmt.Print(palette.Info(fmt.Sprintf(MsgVersionDeleted, args[1], args[0])))
			return nil
		},
	}
}

func newDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: MsgDepsShort,
	}

	cmd.AddCommand(newDepsAddCmd())
	cmd.AddCommand(newDepsRemoveCmd())

	return cmd
}

func newDepsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <version> <dependency>",
		Short: MsgDepAddShort,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, palette, err := initEnv(cmd)
			if err != nil {
				return err
			}

			if err := commands.AddDependency(env, commands.DependencyOptions{
				Name:       args[0],
				Version:    args[1],
				Dependency: args[2],
			}); err != nil {
				return err
			}

			fmt.Print(palette.Added(fmt.Sprintf(MsgDepAdded, args[2], args[0], args[1])))
			return nil
		},
	}
}

func newDepsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name> <version> <dependency>",
		Short: MsgDepRemoveShort,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, palette, err := initEnv(cmd)
			if err != nil {
				return err
			}

			if err := commands.RemoveDependency(env, commands.DependencyOptions{
				Name:       args[0],
				Version:    args[1],
				Dependency: args[2],
			}); err != nil {
				return err
			}

			fmt.Print(palette.Info(fmt.Sprintf(MsgDepRemoved, args[2], args[0], args[1])))
			return nil
		},
	}
}

func newLinkCmd() *cobra.Command {
	var (
		pinVersion string
		ignoreNew  bool
	)

	cmd := &cobra.Command{
		Use:   "link <link-path> <name>",
		Short: MsgLinkShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, palette, err := initEnv(cmd)
			if err != nil {
				return err
			}

			log.Info().
				Str("link", args[0]).
				Str("resource", args[1]).
				Msg("Linking resource")

			result, err := commands.Link(env, commands.LinkOptions{
				LinkPath:          args[0],
				ResourceName:      args[1],
				Version:           pinVersion,
				IgnoreNewVersions: ignoreNew,
			})
			if err != nil {
				return err
			}

			fmt.Print(palette.Added(fmt.Sprintf(MsgLinkCreated, result.LinkPath, result.Target)))
			if result.BackedUp {
				fmt.Print(palette.Warning(fmt.Sprintf(MsgLinkBackedUp, result.LinkPath)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pinVersion, "pin", "", MsgFlagPin)
	cmd.Flags().BoolVar(&ignoreNew, "ignore-new-versions", false, MsgFlagIgnore)

	return cmd
}

func newUnlinkCmd() *cobra.Command {
	var keepBackup bool

	cmd := &cobra.Command{
		Use:   "unlink <link-path>",
		Short: MsgUnlinkShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, palette, err := initEnv(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Unlink(env, commands.UnlinkOptions{
				LinkPath:   args[0],
				KeepBackup: keepBackup,
			})
			if err != nil {
				return err
			}

			fmt.Print(palette.Info(fmt.Sprintf(MsgLinkRemoved, result.LinkPath)))
			if result.Restored {
				fmt.Print(palette.Info(MsgLinkRestored))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&keepBackup, "keep-backup", false, MsgFlagKeep)

	return cmd
}

func newPinCmd() *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "pin <link-path>",
		Short: MsgPinShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, palette, err := initEnv(cmd)
			if err != nil {
				return err
			}

			if err := commands.Pin(env, commands.PinOptions{
				LinkPath: args[0],
				Follow:   follow,
			}); err != nil {
				return err
			}

			if follow {
				fmt.Print(palette.Info(fmt.Sprintf(MsgLinkFollowing, args[0])))
			} else {
				fmt.Print(palette.Info(fmt.Sprintf(MsgLinkPinned, args[0])))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&follow, "follow", false, MsgFlagFollow)

	return cmd
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, palette, err := initEnv(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Status(env)
			if err != nil {
				return err
			}

			fmt.Printf(MsgStatusLinks, len(result.Links))
			if result.Healthy() {
				fmt.Println(palette.Added(MsgStatusHealthy))
				return nil
			}

			if len(result.Dangling) > 0 {
				fmt.Println(palette.Warning(MsgStatusDangling))
				for _, path := range result.Dangling {
					fmt.Printf(MsgStatusItem, path)
				}
			}
			if len(result.Broken) > 0 {
				fmt.Println(palette.Error(MsgStatusBroken))
				for _, path := range result.Broken {
					fmt.Printf(MsgStatusItem, path)
				}
			}
			return nil
		},
	}
}

func newFreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fresh",
		Short: MsgFreshShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, palette, err := initEnv(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Fresh(env, commands.FreshOptions{
				Editor: commands.ExecEditor{},
			})
			if err != nil {
				return err
			}

			for _, link := range result.Linked {
				fmt.Print(palette.Added(fmt.Sprintf(MsgLinkCreated, link.LinkPath, link.Target)))
			}
			fmt.Print(palette.Info(fmt.Sprintf(MsgFreshLinked,
				len(result.Linked), len(result.Ignored))))
			return nil
		},
	}
}
