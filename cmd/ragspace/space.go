package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var spaceCmd = &cobra.Command{
	Use:   "space",
	Short: "Manage document spaces",
}

var spaceOwner string

var spaceCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new space",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		space, err := sys.Spaces.Create(cmd.Context(), args[0], spaceOwner)
		if err != nil {
			return err
		}
		fmt.Printf("created space %s (%s)\n", space.Name, space.ID)
		return nil
	},
}

var spaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List spaces",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		spaces, err := sys.Spaces.List(cmd.Context(), "")
		if err != nil {
			return err
		}
		for _, space := range spaces {
			fmt.Printf("%s\t%s\towner=%s\tmembers=%d\n", space.ID, space.Name, space.OwnerID, len(space.Members))
		}
		return nil
	},
}

var spaceDeleteCmd = &cobra.Command{
	Use:   "delete [space-id]",
	Short: "Delete a space and all of its documents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		if err := sys.Spaces.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted space %s\n", args[0])
		return nil
	},
}

var spaceAddMemberCmd = &cobra.Command{
	Use:   "add-member [space-id] [user-id]",
	Short: "Grant a user access to a space",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sys, err := buildSystem()
		if err != nil {
			return err
		}
		return sys.Spaces.AddMember(cmd.Context(), args[0], args[1])
	},
}

func init() {
	spaceCreateCmd.Flags().StringVar(&spaceOwner, "owner", "local", "owner id for the new space")

	spaceCmd.AddCommand(spaceCreateCmd)
	spaceCmd.AddCommand(spaceListCmd)
	spaceCmd.AddCommand(spaceDeleteCmd)
	spaceCmd.AddCommand(spaceAddMemberCmd)
	rootCmd.AddCommand(spaceCmd)
}
