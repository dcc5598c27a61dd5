package commands

import (
	"fmt"
	"text/tabwriter"

	"yatube/models"
	"yatube/services"

	"github.com/spf13/cobra"
)

func GroupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Provision community groups",
	}
	cmd.AddCommand(groupCreateCmd(), groupListCmd(), groupDeleteCmd())
	return cmd
}

func groupService() (*services.GroupService, error) {
	db, err := openDB(loadConfig())
	if err != nil {
		return nil, err
	}
	return services.NewGroupService(db), nil
}

func groupCreateCmd() *cobra.Command {
	var req models.CreateGroupRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := groupService()
			if err != nil {
				return err
			}
			group, err := svc.Create(&req)
			if err != nil {
				if ve, ok := services.AsValidationError(err); ok {
					return fmt.Errorf("%s: %s", ve.Field, ve.Message)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created group %s (/group/%s/)\n", group, group.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "group title")
	cmd.Flags().StringVar(&req.Slug, "slug", "", "URL slug")
	cmd.Flags().StringVar(&req.Description, "description", "", "group description")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("slug")
	return cmd
}

func groupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := groupService()
			if err != nil {
				return err
			}
			groups, err := svc.List()
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No groups.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tTITLE")
			for _, g := range groups {
				fmt.Fprintf(w, "%s\t%s\n", g.Slug, g.Title)
			}
			return w.Flush()
		},
	}
}

func groupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a group, keeping its posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := groupService()
			if err != nil {
				return err
			}
			if err := svc.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted group %s\n", args[0])
			return nil
		},
	}
}
