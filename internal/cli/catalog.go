package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) schoolsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schools",
		Short: "Inspect the school catalog",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List transfer schools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := a.rt()
			if err != nil {
				return err
			}
			schools, err := runtime.Catalog.ListTransferSchools(cmd.Context())
			if err != nil {
				return err
			}
			renderSchools(cmd.OutOrStdout(), schools)
			return nil
		},
	})
	return cmd
}

func (a *app) coursesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "Inspect the course catalog",
	}

	var schoolID int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List courses of a school, or of the home institution when --school is omitted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := a.rt()
			if err != nil {
				return err
			}
			if schoolID > 0 {
				courses, err := runtime.Catalog.ListCoursesForSchool(cmd.Context(), schoolID)
				if err != nil {
					return err
				}
				renderCourses(cmd.OutOrStdout(), courses)
				return nil
			}
			courses, err := runtime.Catalog.ListHomeCourses(cmd.Context())
			if err != nil {
				return err
			}
			renderCourses(cmd.OutOrStdout(), courses)
			return nil
		},
	}
	list.Flags().Int64Var(&schoolID, "school", 0, "school id")

	cmd.AddCommand(list)
	return cmd
}

func (a *app) precedentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "precedents",
		Short: "Inspect decided requests",
	}

	var page, size int
	list := &cobra.Command{
		Use:   "list",
		Short: "List precedents, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := a.rt()
			if err != nil {
				return err
			}
			precedents, total, err := runtime.Resolution.ListPrecedents(cmd.Context(), page, size)
			if err != nil {
				return err
			}
			renderPrecedents(cmd.OutOrStdout(), precedents, total)
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&size, "size", 20, "page size")

	cmd.AddCommand(list)
	return cmd
}
