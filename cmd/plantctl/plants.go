package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	client "github.com/leafkeeper/leafkeeper-client"
)

func newPlantsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "plants", Short: "Manage your plants"}
	cmd.AddCommand(
		newPlantsListCmd(a),
		newPlantsGetCmd(a),
		newPlantsSearchCmd(a),
		newPlantsCreateCmd(a),
		newPlantsUpdateCmd(a),
		newPlantsDeleteCmd(a),
	)
	return cmd
}

func printPlants(cmd *cobra.Command, plants []client.UserPlant) {
	w := cmd.OutOrStdout()
	for _, p := range plants {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Species, p.Location)
	}
}

func newPlantsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your plants",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			plants, err := c.ListUserPlants(cmd.Context())
			if err != nil {
				return err
			}
			printPlants(cmd, plants)
			return nil
		},
	}
}

func newPlantsGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get PLANT_ID",
		Short: "Show one plant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			p, err := c.GetUserPlant(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}

func newPlantsSearchCmd(a *app) *cobra.Command {
	var q client.UserPlantSearchQuery
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search your plants",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			plants, err := c.SearchUserPlants(cmd.Context(), q)
			if err != nil {
				return err
			}
			if q.Query != "" {
				_ = c.AddRecentSearch(cmd.Context(), client.SearchSourcePlants, q.Query)
			}
			printPlants(cmd, plants)
			return nil
		},
	}
	cmd.Flags().StringVarP(&q.Query, "query", "q", "", "Free-text search")
	cmd.Flags().StringVar(&q.Species, "species", "", "Species filter")
	cmd.Flags().StringVar(&q.Location, "location", "", "Location filter")
	return cmd
}

// openImage opens path as an upload part. The caller closes the file.
func openImage(path string) (*client.File, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	name := filepath.Base(path)
	return &client.File{
		Name:        name,
		ContentType: mime.TypeByExtension(filepath.Ext(name)),
		Reader:      f,
	}, f, nil
}

func newPlantsCreateCmd(a *app) *cobra.Command {
	var (
		req       client.CreateUserPlantRequest
		imagePath string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a plant, optionally with a photo",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			if imagePath != "" {
				img, f, err := openImage(imagePath)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				req.Image = img
			}
			p, err := c.CreateUserPlant(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plant created: %s - %s\n", p.ID, p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Plant name (required)")
	cmd.Flags().StringVar(&req.Species, "species", "", "Species")
	cmd.Flags().StringVar(&req.Location, "location", "", "Where it lives")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&imagePath, "image", "", "Path to a photo")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newPlantsUpdateCmd(a *app) *cobra.Command {
	var name, species, location, notes string
	cmd := &cobra.Command{
		Use:   "update PLANT_ID",
		Short: "Change the given fields of a plant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			p, err := c.UpdateUserPlant(cmd.Context(), args[0], client.UpdateUserPlantRequest{
				Name:     optString(cmd, "name", name),
				Species:  optString(cmd, "species", species),
				Location: optString(cmd, "location", location),
				Notes:    optString(cmd, "notes", notes),
			})
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Plant updated")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Plant name")
	cmd.Flags().StringVar(&species, "species", "", "Species")
	cmd.Flags().StringVar(&location, "location", "", "Where it lives")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	return cmd
}

func newPlantsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PLANT_ID",
		Short: "Delete a plant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.DeleteUserPlant(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Plant deleted")
			return nil
		},
	}
}
