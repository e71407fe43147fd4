package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	client "github.com/leafkeeper/leafkeeper-client"
)

func newSpeciesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "species", Short: "Browse the plant catalog"}
	cmd.AddCommand(newSpeciesListCmd(a), newSpeciesGetCmd(a))
	return cmd
}

func newSpeciesListCmd(a *app) *cobra.Command {
	var (
		q                        client.SpeciesListQuery
		page                     int
		edible, poisonous, indoor bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List one page of species",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("page") {
				q.Page = client.Int(page)
			}
			q.Edible = optBool(cmd, "edible", edible)
			q.Poisonous = optBool(cmd, "poisonous", poisonous)
			q.Indoor = optBool(cmd, "indoor", indoor)

			res, err := c.ListPlantSpecies(cmd.Context(), q)
			if err != nil {
				return err
			}
			if q.Query != "" {
				_ = c.AddRecentSearch(cmd.Context(), client.SearchSourceSpecies, q.Query)
			}
			w := cmd.OutOrStdout()
			for _, s := range res.Data {
				fmt.Fprintf(w, "%d\t%s\t%s\n", s.ID, s.CommonName, strings.Join(s.ScientificName, ", "))
			}
			fmt.Fprintf(w, "page %d of %d (%d species)\n", res.CurrentPage, res.LastPage, res.Total)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&page, "page", 1, "Page number")
	f.StringVarP(&q.Query, "query", "q", "", "Search term")
	f.StringVar(&q.Order, "order", "", "Sort order: asc or desc")
	f.BoolVar(&edible, "edible", false, "Only edible (or, with =false, inedible) plants")
	f.BoolVar(&poisonous, "poisonous", false, "Filter on toxicity")
	f.BoolVar(&indoor, "indoor", false, "Filter on indoor suitability")
	f.StringVar(&q.Cycle, "cycle", "", "perennial, annual, biennial or biannual")
	f.StringVar(&q.Watering, "watering", "", "frequent, average, minimum or none")
	f.StringVar(&q.Sunlight, "sunlight", "", "full_shade, part_shade, sun-part_shade or full_sun")
	f.StringVar(&q.Hardiness, "hardiness", "", "Hardiness zone, e.g. 5 or 5-7")
	return cmd
}

func newSpeciesGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get SPECIES_ID",
		Short: "Show one species",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSpeciesID(args[0])
			if err != nil {
				return err
			}
			c, _, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			d, err := c.GetPlantSpeciesDetails(cmd.Context(), id, nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), d)
		},
	}
}

func newBookmarksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "bookmarks", Short: "Bookmarked species"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List bookmarked species IDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			ids, err := c.Bookmarks(cmd.Context())
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add SPECIES_ID",
		Short: "Bookmark a species",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSpeciesID(args[0])
			if err != nil {
				return err
			}
			c, _, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			return c.AddBookmark(cmd.Context(), id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove SPECIES_ID",
		Short: "Remove a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSpeciesID(args[0])
			if err != nil {
				return err
			}
			c, _, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			return c.RemoveBookmark(cmd.Context(), id)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "load",
		Short: "Fetch details for every bookmarked species",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			details, err := c.LoadBookmarkedSpecies(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), details)
		},
	})
	return cmd
}

func newRecentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Recent searches per source (species, plants, proxies)",
	}
	validSource := func(s string) error {
		switch s {
		case client.SearchSourceSpecies, client.SearchSourcePlants, client.SearchSourceProxies:
			return nil
		}
		return fmt.Errorf("unknown search source %q", s)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list SOURCE",
		Short: "Show recent searches, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validSource(args[0]); err != nil {
				return err
			}
			c, _, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			queries, err := c.RecentSearches(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, q := range queries {
				fmt.Fprintln(cmd.OutOrStdout(), q)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear SOURCE",
		Short: "Forget recent searches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validSource(args[0]); err != nil {
				return err
			}
			c, _, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			return c.ClearRecentSearches(cmd.Context(), args[0])
		},
	})
	return cmd
}
