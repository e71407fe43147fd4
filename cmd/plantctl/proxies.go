package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	client "github.com/leafkeeper/leafkeeper-client"
)

func newProxiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "proxies", Short: "Manage proxy contacts who care for plants while you are away"}
	cmd.AddCommand(
		newProxiesListCmd(a),
		newProxiesGetCmd(a),
		newProxiesSearchCmd(a),
		newProxiesCreateCmd(a),
		newProxiesUpdateCmd(a),
		newProxiesDeleteCmd(a),
	)
	return cmd
}

func printProxies(cmd *cobra.Command, proxies []client.ProxyContact) {
	w := cmd.OutOrStdout()
	now := time.Now()
	for _, p := range proxies {
		fmt.Fprintf(w, "%s\t%s\t%s\tactive=%t\n", p.ID, p.Name, p.PhoneNumber, p.ActiveOn(now))
	}
}

func newProxiesListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List proxy contacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			proxies, err := c.ListProxies(cmd.Context())
			if err != nil {
				return err
			}
			printProxies(cmd, proxies)
			return nil
		},
	}
}

func newProxiesGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get PROXY_ID",
		Short: "Show one proxy contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			p, err := c.GetProxy(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if p == nil {
				return fmt.Errorf("proxy %s not found", args[0])
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
}

func newProxiesSearchCmd(a *app) *cobra.Command {
	var q client.ProxySearchQuery
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search proxy contacts by name or phone",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			proxies, err := c.SearchProxies(cmd.Context(), q)
			if err != nil {
				return err
			}
			if q.Name != "" {
				_ = c.AddRecentSearch(cmd.Context(), client.SearchSourceProxies, q.Name)
			}
			printProxies(cmd, proxies)
			return nil
		},
	}
	cmd.Flags().StringVar(&q.Name, "name", "", "Name contains")
	cmd.Flags().StringVar(&q.PhoneNumber, "phone", "", "Phone number contains")
	return cmd
}

func newProxiesCreateCmd(a *app) *cobra.Command {
	var req client.CreateProxyRequest
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a proxy contact",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			p, err := c.CreateProxy(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Proxy created: %s - %s\n", p.ID, p.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Contact name (required)")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "Start of the delegation, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "End of the delegation, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProxiesUpdateCmd(a *app) *cobra.Command {
	var name, phone, start, end string
	cmd := &cobra.Command{
		Use:   "update PROXY_ID",
		Short: "Change the given fields of a proxy contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			p, err := c.UpdateProxy(cmd.Context(), args[0], client.UpdateProxyRequest{
				Name:        optString(cmd, "name", name),
				PhoneNumber: optString(cmd, "phone", phone),
				StartDate:   optString(cmd, "start", start),
				EndDate:     optString(cmd, "end", end),
			})
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Proxy updated")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Contact name")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&start, "start", "", "Start of the delegation")
	cmd.Flags().StringVar(&end, "end", "", "End of the delegation")
	return cmd
}

func newProxiesDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PROXY_ID",
		Short: "Delete a proxy contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.DeleteProxy(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Proxy deleted")
			return nil
		},
	}
}
