package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	client "github.com/leafkeeper/leafkeeper-client"
	"github.com/leafkeeper/leafkeeper-client/internal/schedule"
)

const dueLayout = "Mon 2006-01-02 15:04 MST"

func newRemindersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "reminders", Short: "Manage care reminders"}
	cmd.AddCommand(
		newRemindersListCmd(a),
		newRemindersGetCmd(a),
		newRemindersDueCmd(a),
		newRemindersCreateCmd(a),
		newRemindersUpdateCmd(a),
		newRemindersDeleteCmd(a),
	)
	return cmd
}

func printReminders(cmd *cobra.Command, reminders []client.Reminder, category client.Category) {
	w := cmd.OutOrStdout()
	for _, r := range reminders {
		cat := r.Category()
		if category != client.CategoryAll && cat != category {
			continue
		}
		due := "-"
		if r.DueAt != nil {
			due = *r.DueAt
		}
		active := r.IsActive == nil || *r.IsActive
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\tactive=%t\n", r.ID, r.Name, cat, due, active)
	}
}

func parseCategory(s string) (client.Category, error) {
	switch c := client.Category(strings.ToLower(s)); c {
	case client.CategoryAll, client.CategoryWater, client.CategoryFertilise, client.CategoryMist:
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

// parseWeekdays accepts names such as "mon" or "Monday".
func parseWeekdays(names []string) ([]int, error) {
	ws := make([]time.Weekday, 0, len(names))
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if len(key) > 3 {
			key = key[:3]
		}
		w, ok := weekdayNames[key]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", n)
		}
		ws = append(ws, w)
	}
	return schedule.DueDaysFromWeekdays(ws...), nil
}

// printDue writes the parsed due time and, for repeating reminders, the next
// occurrence after now.
func printDue(cmd *cobra.Command, r *client.Reminder) {
	due, ok := r.DueTime()
	if !ok {
		return
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Due:  %s\n", due.UTC().Format(dueLayout))
	if len(r.DueDay) > 0 {
		next := schedule.NextOccurrence(due, r.DueDay, time.Now())
		fmt.Fprintf(w, "Next: %s\n", next.Format(dueLayout))
	}
}

func newRemindersListCmd(a *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategory(category)
			if err != nil {
				return err
			}
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			reminders, err := c.ListReminders(cmd.Context())
			if err != nil {
				return err
			}
			printReminders(cmd, reminders, cat)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", string(client.CategoryAll), "water, fertilise, mist or all")
	return cmd
}

func newRemindersGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get REMINDER_ID",
		Short: "Show one reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			r, err := c.GetReminder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), r); err != nil {
				return err
			}
			printDue(cmd, r)
			return nil
		},
	}
}

func newRemindersDueCmd(a *app) *cobra.Command {
	var window time.Duration
	cmd := &cobra.Command{
		Use:   "due",
		Short: "List reminders due within a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			reminders, err := c.ListDueReminders(cmd.Context(), window)
			if err != nil {
				return err
			}
			printReminders(cmd, reminders, client.CategoryAll)
			return nil
		},
	}
	cmd.Flags().DurationVar(&window, "window", 24*time.Hour, "How far ahead to look")
	return cmd
}

func newRemindersCreateCmd(a *app) *cobra.Command {
	var (
		name, notes, dueAt, proxy string
		days                      []int
		weekdays                  []string
		inactive                  bool
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a reminder",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("weekdays") {
				var err error
				if days, err = parseWeekdays(weekdays); err != nil {
					return err
				}
			}
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			req := client.CreateReminderRequest{
				Name:     name,
				Notes:    optString(cmd, "notes", notes),
				DueAt:    dueAt,
				DueDay:   days,
				IsActive: client.Bool(!inactive),
			}
			if proxy != "" {
				req.IsProxy = client.Bool(true)
				req.Proxy = client.String(proxy)
			}
			r, err := c.CreateReminder(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reminder created: %s - %s\n", r.ID, r.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Reminder name (required)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&dueAt, "due-at", "", "First due time, e.g. 2025-03-03 09:00")
	cmd.Flags().IntSliceVar(&days, "days", nil, "Repeat on weekdays, 0=Sunday (e.g. 1,3,5)")
	cmd.Flags().StringSliceVar(&weekdays, "weekdays", nil, "Repeat on named weekdays (e.g. mon,wed)")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Create the reminder paused")
	cmd.Flags().StringVar(&proxy, "proxy", "", "Phone number of the proxy who handles it")
	_ = cmd.MarkFlagRequired("name")
	cmd.MarkFlagsMutuallyExclusive("days", "weekdays")
	return cmd
}

func newRemindersUpdateCmd(a *app) *cobra.Command {
	var (
		name, notes, dueAt, proxy string
		days, toggle              []int
		weekdays                  []string
		active, isProxy           bool
	)
	cmd := &cobra.Command{
		Use:   "update REMINDER_ID",
		Short: "Change the given fields of a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			req := client.UpdateReminderRequest{
				Name:     optString(cmd, "name", name),
				Notes:    optString(cmd, "notes", notes),
				DueAt:    optString(cmd, "due-at", dueAt),
				IsActive: optBool(cmd, "active", active),
				IsProxy:  optBool(cmd, "is-proxy", isProxy),
				Proxy:    optString(cmd, "proxy", proxy),
			}
			switch {
			case cmd.Flags().Changed("days"):
				req.DueDay = append([]int{}, days...)
			case cmd.Flags().Changed("weekdays"):
				if req.DueDay, err = parseWeekdays(weekdays); err != nil {
					return err
				}
			case cmd.Flags().Changed("toggle-day"):
				cur, err := c.GetReminder(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				next := append([]int{}, cur.DueDay...)
				for _, d := range toggle {
					next = schedule.ToggleDueDay(next, d)
				}
				req.DueDay = next
			}
			r, err := c.UpdateReminder(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			if r == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Reminder updated")
				return nil
			}
			return printJSON(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Reminder name")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&dueAt, "due-at", "", "Due time")
	cmd.Flags().IntSliceVar(&days, "days", nil, "Repeat on weekdays, 0=Sunday; empty clears")
	cmd.Flags().StringSliceVar(&weekdays, "weekdays", nil, "Repeat on named weekdays (e.g. mon,wed)")
	cmd.Flags().IntSliceVar(&toggle, "toggle-day", nil, "Flip the given weekdays on the current schedule")
	cmd.Flags().BoolVar(&active, "active", true, "Pause (false) or resume (true)")
	cmd.Flags().BoolVar(&isProxy, "is-proxy", false, "Whether a proxy handles it")
	cmd.Flags().StringVar(&proxy, "proxy", "", "Proxy phone number")
	cmd.MarkFlagsMutuallyExclusive("days", "weekdays", "toggle-day")
	return cmd
}

func newRemindersDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete REMINDER_ID",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := a.requireSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.DeleteReminder(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reminder deleted")
			return nil
		},
	}
}
