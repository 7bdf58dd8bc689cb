package main

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"recurrence/internal/timeutil"
	"recurrence/internal/tzcat"
)

func newTimezoneCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "timezone",
		Short: "Timezone catalog: list and look up IANA zones",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List timezones (filterable)",
		RunE:  runTZList,
	}
	listCmd.Flags().String("search", "", "Filter by text (matches IANA, display name, or country)")
	listCmd.Flags().String("country", "", "Filter by country (case-insensitive contains)")
	listCmd.Flags().String("region", "", "Filter by region (supported: europe)")
	listCmd.Flags().Bool("all", false, "Show all known zones (ignores region)")

	infoCmd := &cobra.Command{
		Use:   "info <name-or-IANA>",
		Short: "Show details for a specific timezone",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTZInfo,
	}

	convertCmd := &cobra.Command{
		Use:   "convert <datetime>",
		Short: "Show a local instant as it reads in another timezone",
		Args:  cobra.ExactArgs(1),
		RunE:  runTZConvert,
	}
	convertCmd.Flags().String("from", "", "Source IANA timezone (required)")
	convertCmd.Flags().String("to", "", "Destination IANA timezone (required)")
	_ = convertCmd.MarkFlagRequired("from")
	_ = convertCmd.MarkFlagRequired("to")

	root.AddCommand(listCmd, infoCmd, convertCmd)
	return root
}

var reParen = regexp.MustCompile(`\s*\([^(]*\)\s*$`)

func cleanDisplay(s string) string {
	return reParen.ReplaceAllString(s, "")
}

func runTZList(cmd *cobra.Command, _ []string) error {
	search, _ := cmd.Flags().GetString("search")
	country, _ := cmd.Flags().GetString("country")
	region, _ := cmd.Flags().GetString("region")
	showAll, _ := cmd.Flags().GetBool("all")

	tm := tzcat.NewTimezoneManager()

	var zones []*tzcat.TimezoneInfo
	switch {
	case showAll:
		zones = tm.ListTimezones()
	case strings.EqualFold(strings.TrimSpace(region), "europe"):
		zones = tm.GetEuropeanTimezones()
	default:
		zones = tm.ListTimezones()
	}

	search = strings.ToLower(strings.TrimSpace(search))
	country = strings.ToLower(strings.TrimSpace(country))

	filtered := make([]*tzcat.TimezoneInfo, 0, len(zones))
	for _, z := range zones {
		match := true
		if search != "" {
			if !strings.Contains(strings.ToLower(z.IANA), search) &&
				!strings.Contains(strings.ToLower(z.DisplayName), search) &&
				!strings.Contains(strings.ToLower(z.Country), search) {
				match = false
			}
		}
		if match && country != "" {
			if !strings.Contains(strings.ToLower(z.Country), country) {
				match = false
			}
		}
		if match {
			filtered = append(filtered, z)
		}
	}

	fmt.Printf("%-32s  %-7s  %-3s  %-28s  %s\n", "IANA", "Offset", "DST", "Display", "Country")
	for _, z := range filtered {
		dst := "no"
		if z.DST {
			dst = "yes"
		}
		fmt.Printf("%-32s  %-7s  %-3s  %-28s  %s\n",
			z.IANA, z.Offset, dst, cleanDisplay(z.DisplayName), z.Country)
	}
	return nil
}

func runTZInfo(_ *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("please provide a timezone name or IANA identifier")
	}

	tm := tzcat.NewTimezoneManager()

	zone, err := tm.GetTimezone(query)
	if err != nil {
		zone = nil
	}

	if zone == nil {
		sugs := tm.SuggestTimezone(query)
		if len(sugs) == 0 {
			fmt.Println("Timezone not found.")
			return nil
		}
		fmt.Println("Timezone not found. Did you mean:")
		for _, s := range sugs {
			fmt.Printf("  - %s (%s) [%s]\n", cleanDisplay(s.DisplayName), s.Country, s.IANA)
		}
		return nil
	}

	loc, err := time.LoadLocation(zone.IANA)
	if err != nil {
		printZoneInfo(zone, tm.GetTimezoneAbbreviation(zone.IANA), "", "")
		return nil
	}

	now := time.Now().In(loc)
	printZoneInfo(zone, tm.GetTimezoneAbbreviation(zone.IANA), now.Format("2006-01-02 15:04:05"), now.Format("Mon, 02 Jan 2006 15:04 MST"))
	return nil
}

func runTZConvert(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	tm := tzcat.NewTimezoneManager()

	fromLoc, err := timeutil.ResolveZone(from)
	if err != nil {
		return err
	}
	at, _, err := timeutil.ParseDateTime(args[0], fromLoc)
	if err != nil {
		return err
	}

	converted, err := tm.ConvertTime(at, from, to)
	if err != nil {
		return err
	}

	fmt.Printf("%s [%s]\n", converted.Format("2006-01-02T15:04:05 -0700 MST"), to)
	if abbr := tm.GetTimezoneAbbreviation(to); abbr != to {
		fmt.Printf("Abbreviation: %s\n", abbr)
	}
	return nil
}

func printZoneInfo(z *tzcat.TimezoneInfo, abbr, local1, local2 string) {
	fmt.Printf("IANA:       %s\n", z.IANA)
	fmt.Printf("Display:    %s\n", cleanDisplay(z.DisplayName))
	fmt.Printf("Country:    %s\n", z.Country)
	fmt.Printf("Offset:     %s\n", z.Offset)
	if abbr != "" && abbr != z.IANA {
		fmt.Printf("Abbr:       %s\n", abbr)
	}
	if z.DST {
		fmt.Printf("DST:        yes\n")
	} else {
		fmt.Printf("DST:        no\n")
	}
	if local1 != "" {
		fmt.Printf("Now:        %s\n", local1)
	}
	if local2 != "" {
		fmt.Printf("Readable:   %s\n", local2)
	}
}
