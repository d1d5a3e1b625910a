package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/stylegenie/stylegenie-go/internal/domain/model"
	"github.com/stylegenie/stylegenie-go/internal/service"
)

// datetimeLayouts are accepted by -when, tried in order.
var datetimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

func runRecommend(ctx *commandContext, args []string) error {
	fs := newFlagSet("recommend")
	destination := fs.String("destination", "", "Where the outfit is for (required)")
	occasion := fs.String("occasion", "", "Occasion, e.g. casual, formal, wedding")
	when := fs.String("when", "", "Event time: RFC3339, \"2006-01-02 15:04\" or a date (required)")
	flat := fs.Bool("no-hydrate", false, "Skip resolving product ids to wardrobe items")
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *destination == "" {
		return errors.New("-destination is required")
	}

	eventTime, err := parseDatetime(*when)
	if err != nil {
		return err
	}

	req := model.RecommendationRequest{
		Destination: *destination,
		Occasion:    *occasion,
		Datetime:    eventTime,
	}

	if *flat {
		resp, err := ctx.App.Recommendations.Recommend(ctx.Ctx, req)
		if err != nil {
			return err
		}
		return out.render(ctx.Stdout, resp)
	}

	outfits, err := ctx.App.Recommendations.RecommendOutfits(ctx.Ctx, req)
	if err != nil {
		return err
	}
	if out.wantsJSON() {
		return out.render(ctx.Stdout, outfits)
	}
	return printOutfits(ctx.Stdout, outfits)
}

func runStylists(ctx *commandContext, args []string) error {
	fs := newFlagSet("stylists")
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}

	stylists, err := ctx.App.Stylists.List(ctx.Ctx)
	if err != nil {
		return err
	}

	if out.wantsJSON() {
		return out.render(ctx.Stdout, stylists)
	}
	return printStylists(ctx.Stdout, stylists)
}

func parseDatetime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New("-when is required")
	}
	for _, layout := range datetimeLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", value)
}

func printOutfits(w io.Writer, outfits []service.Outfit) error {
	if len(outfits) == 0 {
		return writeln(w, "No recommendations")
	}
	for i, outfit := range outfits {
		if i > 0 {
			if err := writeln(w); err != nil {
				return err
			}
		}
		if err := writef(w, "%s\n", outfit.Name); err != nil {
			return err
		}
		if outfit.Description != "" {
			if err := writef(w, "  %s\n", outfit.Description); err != nil {
				return err
			}
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, item := range outfit.Items {
			if err := writef(tw, "  %s\t%s\t%s\n", item.ID, item.Title, item.Category); err != nil {
				return err
			}
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		if missing := len(outfit.ProductIDs) - len(outfit.Items); missing > 0 {
			if err := writef(w, "  (%d referenced items no longer in your wardrobe)\n", missing); err != nil {
				return err
			}
		}
	}
	return nil
}

func printStylists(w io.Writer, stylists []model.Stylist) error {
	if len(stylists) == 0 {
		return writeln(w, "No stylists available")
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "NAME\tLOCATION\tEXPERTISE\tRATE"); err != nil {
		return err
	}
	for _, stylist := range stylists {
		rate := "-"
		if stylist.HourlyRate != nil {
			rate = fmt.Sprintf("%.0f/h", stylist.HourlyRate.Float64())
		}
		if err := writef(tw, "%s\t%s\t%s\t%s\n",
			stylist.User.Username,
			stylist.DisplayLocation(),
			strings.Join(stylist.Expertise, ", "),
			rate,
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
