package main

import (
	"errors"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/stylegenie/stylegenie-go/internal/looks"
)

func runLooksSave(ctx *commandContext, args []string) error {
	fs := newFlagSet("looks-save")
	name := fs.String("name", "", "Name for the look (required)")
	notes := fs.String("notes", "", "Free-form notes")
	items := fs.String("items", "", "Comma-separated wardrobe item ids (required)")
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}

	itemIDs := splitCSV(*items)
	if len(itemIDs) == 0 {
		return errors.New("-items is required")
	}

	look, err := ctx.App.Looks.Save(*name, *notes, itemIDs)
	if err != nil {
		return err
	}

	if out.wantsJSON() {
		return out.render(ctx.Stdout, look)
	}
	return writef(ctx.Stdout, "Saved look %q (id %s)\n", look.Name, look.ID)
}

func runLooksList(ctx *commandContext, args []string) error {
	fs := newFlagSet("looks-list")
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}

	all, err := ctx.App.Looks.List()
	if err != nil {
		return err
	}

	if out.wantsJSON() {
		return out.render(ctx.Stdout, all)
	}
	return printLooks(ctx.Stdout, all)
}

func runLooksRemove(ctx *commandContext, args []string) error {
	fs := newFlagSet("looks-remove")
	id := fs.String("id", "", "Look id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	if err := ctx.App.Looks.Remove(*id); err != nil {
		return err
	}
	return writef(ctx.Stdout, "Removed look %s\n", *id)
}

func printLooks(w io.Writer, all []looks.Look) error {
	if len(all) == 0 {
		return writeln(w, "No saved looks")
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tNAME\tITEMS\tSAVED"); err != nil {
		return err
	}
	for _, look := range all {
		if err := writef(tw, "%s\t%s\t%s\t%s\n",
			look.ID,
			look.Name,
			strings.Join(look.ItemIDs, ", "),
			look.CreatedAt.Local().Format(time.DateTime),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}
