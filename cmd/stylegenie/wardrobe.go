package main

import (
	"errors"
	"flag"
	"io"
	"text/tabwriter"

	"github.com/stylegenie/stylegenie-go/internal/domain/model"
)

func runWardrobeList(ctx *commandContext, args []string) error {
	fs := newFlagSet("wardrobe-list")
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}

	items, err := ctx.App.Wardrobe.List(ctx.Ctx)
	if err != nil {
		return err
	}

	if out.wantsJSON() {
		return out.render(ctx.Stdout, items)
	}
	return printWardrobeItems(ctx.Stdout, items)
}

func runWardrobeShow(ctx *commandContext, args []string) error {
	fs := newFlagSet("wardrobe-show")
	id := fs.String("id", "", "Wardrobe item id (required)")
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	item, err := ctx.App.Wardrobe.Get(ctx.Ctx, *id)
	if err != nil {
		return err
	}

	if out.wantsJSON() {
		return out.render(ctx.Stdout, item)
	}
	return printWardrobeItem(ctx.Stdout, item)
}

func runWardrobeAdd(ctx *commandContext, args []string) error {
	fs := newFlagSet("wardrobe-add")
	req := wardrobeRequestFlags(fs)
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}

	item, err := ctx.App.Wardrobe.Create(ctx.Ctx, *req)
	if err != nil {
		return err
	}

	if out.wantsJSON() {
		return out.render(ctx.Stdout, item)
	}
	return writef(ctx.Stdout, "Added %q (id %s)\n", item.Title, item.ID)
}

// runWardrobeUpdate prefills the request from the stored item so a partial
// set of flags does not blank out the rest.
func runWardrobeUpdate(ctx *commandContext, args []string) error {
	fs := newFlagSet("wardrobe-update")
	id := fs.String("id", "", "Wardrobe item id (required)")
	req := wardrobeRequestFlags(fs)
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	current, err := ctx.App.Wardrobe.Get(ctx.Ctx, *id)
	if err != nil {
		return err
	}

	merged := model.WardrobeItemRequest{
		Title:       current.Title,
		Category:    current.Category,
		Color:       current.Color,
		ImageURL:    current.ImageURL,
		Description: current.Description,
	}
	changed := applyFlagOverrides(fs, map[string]func(){
		"title":       func() { merged.Title = req.Title },
		"category":    func() { merged.Category = req.Category },
		"color":       func() { merged.Color = req.Color },
		"image-url":   func() { merged.ImageURL = req.ImageURL },
		"description": func() { merged.Description = req.Description },
	})
	if !changed {
		return errors.New("nothing to update: pass at least one item flag")
	}

	item, err := ctx.App.Wardrobe.Update(ctx.Ctx, *id, merged)
	if err != nil {
		return err
	}

	if out.wantsJSON() {
		return out.render(ctx.Stdout, item)
	}
	return printWardrobeItem(ctx.Stdout, item)
}

func runWardrobeRemove(ctx *commandContext, args []string) error {
	fs := newFlagSet("wardrobe-remove")
	id := fs.String("id", "", "Wardrobe item id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	if err := ctx.App.Wardrobe.Delete(ctx.Ctx, *id); err != nil {
		return err
	}
	return writef(ctx.Stdout, "Removed item %s\n", *id)
}

func wardrobeRequestFlags(fs *flag.FlagSet) *model.WardrobeItemRequest {
	req := &model.WardrobeItemRequest{}
	fs.StringVar(&req.Title, "title", "", "Item title")
	fs.StringVar(&req.Category, "category", "", "Category, e.g. tops, shoes")
	fs.StringVar(&req.Color, "color", "", "Dominant color")
	fs.StringVar(&req.ImageURL, "image-url", "", "Image URL")
	fs.Func("description", "Free-form description (empty value clears it)", func(v string) error {
		req.Description = stringOrNil(v)
		return nil
	})
	return req
}

func printWardrobeItems(w io.Writer, items []model.WardrobeItem) error {
	if len(items) == 0 {
		return writeln(w, "Wardrobe is empty")
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "ID\tTITLE\tCATEGORY\tCOLOR"); err != nil {
		return err
	}
	for _, item := range items {
		if err := writef(tw, "%s\t%s\t%s\t%s\n", item.ID, item.Title, item.Category, item.Color); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printWardrobeItem(w io.Writer, item *model.WardrobeItem) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := []struct{ label, value string }{
		{"ID", item.ID},
		{"Title", item.Title},
		{"Category", item.Category},
		{"Color", item.Color},
		{"Image", item.ImageURL},
		{"Description", deref(item.Description)},
	}
	for _, row := range rows {
		if row.value == "" {
			row.value = "-"
		}
		if err := writef(tw, "%s\t%s\n", row.label, row.value); err != nil {
			return err
		}
	}
	return tw.Flush()
}
