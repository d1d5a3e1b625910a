package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/stylegenie/stylegenie-go/internal/domain/auth"
	"github.com/stylegenie/stylegenie-go/internal/domain/model"
)

func runProfileShow(ctx *commandContext, args []string) error {
	fs := newFlagSet("profile-show")
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch ctx.App.Session.Role() {
	case auth.RoleStylist:
		profile, err := ctx.App.Profiles.StylistProfile(ctx.Ctx)
		if err != nil {
			return err
		}
		if out.wantsJSON() {
			return out.render(ctx.Stdout, profile)
		}
		return printStylistProfile(ctx.Stdout, profile)
	default:
		profile, err := ctx.App.Profiles.ClientProfile(ctx.Ctx)
		if err != nil {
			return err
		}
		if out.wantsJSON() {
			return out.render(ctx.Stdout, profile)
		}
		return printClientProfile(ctx.Stdout, profile)
	}
}

func runProfileUpdate(ctx *commandContext, args []string) error {
	if ctx.App.Session.Role() == auth.RoleStylist {
		return runStylistProfileUpdate(ctx, args)
	}
	return runClientProfileUpdate(ctx, args)
}

// runClientProfileUpdate prefills the update from the current profile so
// untouched fields keep their value: the endpoint treats every field of
// the PATCH body as authoritative, including explicit nulls.
func runClientProfileUpdate(ctx *commandContext, args []string) error {
	fs := newFlagSet("profile-update")
	gender := fs.String("gender", "", "Gender (empty value clears it)")
	skinTone := fs.String("skin-tone", "", "Skin tone (empty value clears it)")
	bodyShape := fs.String("body-shape", "", "Body shape (empty value clears it)")
	faceShape := fs.String("face-shape", "", "Face shape (empty value clears it)")
	dateOfBirth := fs.String("date-of-birth", "", "Date of birth, yyyy-mm-dd (empty value clears it)")
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}

	current, err := ctx.App.Profiles.ClientProfile(ctx.Ctx)
	if err != nil {
		return err
	}

	update := model.ClientProfileUpdate{
		Gender:      current.Gender,
		SkinTone:    current.SkinTone,
		BodyShape:   current.BodyShape,
		FaceShape:   current.FaceShape,
		DateOfBirth: current.DateOfBirth,
	}
	changed := applyFlagOverrides(fs, map[string]func(){
		"gender":        func() { update.Gender = stringOrNil(*gender) },
		"skin-tone":     func() { update.SkinTone = stringOrNil(*skinTone) },
		"body-shape":    func() { update.BodyShape = stringOrNil(*bodyShape) },
		"face-shape":    func() { update.FaceShape = stringOrNil(*faceShape) },
		"date-of-birth": func() { update.DateOfBirth = stringOrNil(*dateOfBirth) },
	})
	if !changed {
		return fmt.Errorf("nothing to update: pass at least one profile flag")
	}

	updated, err := ctx.App.Profiles.UpdateClientProfile(ctx.Ctx, update)
	if err != nil {
		return err
	}
	if out.wantsJSON() {
		return out.render(ctx.Stdout, updated)
	}
	return printClientProfile(ctx.Stdout, updated)
}

func runStylistProfileUpdate(ctx *commandContext, args []string) error {
	fs := newFlagSet("profile-update")
	bio := fs.String("bio", "", "Short professional bio")
	expertise := fs.String("expertise", "", "Comma-separated expertise tags")
	years := fs.Int("years", 0, "Years of experience")
	out := addOutputFlags(fs, ctx.Config.Output)
	if err := fs.Parse(args); err != nil {
		return err
	}

	current, err := ctx.App.Profiles.StylistProfile(ctx.Ctx)
	if err != nil {
		return err
	}

	update := model.StylistProfileUpdate{
		Bio:             deref(current.Bio),
		Expertise:       current.Expertise,
		YearsExperience: current.YearsExperience,
	}
	changed := applyFlagOverrides(fs, map[string]func(){
		"bio":       func() { update.Bio = *bio },
		"expertise": func() { update.Expertise = splitCSV(*expertise) },
		"years":     func() { update.YearsExperience = years },
	})
	if !changed {
		return fmt.Errorf("nothing to update: pass at least one profile flag")
	}

	updated, err := ctx.App.Profiles.UpdateStylistProfile(ctx.Ctx, update)
	if err != nil {
		return err
	}
	if out.wantsJSON() {
		return out.render(ctx.Stdout, updated)
	}
	return printStylistProfile(ctx.Stdout, updated)
}

// applyFlagOverrides runs the override for every flag the user set
// explicitly and reports whether anything changed.
func applyFlagOverrides(fs *flag.FlagSet, overrides map[string]func()) bool {
	changed := false
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
			changed = true
		}
	})
	return changed
}

func stringOrNil(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	kept := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return kept
}

func printClientProfile(w io.Writer, p *model.ClientProfile) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := []struct{ label, value string }{
		{"User", p.User.DisplayName()},
		{"Email", p.User.Email},
		{"Gender", deref(p.Gender)},
		{"Skin tone", deref(p.SkinTone)},
		{"Body shape", deref(p.BodyShape)},
		{"Face shape", deref(p.FaceShape)},
		{"Date of birth", deref(p.DateOfBirth)},
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

func printStylistProfile(w io.Writer, p *model.StylistProfile) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	years := "-"
	if p.YearsExperience != nil {
		years = fmt.Sprintf("%d", *p.YearsExperience)
	}
	rating := "-"
	if p.Rating != nil {
		rating = fmt.Sprintf("%.1f", *p.Rating)
		if p.RatingCount != nil {
			rating = fmt.Sprintf("%.1f (%d reviews)", *p.Rating, *p.RatingCount)
		}
	}
	rows := []struct{ label, value string }{
		{"User", p.User.DisplayName()},
		{"Email", p.User.Email},
		{"Bio", deref(p.Bio)},
		{"Expertise", strings.Join(p.Expertise, ", ")},
		{"Experience", years},
		{"Rating", rating},
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
