package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylegenie/stylegenie-go/internal/domain/model"
	"github.com/stylegenie/stylegenie-go/internal/service"
)

func TestParseDatetime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "rfc3339", input: "2026-09-04T18:00:00Z"},
		{name: "date and time", input: "2026-09-04 18:00"},
		{name: "bare date", input: "2026-09-04"},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "next friday", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := parseDatetime(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2026, parsed.Year())
		})
	}
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"7", "12"}, splitCSV("7, 12"))
	assert.Equal(t, []string{"a"}, splitCSV(",a,,"))
	assert.Empty(t, splitCSV("  "))
}

func TestStringOrNil(t *testing.T) {
	assert.Nil(t, stringOrNil("  "))
	require.NotNil(t, stringOrNil("tan"))
	assert.Equal(t, "tan", *stringOrNil("tan"))
}

func TestPrintWardrobeItems(t *testing.T) {
	var buf bytes.Buffer
	err := printWardrobeItems(&buf, []model.WardrobeItem{
		{ID: "7", Title: "Linen shirt", Category: "tops", Color: "white"},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ID")
	assert.Contains(t, buf.String(), "Linen shirt")

	buf.Reset()
	require.NoError(t, printWardrobeItems(&buf, nil))
	assert.Contains(t, buf.String(), "Wardrobe is empty")
}

func TestPrintOutfitsFlagsMissingItems(t *testing.T) {
	var buf bytes.Buffer
	err := printOutfits(&buf, []service.Outfit{
		{
			Name:       "Evening",
			ProductIDs: []int64{1, 2, 3},
			Items: []model.WardrobeItem{
				{ID: "1", Title: "Blazer", Category: "outerwear"},
				{ID: "3", Title: "Loafers", Category: "shoes"},
			},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Evening")
	assert.Contains(t, buf.String(), "1 referenced items no longer in your wardrobe")
}

func TestPrintStylistsFallsBackToRemote(t *testing.T) {
	var buf bytes.Buffer
	err := printStylists(&buf, []model.Stylist{
		{User: model.StylistUser{Username: "vera"}},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "vera")
	assert.Contains(t, buf.String(), "Available remotely")
}

func TestPrintLooksEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printLooks(&buf, nil))
	assert.Contains(t, buf.String(), "No saved looks")
}

func TestDatetimeLayoutsAreTriedInOrder(t *testing.T) {
	parsed, err := parseDatetime("2026-09-04T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 18, parsed.UTC().Hour())
	assert.Equal(t, 30, parsed.Minute())
}
