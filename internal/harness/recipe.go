package harness

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Unknown is reported for recipe fields the backend left out.
const Unknown = "Unknown"

// DefaultPreviewCount is the number of ingredients kept for previews.
const DefaultPreviewCount = 3

// RecipeShape is the expected shape of a generate-recipe response.
// Pointer and nil slice fields are absent from the response.
type RecipeShape struct {
	Title       *string      `json:"title"`
	Servings    *Count       `json:"servings"`
	Cuisine     *string      `json:"cuisine"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Amount Text `json:"amount"`
	Unit   Text `json:"unit"`
	Name   Text `json:"name"`
}

func (i Ingredient) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []Text{i.Amount, i.Unit, i.Name} {
		if p != "" {
			parts = append(parts, string(p))
		}
	}
	return strings.Join(parts, " ")
}

// Text is a string that also accepts json numbers and null.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

// Count is an integer that also accepts integral json floats, e.g. 4.0.
type Count int

func (c *Count) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}

	if i, err := n.Int64(); err == nil {
		*c = Count(i)
		return nil
	}

	f, err := n.Float64()
	if err != nil {
		return err
	}
	if f != math.Trunc(f) {
		return fmt.Errorf("%s is not an integer", n)
	}

	*c = Count(f)
	return nil
}

// ShapeCheck lists the fields missing from a recipe response.
type ShapeCheck struct {
	MissingRequired []string
	MissingOptional []string
}

// Valid reports whether all required fields are present.
func (c ShapeCheck) Valid() bool {
	return len(c.MissingRequired) == 0
}

// Check reports the required and optional fields that are absent.
func (r RecipeShape) Check() ShapeCheck {
	var c ShapeCheck

	if r.Title == nil {
		c.MissingRequired = append(c.MissingRequired, "title")
	}
	if r.Servings == nil {
		c.MissingRequired = append(c.MissingRequired, "servings")
	}
	if r.Ingredients == nil {
		c.MissingRequired = append(c.MissingRequired, "ingredients")
	}
	if r.Steps == nil {
		c.MissingRequired = append(c.MissingRequired, "steps")
	}
	if r.Cuisine == nil || *r.Cuisine == "" {
		c.MissingOptional = append(c.MissingOptional, "cuisine")
	}

	return c
}

// RecipeReport is what the harness extracts from a recipe response.
type RecipeReport struct {
	Title           string
	Servings        int
	Cuisine         string
	IngredientCount int
	StepCount       int
	Preview         []Ingredient
	MissingOptional []string
}

// Report builds the recipe report, keeping the first n ingredients
// as preview.
func (r RecipeShape) Report(n int) RecipeReport {
	report := RecipeReport{
		Title:           Unknown,
		Cuisine:         Unknown,
		IngredientCount: len(r.Ingredients),
		StepCount:       len(r.Steps),
		MissingOptional: r.Check().MissingOptional,
	}

	if r.Title != nil {
		report.Title = *r.Title
	}
	if r.Servings != nil {
		report.Servings = int(*r.Servings)
	}
	if r.Cuisine != nil && *r.Cuisine != "" {
		report.Cuisine = *r.Cuisine
	}

	if n < 0 {
		n = 0
	}
	if n > len(r.Ingredients) {
		n = len(r.Ingredients)
	}
	report.Preview = append([]Ingredient(nil), r.Ingredients[:n]...)

	return report
}
