package term_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/herbal/pkg/controller/term"
	"github.com/m-mizutani/herbal/pkg/domain/model"
)

func TestView_ShowResults(t *testing.T) {
	var buf bytes.Buffer
	v := term.New(&buf, term.WithoutColor())

	v.ShowResults(context.Background(), &model.Result{
		PlantName:       "Tulsi",
		ScientificName:  "Scientific Name: Ocimum tenuiflorum",
		ConfidenceBadge: "87%",
		Benefits:        []string{"Boosts immunity"},
		Cautions:        []string{"No specific cautions available"},
	})

	out := buf.String()
	gt.String(t, out).Contains("Tulsi [87%]")
	gt.String(t, out).Contains("Scientific Name: Ocimum tenuiflorum")
	gt.String(t, out).Contains("✅ Boosts immunity")
	gt.String(t, out).Contains("⚠️ No specific cautions available")
	gt.False(t, v.ErrorShown())
}

func TestView_ErrorAndAlert(t *testing.T) {
	var buf bytes.Buffer
	v := term.New(&buf, term.WithoutColor())
	ctx := context.Background()

	v.Alert(ctx, model.InvalidFileMessage)
	v.ShowError(ctx, "server error")

	gt.String(t, buf.String()).Contains("! Please select a valid image file")
	gt.String(t, buf.String()).Contains("❌ server error")
	gt.True(t, v.ErrorShown())

	v.Clear(ctx)
	gt.False(t, v.ErrorShown())
}

func TestView_PrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	v := term.New(&buf, term.WithoutColor())

	v.PrintCatalog(&model.PlantCatalog{
		TotalPlantsDetected: 2,
		Plants:              []string{"Neem", "Tulsi"},
		Models:              []string{"herbal-s6spz/3"},
	})

	gt.String(t, buf.String()).Contains("2 plants detected so far")
	gt.String(t, buf.String()).Contains("  2. Tulsi")
	gt.String(t, buf.String()).Contains("herbal-s6spz/3")
}
