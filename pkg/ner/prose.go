package ner

import (
	"context"
	"fmt"

	"github.com/jdkato/prose/v2"

	"github.com/getzep/nerlog/pkg/models"
)

var _ models.Annotator = &ProseAnnotator{}

// ProseAnnotator runs prose's averaged-perceptron entity model in process.
type ProseAnnotator struct {
	opts []prose.DocOpt
}

// NewProseAnnotator uses the bundled model, or the model directory at modelPath when set.
// prose panics on an unreadable model; the panic is returned as an error.
func NewProseAnnotator(modelPath string) (a *ProseAnnotator, err error) {
	a = &ProseAnnotator{}
	if modelPath == "" {
		return a, nil
	}

	defer func() {
		if r := recover(); r != nil {
			a = nil
			err = fmt.Errorf("load model from %s: %v", modelPath, r)
		}
	}()
	model := prose.ModelFromDisk(modelPath)
	a.opts = append(a.opts, prose.UsingModel(model))
	return a, nil
}

func (a *ProseAnnotator) Name() string { return "prose" }

func (a *ProseAnnotator) Annotate(ctx context.Context, text string) ([]models.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := prose.NewDocument(text, a.opts...)
	if err != nil {
		return nil, fmt.Errorf("prose failed to tag text: %w", err)
	}

	ents := doc.Entities()
	entities := make([]models.Entity, 0, len(ents))
	for _, ent := range ents {
		entities = append(entities, models.Entity{Text: ent.Text, Label: ent.Label})
	}
	return entities, nil
}

// Ready tags a short sentence so the first request does not pay for model initialization.
func (a *ProseAnnotator) Ready(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("warm-up panicked: %v", r)
		}
	}()
	_, err = a.Annotate(ctx, "Alice moved to Paris in 2024.")
	return err
}
