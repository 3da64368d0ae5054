package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-metaform/pkg/fields/toggle"
	"github.com/goliatone/go-metaform/pkg/form"
	"github.com/goliatone/go-metaform/pkg/model"
	"github.com/goliatone/go-metaform/pkg/renderers/tui"
	"github.com/goliatone/go-metaform/pkg/schema"
	"github.com/goliatone/go-metaform/pkg/style"
)

func main() {
	definitions := flag.String("definitions", "", "YAML field definitions file")
	openapiDoc := flag.String("openapi", "", "OpenAPI document to read boolean properties from")
	schemaName := flag.String("schema", "", "component schema name (with -openapi)")
	styles := flag.String("styles", "", "YAML style sheet overriding the built-in toggle variants")
	search := flag.Bool("search", false, "render fields as inline search filters")
	mode := flag.String("mode", "html", "output mode: html or tui")
	output := flag.String("output", "", "output file for html mode (stdout if empty)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logger := newLogger(*verbose)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	def, err := loadForm(ctx, *definitions, *openapiDoc, *schemaName)
	if err != nil {
		log.Fatalf("Failed to load definitions: %v", err)
	}

	var toggleOpts []toggle.Option
	if *styles != "" {
		sheet, err := style.LoadFile(*styles)
		if err != nil {
			log.Fatalf("Failed to load styles: %v", err)
		}
		toggleOpts = append(toggleOpts, toggle.WithSheet(sheet))
	}

	registry := form.NewRegistry()
	registry.MustRegister(toggle.Type, form.Descriptor{Factory: toggle.Factory(toggleOpts...)})

	ctrl, err := form.NewController(def,
		form.WithRegistry(registry),
		form.WithSearch(*search),
		form.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("Failed to build form: %v", err)
	}

	switch strings.ToLower(strings.TrimSpace(*mode)) {
	case "html":
		if err := writeHTML(ctx, ctrl, *output); err != nil {
			log.Fatalf("Failed to render form: %v", err)
		}
	case "tui":
		if err := prompt(ctx, ctrl); err != nil {
			if errors.Is(err, tui.ErrAborted) {
				os.Exit(130)
			}
			log.Fatalf("Failed to collect values: %v", err)
		}
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func loadForm(ctx context.Context, definitions, openapiDoc, schemaName string) (model.Form, error) {
	switch {
	case definitions != "":
		return schema.LoadDefinitionsFile(definitions)
	case openapiDoc != "":
		if schemaName == "" {
			return model.Form{}, errors.New("-schema is required with -openapi")
		}
		data, err := os.ReadFile(openapiDoc)
		if err != nil {
			return model.Form{}, err
		}
		return schema.FromOpenAPI(ctx, data, schemaName)
	default:
		return model.Form{}, errors.New("one of -definitions or -openapi is required")
	}
}

func writeHTML(ctx context.Context, ctrl *form.Controller, output string) error {
	var buf bytes.Buffer
	if err := ctrl.Render(ctx, &buf); err != nil {
		return err
	}
	if output == "" {
		fmt.Println(buf.String())
		return nil
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Printf("Form written to %s\n", output)
	return nil
}

func prompt(ctx context.Context, ctrl *form.Controller) error {
	driver := tui.NewSurveyDriver()
	if err := ctrl.Prompt(ctx, driver); err != nil {
		return err
	}

	fields, err := ctrl.Fields()
	if err != nil {
		return err
	}
	for _, field := range fields {
		tf, ok := field.(*toggle.Field)
		if !ok {
			continue
		}
		if err := driver.Info(ctx, fmt.Sprintf("%s: %s", tf.Name(), toggle.StatusText(tf.Value()))); err != nil {
			return err
		}
	}
	return nil
}
