// Command oasguard validates an OpenAPI or Swagger document against its
// version's meta-schema and oasguard's semantic checks, per spec §6.2.
package main

import (
	"fmt"
	"os"

	"charm.land/log/v2"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/chanced/oasguard/reader"

	oasguard "github.com/chanced/oasguard"
)

var (
	flagSchema           string
	flagSubschemaErrors  bool
	flagValidationErrors bool
	flagErrorsDeprecated bool

	logger = log.New(os.Stderr)
)

func main() {
	root := &cobra.Command{
		Use:   "oasguard [document]",
		Short: "Validate an OpenAPI or Swagger document",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().StringVar(&flagSchema, "schema", "", "override the detected schema version (e.g. 3.1.0)")
	root.Flags().BoolVar(&flagSubschemaErrors, "subschema-errors", false, "keep every schema error; by default a schema error is dropped once any error was reported (nested causes are never listed)")
	root.Flags().BoolVar(&flagValidationErrors, "validation-errors", true, "report semantic validation errors in addition to schema errors")
	root.Flags().BoolVar(&flagErrorsDeprecated, "errors", false, "deprecated alias for --validation-errors")
	root.Version = "0.1.0"

	if err := root.Execute(); err != nil {
		os.Exit(2)
	}
}

func run(cmd *cobra.Command, args []string) error {
	settings := oasguard.SettingsFromEnv()
	if flagErrorsDeprecated {
		if settings.WarnDeprecated {
			logger.Warn("--errors is deprecated, use --validation-errors instead")
		}
		flagValidationErrors = true
	}

	location := args[0]
	rd := reader.New()
	doc, err := rd.Read(location)
	if err != nil {
		logger.Error("failed to read document", "location", location, "err", err)
		os.Exit(2)
	}

	baseURI := location
	if location == "-" {
		baseURI = "mem://oasguard/stdin"
	}

	sv, err := oasguard.NewSpecValidator(doc, baseURI, rd.FetchFunc(), settings)
	if err != nil {
		logger.Error("failed to initialize validator", "err", err)
		os.Exit(2)
	}
	logger.Info("validating", "location", location, "version", sv.Version().String())

	var errs []*oasguard.Error
	sv.IterErrors(settings, func(e *oasguard.Error) bool {
		if e.Kind == oasguard.KindSchemaError && !flagSubschemaErrors && len(errs) > 0 {
			return true
		}
		if e.Kind != oasguard.KindSchemaError && !flagValidationErrors {
			return true
		}
		errs = append(errs, e)
		return true
	})

	if len(errs) == 0 {
		fmt.Println("valid")
		return nil
	}

	report, err := buildReport(errs)
	if err != nil {
		logger.Error("failed to build report", "err", err)
		os.Exit(2)
	}
	fmt.Println(report)
	os.Exit(1)
	return nil
}

func buildReport(errs []*oasguard.Error) (string, error) {
	report := "{}"
	var err error
	report, err = sjson.Set(report, "valid", false)
	if err != nil {
		return "", err
	}
	for i, e := range errs {
		prefix := fmt.Sprintf("errors.%d", i)
		report, err = sjson.Set(report, prefix+".kind", e.Kind.String())
		if err != nil {
			return "", err
		}
		report, err = sjson.Set(report, prefix+".pointer", e.Pointer)
		if err != nil {
			return "", err
		}
		report, err = sjson.Set(report, prefix+".message", e.Message)
		if err != nil {
			return "", err
		}
	}
	return report, nil
}
