package validation

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"hire-portal/internal/domain/job"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed job_offer.schema.json
var jobOfferSchemaJSON []byte

var (
	jobOfferSchemaOnce sync.Once
	jobOfferSchema     *gojsonschema.Schema
	jobOfferSchemaErr  error
)

func loadJobOfferSchema() (*gojsonschema.Schema, error) {
	jobOfferSchemaOnce.Do(func() {
		jobOfferSchema, jobOfferSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jobOfferSchemaJSON))
	})
	return jobOfferSchema, jobOfferSchemaErr
}

// ValidateJobOffer checks the submission form of an offer: required fields and
// types against the embedded schema, then the salary and experience ranges.
func ValidateJobOffer(offer job.JobOffer) error {
	offer = offer.Trimmed()

	schema, err := loadJobOfferSchema()
	if err != nil {
		return fmt.Errorf("load job offer schema: %w", err)
	}

	res, err := schema.Validate(gojsonschema.NewGoLoader(offer))
	if err != nil {
		return fmt.Errorf("validate job offer: %w", err)
	}
	if !res.Valid() {
		fields := make([]string, 0, len(res.Errors()))
		seen := map[string]struct{}{}
		for _, e := range res.Errors() {
			f := schemaField(e)
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			fields = append(fields, f)
		}
		sort.Strings(fields)
		return &Error{Message: "Please fix the highlighted fields.", Fields: fields}
	}

	return validateRanges(offer)
}

func schemaField(e gojsonschema.ResultError) string {
	if e.Type() == "required" {
		if p, ok := e.Details()["property"].(string); ok && p != "" {
			f := e.Field()
			switch {
			case f == "" || f == gojsonschema.STRING_ROOT_SCHEMA_PROPERTY:
				return p
			case f == p || strings.HasSuffix(f, "."+p):
				return f
			default:
				return f + "." + p
			}
		}
	}
	return strings.TrimPrefix(e.Field(), gojsonschema.STRING_ROOT_SCHEMA_PROPERTY+".")
}

func validateRanges(offer job.JobOffer) error {
	if offer.MinSalary != nil && offer.MaxSalary != nil && *offer.MinSalary > *offer.MaxSalary {
		return newError("minSalary", "Min salary cannot be greater than max salary.")
	}
	for i, r := range offer.Requirements {
		if r.MinYears != nil && r.MaxYears != nil && *r.MinYears > *r.MaxYears {
			return newError(
				fmt.Sprintf("requirements.%d.minYears", i),
				fmt.Sprintf("Requirement #%d: min years cannot be greater than max years.", i+1),
			)
		}
	}
	return nil
}
