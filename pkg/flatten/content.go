package flatten

import (
	"fmt"

	"github.com/goliatone/go-formfill/pkg/catalog"
	"github.com/goliatone/go-formfill/pkg/schema"
)

// unitFields derives the synthetic fields for one unit-competency entry.
// Each sub-structure present on the unit yields one field whose name
// composes the unit code with a fixed role suffix, so two units can never
// collide.
func unitFields(unit schema.Unit) []schema.Field {
	if unit.Code == "" {
		return nil
	}

	var fields []schema.Field
	synthetic := func(field schema.Field) {
		field.Synthetic = true
		fields = append(fields, field)
	}

	if prompt := unit.ReadCompetencyStandards; prompt != nil {
		synthetic(schema.Field{
			Name:     unit.Code + "_readStandards",
			Type:     catalog.TypeRadio,
			Label:    "Have you read the competency standards?",
			Options:  promptOptions(prompt, catalog.DefaultYesNoOptions),
			Required: true,
		})
	}

	for idx, competency := range unit.Competencies {
		if prompt := competency.Frequency; prompt != nil {
			synthetic(schema.Field{
				Name:     fmt.Sprintf("%s_comp%d_frequency", unit.Code, idx),
				Type:     catalog.TypeRadio,
				Label:    fmt.Sprintf("Competency %d Frequency", idx+1),
				Options:  promptOptions(prompt, catalog.DefaultFrequencyOptions),
				Required: true,
			})
		}
		if competency.Explanation != nil {
			synthetic(schema.Field{
				Name:  fmt.Sprintf("%s_comp%d_explanation", unit.Code, idx),
				Type:  catalog.TypeTextarea,
				Label: fmt.Sprintf("Competency %d Explanation", idx+1),
			})
		}
	}

	if prompt := unit.AdditionalInformation; prompt != nil {
		synthetic(schema.Field{
			Name:  unit.Code + "_additionalInfo",
			Type:  catalog.TypeTextarea,
			Label: promptLabel(prompt, "Additional Information"),
		})
	}

	if prompt := unit.ThirdPartySignature; prompt != nil {
		synthetic(schema.Field{
			Name:     unit.Code + "_signature",
			Type:     catalog.TypeText,
			Label:    promptLabel(prompt, "Signature"),
			Required: true,
		})
	}

	if prompt := unit.Date; prompt != nil {
		synthetic(schema.Field{
			Name:     unit.Code + "_date",
			Type:     catalog.TypeDate,
			Label:    promptLabel(prompt, "Date"),
			Required: true,
		})
	}

	if rto := unit.RTOUseOnly; rto != nil {
		if prompt := rto.AssessorName; prompt != nil {
			synthetic(schema.Field{
				Name:  unit.Code + "_assessorName",
				Type:  catalog.TypeText,
				Label: promptLabel(prompt, "Assessor Name"),
			})
		}
		if prompt := rto.Verified; prompt != nil {
			synthetic(schema.Field{
				Name:    unit.Code + "_verified",
				Type:    catalog.TypeRadio,
				Label:   optionPromptLabel(prompt, "Verified"),
				Options: promptOptions(prompt, catalog.DefaultYesNoOptions),
			})
		}
		if prompt := rto.VerificationDate; prompt != nil {
			synthetic(schema.Field{
				Name:  unit.Code + "_verificationDate",
				Type:  catalog.TypeDate,
				Label: promptLabel(prompt, "Verification Date"),
			})
		}
	}

	return fields
}

func promptLabel(prompt *schema.Prompt, fallback string) string {
	if prompt != nil && prompt.Label != "" {
		return prompt.Label
	}
	return fallback
}

func optionPromptLabel(prompt *schema.OptionPrompt, fallback string) string {
	if prompt != nil && prompt.Label != "" {
		return prompt.Label
	}
	return fallback
}

func promptOptions(prompt *schema.OptionPrompt, fallback []string) []string {
	if prompt != nil && len(prompt.Options) > 0 {
		return prompt.Options
	}
	return append([]string(nil), fallback...)
}
