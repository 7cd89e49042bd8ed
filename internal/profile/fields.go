// Package profile turns signup form fields and a voice transcript into the
// single natural-language partner description the scoring service consumes.
package profile

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Sentinel option values that mean "nothing worth mentioning".
const (
	answerNo        = "No"
	answerYes       = "Yes"
	answerNotSure   = "Not sure"
	answerPreferNot = "Prefer not to say"

	importanceVery     = "Very important"
	importanceSomewhat = "Somewhat important"
)

// Fields holds the signup form answers. Every field is optional: an empty
// string means the user skipped it and the formatter leaves it out.
type Fields struct {
	FirstName   string `json:"firstName,omitempty" mapstructure:"firstName"`
	Age         string `json:"age,omitempty" mapstructure:"age"`
	Gender      string `json:"gender,omitempty" mapstructure:"gender"`
	Orientation string `json:"orientation,omitempty" mapstructure:"orientation"`

	Location string `json:"location,omitempty" mapstructure:"location"`
	Hometown string `json:"hometown,omitempty" mapstructure:"hometown"`
	Height   string `json:"height,omitempty" mapstructure:"height"`

	Ethnicity          string `json:"ethnicity,omitempty" mapstructure:"ethnicity"`
	Religion           string `json:"religion,omitempty" mapstructure:"religion"`
	ReligionImportance string `json:"religionImportance,omitempty" mapstructure:"religionImportance"`

	LookingFor string `json:"lookingFor,omitempty" mapstructure:"lookingFor"`

	JobTitle  string `json:"jobTitle,omitempty" mapstructure:"jobTitle"`
	Employer  string `json:"employer,omitempty" mapstructure:"employer"`
	Education string `json:"education,omitempty" mapstructure:"education"`

	Smoking    string `json:"smoking,omitempty" mapstructure:"smoking"`
	Drinking   string `json:"drinking,omitempty" mapstructure:"drinking"`
	Marijuana  string `json:"marijuana,omitempty" mapstructure:"marijuana"`
	OtherDrugs string `json:"otherDrugs,omitempty" mapstructure:"otherDrugs"`
	Politics   string `json:"politics,omitempty" mapstructure:"politics"`

	WantChildren string `json:"wantChildren,omitempty" mapstructure:"wantChildren"`
	HaveChildren string `json:"haveChildren,omitempty" mapstructure:"haveChildren"`
}

// FromMap decodes a generic string-keyed form payload into Fields. Unknown
// keys are ignored so front-end additions do not break submissions.
func FromMap(data map[string]any) (Fields, error) {
	var fields Fields
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &fields,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fields, fmt.Errorf("build form decoder: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return fields, fmt.Errorf("decode form data: %w", err)
	}

	return fields, nil
}
