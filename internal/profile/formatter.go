package profile

import "strings"

// Describe combines the form fields and the voice transcript into one flowing
// description. The transcript leads because it is the most personal part, then
// basic facts, career, lifestyle and family sentences follow in that order.
// Sections with nothing to say are dropped entirely; when nothing at all is
// present the result is the empty string so submission validation can reject
// it instead of sending a hollow profile.
func Describe(fields Fields, transcript string) string {
	var parts []string

	if t := strings.TrimSpace(transcript); t != "" {
		parts = append(parts, t)
	}

	var basic []string
	if fields.Age != "" {
		basic = append(basic, fields.Age+" years old")
	}
	if fields.Location != "" {
		basic = append(basic, "lives in "+fields.Location)
	}
	if fields.Hometown != "" && fields.Hometown != fields.Location {
		basic = append(basic, "from "+fields.Hometown)
	}
	if fields.Height != "" {
		basic = append(basic, fields.Height+" tall")
	}
	if fields.Religion != "" && fields.Religion != answerPreferNot {
		switch fields.ReligionImportance {
		case importanceVery:
			basic = append(basic, "very religious ("+strings.ToLower(fields.Religion)+")")
		case importanceSomewhat:
			basic = append(basic, "somewhat religious ("+strings.ToLower(fields.Religion)+")")
		}
	}

	var career []string
	if fields.JobTitle != "" {
		if fields.Employer != "" {
			career = append(career, "Works as a "+fields.JobTitle+" at "+fields.Employer)
		} else {
			career = append(career, "Works as a "+fields.JobTitle)
		}
	}
	if fields.Education != "" {
		career = append(career, "Has a "+fields.Education)
	}
	if fields.LookingFor != "" {
		career = append(career, "Looking for "+strings.ToLower(fields.LookingFor))
	}

	var lifestyle []string
	if fields.Drinking != "" && fields.Drinking != answerNo {
		lifestyle = append(lifestyle, "drinks "+strings.ToLower(fields.Drinking))
	}
	if fields.Smoking != "" && fields.Smoking != answerNo {
		lifestyle = append(lifestyle, "smokes "+strings.ToLower(fields.Smoking))
	}
	if fields.Marijuana != "" && fields.Marijuana != answerNo {
		lifestyle = append(lifestyle, "uses marijuana "+strings.ToLower(fields.Marijuana))
	}
	if fields.Politics != "" {
		lifestyle = append(lifestyle, "politically "+strings.ToLower(fields.Politics))
	}

	var family []string
	if fields.WantChildren != "" && fields.WantChildren != answerNotSure {
		family = append(family, "wants children: "+strings.ToLower(fields.WantChildren))
	}
	if fields.HaveChildren == answerYes {
		family = append(family, "has children")
	}

	if len(basic) > 0 {
		parts = append(parts, strings.Join(basic, ", ")+".")
	}
	if len(career) > 0 {
		parts = append(parts, strings.Join(career, ". ")+".")
	}
	if len(lifestyle) > 0 {
		parts = append(parts, strings.Join(lifestyle, ", ")+".")
	}
	if len(family) > 0 {
		parts = append(parts, strings.Join(family, ", ")+".")
	}

	if len(parts) == 0 {
		return ""
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}
