package engine

// ResourceMapper attaches support resources to verdicts. The mapping is a
// fixed table keyed by category; resources are attached only when severity
// reaches the policy's help threshold. Categories absent from the table
// never attach anything.
type ResourceMapper struct {
	table        map[Category][]SupportResource
	helpSeverity Severity
}

// NewResourceMapper builds a mapper from the given table, falling back to
// the builtin table when nil.
func NewResourceMapper(table map[Category][]SupportResource, policy Policy) *ResourceMapper {
	if table == nil {
		table = BuiltinResources()
	}
	return &ResourceMapper{table: table, helpSeverity: policy.HelpSeverity}
}

// Lookup returns the resources for a verdict, or nil when none apply.
// The returned slice is a copy.
func (m *ResourceMapper) Lookup(cat Category, sev Severity) []SupportResource {
	if !sev.AtLeast(m.helpSeverity) {
		return nil
	}
	src, ok := m.table[cat]
	if !ok || len(src) == 0 {
		return nil
	}
	out := make([]SupportResource, len(src))
	copy(out, src)
	return out
}

// BuiltinResources is the default category to resource table. Self-harm
// verdicts get crisis lines; harassment and hate speech get anti-bullying
// support alongside the text line.
func BuiltinResources() map[Category][]SupportResource {
	crisisText := SupportResource{
		Name:        "Crisis Text Line",
		Description: "Free, confidential support via text message, available 24/7.",
		Contact:     "Text HOME to 741741",
		URL:         "https://www.crisistextline.org",
	}
	lifeline := SupportResource{
		Name:        "988 Suicide & Crisis Lifeline",
		Description: "Free and confidential support for people in distress, 24/7.",
		Contact:     "Call or text 988",
		URL:         "https://988lifeline.org",
	}
	stopBullying := SupportResource{
		Name:        "StopBullying.gov",
		Description: "Guidance on responding to bullying and online harassment.",
		Contact:     "",
		URL:         "https://www.stopbullying.gov",
	}
	return map[Category][]SupportResource{
		CategorySelfHarm:   {crisisText, lifeline},
		CategoryHarassment: {stopBullying, crisisText},
		CategoryHateSpeech: {stopBullying},
	}
}
