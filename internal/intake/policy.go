package intake

// Collections the two pipelines write to.
const (
	ContactCollection     = "contact_submissions"
	ApplicationCollection = "applicants"
)

// ContactPolicy configures the contact-form pipeline. Contact records carry
// a pipeline-generated CS- id, and an unprovisioned store is invisible to
// the sender: the message is accepted without being written.
func ContactPolicy(dedupEnabled bool) Policy {
	return Policy{
		Kind:                "contact",
		Collection:          ContactCollection,
		IDPrefix:            "CS",
		Schema:              ContactSchema,
		DedupEnabled:        dedupEnabled,
		SoftUnavailable:     true,
		WriteFailureMessage: "Failed to process your request. Please try again.",
	}
}

// ApplicationPolicy configures the driver-application pipeline. Ids are
// store-assigned, and an unprovisioned store is surfaced honestly so an
// applicant knows to call instead.
func ApplicationPolicy(dedupEnabled bool) Policy {
	return Policy{
		Kind:                "application",
		Collection:          ApplicationCollection,
		Schema:              ApplicationSchema,
		RequireContact:      true,
		DedupEnabled:        dedupEnabled,
		SoftUnavailable:     false,
		UnavailableMessage:  "Application system is being configured. Please try again later or call us directly.",
		WriteFailureMessage: "Failed to save application. Please try again.",
	}
}
