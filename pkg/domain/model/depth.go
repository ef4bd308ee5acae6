package model

import "github.com/fanlore-dev/fanlore/pkg/domain/types"

// depthRubrics fixes the semantics of the 1-10 relationship depth scale per
// relationship type. Index i describes depth i+1. Types without a rubric
// (e.g. MISC) have no quantifiable depth.
var depthRubrics = map[types.RelationshipType][10]string{
	types.RelationshipTypeKnows: {
		"Aware of (name mentioned in proximity / heard of)",
		"Met briefly / superficial interaction",
		"Acquaintance / regular but casual interaction",
		"Works with / collaborator (task-oriented)",
		"Friend / confidante",
		"Close friend / deep trust / shares secrets",
		"Mentor / Protege",
		"Deep emotional bond (non-familial, non-romantic)",
		"Romantic partner / Spouse",
		"Life-defining connection / Soulmate / Arch-nemesis",
	},
	types.RelationshipTypeFamilyOf: {
		"Distant relative (e.g. third cousin, great-great-grandparent)",
		"Extended family (e.g. cousin, aunt/uncle, grandparent)",
		"Close extended family (regularly interacted with)",
		"Step-family with moderate closeness",
		"Immediate family (parent, sibling, child)",
		"Very close immediate family (constant contact)",
		"Twin / Inseparable sibling",
		"Primary caregiver / Dependent child",
		"Ancestral lineage (direct line, historical figures)",
		"Progenitor / Founder of a bloodline or dynasty",
	},
	types.RelationshipTypeParticipatedIn: {
		"Indirectly affected / present but not involved",
		"Observer / Witness (passive presence)",
		"Minor participant / small non-critical contribution",
		"Active participant / had a defined role",
		"Significant participant / crucial to the event's progress",
		"Key decision-maker / influenced the event's direction",
		"Leader / Instigator of the event",
		"Central figure / event revolved around this character",
		"Sole participant",
		"Defining moment / event fundamentally changed the character",
	},
	types.RelationshipTypeVisited: {
		"Passed through / brief, unremarkable presence",
		"Short visit / tourist",
		"Temporary residence / stayed for a notable period",
		"Frequent visitor / regular but not permanent",
		"Worked there / place of employment",
		"Lived there for a period / former residence",
		"Current residence / home",
		"Birthplace / place of origin",
		"Place of profound personal significance",
		"Never left / entire life spent in one place",
	},
	types.RelationshipTypeOwns: {
		"Borrowed / temporary possession",
		"Custodial possession / holding for someone else",
		"Shared ownership / partial claim",
		"Regularly uses but doesn't own",
		"Personal possession / belongs to the character",
		"Highly valued possession / sentimental or practical importance",
		"Signature item / strongly associated with the character",
		"Magical attunement / unique bond",
		"Inherited / ancestral ownership",
		"Created / crafted by the character",
	},
	types.RelationshipTypeInteractedWithObject: {
		"Briefly touched / superficial contact",
		"Examined / inspected",
		"Used once / for a specific, limited purpose",
		"Regularly used / common interaction",
		"Repaired / maintained",
		"Modified / altered",
		"Studied / researched extensively",
		"Destroyed / disassembled",
		"Relied upon for survival / critical use",
		"Discovered / unearthed",
	},
}

// DepthRubric returns the 1-10 depth scale descriptions for the given
// relationship type. The second return value reports whether the type has a
// quantifiable depth rubric at all.
func DepthRubric(t types.RelationshipType) ([10]string, bool) {
	rubric, ok := depthRubrics[t]
	return rubric, ok
}

// DepthMeaning returns the description of a specific depth value for the
// given relationship type, or "" when the type has no rubric or the depth
// is out of the 1-10 range.
func DepthMeaning(t types.RelationshipType, depth int) string {
	rubric, ok := depthRubrics[t]
	if !ok || depth < 1 || depth > 10 {
		return ""
	}
	return rubric[depth-1]
}
